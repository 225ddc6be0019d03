package analyzer

import (
	"sort"

	"github.com/uyouii/voltage-analytics/model"
	"gonum.org/v1/gonum/floats"
)

// localMaxima returns the index of every sample higher than both neighbours.
// A flat top counts once, at its middle (rounded down), and only when both
// sides fall away. The first and last samples never qualify.
func localMaxima(x []float64) []int {
	res := []int{}
	i, iMax := 1, len(x)-1
	for i < iMax {
		if x[i-1] < x[i] {
			ahead := i + 1
			for ahead < iMax && x[ahead] == x[i] {
				ahead++
			}
			if x[ahead] < x[i] {
				res = append(res, (i+ahead-1)/2)
				i = ahead
			}
		}
		i++
	}
	return res
}

// selectByDistance keeps candidates greedily, highest value first and the
// earliest index on ties. A kept candidate drops every other candidate closer
// than distance. peaks must be ascending.
func selectByDistance(x []float64, peaks []int, distance int) []int {
	order := make([]int, len(peaks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return x[peaks[order[a]]] > x[peaks[order[b]]]
	})

	keep := make([]bool, len(peaks))
	for i := range keep {
		keep[i] = true
	}
	for _, j := range order {
		if !keep[j] {
			continue
		}
		for k := j - 1; k >= 0 && peaks[j]-peaks[k] < distance; k-- {
			keep[k] = false
		}
		for k := j + 1; k < len(peaks) && peaks[k]-peaks[j] < distance; k++ {
			keep[k] = false
		}
	}

	res := []int{}
	for i, p := range peaks {
		if keep[i] {
			res = append(res, p)
		}
	}
	return res
}

// FindPeaks returns ascending indexes of local maxima at least distance apart.
func FindPeaks(values []float64, distance int) []int {
	peaks := localMaxima(values)
	if distance <= 1 || len(peaks) < 2 {
		return peaks
	}
	return selectByDistance(values, peaks, distance)
}

// FindLows runs FindPeaks over the negated values.
func FindLows(values []float64, distance int) []int {
	negated := make([]float64, len(values))
	copy(negated, values)
	floats.Scale(-1, negated)
	return FindPeaks(negated, distance)
}

// DetectExtrema merges peaks and lows into one table ordered by time.
func DetectExtrema(series model.Series) []model.ExtremaRecord {
	values := series.Values()

	res := []model.ExtremaRecord{}
	for _, idx := range FindPeaks(values, ExtremaMinDistance) {
		res = append(res, model.ExtremaRecord{
			Time:  series[idx].Time,
			Value: series[idx].Value,
			Kind:  model.PeakExtrema,
		})
	}
	for _, idx := range FindLows(values, ExtremaMinDistance) {
		res = append(res, model.ExtremaRecord{
			Time:  series[idx].Time,
			Value: series[idx].Value,
			Kind:  model.LowExtrema,
		})
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Time.Before(res[j].Time)
	})
	return res
}
