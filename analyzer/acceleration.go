package analyzer

import (
	"math"

	"github.com/uyouii/voltage-analytics/model"
)

// Diff is the first difference, NaN at index 0.
func Diff(values []float64) []float64 {
	res := make([]float64, len(values))
	for i := range values {
		if i == 0 {
			res[i] = math.NaN()
			continue
		}
		res[i] = values[i] - values[i-1]
	}
	return res
}

// RechargePoints returns every index whose value jumped by more than RechargeJump.
func RechargePoints(values []float64) []int {
	res := []int{}
	for i, d := range Diff(values) {
		if d > RechargeJump {
			res = append(res, i)
		}
	}
	return res
}

// SplitCycles cuts [0, len(values)) at every recharge point. A recharge point
// opens the next cycle.
func SplitCycles(values []float64) []model.Cycle {
	if len(values) == 0 {
		return []model.Cycle{}
	}

	res := []model.Cycle{}
	start := 0
	for _, end := range append(RechargePoints(values), len(values)) {
		res = append(res, model.Cycle{Start: start, End: end})
		start = end
	}
	return res
}

// DetectAcceleration finds samples where the value falls and the fall speeds up,
// searched cycle by cycle. The first two samples of a cycle have no in-cycle
// second difference and are skipped.
func DetectAcceleration(series model.Series) []model.AccelerationRecord {
	values := series.Values()
	diff := Diff(values)
	secondDiff := Diff(diff)

	res := []model.AccelerationRecord{}
	for _, cycle := range SplitCycles(values) {
		first := cycle.Start + 2
		if cycle.End-first <= MinCycleRows {
			continue
		}
		for i := first; i < cycle.End; i++ {
			if diff[i] < 0 && secondDiff[i] < 0 {
				t := series[i].Time
				if len(res) > 0 && res[len(res)-1].Time.Equal(t) {
					continue
				}
				res = append(res, model.AccelerationRecord{Time: t})
			}
		}
	}
	return res
}
