package analyzer

import (
	"time"

	"github.com/uyouii/voltage-analytics/model"
	"gonum.org/v1/gonum/floats"
)

// RollingMean is the trailing mean over window samples. Positions before the
// window fills average whatever is available, so index 0 equals values[0].
// The running sum is rebuilt from the window every window steps so rounding
// left behind by large values that already left the window does not persist.
func RollingMean(values []float64, window int) []float64 {
	res := make([]float64, len(values))
	if window <= 0 {
		window = 1
	}

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		cnt := i + 1
		if cnt > window {
			cnt = window
		}
		if (i+1)%window == 0 {
			sum = floats.Sum(values[i+1-cnt : i+1])
		}
		res[i] = sum / float64(cnt)
	}
	return res
}

// CalendarRollingMean averages every sample with time in [t - span, t], samples
// sharing t with later rows are included. series must be sorted.
func CalendarRollingMean(series model.Series, span time.Duration) []float64 {
	n := len(series)
	res := make([]float64, n)
	values := series.Values()

	left, right := 0, 0
	sum := 0.0
	removed := 0
	for i := 0; i < n; i++ {
		t := series[i].Time
		for right < n && !series[right].Time.After(t) {
			sum += values[right]
			right++
		}
		start := t.Add(-span)
		for series[left].Time.Before(start) {
			sum -= values[left]
			left++
			removed++
		}
		// rebuild once a full window worth of samples has been dropped
		if removed >= right-left {
			sum = floats.Sum(values[left:right])
			removed = 0
		}
		res[i] = sum / float64(right-left)
	}
	return res
}
