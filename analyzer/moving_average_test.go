package analyzer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/voltage-analytics/model"
	"gonum.org/v1/gonum/stat"
)

func TestRollingMean_TrailingWindow(t *testing.T) {
	values := randomValues(1, 50)
	window := 7

	res := RollingMean(values, window)
	require.Len(t, res, len(values))

	assert.Equal(t, values[0], res[0])
	for i := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		assert.InDelta(t, stat.Mean(values[start:i+1], nil), res[i], 1e-9, "index %d", i)
	}
}

func TestRollingMean_ClampedWindows(t *testing.T) {
	values := randomValues(2, 1200)
	res := AnalyzeSeries(context.Background(), createTestSeries(values))

	assert.InDelta(t, stat.Mean(values[200:], nil), res.MA1000[1199], 1e-6)
	assert.InDelta(t, stat.Mean(values[:1000], nil), res.MA1000[999], 1e-6)
	// the slow window never fills with 1200 samples
	assert.InDelta(t, stat.Mean(values, nil), res.MA5000[1199], 1e-6)
}

func TestRollingMean_Empty(t *testing.T) {
	assert.Empty(t, RollingMean(nil, 0))
	assert.Empty(t, RollingMean([]float64{}, 1000))
}

func TestCalendarRollingMean_IrregularSpacing(t *testing.T) {
	day := 24 * time.Hour
	series := model.Series{
		{Time: baseTime, Value: 1},
		{Time: baseTime.Add(1 * day), Value: 2},
		{Time: baseTime.Add(3 * day), Value: 3},
		{Time: baseTime.Add(5 * day), Value: 4},
		{Time: baseTime.Add(6 * day), Value: 5},
		{Time: baseTime.Add(11*day + time.Hour), Value: 6},
	}

	res := CalendarRollingMean(series, CalendarWindow)

	// the sample exactly five days back is inside the window
	assert.InDeltaSlice(t, []float64{1, 1.5, 2, 2.5, 3.5, 6}, res, 1e-9)
}

func TestCalendarRollingMean_MatchesBruteForce(t *testing.T) {
	values := randomValues(3, 300)
	series := make(model.Series, len(values))
	offset := time.Duration(0)
	for i, v := range values {
		// 0 to 11 hours apart, some samples share a timestamp
		offset += time.Duration(i%12) * time.Hour
		series[i] = model.TimeValue{Time: baseTime.Add(offset), Value: v}
	}

	res := CalendarRollingMean(series, CalendarWindow)
	require.Len(t, res, len(series))

	for i, tv := range series {
		window := []float64{}
		for _, other := range series {
			if !other.Time.Before(tv.Time.Add(-CalendarWindow)) && !other.Time.After(tv.Time) {
				window = append(window, other.Value)
			}
		}
		assert.InDelta(t, stat.Mean(window, nil), res[i], 1e-6, "index %d", i)
	}
}

func TestRollingMean_RecoversAfterLargeValues(t *testing.T) {
	values := make([]float64, 0, 6000)
	for i := 0; i < 1000; i++ {
		values = append(values, 1e15)
	}
	for i := 0; i < 5000; i++ {
		values = append(values, 1.0)
	}

	res := RollingMean(values, 1000)

	for i := 2000; i < len(values); i++ {
		require.InDelta(t, 1.0, res[i], 1e-9, "index %d", i)
	}
}

func TestCalendarRollingMean_RecoversAfterLargeValues(t *testing.T) {
	values := make([]float64, 0, 2020)
	for i := 0; i < 20; i++ {
		values = append(values, 1e15)
	}
	for i := 0; i < 2000; i++ {
		values = append(values, 1.0)
	}
	series := createTestSeries(values)

	res := CalendarRollingMean(series, 10*time.Minute)

	for i := len(values) - 100; i < len(values); i++ {
		require.InDelta(t, 1.0, res[i], 1e-9, "index %d", i)
	}
}
