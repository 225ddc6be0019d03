package analyzer

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/uyouii/voltage-analytics/common"
	"github.com/uyouii/voltage-analytics/model"
)

// ParseTimestamp reads a DD-MM-YYYY HH:MM time in UTC. One digit day, month
// and hour are accepted too, so 1-1-2024 9:05 parses.
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampParseLayout, strings.TrimSpace(s), time.UTC)
}

// ParseValue reads a finite float, NaN and Inf give ErrorInvalidValue.
func ParseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, common.ErrorInvalidValue
	}
	return v, nil
}

// Preprocess parses every raw row and returns the series stable sorted by time.
// The first bad row aborts the whole call.
func Preprocess(raw []model.RawSample) (model.Series, error) {
	series := make(model.Series, 0, len(raw))
	for i, sample := range raw {
		row := sample.Row
		if row == 0 {
			row = i + 1
		}

		t, err := ParseTimestamp(sample.Timestamp)
		if err != nil {
			return nil, common.NewRecordError(row, "Timestamp", sample.Timestamp, common.ErrorParse)
		}
		v, err := ParseValue(sample.Value)
		if err != nil {
			return nil, common.NewRecordError(row, "Values", sample.Value, common.ErrorMalformedData)
		}
		series = append(series, model.TimeValue{Time: t, Value: v})
	}

	return SortSeries(series), nil
}

// SortSeries returns a stable sorted copy, equal timestamps keep their input order.
func SortSeries(series model.Series) model.Series {
	res := make(model.Series, len(series))
	copy(res, series)
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Before(res[j])
	})
	return res
}

func isSorted(series model.Series) bool {
	return sort.SliceIsSorted(series, func(i, j int) bool {
		return series[i].Before(series[j])
	})
}
