package render

import (
	"strconv"

	"github.com/uyouii/voltage-analytics/analyzer"
	"github.com/uyouii/voltage-analytics/model"
	"github.com/uyouii/voltage-analytics/utils"
)

type ExtremaRow struct {
	Timestamp string `json:"timestamp"`
	Value     string `json:"value"`
	Type      string `json:"type"`
}

type ThresholdRow struct {
	Timestamp string `json:"timestamp"`
	Value     string `json:"value"`
}

type AccelerationRow struct {
	Timestamp string `json:"timestamp"`
}

func formatValue(v float64) string {
	return strconv.FormatFloat(utils.FormatFloat(v, 3), 'f', -1, 64)
}

func ExtremaTable(records []model.ExtremaRecord) []ExtremaRow {
	res := make([]ExtremaRow, 0, len(records))
	for _, r := range records {
		res = append(res, ExtremaRow{
			Timestamp: r.Time.Format(analyzer.TimestampLayout),
			Value:     formatValue(r.Value),
			Type:      r.Kind.String(),
		})
	}
	return res
}

func ThresholdTable(records []model.TimeValue) []ThresholdRow {
	res := make([]ThresholdRow, 0, len(records))
	for _, r := range records {
		res = append(res, ThresholdRow{
			Timestamp: r.Time.Format(analyzer.TimestampLayout),
			Value:     formatValue(r.Value),
		})
	}
	return res
}

func AccelerationTable(records []model.AccelerationRecord) []AccelerationRow {
	res := make([]AccelerationRow, 0, len(records))
	for _, r := range records {
		res = append(res, AccelerationRow{Timestamp: r.Time.Format(analyzer.TimestampLayout)})
	}
	return res
}
