package render

import (
	"github.com/montanaflynn/stats"
	"github.com/uyouii/voltage-analytics/analyzer"
	"github.com/uyouii/voltage-analytics/model"
	"github.com/uyouii/voltage-analytics/utils"
)

type Summary struct {
	Count  int     `json:"count"`
	First  string  `json:"first,omitempty"`
	Last   string  `json:"last,omitempty"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P5     float64 `json:"p5"`
	P95    float64 `json:"p95"`
}

// Summarize describes the whole series, an empty series gives a zero Summary.
func Summarize(series model.Series) (Summary, error) {
	if series.IsEmpty() {
		return Summary{}, nil
	}
	data := stats.Float64Data(series.Values())

	low, err := data.Min()
	if err != nil {
		return Summary{}, err
	}
	high, err := data.Max()
	if err != nil {
		return Summary{}, err
	}
	mean, err := data.Mean()
	if err != nil {
		return Summary{}, err
	}
	median, err := data.Median()
	if err != nil {
		return Summary{}, err
	}
	p5, err := stats.PercentileNearestRank(data, 5)
	if err != nil {
		return Summary{}, err
	}
	p95, err := stats.PercentileNearestRank(data, 95)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Count:  len(series),
		First:  series[0].Time.Format(analyzer.TimestampLayout),
		Last:   series[len(series)-1].Time.Format(analyzer.TimestampLayout),
		Min:    utils.FormatFloat(low, 3),
		Max:    utils.FormatFloat(high, 3),
		Mean:   utils.FormatFloat(mean, 3),
		Median: utils.FormatFloat(median, 3),
		P5:     utils.FormatFloat(p5, 3),
		P95:    utils.FormatFloat(p95, 3),
	}, nil
}
