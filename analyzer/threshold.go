package analyzer

import "github.com/uyouii/voltage-analytics/model"

// BelowThreshold keeps every sample under limit in series order.
func BelowThreshold(series model.Series, limit float64) []model.TimeValue {
	res := []model.TimeValue{}
	for _, tv := range series {
		if tv.Value < limit {
			res = append(res, tv)
		}
	}
	return res
}
