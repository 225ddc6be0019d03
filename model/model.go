package model

import (
	"fmt"
	"time"
)

type TimeValue struct {
	Time  time.Time `json:"timestamp"`
	Value float64   `json:"value"`
}

func (v *TimeValue) Before(timeValue TimeValue) bool {
	return v.Time.Before(timeValue.Time)
}

// RawSample is one unparsed input row, Row is 1-based over data rows.
type RawSample struct {
	Timestamp string
	Value     string
	Row       int
}

// Series is sorted ascending by time and never modified after preprocessing.
type Series []TimeValue

func (s Series) DebugString() string {
	if len(s) == 0 {
		return "valueCount: 0"
	}
	return fmt.Sprintf("valueCount: %v, first: %v, last: %v",
		len(s), s[0].Time.Format(time.RFC3339), s[len(s)-1].Time.Format(time.RFC3339))
}

func (s Series) IsEmpty() bool {
	return len(s) == 0
}

func (s Series) Values() []float64 {
	res := make([]float64, len(s))
	for i, v := range s {
		res[i] = v.Value
	}
	return res
}

func (s Series) Times() []time.Time {
	res := make([]time.Time, len(s))
	for i, v := range s {
		res[i] = v.Time
	}
	return res
}
