package model

import "time"

type ExtremaKind int

const (
	PeakExtrema ExtremaKind = 1
	LowExtrema  ExtremaKind = 2
)

func (k ExtremaKind) String() string {
	switch k {
	case PeakExtrema:
		return "Peak"
	case LowExtrema:
		return "Low"
	}
	return "Unknown"
}

func (k ExtremaKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type ExtremaRecord struct {
	Time  time.Time   `json:"timestamp"`
	Value float64     `json:"value"`
	Kind  ExtremaKind `json:"type"`
}

type AccelerationRecord struct {
	Time time.Time `json:"timestamp"`
}

// Cycle is the half open index range [Start, End) between recharge points.
type Cycle struct {
	Start int
	End   int
}

func (c Cycle) Len() int {
	return c.End - c.Start
}

type AnalysisResult struct {
	Series Series

	// aligned index for index with Series
	MA1000 []float64
	MA5000 []float64
	MA5Day []float64

	Extrema        []ExtremaRecord
	BelowThreshold []TimeValue
	Acceleration   []AccelerationRecord
}

func NewEmptyAnalysisResult() *AnalysisResult {
	return &AnalysisResult{
		Series:         Series{},
		MA1000:         []float64{},
		MA5000:         []float64{},
		MA5Day:         []float64{},
		Extrema:        []ExtremaRecord{},
		BelowThreshold: []TimeValue{},
		Acceleration:   []AccelerationRecord{},
	}
}
