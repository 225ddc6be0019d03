package analyzer

import (
	"context"

	"github.com/uyouii/voltage-analytics/model"
	"github.com/uyouii/voltage-analytics/utils"
	"go.uber.org/zap"
)

// Analyze parses and sorts raw rows, then derives every table from them.
// Zero rows give an empty result, a bad row gives an error and no result.
func Analyze(ctx context.Context, raw []model.RawSample) (*model.AnalysisResult, error) {
	logger := utils.GetLogger(ctx)

	series, err := Preprocess(raw)
	if err != nil {
		logger.Error("Preprocess failed", zap.Int("rowCnt", len(raw)), zap.Error(err))
		return nil, err
	}

	return AnalyzeSeries(ctx, series), nil
}

// AnalyzeSeries runs the pipeline over an already parsed series. An unsorted
// series is sorted into a copy first, the argument is never modified.
func AnalyzeSeries(ctx context.Context, series model.Series) *model.AnalysisResult {
	logger := utils.GetLogger(ctx)

	if series.IsEmpty() {
		logger.Debug("empty series, nothing to analyze")
		return model.NewEmptyAnalysisResult()
	}
	if !isSorted(series) {
		series = SortSeries(series)
	}

	values := series.Values()
	n := len(values)

	res := &model.AnalysisResult{
		Series:         series,
		MA1000:         RollingMean(values, utils.IntMin(FastWindowSize, n)),
		MA5000:         RollingMean(values, utils.IntMin(SlowWindowSize, n)),
		MA5Day:         CalendarRollingMean(series, CalendarWindow),
		Extrema:        DetectExtrema(series),
		BelowThreshold: BelowThreshold(series, LowVoltageLimit),
		Acceleration:   DetectAcceleration(series),
	}

	logger.Debug("analyze series done", zap.String("series", series.DebugString()),
		zap.Int("extremaCnt", len(res.Extrema)), zap.Int("belowThresholdCnt", len(res.BelowThreshold)),
		zap.Int("accelerationCnt", len(res.Acceleration)))
	return res
}
