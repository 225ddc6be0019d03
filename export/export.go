package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/uyouii/voltage-analytics/analyzer"
	"github.com/uyouii/voltage-analytics/model"
	"github.com/uyouii/voltage-analytics/utils"
	"go.uber.org/zap"
)

const (
	ExtremaFile        = "extrema.csv"
	BelowThresholdFile = "below_20.csv"
	AccelerationFile   = "accel_down.csv"
)

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func WriteExtrema(w io.Writer, records []model.ExtremaRecord) error {
	rows := [][]string{{"Timestamp", "Values", "Type"}}
	for _, r := range records {
		rows = append(rows, []string{r.Time.Format(analyzer.TimestampLayout), formatValue(r.Value), r.Kind.String()})
	}
	return writeRows(w, rows)
}

func WriteBelowThreshold(w io.Writer, records []model.TimeValue) error {
	rows := [][]string{{"Timestamp", "Values"}}
	for _, r := range records {
		rows = append(rows, []string{r.Time.Format(analyzer.TimestampLayout), formatValue(r.Value)})
	}
	return writeRows(w, rows)
}

func WriteAcceleration(w io.Writer, records []model.AccelerationRecord) error {
	rows := [][]string{{"Timestamp"}}
	for _, r := range records {
		rows = append(rows, []string{r.Time.Format(analyzer.TimestampLayout)})
	}
	return writeRows(w, rows)
}

func writeRows(w io.Writer, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteTables writes the three result tables into dir, creating it when missing.
func WriteTables(ctx context.Context, dir string, res *model.AnalysisResult) error {
	logger := utils.GetLogger(ctx)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{ExtremaFile, func(w io.Writer) error { return WriteExtrema(w, res.Extrema) }},
		{BelowThresholdFile, func(w io.Writer) error { return WriteBelowThreshold(w, res.BelowThreshold) }},
		{AccelerationFile, func(w io.Writer) error { return WriteAcceleration(w, res.Acceleration) }},
	}
	for _, file := range files {
		path := filepath.Join(dir, file.name)
		if err := writeFile(path, file.write); err != nil {
			logger.Error("write table failed", zap.String("path", path), zap.Error(err))
			return err
		}
	}

	logger.Info("export tables success", zap.String("dir", dir), zap.Int("extremaCnt", len(res.Extrema)),
		zap.Int("belowThresholdCnt", len(res.BelowThreshold)), zap.Int("accelerationCnt", len(res.Acceleration)))
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
