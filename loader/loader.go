package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/uyouii/voltage-analytics/analyzer"
	"github.com/uyouii/voltage-analytics/common"
	"github.com/uyouii/voltage-analytics/model"
	"github.com/uyouii/voltage-analytics/utils"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	TimestampColumn = "Timestamp"
	ValueColumn     = "Values"
)

// Load reads raw samples from a .csv or .xlsx file. Rows are returned in file order.
func Load(ctx context.Context, path string) ([]model.RawSample, error) {
	logger := utils.GetLogger(ctx)
	startTime := time.Now()

	var (
		raw []model.RawSample
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		raw, err = loadCSV(ctx, path)
	case ".xlsx":
		raw, err = loadExcel(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported file type %q: %w", filepath.Ext(path), common.ErrorInvalidValue)
	}
	if err != nil {
		logger.Error("load samples failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	logger.Info("load samples success", zap.String("path", path), zap.Int("rowCnt", len(raw)),
		zap.Duration("cost", time.Since(startTime)))
	return raw, nil
}

func loadCSV(ctx context.Context, path string) ([]model.RawSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	return ReadCSV(ctx, f)
}

// ReadCSV reads a Timestamp,Values table. Column order is free and extra columns are ignored.
func ReadCSV(ctx context.Context, r io.Reader) ([]model.RawSample, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows := [][]string{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w: %v", common.ErrorMalformedData, err)
		}
		rows = append(rows, record)
	}
	return processRows(ctx, rows)
}

func loadExcel(ctx context.Context, path string) ([]model.RawSample, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheet: %w", common.ErrorEmptyInput)
	}
	// raw values keep date cells as serial numbers instead of their display format
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	convertExcelTimestamps(rows)
	return processRows(ctx, rows)
}

// convertExcelTimestamps rewrites date serials in the timestamp column to the
// text layout, string cells are left as they are.
func convertExcelTimestamps(rows [][]string) {
	if len(rows) == 0 {
		return
	}
	timeIdx := columnIndex(rows[0], TimestampColumn)
	if timeIdx < 0 {
		return
	}
	for _, row := range rows[1:] {
		if timeIdx >= len(row) {
			continue
		}
		serial, err := strconv.ParseFloat(strings.TrimSpace(row[timeIdx]), 64)
		if err != nil {
			continue
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			continue
		}
		row[timeIdx] = t.Round(time.Second).Format(analyzer.TimestampLayout)
	}
}

func columnIndex(header []string, column string) int {
	for i, name := range header {
		if strings.EqualFold(normalizeHeader(name), column) {
			return i
		}
	}
	return -1
}

func normalizeHeader(name string) string {
	return strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
}

func processRows(ctx context.Context, rows [][]string) ([]model.RawSample, error) {
	logger := utils.GetLogger(ctx)

	if len(rows) == 0 {
		return nil, fmt.Errorf("no header row: %w", common.ErrorEmptyInput)
	}

	timeIdx := columnIndex(rows[0], TimestampColumn)
	valueIdx := columnIndex(rows[0], ValueColumn)
	if timeIdx < 0 || valueIdx < 0 {
		return nil, fmt.Errorf("header %v must contain %s and %s: %w",
			rows[0], TimestampColumn, ValueColumn, common.ErrorMalformedData)
	}

	res := make([]model.RawSample, 0, len(rows)-1)
	skipped := 0
	for i, row := range rows[1:] {
		if isBlank(row) {
			skipped++
			continue
		}
		rowNum := i + 1
		if timeIdx >= len(row) || valueIdx >= len(row) {
			return nil, common.NewRecordError(rowNum, "row", strings.Join(row, ","), common.ErrorMalformedData)
		}
		res = append(res, model.RawSample{
			Timestamp: row[timeIdx],
			Value:     row[valueIdx],
			Row:       rowNum,
		})
	}

	if skipped > 0 {
		logger.Debug("skip blank rows", zap.Int("skipped", skipped))
	}
	return res, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
