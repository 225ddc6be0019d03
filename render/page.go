package render

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/uyouii/voltage-analytics/model"
	"github.com/uyouii/voltage-analytics/utils"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFiles embed.FS

var templates = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

type PageView struct {
	Title    string
	RunID    string
	DataPath string
	Summary  Summary

	MovingAverageChart template.HTML
	CalendarChart      template.HTML

	Extrema        []ExtremaRow
	BelowThreshold []ThresholdRow
	Acceleration   []AccelerationRow
}

type ErrorView struct {
	Title   string
	RunID   string
	Message string
}

// BuildPage turns an analysis into the dashboard view. A chart that fails to
// render is replaced by a placeholder so the tables still show.
func BuildPage(ctx context.Context, res *model.AnalysisResult, runID, dataPath string) PageView {
	logger := utils.GetLogger(ctx)

	view := PageView{
		Title:          "Voltage Data Dashboard",
		RunID:          runID,
		DataPath:       dataPath,
		Extrema:        ExtremaTable(res.Extrema),
		BelowThreshold: ThresholdTable(res.BelowThreshold),
		Acceleration:   AccelerationTable(res.Acceleration),
	}

	summary, err := Summarize(res.Series)
	if err != nil {
		logger.Error("Summarize failed", zap.String("runID", runID), zap.Error(err))
	}
	view.Summary = summary

	view.MovingAverageChart, err = MovingAverageChart(res)
	if err != nil {
		logger.Error("render moving average chart failed", zap.String("runID", runID), zap.Error(err))
		view.MovingAverageChart = placeholder("Moving average chart is unavailable.")
	}
	view.CalendarChart, err = CalendarChart(res)
	if err != nil {
		logger.Error("render calendar chart failed", zap.String("runID", runID), zap.Error(err))
		view.CalendarChart = placeholder("5-day moving average chart is unavailable.")
	}
	return view
}

func Page(w io.Writer, view PageView) error {
	return templates.ExecuteTemplate(w, "index.html", view)
}

func ErrorPage(w io.Writer, view ErrorView) error {
	if view.Title == "" {
		view.Title = "Voltage Data Dashboard"
	}
	return templates.ExecuteTemplate(w, "error.html", view)
}
