package render

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/uyouii/voltage-analytics/model"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"
)

const (
	chartWidth  = 1200
	chartHeight = 450
)

// Line is a derived series drawn over the raw values, aligned with them by index.
type Line struct {
	Name   string
	Values []float64
	Color  drawing.Color
}

func placeholder(msg string) template.HTML {
	return template.HTML(fmt.Sprintf(`<p class="placeholder">%s</p>`, template.HTMLEscapeString(msg)))
}

// LineChartSVG draws the raw series with its overlays as inline SVG markup.
// Series with fewer than two points get a placeholder instead.
func LineChartSVG(title, rawName string, series model.Series, overlays ...Line) (template.HTML, error) {
	if len(series) < 2 {
		return placeholder("Not enough readings to draw " + title + "."), nil
	}

	times := series.Times()
	values := series.Values()

	chartSeries := []chart.Series{
		chart.TimeSeries{
			Name:    rawName,
			XValues: times,
			YValues: values,
			Style: chart.Style{
				StrokeColor: chart.ColorBlue.WithAlpha(128),
				StrokeWidth: 1,
			},
		},
	}
	low, high := floats.Min(values), floats.Max(values)
	for _, overlay := range overlays {
		if len(overlay.Values) != len(values) {
			return "", fmt.Errorf("overlay %s has %d values, series has %d", overlay.Name, len(overlay.Values), len(values))
		}
		low = min(low, floats.Min(overlay.Values))
		high = max(high, floats.Max(overlay.Values))
		chartSeries = append(chartSeries, chart.TimeSeries{
			Name:    overlay.Name,
			XValues: times,
			YValues: overlay.Values,
			Style: chart.Style{
				StrokeColor: overlay.Color,
				StrokeWidth: 2,
			},
		})
	}

	yAxis := chart.YAxis{Name: "Values"}
	// a flat line has no range to scale against
	if low == high {
		yAxis.Range = &chart.ContinuousRange{Min: low - 1, Max: high + 1}
	}

	graph := chart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Timestamp",
			ValueFormatter: timeFormatter(times),
		},
		YAxis:  yAxis,
		Series: chartSeries,
	}
	graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return "", fmt.Errorf("render %s: %w", title, err)
	}
	return template.HTML(buf.String()), nil
}

func timeFormatter(times []time.Time) chart.ValueFormatter {
	layout := "02-01 15:04"
	if times[len(times)-1].Sub(times[0]) > 30*24*time.Hour {
		layout = "02-01-2006"
	}
	return chart.TimeValueFormatterWithFormat(layout)
}

// MovingAverageChart is the raw series with the two fixed window averages.
func MovingAverageChart(res *model.AnalysisResult) (template.HTML, error) {
	return LineChartSVG("Values with 1000 and 5000 Value Moving Averages", "Original Values", res.Series,
		Line{Name: "1000 Value MA", Values: res.MA1000, Color: chart.ColorRed},
		Line{Name: "5000 Value MA", Values: res.MA5000, Color: chart.ColorGreen},
	)
}

// CalendarChart is the raw series with the five day average.
func CalendarChart(res *model.AnalysisResult) (template.HTML, error) {
	return LineChartSVG("Voltage vs. Timestamp with 5-Day Moving Average", "Voltage", res.Series,
		Line{Name: "5-Day Moving Average", Values: res.MA5Day, Color: chart.ColorOrange},
	)
}
