// Package renderer turns a burndown series into a chart image artifact. It
// is a display collaborator: the core computes the curves, this package only
// draws them.
package renderer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/felixgeelhaar/burndown/pkg/domain/burndown"
)

// Options controls the chart's display parameters.
type Options struct {
	Title       string
	Width       int
	Height      int
	ShowMarkers bool
}

// DefaultOptions mirrors the classic wide-format burndown layout.
func DefaultOptions(title string) Options {
	return Options{
		Title:       title,
		Width:       1120,
		Height:      640,
		ShowMarkers: true,
	}
}

const chartMargin = 70

var chartTemplate = template.Must(template.New("chart").Parse(`<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}">
  <rect width="{{.Width}}" height="{{.Height}}" fill="white"/>
  <text x="{{.TitleX}}" y="30" text-anchor="middle" font-family="sans-serif" font-size="20">{{.Title}}</text>
  <g stroke="#cccccc" stroke-dasharray="4 4">
{{- range .GridLines}}
    <line x1="{{.X1}}" y1="{{.Y1}}" x2="{{.X2}}" y2="{{.Y2}}"/>
{{- end}}
  </g>
  <line x1="{{.Margin}}" y1="{{.PlotBottom}}" x2="{{.PlotRight}}" y2="{{.PlotBottom}}" stroke="black"/>
  <line x1="{{.Margin}}" y1="{{.PlotTop}}" x2="{{.Margin}}" y2="{{.PlotBottom}}" stroke="black"/>
  <polyline points="{{.IdealPoints}}" fill="none" stroke="blue" stroke-dasharray="8 6" stroke-width="2"/>
  <polyline points="{{.EstimatedPoints}}" fill="none" stroke="green" stroke-dasharray="2 4" stroke-width="2"/>
  <polyline points="{{.ActualPoints}}" fill="none" stroke="red" stroke-width="2"/>
{{- range .Markers}}
  <g stroke="purple" stroke-width="2">
    <line x1="{{.X1}}" y1="{{.Y1}}" x2="{{.X2}}" y2="{{.Y2}}"/>
    <line x1="{{.X1}}" y1="{{.Y2}}" x2="{{.X2}}" y2="{{.Y1}}"/>
  </g>
{{- end}}
{{- range .XLabels}}
  <text x="{{.X}}" y="{{.Y}}" text-anchor="middle" font-family="sans-serif" font-size="11">{{.Text}}</text>
{{- end}}
{{- range .YLabels}}
  <text x="{{.X}}" y="{{.Y}}" text-anchor="end" font-family="sans-serif" font-size="11">{{.Text}}</text>
{{- end}}
  <g font-family="sans-serif" font-size="13">
    <line x1="{{.LegendX}}" y1="52" x2="{{.LegendLineEnd}}" y2="52" stroke="blue" stroke-dasharray="8 6" stroke-width="2"/>
    <text x="{{.LegendTextX}}" y="56">Ideal</text>
    <line x1="{{.LegendX}}" y1="72" x2="{{.LegendLineEnd}}" y2="72" stroke="red" stroke-width="2"/>
    <text x="{{.LegendTextX}}" y="76">Actual</text>
    <line x1="{{.LegendX}}" y1="92" x2="{{.LegendLineEnd}}" y2="92" stroke="green" stroke-dasharray="2 4" stroke-width="2"/>
    <text x="{{.LegendTextX}}" y="96">Estimated</text>
  </g>
</svg>
`))

type chartData struct {
	Title           string
	Width, Height   int
	Margin          int
	TitleX          int
	PlotTop         int
	PlotBottom      int
	PlotRight       int
	IdealPoints     string
	ActualPoints    string
	EstimatedPoints string
	GridLines       []lineCoords
	Markers         []lineCoords
	XLabels         []label
	YLabels         []label
	LegendX         int
	LegendLineEnd   int
	LegendTextX     int
}

type lineCoords struct {
	X1, Y1, X2, Y2 float64
}

type label struct {
	X, Y float64
	Text string
}

// ChartRenderer draws SVG burndown charts.
type ChartRenderer struct {
	opts Options
}

func NewChartRenderer(opts Options) *ChartRenderer {
	if opts.Width <= 0 {
		opts.Width = 1120
	}
	if opts.Height <= 0 {
		opts.Height = 640
	}
	return &ChartRenderer{opts: opts}
}

// Render draws the three curves plus optional progress-update markers and
// returns the SVG bytes.
func (r *ChartRenderer) Render(points []burndown.Point, entries []burndown.ProgressEntry) ([]byte, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("cannot render an empty series")
	}

	maxY := 0.0
	for _, p := range points {
		if p.Ideal > maxY {
			maxY = p.Ideal
		}
		if p.Actual > maxY {
			maxY = p.Actual
		}
	}
	if maxY == 0 {
		maxY = 1
	}

	plotW := float64(r.opts.Width - 2*chartMargin)
	plotH := float64(r.opts.Height - 2*chartMargin)

	xFor := func(i int) float64 {
		if len(points) == 1 {
			return chartMargin + plotW/2
		}
		return chartMargin + plotW*float64(i)/float64(len(points)-1)
	}
	yFor := func(v float64) float64 {
		return chartMargin + plotH*(1-v/maxY)
	}

	polyline := func(value func(burndown.Point) float64) string {
		var b strings.Builder
		for i, p := range points {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%.1f,%.1f", xFor(i), yFor(value(p)))
		}
		return b.String()
	}

	data := chartData{
		Title:           r.opts.Title,
		Width:           r.opts.Width,
		Height:          r.opts.Height,
		Margin:          chartMargin,
		TitleX:          r.opts.Width / 2,
		PlotTop:         chartMargin,
		PlotBottom:      r.opts.Height - chartMargin,
		PlotRight:       r.opts.Width - chartMargin,
		IdealPoints:     polyline(func(p burndown.Point) float64 { return p.Ideal }),
		ActualPoints:    polyline(func(p burndown.Point) float64 { return p.Actual }),
		EstimatedPoints: polyline(func(p burndown.Point) float64 { return p.Estimated }),
		LegendX:         r.opts.Width - chartMargin - 140,
		LegendLineEnd:   r.opts.Width - chartMargin - 110,
		LegendTextX:     r.opts.Width - chartMargin - 100,
	}

	// Horizontal grid plus y-axis labels at quarter intervals.
	for i := 0; i <= 4; i++ {
		v := maxY * float64(i) / 4
		y := yFor(v)
		data.GridLines = append(data.GridLines, lineCoords{
			X1: chartMargin, Y1: y, X2: float64(r.opts.Width - chartMargin), Y2: y,
		})
		data.YLabels = append(data.YLabels, label{
			X: chartMargin - 8, Y: y + 4, Text: fmt.Sprintf("%.0f", v),
		})
	}

	// Date labels: first, last, and up to four evenly spaced in between.
	step := 1
	if len(points) > 6 {
		step = (len(points) - 1) / 5
	}
	for i := 0; i < len(points); i += step {
		data.XLabels = append(data.XLabels, label{
			X: xFor(i), Y: float64(r.opts.Height - chartMargin + 20),
			Text: points[i].Date.Format("01-02"),
		})
	}

	if r.opts.ShowMarkers {
		// An X marker per ledger entry, at the remaining value it recorded.
		const arm = 5.0
		total := points[0].Ideal
		for _, e := range entries {
			for i, p := range points {
				if p.Date.Equal(e.Date) {
					x := xFor(i)
					y := yFor(total - e.CompletedPoints)
					data.Markers = append(data.Markers, lineCoords{
						X1: x - arm, Y1: y - arm,
						X2: x + arm, Y2: y + arm,
					})
					break
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := chartTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}
