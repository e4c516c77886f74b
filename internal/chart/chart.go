// Package chart renders answer distributions as PNG bar charts
package chart

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KirkDiggler/closest/internal/models"
)

const (
	barWidth   = 8
	barSpacing = 2
	height     = 400

	// Labels are only drawn every labelStep values to keep the axis readable
	labelStep = 10
)

// Palette holds the colours used for a chart
type Palette struct {
	Background drawing.Color
	Bar        drawing.Color
	Winner     drawing.Color
	Text       drawing.Color
}

// DefaultPalette is a dark theme that reads well in Discord embeds
var DefaultPalette = Palette{
	Background: drawing.ColorFromHex("2b2d31"),
	Bar:        drawing.ColorFromHex("5865f2"),
	Winner:     drawing.ColorFromHex("f0b232"),
	Text:       drawing.ColorFromHex("dbdee1"),
}

// Options controls what is drawn
type Options struct {
	// Title is drawn above the bars
	Title string

	// Highlight is the value whose bar uses the winner colour, if any
	Highlight *int

	Palette Palette
}

// RenderDistribution draws one bar per value from 0 to 100. An empty
// distribution renders a placeholder instead of an empty axis.
func RenderDistribution(dist *models.Distribution, opts Options) ([]byte, error) {
	if dist == nil {
		return nil, fmt.Errorf("distribution cannot be nil")
	}

	palette := opts.Palette
	if palette == (Palette{}) {
		palette = DefaultPalette
	}

	if dist.Total() == 0 {
		return renderNoDataPlaceholder(palette, "No answers yet")
	}

	bars := make([]chart.Value, len(dist.Counts))
	for i, count := range dist.Counts {
		value := i + models.MinAnswerValue

		label := ""
		if value%labelStep == 0 {
			label = strconv.Itoa(value)
		}

		fill := palette.Bar
		if opts.Highlight != nil && *opts.Highlight == value {
			fill = palette.Winner
		}

		bars[i] = chart.Value{
			Value: float64(count),
			Label: label,
			Style: chart.Style{
				FillColor:   fill,
				StrokeColor: fill,
				StrokeWidth: 0,
			},
		}
	}

	graph := chart.BarChart{
		Title:  opts.Title,
		Width:  len(bars)*(barWidth+barSpacing) + 160,
		Height: height,
		TitleStyle: chart.Style{
			FontColor: palette.Text,
		},
		Background: chart.Style{
			FillColor: palette.Background,
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.Style{
			FontColor:   palette.Text,
			StrokeColor: palette.Text,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontColor:   palette.Text,
				StrokeColor: palette.Text,
			},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return strconv.Itoa(int(f))
				}
				return ""
			},
		},
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Bars:       bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render distribution: %w", err)
	}

	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette Palette, msg string) ([]byte, error) {
	const (
		width  = 400
		height = 200
	)

	// go-chart will not render without a visible series, so the placeholder
	// carries one drawn in the background colour.
	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{Style: chart.Style{Hidden: true}},
		YAxis: chart.YAxis{Style: chart.Style{Hidden: true}},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
				Style: chart.Style{
					StrokeColor: palette.Background,
					StrokeWidth: 1,
				},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(palette.Text)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render placeholder: %w", err)
	}

	return buffer.Bytes(), nil
}
