// Package charts renders report aggregates as PNG bar charts.
package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/avbelov/countbook/internal/repository"
)

// Generator renders report charts. Every method returns (nil, nil) when the
// aggregate is empty so callers can fall back to a no-data message.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func render(title string, bars []chart.Value) ([]byte, error) {
	// A flat series (one bucket, or one bucket plus an equal total bar) has a
	// zero natural y-range, which BarChart refuses. Fix the range explicitly.
	min, max := 0.0, 0.0
	for _, bar := range bars {
		if bar.Value < min {
			min = bar.Value
		}
		if bar.Value > max {
			max = bar.Value
		}
	}
	if max <= min {
		max = min + 1
	}
	graph := chart.BarChart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: chart.ColorBlack,
		},
		Width:    1200,
		Height:   600,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.Style{
			FontSize:  11,
			FontColor: chart.ColorBlack,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: min, Max: max + (max-min)*0.1},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// PerCategory renders one bar per category bucket plus a trailing total bar.
// Buckets with an empty title are rendered under uncategorizedLabel.
func (g *Generator) PerCategory(title string, totals []repository.CategoryTotal, uncategorizedLabel, totalLabel string) ([]byte, error) {
	if len(totals) == 0 {
		return nil, nil
	}
	bars := make([]chart.Value, 0, len(totals)+1)
	sum := 0.0
	for _, bucket := range totals {
		label := bucket.Title
		if label == "" {
			label = uncategorizedLabel
		}
		sum += bucket.Amount
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s: %.2f", label, bucket.Amount),
			Value: bucket.Amount,
			Style: chart.Style{
				StrokeColor: chart.ColorBlue,
				FillColor:   chart.ColorBlue.WithAlpha(100),
				FontSize:    11,
				FontColor:   chart.ColorBlack,
			},
		})
	}
	bars = append(bars, chart.Value{
		Label: fmt.Sprintf("%s: %.2f", totalLabel, sum),
		Value: sum,
		Style: chart.Style{
			StrokeColor: chart.ColorBlue,
			FillColor:   chart.ColorBlue,
			FontSize:    11,
			FontColor:   chart.ColorBlack,
		},
	})
	return render(title, bars)
}

// PerPeriod renders one bar per period bucket (day of month, month of year or
// year). The label function turns a period number into its axis label.
func (g *Generator) PerPeriod(title string, totals []repository.PeriodTotal, label func(period int) string) ([]byte, error) {
	if len(totals) == 0 {
		return nil, nil
	}
	bars := make([]chart.Value, 0, len(totals))
	for _, bucket := range totals {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s: %.2f", label(bucket.Period), bucket.Amount),
			Value: bucket.Amount,
			Style: chart.Style{
				StrokeColor: chart.ColorGreen,
				FillColor:   chart.ColorGreen.WithAlpha(100),
				FontSize:    11,
				FontColor:   chart.ColorBlack,
			},
		})
	}
	return render(title, bars)
}
