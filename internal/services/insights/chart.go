package insights

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/foliotrack/foliotrack/internal/models"
)

// RenderSimulationChart renders a PNG line chart of the simulated value path.
// Two series: the projected value (blue solid) and the starting value
// baseline (gray dashed). Returns raw PNG bytes.
func RenderSimulationChart(result *models.SimulationResult) ([]byte, error) {
	if len(result.DailyReturns) < 2 {
		return nil, fmt.Errorf("need at least 2 simulated days, got %d", len(result.DailyReturns))
	}

	current, _ := result.CurrentValue.Float64()
	days := len(result.DailyReturns)

	xValues := make([]float64, days+1)
	valueY := make([]float64, days+1)
	baselineY := make([]float64, days+1)

	xValues[0] = 0
	valueY[0] = current
	baselineY[0] = current

	cumulative := 0.0
	for i, daily := range result.DailyReturns {
		d, _ := daily.Float64()
		cumulative += d
		xValues[i+1] = float64(i + 1)
		valueY[i+1] = current * (1 + cumulative)
		baselineY[i+1] = current
	}

	valueSeries := chart.ContinuousSeries{
		Name: "Projected Value",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: valueY,
	}

	baselineSeries := chart.ContinuousSeries{
		Name: "Starting Value",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xValues,
		YValues: baselineY,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Portfolio Simulation (%d days)", result.HorizonDays),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("day %.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			valueSeries,
			baselineSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
