// Package charts renders speedup and efficiency line charts to images.
package charts

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

// threadAxis builds the X axis for a set of thread counts: one labeled tick per
// count and a half-unit pad on both sides so edge markers are not clipped.
func threadAxis(threads []int) chart.XAxis {
	n := len(threads)
	ticks := make([]chart.Tick, 0, n+1)
	for _, tc := range threads {
		ticks = append(ticks, chart.Tick{Value: float64(tc), Label: fmt.Sprintf("%d", tc)})
	}
	minR := 0.5
	maxR := 2.0
	if n > 0 {
		minR = float64(threads[0]) - 0.5
		maxR = float64(threads[n-1]) + 0.5
	}
	if n == 1 {
		// keep a non-zero range so a single point still renders
		maxR = float64(threads[0]) + 1.5
		ticks = append(ticks, chart.Tick{Value: maxR, Label: ""})
	}
	return chart.XAxis{
		Name:           "Number of Threads",
		Ticks:          ticks,
		Range:          &chart.ContinuousRange{Min: minR, Max: maxR},
		GridMajorStyle: gridStyle(),
	}
}

func gridStyle() chart.Style {
	return chart.Style{
		StrokeColor: chart.ColorAlternateLightGray,
		StrokeWidth: 1.0,
	}
}

// niceAxisBounds expands [min,max] by a small margin and rounds to "nice"
// numbers for readability.
func niceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return min, max
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	// 5% margin on both sides
	pad := span * 0.05
	if pad <= 0 {
		pad = 1
	}
	a := min - pad
	b := max + pad
	mag := math.Pow(10, math.Floor(math.Log10(span)))
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return a, b
}

// niceTicks generates up to n desired tick marks between [min, max] using nice
// increments (1, 2, 2.5, 5, 10 scaled by powers of ten).
func niceTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	mag := math.Pow(10, math.Floor(math.Log10((max-min)/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil((max - min) / step)
		if count < 2 {
			count = 2
		}
		score := math.Abs(count - float64(n))
		if score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	ticks := []chart.Tick{}
	for v := start; v <= end+bestStep/2; v += bestStep {
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
		if len(ticks) > n+2 {
			break
		}
	}
	return ticks
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 100:
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return fmt.Sprintf("%.1f", v)
	case av >= 1:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
