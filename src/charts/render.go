package charts

import (
	"bytes"
	"fmt"
	"image"
	png "image/png"
	"math"
	"os"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/parbench/ParallelSpeedupCharts/src/analysis"
)

// Options controls chart rendering. Zero values fall back to defaults.
type Options struct {
	Width     int
	Height    int
	ShowIdeal bool   // overlay the ideal linear-speedup reference line
	Hint      string // optional footnote stamped onto the image
}

const (
	defaultWidth  = 1000
	defaultHeight = 600
)

func (o Options) normalized() Options {
	if o.Width <= 0 {
		o.Width = defaultWidth
	}
	if o.Height <= 0 {
		o.Height = defaultHeight
	}
	return o
}

// lineStyle renders a line with point markers, matplotlib marker='o' style.
func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2.0,
		DotColor:    col,
		DotWidth:    4,
	}
}

var curvePalette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorGreen,
	chart.ColorRed,
	chart.ColorOrange,
	chart.ColorCyan,
}

// SpeedupChart renders one mode's speedup curves, one line per dataset.
func SpeedupChart(sum analysis.ModeSummary, opts Options) (image.Image, error) {
	curves := sum.Curves
	title := fmt.Sprintf("Editor Speedup Graph (%s)", strings.ToUpper(sum.Mode))
	return renderCurves(title, "Speedup", curves, opts, idealLinear)
}

// EfficiencyChart renders the same curves as parallel efficiency
// (speedup / threads); the ideal reference is the horizontal 1.0 line.
func EfficiencyChart(sum analysis.ModeSummary, opts Options) (image.Image, error) {
	curves := make([]analysis.DatasetCurve, len(sum.Curves))
	for i, c := range sum.Curves {
		curves[i] = c
		curves[i].Points = analysis.Efficiency(c.Points)
	}
	title := fmt.Sprintf("Editor Efficiency Graph (%s)", strings.ToUpper(sum.Mode))
	return renderCurves(title, "Efficiency (Speedup / Threads)", curves, opts, idealFlat)
}

// ideal reference line shapes
type idealKind int

const (
	idealLinear idealKind = iota // y = x
	idealFlat                    // y = 1
)

func renderCurves(title, yName string, curves []analysis.DatasetCurve, opts Options, ideal idealKind) (image.Image, error) {
	opts = opts.normalized()
	if len(curves) == 0 {
		return nil, fmt.Errorf("render %q: no curves", title)
	}

	var threads []int
	for _, tc := range curves[0].Points {
		threads = append(threads, tc.Threads)
	}
	if len(threads) == 0 {
		return nil, fmt.Errorf("render %q: no points", title)
	}

	series := []chart.Series{}
	maxY := -math.MaxFloat64
	for i, c := range curves {
		xs := make([]float64, len(c.Points))
		ys := make([]float64, len(c.Points))
		for j, p := range c.Points {
			xs[j] = float64(p.Threads)
			ys[j] = p.Speedup
			if p.Speedup > maxY {
				maxY = p.Speedup
			}
		}
		series = append(series, chart.ContinuousSeries{
			Name:    c.Dataset,
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(curvePalette[i%len(curvePalette)]),
		})
	}

	if opts.ShowIdeal {
		xs := []float64{float64(threads[0]), float64(threads[len(threads)-1])}
		var ys []float64
		switch ideal {
		case idealFlat:
			ys = []float64{1, 1}
			if maxY < 1 {
				maxY = 1
			}
		default:
			ys = xs
			if xs[1] > maxY {
				maxY = xs[1]
			}
		}
		series = append(series, chart.ContinuousSeries{
			Name:    "ideal",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor:     chart.ColorLightGray,
				StrokeWidth:     1.0,
				StrokeDashArray: []float64{4.0, 4.0},
			},
		})
	}

	if maxY <= 0 {
		maxY = 1
	}
	_, nMax := niceAxisBounds(0, maxY)

	ch := chart.Chart{
		Title:      title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      threadAxis(threads),
		YAxis: chart.YAxis{
			Name:           yName,
			Range:          &chart.ContinuousRange{Min: 0, Max: nMax},
			Ticks:          niceTicks(0, nMax, 6),
			GridMajorStyle: gridStyle(),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", title, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", title, err)
	}
	if opts.Hint != "" {
		img = drawHint(img, opts.Hint)
	}
	return img, nil
}

// SpeedupFileName is the output file for one mode's speedup chart.
func SpeedupFileName(mode string) string { return fmt.Sprintf("speedup-%s.png", mode) }

// EfficiencyFileName is the output file for one mode's efficiency chart.
func EfficiencyFileName(mode string) string { return fmt.Sprintf("efficiency-%s.png", mode) }

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("png encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
