// speedupviewer is a small desktop viewer for the benchmark speedup charts.
//
// It computes the same per-mode speedup curves as speedupplot and shows them in
// a window, one tab per execution mode, with toggles for the ideal-scaling
// reference line and the efficiency view, and a Reload button to re-read the
// results directory after a new benchmark run.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/parbench/ParallelSpeedupCharts/src/analysis"
	"github.com/parbench/ParallelSpeedupCharts/src/bench"
	"github.com/parbench/ParallelSpeedupCharts/src/charts"
)

type viewerState struct {
	cfg        bench.RunConfig
	summaries  []analysis.ModeSummary
	showIdeal  bool
	efficiency bool

	window      fyne.Window
	statusLabel *widget.Label
	// one image canvas per mode, keyed by position in summaries
	modeCanvases []*canvas.Image
}

func main() {
	var (
		resultsDir = flag.String("results", bench.DefaultResultsDir, "Directory containing the harness result files")
		configPath = flag.String("config", "", "Optional JSONC run config")
		logLevel   = flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	)
	flag.Parse()
	bench.SetLogLevel(*logLevel)

	cfg := bench.DefaultRunConfig()
	if *configPath != "" {
		loaded, err := bench.LoadRunConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "results" {
			cfg.ResultsDir = *resultsDir
		}
	})

	a := app.NewWithID("com.parbench.speedupviewer")
	w := a.NewWindow("Speedup Viewer")
	w.Resize(fyne.NewSize(1060, 720))

	state := &viewerState{cfg: cfg, window: w}
	state.statusLabel = widget.NewLabel("")

	if err := reload(state); err != nil {
		// Start anyway; the user can fix the results dir and hit Reload.
		bench.Errorf("initial load: %v", err)
		state.statusLabel.SetText(fmt.Sprintf("load failed: %v", err))
	}

	idealChk := widget.NewCheck("Ideal line", func(v bool) {
		state.showIdeal = v
		refreshCharts(state)
	})
	effChk := widget.NewCheck("Efficiency", func(v bool) {
		state.efficiency = v
		refreshCharts(state)
	})
	reloadBtn := widget.NewButton("Reload", func() {
		if err := reload(state); err != nil {
			bench.Errorf("reload: %v", err)
			state.statusLabel.SetText(fmt.Sprintf("reload failed: %v", err))
		}
	})

	top := container.NewHBox(reloadBtn, idealChk, effChk, state.statusLabel)

	// One tab per configured mode, so the layout survives a failed initial load.
	tabs := container.NewAppTabs()
	for _, mode := range cfg.Modes {
		img := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
		img.FillMode = canvas.ImageFillContain
		img.SetMinSize(fyne.NewSize(960, 600))
		state.modeCanvases = append(state.modeCanvases, img)
		tabs.Append(container.NewTabItem(mode, img))
	}
	refreshCharts(state)

	w.SetContent(container.NewBorder(top, nil, nil, nil, tabs))
	w.ShowAndRun()
}

// reload recomputes all summaries from the results directory.
func reload(state *viewerState) error {
	sums, err := analysis.ComputeModeSummaries(state.cfg)
	if err != nil {
		return err
	}
	state.summaries = sums
	state.statusLabel.SetText(fmt.Sprintf("%d mode(s), %d dataset(s), results: %s",
		len(state.cfg.Modes), len(state.cfg.Datasets), state.cfg.ResultsDir))
	refreshCharts(state)
	return nil
}

// refreshCharts re-renders each mode tab from the current summaries and toggles.
func refreshCharts(state *viewerState) {
	opts := charts.Options{Width: 960, Height: 600, ShowIdeal: state.showIdeal}
	for i, ms := range state.summaries {
		if i >= len(state.modeCanvases) {
			break
		}
		var (
			img image.Image
			err error
		)
		if state.efficiency {
			img, err = charts.EfficiencyChart(ms, opts)
		} else {
			img, err = charts.SpeedupChart(ms, opts)
		}
		if err != nil {
			bench.Errorf("render %s: %v", ms.Mode, err)
			continue
		}
		state.modeCanvases[i].Image = img
		state.modeCanvases[i].Refresh()
	}
}
