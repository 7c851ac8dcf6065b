// speedupplot renders the speedup report of the parallel image editor benchmark.
//
// It reads minimum-runtime measurements written by the benchmark harness
// (results/{dataset}_sequential.txt and results/{dataset}_{mode}_{threads}.txt,
// one float sample per line), computes speedup = sequential_min / parallel_min
// per thread count, and writes one line chart per execution mode as
// speedup-<mode>.png. Optional extras: efficiency charts, an ideal-scaling
// reference line, and a JSON report with per-file sample statistics.
//
// Any missing or malformed result file is fatal; a partial speedup report
// would misrepresent the benchmark.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parbench/ParallelSpeedupCharts/src/analysis"
	"github.com/parbench/ParallelSpeedupCharts/src/bench"
	"github.com/parbench/ParallelSpeedupCharts/src/charts"
)

type plotOptions struct {
	outDir     string
	width      int
	height     int
	efficiency bool
	ideal      bool
	hints      bool
	reportJSON string
}

func main() {
	var (
		resultsDir = flag.String("results", bench.DefaultResultsDir, "Directory containing the harness result files")
		outDir     = flag.String("out-dir", ".", "Directory to write chart PNGs into")
		configPath = flag.String("config", "", "Optional JSONC run config (datasets/modes/thread_counts/results_dir)")
		datasets   = flag.String("datasets", "", "Comma-separated dataset list (overrides config)")
		modes      = flag.String("modes", "", "Comma-separated execution mode list (overrides config)")
		threads    = flag.String("threads", "", "Comma-separated thread counts, strictly increasing (overrides config)")
		width      = flag.Int("width", 1000, "Chart width in pixels")
		height     = flag.Int("height", 600, "Chart height in pixels")
		efficiency = flag.Bool("efficiency", false, "Also write efficiency-<mode>.png (speedup/threads)")
		ideal      = flag.Bool("ideal", false, "Overlay the ideal linear-speedup reference line")
		hints      = flag.Bool("hints", false, "Stamp a reading hint onto each chart")
		reportJSON = flag.String("report-json", "", "Optional path to write a JSON report of all computed values")
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
	// Explicit flags win over the config file.
	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "results":
			cfg.ResultsDir = *resultsDir
		case "datasets":
			cfg.Datasets = parseList(*datasets)
		case "modes":
			cfg.Modes = parseList(*modes)
		case "threads":
			tc, err := parseThreads(*threads)
			if err != nil {
				flagErr = err
				return
			}
			cfg.ThreadCounts = tc
		}
	})
	if flagErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", flagErr)
		os.Exit(1)
	}

	opts := plotOptions{
		outDir:     *outDir,
		width:      *width,
		height:     *height,
		efficiency: *efficiency,
		ideal:      *ideal,
		hints:      *hints,
		reportJSON: *reportJSON,
	}
	if err := run(cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg bench.RunConfig, opts plotOptions) error {
	sums, err := analysis.ComputeModeSummaries(cfg)
	if err != nil {
		return err
	}
	for _, ms := range sums {
		for _, c := range ms.Curves {
			fmt.Printf("[mode %s] dataset=%s seq_min=%.4fs best=%.2fx @%d threads (samples: seq=%d)\n",
				ms.Mode, c.Dataset, c.SequentialSec, c.BestSpeedup, c.BestThreads, c.Sequential.Samples)
		}
	}
	for i := 1; i < len(sums); i++ {
		for _, d := range analysis.CompareModes(sums[i-1], sums[i]) {
			fmt.Printf("[compare %s vs %s] dataset=%s best %.2fx vs %.2fx (%+.1f%%)\n",
				d.ModeA, d.ModeB, d.Dataset, d.BestA, d.BestB, d.DeltaPct)
		}
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	renderOpts := charts.Options{Width: opts.width, Height: opts.height, ShowIdeal: opts.ideal}
	if opts.hints {
		renderOpts.Hint = "Speedup = fastest sequential run / fastest parallel run. Higher is better."
	}
	for _, ms := range sums {
		img, err := charts.SpeedupChart(ms, renderOpts)
		if err != nil {
			return err
		}
		path := filepath.Join(opts.outDir, charts.SpeedupFileName(ms.Mode))
		if err := charts.WritePNG(path, img); err != nil {
			return err
		}
		bench.Infof("wrote %s", path)

		if opts.efficiency {
			effOpts := renderOpts
			if opts.hints {
				effOpts.Hint = "Efficiency = speedup / threads. 1.0 is perfect linear scaling."
			}
			img, err := charts.EfficiencyChart(ms, effOpts)
			if err != nil {
				return err
			}
			path := filepath.Join(opts.outDir, charts.EfficiencyFileName(ms.Mode))
			if err := charts.WritePNG(path, img); err != nil {
				return err
			}
			bench.Infof("wrote %s", path)
		}
	}

	if opts.reportJSON != "" {
		if err := analysis.WriteReport(opts.reportJSON, analysis.BuildReport(cfg, sums)); err != nil {
			return err
		}
	}
	return nil
}

// parseList splits a comma-separated flag value, trimming whitespace and
// dropping empty entries.
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseThreads parses a comma-separated list of thread counts.
func parseThreads(s string) ([]int, error) {
	var out []int
	for _, part := range parseList(s) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("bad thread count %q: %w", part, err)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no thread counts in %q", s)
	}
	return out, nil
}
