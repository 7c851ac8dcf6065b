package main

import (
	"fmt"
	"image"
	_ "image/png" // register PNG decoder
	"os"
	"path/filepath"
	"testing"

	"github.com/parbench/ParallelSpeedupCharts/src/bench"
)

// writeHarnessResults lays out a full synthetic results directory for the
// given config, with parallel runtimes shrinking as thread counts grow.
func writeHarnessResults(t *testing.T, cfg bench.RunConfig) {
	t.Helper()
	if err := os.MkdirAll(cfg.ResultsDir, 0o755); err != nil {
		t.Fatalf("mkdir results: %v", err)
	}
	write := func(path string, samples ...float64) {
		t.Helper()
		var b []byte
		for _, s := range samples {
			b = append(b, []byte(fmt.Sprintf("%g\n", s))...)
		}
		if err := os.WriteFile(path, b, 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	for _, ds := range cfg.Datasets {
		write(cfg.SequentialFile(ds), 8.0, 8.4, 8.1)
		for _, mode := range cfg.Modes {
			for i, threads := range cfg.ThreadCounts {
				base := 8.0 / (1.0 + float64(i))
				write(cfg.ParallelFile(ds, mode, threads), base, base*1.1)
			}
		}
	}
}

func TestRun_WritesChartPerMode(t *testing.T) {
	dir := t.TempDir()
	cfg := bench.RunConfig{
		ResultsDir:   filepath.Join(dir, "results"),
		Datasets:     []string{"small", "big"},
		Modes:        []string{"bsp", "bspsteal"},
		ThreadCounts: []int{2, 4, 6},
	}
	writeHarnessResults(t, cfg)

	outDir := filepath.Join(dir, "out")
	reportPath := filepath.Join(dir, "report.json")
	opts := plotOptions{
		outDir:     outDir,
		width:      640,
		height:     400,
		efficiency: true,
		ideal:      true,
		reportJSON: reportPath,
	}
	if err := run(cfg, opts); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, mode := range cfg.Modes {
		for _, name := range []string{
			fmt.Sprintf("speedup-%s.png", mode),
			fmt.Sprintf("efficiency-%s.png", mode),
		} {
			path := filepath.Join(outDir, name)
			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("missing chart %s: %v", name, err)
			}
			img, _, err := image.Decode(f)
			f.Close()
			if err != nil {
				t.Fatalf("decode %s: %v", name, err)
			}
			if img.Bounds().Dx() != 640 {
				t.Fatalf("%s width: %d", name, img.Bounds().Dx())
			}
		}
	}
	if _, err := os.Stat(reportPath); err != nil {
		t.Fatalf("missing report: %v", err)
	}
}

func TestRun_MissingResultIsFatal(t *testing.T) {
	dir := t.TempDir()
	cfg := bench.RunConfig{
		ResultsDir:   filepath.Join(dir, "results"),
		Datasets:     []string{"small"},
		Modes:        []string{"bsp"},
		ThreadCounts: []int{2, 4},
	}
	writeHarnessResults(t, cfg)
	if err := os.Remove(cfg.ParallelFile("small", "bsp", 4)); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := run(cfg, plotOptions{outDir: dir}); err == nil {
		t.Fatalf("expected error for missing result file")
	}
}

func TestParseThreads(t *testing.T) {
	got, err := parseThreads("2, 4,6")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 3 || got[0] != 2 || got[2] != 6 {
		t.Fatalf("unexpected: %v", got)
	}
	if _, err := parseThreads("2,x"); err == nil {
		t.Fatalf("expected error for non-numeric count")
	}
	if _, err := parseThreads(""); err == nil {
		t.Fatalf("expected error for empty list")
	}
}

func TestParseList(t *testing.T) {
	got := parseList(" small , big ,")
	if len(got) != 2 || got[0] != "small" || got[1] != "big" {
		t.Fatalf("unexpected: %v", got)
	}
}
