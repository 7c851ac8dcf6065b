package analysis

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/parbench/ParallelSpeedupCharts/src/bench"
)

// writeResult writes one runtime file with the given samples.
func writeResult(t *testing.T, dir, name string, samples ...float64) {
	t.Helper()
	var b []byte
	for _, s := range samples {
		b = append(b, []byte(fmt.Sprintf("%g\n", s))...)
	}
	if err := os.WriteFile(filepath.Join(dir, name), b, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func testConfig(dir string, datasets, modes []string, threads []int) bench.RunConfig {
	return bench.RunConfig{
		ResultsDir:   dir,
		Datasets:     datasets,
		Modes:        modes,
		ThreadCounts: threads,
	}
}

func TestComputeModeSummaries_Speedups(t *testing.T) {
	dir := t.TempDir()
	// sequential min 2.0; parallel mins 2.0, 1.0, 0.5 -> speedups 1, 2, 4
	writeResult(t, dir, "small_sequential.txt", 2.4, 2.0, 2.2)
	writeResult(t, dir, "small_bsp_2.txt", 2.0, 2.1)
	writeResult(t, dir, "small_bsp_4.txt", 1.0, 1.3)
	writeResult(t, dir, "small_bsp_6.txt", 0.5, 0.6)

	cfg := testConfig(dir, []string{"small"}, []string{"bsp"}, []int{2, 4, 6})
	sums, err := ComputeModeSummaries(cfg)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(sums) != 1 || len(sums[0].Curves) != 1 {
		t.Fatalf("unexpected shape: %+v", sums)
	}
	curve := sums[0].Curves[0]
	if curve.SequentialSec != 2.0 {
		t.Fatalf("sequential min: %v", curve.SequentialSec)
	}
	want := []float64{1.0, 2.0, 4.0}
	if len(curve.Points) != len(want) {
		t.Fatalf("expected %d points got %d", len(want), len(curve.Points))
	}
	for i, p := range curve.Points {
		if math.Abs(p.Speedup-want[i]) > 1e-9 {
			t.Fatalf("point %d: speedup %v want %v", i, p.Speedup, want[i])
		}
	}
	if curve.BestSpeedup != 4.0 || curve.BestThreads != 6 {
		t.Fatalf("best: %.1f@%d", curve.BestSpeedup, curve.BestThreads)
	}
}

func TestComputeModeSummaries_OneThreadMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	// Sequential time coincides with the 1-thread parallel run, so speedup at 1 is ~1.0.
	writeResult(t, dir, "big_sequential.txt", 5.02, 4.87, 4.91)
	writeResult(t, dir, "big_bsp_1.txt", 4.87, 5.10)
	writeResult(t, dir, "big_bsp_2.txt", 2.5)

	cfg := testConfig(dir, []string{"big"}, []string{"bsp"}, []int{1, 2})
	sums, err := ComputeModeSummaries(cfg)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	p := sums[0].Curves[0].Points[0]
	if p.Threads != 1 {
		t.Fatalf("first point threads: %d", p.Threads)
	}
	if math.Abs(p.Speedup-1.0) > 1e-9 {
		t.Fatalf("speedup at 1 thread: %v", p.Speedup)
	}
}

func TestComputeModeSummaries_MissingFileFatal(t *testing.T) {
	dir := t.TempDir()
	writeResult(t, dir, "small_sequential.txt", 2.0)
	writeResult(t, dir, "small_bsp_2.txt", 1.0)
	// small_bsp_4.txt deliberately missing

	cfg := testConfig(dir, []string{"small"}, []string{"bsp"}, []int{2, 4})
	if _, err := ComputeModeSummaries(cfg); err == nil {
		t.Fatalf("expected error for missing parallel result")
	}
}

func TestComputeModeSummaries_SharedBaselineAcrossModes(t *testing.T) {
	dir := t.TempDir()
	writeResult(t, dir, "mixture_sequential.txt", 4.0, 4.4)
	writeResult(t, dir, "mixture_bsp_2.txt", 2.0)
	writeResult(t, dir, "mixture_bspsteal_2.txt", 1.0)

	cfg := testConfig(dir, []string{"mixture"}, []string{"bsp", "bspsteal"}, []int{2})
	sums, err := ComputeModeSummaries(cfg)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("expected 2 modes got %d", len(sums))
	}
	if s := sums[0].Curves[0].Points[0].Speedup; s != 2.0 {
		t.Fatalf("bsp speedup: %v", s)
	}
	if s := sums[1].Curves[0].Points[0].Speedup; s != 4.0 {
		t.Fatalf("bspsteal speedup: %v", s)
	}
}

func TestEfficiency(t *testing.T) {
	pts := []SpeedupPoint{
		{Threads: 2, Speedup: 2.0},
		{Threads: 4, Speedup: 3.0},
	}
	eff := Efficiency(pts)
	if eff[0].Speedup != 1.0 {
		t.Fatalf("efficiency at 2 threads: %v", eff[0].Speedup)
	}
	if math.Abs(eff[1].Speedup-0.75) > 1e-9 {
		t.Fatalf("efficiency at 4 threads: %v", eff[1].Speedup)
	}
	// input must not be mutated
	if pts[1].Speedup != 3.0 {
		t.Fatalf("input mutated: %v", pts[1].Speedup)
	}
}

func TestCompareModes(t *testing.T) {
	a := ModeSummary{Mode: "bsp", Curves: []DatasetCurve{
		{Dataset: "small", BestSpeedup: 4.0},
		{Dataset: "big", BestSpeedup: 5.0},
	}}
	b := ModeSummary{Mode: "bspsteal", Curves: []DatasetCurve{
		{Dataset: "small", BestSpeedup: 5.0},
		{Dataset: "big", BestSpeedup: 4.0},
	}}
	deltas := CompareModes(a, b)
	if len(deltas) != 2 {
		t.Fatalf("expected 2 deltas got %d", len(deltas))
	}
	if math.Abs(deltas[0].DeltaPct-25.0) > 1e-9 {
		t.Fatalf("small delta: %v", deltas[0].DeltaPct)
	}
	if math.Abs(deltas[1].DeltaPct+20.0) > 1e-9 {
		t.Fatalf("big delta: %v", deltas[1].DeltaPct)
	}
}
