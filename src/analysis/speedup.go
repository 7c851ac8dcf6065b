// Package analysis turns raw benchmark runtimes into speedup curves and
// per-mode summaries ready for plotting and reporting.
package analysis

import (
	"fmt"

	"github.com/parbench/ParallelSpeedupCharts/src/bench"
)

// SpeedupPoint is one measurement on a speedup curve.
type SpeedupPoint struct {
	Threads     int                `json:"threads"`
	ParallelSec float64            `json:"parallel_sec"`
	Speedup     float64            `json:"speedup"`
	Stats       bench.RuntimeStats `json:"stats"`
}

// DatasetCurve is the speedup curve of one dataset under one execution mode.
// Points are ordered by increasing thread count.
type DatasetCurve struct {
	Dataset       string             `json:"dataset"`
	SequentialSec float64            `json:"sequential_sec"`
	Sequential    bench.RuntimeStats `json:"sequential_stats"`
	Points        []SpeedupPoint     `json:"points"`
	BestSpeedup   float64            `json:"best_speedup"`
	BestThreads   int                `json:"best_threads"`
}

// ModeSummary bundles the curves of all datasets for one execution mode;
// one chart is rendered per summary.
type ModeSummary struct {
	Mode   string         `json:"mode"`
	Curves []DatasetCurve `json:"curves"`
}

// ComputeModeSummaries loads every result file named by cfg and computes
// speedup = sequential_min / parallel_min per (mode, dataset, threads).
// The sequential baseline of a dataset is loaded once and shared across modes.
// Any unreadable or malformed file aborts the whole computation; a partial
// report would be misleading.
func ComputeModeSummaries(cfg bench.RunConfig) ([]ModeSummary, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bench.Infof("analyzing %d mode(s) x %d dataset(s) x %d thread count(s) under %s",
		len(cfg.Modes), len(cfg.Datasets), len(cfg.ThreadCounts), cfg.ResultsDir)

	type baseline struct {
		min   float64
		stats bench.RuntimeStats
	}
	baselines := make(map[string]baseline, len(cfg.Datasets))
	for _, ds := range cfg.Datasets {
		samples, err := bench.ReadRuntimes(cfg.SequentialFile(ds))
		if err != nil {
			return nil, fmt.Errorf("sequential baseline for %s: %w", ds, err)
		}
		st := bench.StatsFor(samples)
		baselines[ds] = baseline{min: st.MinSec, stats: st}
		bench.Debugf("baseline %s: min=%.4fs over %d samples", ds, st.MinSec, st.Samples)
	}

	sums := make([]ModeSummary, 0, len(cfg.Modes))
	for _, mode := range cfg.Modes {
		ms := ModeSummary{Mode: mode}
		for _, ds := range cfg.Datasets {
			base := baselines[ds]
			curve := DatasetCurve{Dataset: ds, SequentialSec: base.min, Sequential: base.stats}
			for _, threads := range cfg.ThreadCounts {
				path := cfg.ParallelFile(ds, mode, threads)
				samples, err := bench.ReadRuntimes(path)
				if err != nil {
					return nil, fmt.Errorf("parallel result %s/%s@%d: %w", mode, ds, threads, err)
				}
				st := bench.StatsFor(samples)
				pt := SpeedupPoint{
					Threads:     threads,
					ParallelSec: st.MinSec,
					Speedup:     base.min / st.MinSec,
					Stats:       st,
				}
				curve.Points = append(curve.Points, pt)
				if pt.Speedup > curve.BestSpeedup {
					curve.BestSpeedup = pt.Speedup
					curve.BestThreads = threads
				}
			}
			ms.Curves = append(ms.Curves, curve)
		}
		sums = append(sums, ms)
	}
	return sums, nil
}

// Efficiency converts a speedup curve into parallel efficiency per point,
// efficiency = speedup / threads (1.0 is perfect linear scaling).
func Efficiency(points []SpeedupPoint) []SpeedupPoint {
	out := make([]SpeedupPoint, len(points))
	for i, p := range points {
		out[i] = p
		out[i].Speedup = p.Speedup / float64(p.Threads)
	}
	return out
}

// ModeDelta compares the best speedups of one dataset under two modes.
// DeltaPct > 0 means mode B scales better than mode A for that dataset.
type ModeDelta struct {
	Dataset  string  `json:"dataset"`
	ModeA    string  `json:"mode_a"`
	ModeB    string  `json:"mode_b"`
	BestA    float64 `json:"best_a"`
	BestB    float64 `json:"best_b"`
	DeltaPct float64 `json:"delta_pct"`
}

// CompareModes returns per-dataset deltas of best speedup between two mode
// summaries. Datasets present in only one summary are skipped.
func CompareModes(a, b ModeSummary) []ModeDelta {
	byDataset := make(map[string]DatasetCurve, len(b.Curves))
	for _, c := range b.Curves {
		byDataset[c.Dataset] = c
	}
	var deltas []ModeDelta
	for _, ca := range a.Curves {
		cb, ok := byDataset[ca.Dataset]
		if !ok {
			continue
		}
		d := ModeDelta{
			Dataset: ca.Dataset,
			ModeA:   a.Mode,
			ModeB:   b.Mode,
			BestA:   ca.BestSpeedup,
			BestB:   cb.BestSpeedup,
		}
		if ca.BestSpeedup > 0 {
			d.DeltaPct = (cb.BestSpeedup - ca.BestSpeedup) / ca.BestSpeedup * 100
		}
		deltas = append(deltas, d)
	}
	return deltas
}
