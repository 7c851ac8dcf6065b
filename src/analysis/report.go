package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/parbench/ParallelSpeedupCharts/src/bench"
)

// Report is the machine-readable companion of the rendered charts: everything
// the charts show plus per-file sample statistics and mode comparisons.
type Report struct {
	GeneratedUTC string        `json:"generated_utc"`
	ResultsDir   string        `json:"results_dir"`
	ThreadCounts []int         `json:"thread_counts"`
	Modes        []ModeSummary `json:"modes"`
	Comparisons  []ModeDelta   `json:"comparisons,omitempty"`
}

// BuildReport assembles a report from computed summaries. Mode comparisons are
// emitted for each adjacent pair of modes in configuration order.
func BuildReport(cfg bench.RunConfig, sums []ModeSummary) Report {
	r := Report{
		GeneratedUTC: time.Now().UTC().Format(time.RFC3339),
		ResultsDir:   cfg.ResultsDir,
		ThreadCounts: cfg.ThreadCounts,
		Modes:        sums,
	}
	for i := 1; i < len(sums); i++ {
		r.Comparisons = append(r.Comparisons, CompareModes(sums[i-1], sums[i])...)
	}
	return r
}

// WriteReport marshals the report as indented JSON to path.
func WriteReport(path string, r Report) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	bench.Infof("wrote report %s", path)
	return nil
}
