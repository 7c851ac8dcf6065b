// Package bench describes one benchmark run of the parallel image editor and
// loads its raw runtime measurements.
//
// The benchmark harness writes one file per (dataset, mode, threads) combination
// plus a sequential baseline per dataset, each file a newline-delimited list of
// wall-clock runtimes in seconds (one sample per line, repeated runs).
package bench

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Defaults match the harness configuration used for the report.
var (
	DefaultThreadCounts = []int{2, 4, 6, 8, 12}
	DefaultDatasets     = []string{"small", "mixture", "big"}
	DefaultModes        = []string{"bsp", "bspsteal"}
)

// DefaultResultsDir is where the harness drops its runtime files.
const DefaultResultsDir = "results"

// RunConfig identifies the datasets, execution modes and thread counts of one
// benchmark run, and where its result files live. Zero fields fall back to the
// package defaults via Normalize.
type RunConfig struct {
	ResultsDir   string   `json:"results_dir,omitempty"`
	Datasets     []string `json:"datasets,omitempty"`
	Modes        []string `json:"modes,omitempty"`
	ThreadCounts []int    `json:"thread_counts,omitempty"`
}

// DefaultRunConfig returns the configuration the harness was run with.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		ResultsDir:   DefaultResultsDir,
		Datasets:     append([]string(nil), DefaultDatasets...),
		Modes:        append([]string(nil), DefaultModes...),
		ThreadCounts: append([]int(nil), DefaultThreadCounts...),
	}
}

// Normalize fills empty fields from the defaults.
func (c RunConfig) Normalize() RunConfig {
	d := DefaultRunConfig()
	if c.ResultsDir == "" {
		c.ResultsDir = d.ResultsDir
	}
	if len(c.Datasets) == 0 {
		c.Datasets = d.Datasets
	}
	if len(c.Modes) == 0 {
		c.Modes = d.Modes
	}
	if len(c.ThreadCounts) == 0 {
		c.ThreadCounts = d.ThreadCounts
	}
	return c
}

// Validate rejects configurations the plotting pipeline cannot represent.
// Thread counts must be positive and strictly increasing so speedup curves are
// plotted left to right.
func (c RunConfig) Validate() error {
	if len(c.Datasets) == 0 {
		return fmt.Errorf("run config: no datasets")
	}
	if len(c.Modes) == 0 {
		return fmt.Errorf("run config: no modes")
	}
	if len(c.ThreadCounts) == 0 {
		return fmt.Errorf("run config: no thread counts")
	}
	prev := 0
	for _, n := range c.ThreadCounts {
		if n <= prev {
			return fmt.Errorf("run config: thread counts must be positive and strictly increasing, got %v", c.ThreadCounts)
		}
		prev = n
	}
	return nil
}

// SequentialFile returns the path of the sequential baseline for a dataset,
// e.g. results/big_sequential.txt.
func (c RunConfig) SequentialFile(dataset string) string {
	return filepath.Join(c.ResultsDir, fmt.Sprintf("%s_sequential.txt", dataset))
}

// ParallelFile returns the path of a parallel measurement,
// e.g. results/big_bsp_8.txt.
func (c RunConfig) ParallelFile(dataset, mode string, threads int) string {
	return filepath.Join(c.ResultsDir, fmt.Sprintf("%s_%s_%d.txt", dataset, mode, threads))
}

// StripJSONC loads a JSONC file (full-line // comments) and returns raw JSON
// bytes suitable for unmarshalling. Inline // is left alone on purpose.
func StripJSONC(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []byte
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		out = append(out, []byte(line+"\n")...)
	}
	return out, scanner.Err()
}

// LoadRunConfig reads a JSONC run configuration, normalizes and validates it.
func LoadRunConfig(path string) (RunConfig, error) {
	b, err := StripJSONC(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("load run config %s: %w", path, err)
	}
	var cfg RunConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("parse run config %s: %w", path, err)
	}
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}
