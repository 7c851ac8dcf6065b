package bench

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// ReadRuntimes parses one result file: a newline-delimited list of runtimes in
// seconds, one sample per line. Any line that does not parse as a float (after
// trimming whitespace) is a fatal error carrying the file and line number; a
// file without samples is an error too, since the report would divide by it.
func ReadRuntimes(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read runtimes: %w", err)
	}
	defer f.Close()
	var samples []float64
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimSpace(scanner.Text())
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad runtime sample %q: %w", path, lineNo, raw, err)
		}
		samples = append(samples, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read runtimes %s: %w", path, err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("read runtimes %s: no samples", path)
	}
	return samples, nil
}

// MinRuntime returns the fastest observed run in a result file. Repeated runs
// only get slower through interference, so min is the canonical per-file value.
func MinRuntime(path string) (float64, error) {
	samples, err := ReadRuntimes(path)
	if err != nil {
		return 0, err
	}
	return minOf(samples), nil
}

func minOf(samples []float64) float64 {
	m := samples[0]
	for _, v := range samples[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// RuntimeStats aggregates the samples of one result file for the JSON report.
type RuntimeStats struct {
	MinSec    float64 `json:"min_sec"`
	MeanSec   float64 `json:"mean_sec"`
	MedianSec float64 `json:"median_sec"`
	StddevSec float64 `json:"stddev_sec,omitempty"`
	Samples   int     `json:"samples"`
}

// StatsFor computes summary statistics over one file's samples.
// Stddev is left zero for a single sample.
func StatsFor(samples []float64) RuntimeStats {
	if len(samples) == 0 {
		return RuntimeStats{}
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	rs := RuntimeStats{
		MinSec:    sorted[0],
		MeanSec:   stat.Mean(sorted, nil),
		MedianSec: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Samples:   len(samples),
	}
	if len(samples) > 1 {
		rs.StddevSec = stat.StdDev(sorted, nil)
	}
	return rs
}
