package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
)

// printTimingSummary displays a human-readable summary of per-frame
// compute times to stderr. This keeps stdout clean, since raw video may
// be streaming there.
func printTimingSummary(timings []float64) {
	if len(timings) == 0 {
		fmt.Fprintln(os.Stderr, "No frames to report")
		return
	}

	n := len(timings)

	// Work on a sorted copy for min/max/median
	sorted := make([]float64, n)
	copy(sorted, timings)
	sort.Float64s(sorted)

	min := sorted[0]
	max := sorted[n-1]

	// Mean
	var sum float64
	for _, v := range timings {
		sum += v
	}
	avg := sum / float64(n)

	// Median
	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2.0
	}

	// Population standard deviation
	var variance float64
	for _, v := range timings {
		d := v - avg
		variance += d * d
	}
	variance /= float64(n)
	stddev := math.Sqrt(variance)

	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Frame compute time (ms)")
	fmt.Fprintln(os.Stderr, "=======================")

	fmt.Fprintf(os.Stderr, "  frames  : %d\n", n)
	fmt.Fprintf(os.Stderr, "  min     : %.3f\n", min)
	fmt.Fprintf(os.Stderr, "  max     : %.3f\n", max)
	fmt.Fprintf(os.Stderr, "  average : %.3f\n", avg)
	fmt.Fprintf(os.Stderr, "  median  : %.3f\n", median)
	fmt.Fprintf(os.Stderr, "  stddev  : %.3f\n", stddev)
	fmt.Fprintf(os.Stderr, "  total   : %.1f\n", sum)
}

func saveTimingsToJSON(timings []float64, path string) error {
	data, err := json.MarshalIndent(map[string][]float64{
		"frame_compute_ms": timings,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
