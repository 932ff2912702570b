// Package main provides a performance benchmarking tool for the spendwrap CLI.
// It generates synthetic order-history exports of increasing size, runs the
// summary command on each several times with and without the summary cache,
// and writes the timings to a CSV file.
//
// Prerequisites:
// - spendwrap binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset     string
	Lines       int
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	Workers     int
	NoCacheRuns int
	CacheRuns   int
	Sizes       []int
}

var benchTitles = []string{
	"Organic Whole Milk", "USB-C Charging Cable", "Paperback Novel", "Dog Food 20lb",
	"Printer Paper", "Shampoo", "Baby Wipes", "Cotton T-Shirt", "Storage Bins", "Mystery Box",
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     os.Args[1],
		Timeout:     5 * time.Minute,
		Workers:     8,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Sizes:       []int{1_000, 10_000, 100_000, 1_000_000},
	}

	if _, err := exec.LookPath("spendwrap"); err != nil {
		fmt.Println("Prerequisites check failed: spendwrap binary not found in PATH")
		os.Exit(1)
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		fmt.Printf("Cannot create work dir: %v\n", err)
		os.Exit(1)
	}

	cacheDB := filepath.Join(config.WorkDir, "bench-cache.db")
	_ = os.Remove(cacheDB)

	var results []BenchmarkResult
	for _, size := range config.Sizes {
		path := filepath.Join(config.WorkDir, fmt.Sprintf("orders_%d.csv", size))
		if err := generateOrders(path, size); err != nil {
			fmt.Printf("Failed to generate %s: %v\n", path, err)
			os.Exit(1)
		}
		results = append(results, runBenchmarkSuite(config, path, size, cacheDB))
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Benchmark complete")
	for _, r := range results {
		fmt.Printf("  %-20s: No-cache: %s, Cold: %s, Warm: %s\n", r.Dataset, r.NoCacheTime, r.ColdTime, r.WarmTime)
	}
}

// generateOrders writes a synthetic export with lines rows spread over 2025.
func generateOrders(path string, lines int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"Order ID", "Order Date", "Title", "Total Owed", "Quantity"}); err != nil {
		return err
	}
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range lines {
		row := []string{
			"ORD-" + strconv.Itoa(i/3),
			start.AddDate(0, 0, i%365).Format("2006-01-02"),
			benchTitles[i%len(benchTitles)],
			fmt.Sprintf("$%d.%02d", 1+i%200, i%100),
			"1",
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for one dataset.
func runBenchmarkSuite(config BenchmarkConfig, path string, lines int, cacheDB string) BenchmarkResult {
	name := filepath.Base(path)
	fmt.Printf("Benchmarking %s\n", name)

	average := func(times []float64) string {
		if len(times) == 0 {
			return "TIMEOUT"
		}
		var sum float64
		for _, t := range times {
			sum += t
		}
		return fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	_, noCache := runBenchmark(config, path, []string{"--cache-backend", "none"}, config.NoCacheRuns)
	cold, warm := runBenchmark(config, path, []string{"--cache-backend", "sqlite", "--cache-db-connect", cacheDB}, config.CacheRuns)

	coldStr := "TIMEOUT"
	if cold > 0 {
		coldStr = fmt.Sprintf("%.3fs", cold)
	}

	result := BenchmarkResult{
		Dataset:     name,
		Lines:       lines,
		NoCacheTime: average(noCache),
		ColdTime:    coldStr,
		WarmTime:    average(warm),
	}
	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", result.NoCacheTime, result.ColdTime, result.WarmTime)
	return result
}

// runBenchmark runs the summary numRuns times. The first successful run is the cold time.
func runBenchmark(config BenchmarkConfig, path string, extraArgs []string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := append([]string{"summary", path, "--output", "json", "--workers", strconv.Itoa(config.Workers)}, extraArgs...)

	var times []float64
	for range numRuns {
		start := time.Now()
		cmd := exec.Command("spendwrap", args...)

		done := make(chan error, 1)
		go func() { done <- cmd.Run() }()

		select {
		case err := <-done:
			if err == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	filename := fmt.Sprintf("/tmp/spendwrap_benchmark_%s.csv", time.Now().Format("20060102_150405"))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"dataset", "lines", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write([]string{r.Dataset, strconv.Itoa(r.Lines), r.NoCacheTime, r.ColdTime, r.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}
