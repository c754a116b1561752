// Package main provides a performance benchmarking tool for the ghpulse CLI.
// It measures end-to-end load times across different range sizes and view
// commands against a local synthetic snapshot server, running each test
// multiple times, treating the first successful cached run as cold and
// averaging the rest as warm, generating CSV output for performance analysis.
//
// Prerequisites:
// - ghpulse binary installed and available in PATH
//
// Usage: go run benchmark/main.go
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	RangeDays   int
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	APIBaseURL  string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	RangeSizes  []int
	Commands    map[string][]string
}

// rangeEnd anchors every benchmark range in the past so cached entries never
// expire between runs.
var rangeEnd = time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)

func main() {
	addr, err := startSnapshotServer()
	if err != nil {
		fmt.Printf("Failed to start snapshot server: %v\n", err)
		os.Exit(1)
	}

	config := BenchmarkConfig{
		APIBaseURL:  "http://" + addr,
		Timeout:     2 * time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		RangeSizes:  []int{30, 90, 366},
		Commands: map[string][]string{
			"dashboard": {},
			"trend":     {"--metric", "stars"},
			"languages": {},
		},
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear the cache using ghpulse cache clear
	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("ghpulse", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// startSnapshotServer serves deterministic synthetic snapshots for whatever
// range the CLI requests, so load time depends only on range size.
func startSnapshotServer() (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/analytics/snapshots", func(w http.ResponseWriter, r *http.Request) {
		start, err1 := time.Parse("2006-01-02", r.URL.Query().Get("startDate"))
		end, err2 := time.Parse("2006-01-02", r.URL.Query().Get("endDate"))
		if err1 != nil || err2 != nil {
			http.Error(w, "bad range", http.StatusBadRequest)
			return
		}

		type snapshot struct {
			Date          string           `json:"date"`
			Stars         int              `json:"stars"`
			Followers     int              `json:"followers"`
			Following     int              `json:"following"`
			PublicRepos   int              `json:"publicRepos"`
			TotalCommits  int              `json:"totalCommits"`
			Contributions int              `json:"contributionCount"`
			LanguageStats map[string]int64 `json:"languageStats"`
		}

		var snapshots []snapshot
		for day, d := 0, start; !d.After(end); day, d = day+1, d.Add(24*time.Hour) {
			snapshots = append(snapshots, snapshot{
				Date:          d.Format("2006-01-02"),
				Stars:         1000 + day,
				Followers:     500 + day/2,
				Following:     300,
				PublicRepos:   40,
				TotalCommits:  9000 + day*5,
				Contributions: 20 + day%7,
				LanguageStats: map[string]int64{"Go": 80000 + int64(day)*100, "Python": 20000},
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"snapshots": snapshots})
	})

	go func() { _ = http.Serve(listener, mux) }()
	return listener.Addr().String(), nil
}

// checkPrerequisites verifies that the ghpulse binary exists.
func checkPrerequisites() error {
	if _, err := exec.LookPath("ghpulse"); err != nil {
		return fmt.Errorf("ghpulse binary not found in PATH")
	}
	return nil
}

// runBenchmarks executes all benchmark tests across configured range sizes.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d range sizes, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.RangeSizes), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, days := range config.RangeSizes {
		fmt.Printf("Benchmarking %d-day range\n", days)

		for command, extraArgs := range config.Commands {
			result := runBenchmarkSuite(config, days, command, extraArgs)
			results = append(results, result)
		}
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command.
func runBenchmarkSuite(config BenchmarkConfig, days int, command string, extraArgs []string) BenchmarkResult {
	fmt.Printf("Running %s over %d days\n", command, days)

	// Helper to run a benchmark phase
	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, days, command, extraArgs, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		RangeDays:   days,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a ghpulse command multiple times with the specified cache backend and returns cold time and warm times.
func runBenchmark(config BenchmarkConfig, days int, command string, extraArgs []string, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	start := rangeEnd.Add(-time.Duration(days-1) * 24 * time.Hour)

	args := []string{
		command,
		"--api-url", config.APIBaseURL,
		"--token", "benchmark",
		"--cache-backend", cacheBackend,
		"--history-backend", "none",
		"--start", start.Format("2006-01-02"),
		"--end", rangeEnd.Format("2006-01-02"),
	}
	args = append(args, extraArgs...)

	var times []float64
	for run := 1; run <= numRuns; run++ {
		startAt := time.Now()

		cmd := exec.Command("ghpulse", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(startAt).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion.
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	switch command {
	case "dashboard":
		return strings.Contains(outputStr, "loaded in")
	case "trend":
		return strings.Contains(outputStr, "series with")
	case "languages":
		return strings.Contains(outputStr, "languages from the latest snapshot")
	default:
		return false
	}
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/ghpulse_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"range_days", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		record := []string{
			fmt.Sprintf("%d", result.RangeDays),
			result.Command,
			result.NoCacheTime,
			result.ColdTime,
			result.WarmTime,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "dashboard", "Dashboard Summary:")
	printCommandSummary(results, "trend", "Trend View:")
	printCommandSummary(results, "languages", "Languages View:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type.
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %3d days: No-cache: %s, Cold: %s, Warm: %s\n", result.RangeDays, result.NoCacheTime, result.ColdTime, result.WarmTime)
		}
	}
}
