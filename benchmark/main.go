// Package main provides a performance benchmarking tool for the attrition CLI.
// It measures execution times of the simulation commands against each roster backend,
// running each command multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - attrition binary installed and available in PATH
//
// Usage: go run benchmark/main.go [scenario-file]
//
//	scenario-file: YAML file used by the compare benchmark (e.g. examples/scenarios.yaml)
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// BenchmarkResult holds the cold time and warm average of one command on one backend.
type BenchmarkResult struct {
	Backend  string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	ScenarioFile string
	HomeDir      string
	Timeout      time.Duration
	Runs         int
	Backends     []string
	Commands     map[string][]string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [scenario-file]\n", os.Args[0])
		os.Exit(1)
	}

	tmpDir, err := os.MkdirTemp("", "attrition-benchmark-*")
	if err != nil {
		fmt.Printf("Failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	config := BenchmarkConfig{
		ScenarioFile: os.Args[1],
		HomeDir:      tmpDir,
		Timeout:      time.Minute,
		Runs:         5,
		Backends:     []string{"none", "sqlite"},
		Commands: map[string][]string{
			"simulate": {"simulate", "--employee", "EMP001", "--salary-increase", "10"},
			"sweep":    {"sweep", "--field", "training_hours"},
			"segment":  {"segment", "--overtime", "--workers", "4"},
			"compare":  {"compare", "--scenario-file", os.Args[1]},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// The sqlite roster must exist before it can be read
	fmt.Printf("Seeding sqlite roster...\n")
	if output, err := runAttrition(config, "sqlite", "roster", "seed"); err != nil {
		fmt.Printf("Failed to seed roster: %v\nOutput: %s\n", err, string(output))
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the attrition binary and scenario file exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("attrition"); err != nil {
		return fmt.Errorf("attrition binary not found in PATH")
	}
	if _, err := os.Stat(config.ScenarioFile); os.IsNotExist(err) {
		return fmt.Errorf("scenario file not found at %s", config.ScenarioFile)
	}
	return nil
}

// runBenchmarks executes every command against every backend
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d backends, %d commands, %v timeout, %d runs\n",
		len(config.Backends), len(config.Commands), config.Timeout, config.Runs)

	for _, backend := range config.Backends {
		fmt.Printf("Benchmarking %s roster\n", backend)
		for _, command := range []string{"simulate", "sweep", "segment", "compare"} {
			results = append(results, runBenchmarkSuite(config, backend, command))
		}
	}

	return results
}

// runBenchmarkSuite times one command and summarizes the runs
func runBenchmarkSuite(config BenchmarkConfig, backend, command string) BenchmarkResult {
	fmt.Printf("  Running %s (%d runs)\n", command, config.Runs)

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		if elapsed, ok := timeRun(config, backend, config.Commands[command]); ok {
			times = append(times, elapsed)
		}
	}

	result := BenchmarkResult{Backend: backend, Command: command, ColdTime: "TIMEOUT", WarmTime: "TIMEOUT"}
	if len(times) > 0 {
		result.ColdTime = fmt.Sprintf("%.3fs", times[0])
	}
	if warm := times[min(1, len(times)):]; len(warm) > 0 {
		var sum float64
		for _, t := range warm {
			sum += t
		}
		result.WarmTime = fmt.Sprintf("%.3fs", sum/float64(len(warm)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", result.ColdTime, result.WarmTime)
	return result
}

// timeRun runs the command once and reports its duration in seconds
func timeRun(config BenchmarkConfig, backend string, args []string) (float64, bool) {
	start := time.Now()

	done := make(chan error, 1)
	go func() {
		_, err := runAttrition(config, backend, args...)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return 0, false
		}
		return time.Since(start).Seconds(), true
	case <-time.After(config.Timeout):
		return 0, false
	}
}

// runAttrition runs attrition with JSON output against the given roster backend
func runAttrition(config BenchmarkConfig, backend string, args ...string) ([]byte, error) {
	args = append(args, "--roster-backend", backend, "--output", "json")
	cmd := exec.Command("attrition", args...)
	cmd.Env = append(os.Environ(), "ATTRITION_ROSTER_DB_CONNECT=", "HOME="+config.HomeDir)
	return cmd.CombinedOutput()
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/attrition_benchmark_%s.csv", timestamp)

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

	if err := writer.Write([]string{"backend", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Backend, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results per backend
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, backend := range config.Backends {
		fmt.Printf("%s roster:\n", backend)
		for _, result := range results {
			if result.Backend == backend {
				fmt.Printf("  %-10s: Cold: %s, Warm: %s\n", result.Command, result.ColdTime, result.WarmTime)
			}
		}
	}
}
