package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult represents a parsed resampler benchmark result.
type BenchmarkResult struct {
	Name        string
	Format      string
	Mode        string
	Sizes       string // "<src>-<dst>", e.g. "256x256-640x480"
	Iterations  int
	NsPerOp     float64
	MBPerSec    float64
	BytesPerOp  int64
	AllocsPerOp int64
}

var (
	inputFile = flag.String(
		"input",
		"",
		"Input file with benchmark output (stdin if not specified)",
	)
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

func main() {
	flag.Parse()

	var scanner *bufio.Scanner
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		scanner = bufio.NewScanner(f)
	} else {
		scanner = bufio.NewScanner(os.Stdin)
	}

	results := parseBenchmarks(scanner)
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark results\n", len(results))
	}

	report := generateMarkdownReport(results)

	if *outputFile == "" {
		fmt.Fprint(os.Stdout, report)
		return
	}
	if err := os.WriteFile(*outputFile, []byte(report), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
	}
}

// BenchmarkFit/bgra32/bicubic/256x256-640x480-8  120  9876543 ns/op  124.40 MB/s  96 B/op  3 allocs/op
var benchmarkRegex = regexp.MustCompile(
	`^(BenchmarkFit\S+)\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+MB/s)?(?:\s+(\d+)\s+B/op)?(?:\s+(\d+)\s+allocs/op)?`,
)

func parseBenchmarks(scanner *bufio.Scanner) []BenchmarkResult {
	var results []BenchmarkResult

	for scanner.Scan() {
		line := scanner.Text()

		// go test -json wraps each line in an event
		var event map[string]any
		if err := json.Unmarshal([]byte(line), &event); err == nil {
			if output, ok := event["Output"].(string); ok {
				line = output
			}
		}

		r, ok := parseLine(strings.TrimSpace(line))
		if ok {
			results = append(results, r)
		}
	}
	return results
}

func parseLine(line string) (BenchmarkResult, bool) {
	m := benchmarkRegex.FindStringSubmatch(line)
	if m == nil {
		return BenchmarkResult{}, false
	}

	// Name: BenchmarkFit/<format>/<mode>/<src>-<dst>[-<procs>]
	parts := strings.Split(m[1], "/")
	if len(parts) != 4 {
		return BenchmarkResult{}, false
	}
	sizes := parts[3]
	if i := strings.LastIndex(sizes, "-"); i > 0 && !strings.Contains(sizes[i:], "x") {
		sizes = sizes[:i]
	}

	r := BenchmarkResult{
		Name:   m[1],
		Format: parts[1],
		Mode:   parts[2],
		Sizes:  sizes,
	}
	r.Iterations, _ = strconv.Atoi(m[2])
	r.NsPerOp, _ = strconv.ParseFloat(m[3], 64)
	if m[4] != "" {
		r.MBPerSec, _ = strconv.ParseFloat(m[4], 64)
	}
	if m[5] != "" {
		r.BytesPerOp, _ = strconv.ParseInt(m[5], 10, 64)
	}
	if m[6] != "" {
		r.AllocsPerOp, _ = strconv.ParseInt(m[6], 10, 64)
	}
	return r, true
}

func generateMarkdownReport(results []BenchmarkResult) string {
	var sb strings.Builder

	sb.WriteString("# Resampler Benchmark Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format(time.RFC3339)))

	if len(results) == 0 {
		sb.WriteString("No BenchmarkFit results found.\n")
		return sb.String()
	}

	byFormat := make(map[string][]BenchmarkResult)
	for _, r := range results {
		byFormat[r.Format] = append(byFormat[r.Format], r)
	}
	formats := make([]string, 0, len(byFormat))
	for f := range byFormat {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	for _, f := range formats {
		rows := byFormat[f]
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Mode != rows[j].Mode {
				return rows[i].Mode < rows[j].Mode
			}
			return rows[i].Sizes < rows[j].Sizes
		})

		sb.WriteString(fmt.Sprintf("## %s\n\n", f))
		sb.WriteString("| Mode | Sizes | Time/op | MB/s | B/op | allocs/op |\n")
		sb.WriteString("|------|-------|---------|------|------|-----------|\n")
		for _, r := range rows {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %.1f | %d | %d |\n",
				r.Mode, r.Sizes, formatNs(r.NsPerOp), r.MBPerSec, r.BytesPerOp, r.AllocsPerOp))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatNs(ns float64) string {
	switch {
	case ns >= 1e9:
		return fmt.Sprintf("%.2fs", ns/1e9)
	case ns >= 1e6:
		return fmt.Sprintf("%.2fms", ns/1e6)
	case ns >= 1e3:
		return fmt.Sprintf("%.2fµs", ns/1e3)
	default:
		return fmt.Sprintf("%.0fns", ns)
	}
}
