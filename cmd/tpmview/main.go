// Package main provides the tpmview command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Global flags
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	// Parse global flags first
	flag.Parse()

	initConfig()

	if showVersion {
		fmt.Printf("tpmview version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	// Check for subcommand
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "summarize":
		return runSummarize(args[1:])
	case "export":
		return runExport(args[1:])
	case "serve":
		return runServe(args[1:])
	case "config":
		return runConfig(args[1:])
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `tpmview - RNA-seq count normalization and condition summaries

Usage:
  tpmview [options] <command> [arguments]

Commands:
  summarize   Normalize a count table and print per-condition summaries
  export      Export a normalized dataset to a DuckDB file
  serve       Serve a normalized dataset as a JSON API
  config      Manage tpmview configuration
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Summarize all genes across conditions
  tpmview summarize counts.tsv

  # Include GFF3 annotations and write JSON
  tpmview summarize --gff annotation.gff3 -f json counts.tsv

  # Export to DuckDB for SQL queries
  tpmview export -o expression.duckdb --gff annotation.gff3 counts.tsv

  # Serve the dataset to the chart frontend
  tpmview serve --addr :8080 --gff annotation.gff3 counts.tsv

For more information on a command, use:
  tpmview <command> --help
`)
}

// newLogger builds the CLI logger. Commands log to stderr so data
// output on stdout stays clean.
func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
