package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rnalab/tpmview/internal/dataset"
	"github.com/rnalab/tpmview/internal/duckdb"
)

func runExport(args []string) int {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	var (
		gffPath    string
		outputPath string
		verbose    bool
	)

	fs.StringVar(&gffPath, "gff", "", "GFF3 annotation file (optional)")
	fs.StringVar(&outputPath, "output", "", "Output DuckDB file path")
	fs.StringVar(&outputPath, "o", "", "Output DuckDB file path (shorthand)")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Export a normalized dataset to a DuckDB file.

The exported database holds three tables: genes (with annotation
fields), expression (raw and normalized value per gene and sample)
and condition_summaries (mean/SD per gene and condition).

Usage:
  tpmview export [options] <count-file>

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  tpmview export -o expression.duckdb counts.tsv
  tpmview export -o expression.duckdb --gff annotation.gff3 counts.tsv
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: count file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}
	if outputPath == "" {
		fmt.Fprintf(os.Stderr, "Error: --output is required\n\n")
		fs.Usage()
		return ExitUsage
	}

	// Ensure output has .duckdb extension
	if filepath.Ext(outputPath) != ".duckdb" && filepath.Ext(outputPath) != ".db" {
		outputPath = outputPath + ".duckdb"
	}

	// Remove existing output file if it exists
	if _, err := os.Stat(outputPath); err == nil {
		if err := os.Remove(outputPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error removing existing file: %v\n", err)
			return ExitError
		}
	}

	logger := newLogger(verbose)
	defer logger.Sync()

	loader := dataset.NewLoader()
	loader.SetLogger(logger)

	ds, err := loader.Load(fs.Arg(0), gffPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	store, err := duckdb.Open(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating DuckDB: %v\n", err)
		return ExitError
	}
	defer store.Close()

	fmt.Fprintf(os.Stderr, "Writing dataset to DuckDB...\n")
	if err := store.ExportDataset(ds); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting dataset: %v\n", err)
		return ExitError
	}

	genes, err := store.GeneCount()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error verifying export: %v\n", err)
		return ExitError
	}
	summaries, err := store.SummaryCount()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error verifying export: %v\n", err)
		return ExitError
	}

	fmt.Fprintf(os.Stderr, "\nExport complete!\n")
	fmt.Fprintf(os.Stderr, "  Genes: %d\n", genes)
	fmt.Fprintf(os.Stderr, "  Summaries: %d\n", summaries)
	fmt.Fprintf(os.Stderr, "  Output file: %s\n", outputPath)

	return ExitSuccess
}
