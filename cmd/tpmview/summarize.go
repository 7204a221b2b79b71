package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/rnalab/tpmview/internal/dataset"
	"github.com/rnalab/tpmview/internal/output"
)

func runSummarize(args []string) int {
	fs := flag.NewFlagSet("summarize", flag.ExitOnError)

	var (
		gffPath      string
		outputFormat string
		outputFile   string
		gene         string
		verbose      bool
	)

	fs.StringVar(&gffPath, "gff", "", "GFF3 annotation file (optional)")
	fs.StringVar(&outputFormat, "f", "tab", "Output format: tab, json")
	fs.StringVar(&outputFormat, "output-format", "tab", "Output format: tab, json")
	fs.StringVar(&outputFile, "o", "", "Output file (default: stdout)")
	fs.StringVar(&outputFile, "output", "", "Output file (default: stdout)")
	fs.StringVar(&gene, "gene", "", "Only summarize a single gene")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Normalize a count table and print per-gene, per-condition summaries.

Usage:
  tpmview summarize [options] <count-file>

Arguments:
  <count-file>  Tab-delimited count table (featureCounts layout, may be gzipped)

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  tpmview summarize counts.tsv
  tpmview summarize --gff annotation.gff3 counts.tsv
  tpmview summarize --gene b0001 -f json counts.tsv
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

	countsPath := fs.Arg(0)
	if gffPath == "" {
		gffPath = viper.GetString("annotation.path")
	}

	logger := newLogger(verbose)
	defer logger.Sync()

	loader := dataset.NewLoader()
	loader.SetLogger(logger)

	ds, err := loader.Load(countsPath, gffPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	out := os.Stdout
	if outputFile != "" {
		out, err = os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			return ExitError
		}
		defer out.Close()
	}

	geneIDs := ds.Matrix.GeneIDs
	if gene != "" {
		if _, ok := ds.Matrix.GeneIndex(gene); !ok {
			fmt.Fprintf(os.Stderr, "Error: gene %q not found in count table\n", gene)
			return ExitError
		}
		geneIDs = []string{gene}
	}

	switch outputFormat {
	case "tab":
		writer := output.NewTabWriter(out)
		if err := writer.WriteHeader(); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing header: %v\n", err)
			return ExitError
		}
		for _, id := range geneIDs {
			summaries, err := ds.Matrix.SummarizeAll(id)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return ExitError
			}
			for _, s := range summaries {
				if err := writer.Write(id, ds.Annotation(id), s); err != nil {
					fmt.Fprintf(os.Stderr, "Error writing summary: %v\n", err)
					return ExitError
				}
			}
		}
		if err := writer.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "Error flushing output: %v\n", err)
			return ExitError
		}
	case "json":
		if gene != "" {
			summaries, err := ds.Matrix.SummarizeAll(gene)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return ExitError
			}
			if err := output.WriteSummariesJSON(out, gene, ds.Annotation(gene), summaries); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
				return ExitError
			}
		} else if err := output.WriteDatasetJSON(out, ds); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			return ExitError
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown output format %q\n", outputFormat)
		return ExitError
	}

	return ExitSuccess
}
