package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rnalab/tpmview/internal/dataset"
	"github.com/rnalab/tpmview/internal/server"
)

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)

	var (
		gffPath string
		addr    string
		verbose bool
	)

	fs.StringVar(&gffPath, "gff", "", "GFF3 annotation file (optional)")
	fs.StringVar(&addr, "addr", "", "Listen address (default :8080, or serve.addr from config)")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Serve a normalized dataset as a JSON API.

Endpoints:
  GET /api/v1/dataset       full dataset (genes, matrices, annotations)
  GET /api/v1/conditions    condition names in display order
  GET /api/v1/samples       sample labels in file order
  GET /api/v1/genes         gene list with annotation snippets
  GET /api/v1/genes/{id}    gene record, summaries and expression values

Usage:
  tpmview serve [options] <count-file>

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  tpmview serve counts.tsv
  tpmview serve --addr :9090 --gff annotation.gff3 counts.tsv
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

	if addr == "" {
		addr = viper.GetString("serve.addr")
	}
	if addr == "" {
		addr = ":8080"
	}
	if gffPath == "" {
		gffPath = viper.GetString("annotation.path")
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

	handler := server.NewHandler(ds)
	handler.SetLogger(logger)

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info("serving dataset",
		zap.String("addr", addr),
		zap.Int("genes", len(ds.Table.Genes)),
		zap.Int("conditions", len(ds.Matrix.Conditions)))

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	return ExitSuccess
}
