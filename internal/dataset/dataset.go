// Package dataset composes the parsing and normalization pipeline
// into a single loaded dataset for the CLI and server surfaces.
package dataset

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/rnalab/tpmview/internal/counts"
	"github.com/rnalab/tpmview/internal/expr"
	"github.com/rnalab/tpmview/internal/gff"
)

// Dataset joins a parsed count table, its normalized expression
// matrix and the annotation map. All members are plain data and the
// whole value serializes to JSON unchanged.
type Dataset struct {
	Table       *counts.Table `json:"table"`
	Matrix      *expr.Matrix  `json:"matrix"`
	Annotations gff.Map       `json:"annotations"`
}

// Loader loads datasets from local files.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a dataset loader.
func NewLoader() *Loader {
	return &Loader{logger: zap.NewNop()}
}

// SetLogger sets the logger passed through to the parsers.
func (l *Loader) SetLogger(logger *zap.Logger) {
	l.logger = logger
}

// Load parses the count table at countsPath, normalizes it, and, when
// gffPath is non-empty, parses annotations. Both files may be
// gzipped. A missing or unusable annotation file degrades to an empty
// annotation map; only a structurally invalid count table fails.
func (l *Loader) Load(countsPath, gffPath string) (*Dataset, error) {
	table, err := l.loadCounts(countsPath)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Table:       table,
		Matrix:      expr.Normalize(table),
		Annotations: make(gff.Map),
	}

	if gffPath != "" {
		ds.Annotations = l.loadAnnotations(gffPath)
	}

	return ds, nil
}

func (l *Loader) loadCounts(path string) (*counts.Table, error) {
	r, closeFn, err := openMaybeGzip(path)
	if err != nil {
		return nil, fmt.Errorf("open count table: %w", err)
	}
	defer closeFn()

	p := counts.NewParser()
	p.SetLogger(l.logger)

	table, err := p.Parse(r)
	if err != nil {
		return nil, err
	}

	l.logger.Info("loaded count table",
		zap.String("path", path),
		zap.Int("genes", len(table.Genes)),
		zap.Int("samples", len(table.Samples)))

	return table, nil
}

func (l *Loader) loadAnnotations(path string) gff.Map {
	r, closeFn, err := openMaybeGzip(path)
	if err != nil {
		l.logger.Warn("annotation file unavailable, continuing without annotations",
			zap.String("path", path), zap.Error(err))
		return make(gff.Map)
	}
	defer closeFn()

	p := gff.NewParser()
	p.SetLogger(l.logger)

	annotations := p.Parse(r)
	l.logger.Info("loaded annotations",
		zap.String("path", path),
		zap.Int("entries", len(annotations)))

	return annotations
}

// openMaybeGzip opens a file, transparently decompressing gzip input
// detected by its magic bytes (0x1f, 0x8b).
func openMaybeGzip(path string) (io.Reader, func(), error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	buf := make([]byte, 2)
	n, _ := file.Read(buf)
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("seek %s: %w", path, err)
	}

	if n == 2 && buf[0] == 0x1f && buf[1] == 0x8b {
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, nil, fmt.Errorf("create gzip reader: %w", err)
		}
		return gz, func() { gz.Close(); file.Close() }, nil
	}

	return file, func() { file.Close() }, nil
}

// Annotation returns the annotation entry for a gene, falling back to
// a hypothetical-protein placeholder when the gene has no entry.
func (d *Dataset) Annotation(geneID string) gff.Entry {
	if e, ok := d.Annotations[geneID]; ok {
		return e
	}
	return gff.Entry{Product: gff.DefaultProduct}
}
