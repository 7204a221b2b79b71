package duckdb

import (
	"fmt"

	"github.com/rnalab/tpmview/internal/dataset"
	"github.com/rnalab/tpmview/internal/expr"
)

// ExportDataset writes every gene record, expression value and
// per-condition summary of a loaded dataset into the store.
func (s *Store) ExportDataset(ds *dataset.Dataset) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin export: %w", err)
	}
	defer tx.Rollback()

	geneStmt, err := tx.Prepare(`INSERT OR REPLACE INTO genes
		(gene_id, chrom, start_pos, end_pos, strand, length, product, gene_name, biotype)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare genes insert: %w", err)
	}
	defer geneStmt.Close()

	exprStmt, err := tx.Prepare(`INSERT OR REPLACE INTO expression
		(gene_id, sample, condition, raw_count, normalized)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare expression insert: %w", err)
	}
	defer exprStmt.Close()

	sumStmt, err := tx.Prepare(`INSERT OR REPLACE INTO condition_summaries
		(gene_id, condition, mean, std_dev, range_low, range_high, mean_raw_count, sample_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare summaries insert: %w", err)
	}
	defer sumStmt.Close()

	for gi, g := range ds.Table.Genes {
		ann := ds.Annotation(g.ID)
		if _, err := geneStmt.Exec(g.ID, g.Chrom, g.Start, g.End, g.Strand, g.Length,
			ann.Product, ann.GeneName, ann.Biotype); err != nil {
			return fmt.Errorf("insert gene %s: %w", g.ID, err)
		}

		for si, sample := range ds.Matrix.Samples {
			if _, err := exprStmt.Exec(g.ID, sample, expr.ConditionOf(sample),
				ds.Matrix.Raw[gi][si], ds.Matrix.Values[gi][si]); err != nil {
				return fmt.Errorf("insert expression %s/%s: %w", g.ID, sample, err)
			}
		}

		summaries, err := ds.Matrix.SummarizeAll(g.ID)
		if err != nil {
			return fmt.Errorf("summarize %s: %w", g.ID, err)
		}
		for _, sum := range summaries {
			if _, err := sumStmt.Exec(g.ID, sum.Condition, sum.Mean, sum.StdDev,
				sum.RangeLow, sum.RangeHigh, sum.MeanRawCount, sum.SampleCount); err != nil {
				return fmt.Errorf("insert summary %s/%s: %w", g.ID, sum.Condition, err)
			}
		}
	}

	return tx.Commit()
}

// GeneCount returns the number of exported genes.
func (s *Store) GeneCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM genes`).Scan(&n)
	return n, err
}

// SummaryCount returns the number of exported condition summaries.
func (s *Store) SummaryCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM condition_summaries`).Scan(&n)
	return n, err
}
