// Package duckdb persists loaded datasets to a DuckDB file so
// downstream tools can query expression values and summaries with
// SQL. The export is a one-way convenience dump, not a source of
// truth.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection for exported expression data.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS genes (
			gene_id VARCHAR PRIMARY KEY,
			chrom VARCHAR,
			start_pos VARCHAR,
			end_pos VARCHAR,
			strand VARCHAR,
			length DOUBLE,
			product VARCHAR,
			gene_name VARCHAR,
			biotype VARCHAR
		)`,
		`CREATE TABLE IF NOT EXISTS expression (
			gene_id VARCHAR,
			sample VARCHAR,
			condition VARCHAR,
			raw_count DOUBLE,
			normalized DOUBLE,
			PRIMARY KEY (gene_id, sample)
		)`,
		`CREATE TABLE IF NOT EXISTS condition_summaries (
			gene_id VARCHAR,
			condition VARCHAR,
			mean DOUBLE,
			std_dev DOUBLE,
			range_low DOUBLE,
			range_high DOUBLE,
			mean_raw_count DOUBLE,
			sample_count INTEGER,
			PRIMARY KEY (gene_id, condition)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
