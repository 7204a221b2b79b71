package counts

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Parser parses tab-delimited count tables. The zero value is not
// usable; construct with NewParser.
type Parser struct {
	logger *zap.Logger
}

// NewParser creates a count table parser.
func NewParser() *Parser {
	return &Parser{logger: zap.NewNop()}
}

// SetLogger sets the logger used for soft-failure warnings
// (malformed counts and lengths are recovered, not fatal).
func (p *Parser) SetLogger(l *zap.Logger) {
	p.logger = l
}

// Parse parses a complete count table from r. Parsing is
// all-or-nothing: a structurally invalid table (header with fewer
// than 7 columns, or no data rows) returns a *FormatError and no
// partial result. Individual malformed numeric fields are recovered
// silently: counts become 0, lengths become 0 (the normalizer
// substitutes a divisor of 1).
func (p *Parser) Parse(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for wide sample matrices
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var (
		table   *Table
		lineNum int
		sniffed bool
	)

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")

		if !sniffed {
			sniffed = true
			if looksLikeHTML(line) {
				return nil, &FormatError{
					Line:    lineNum,
					Message: "input looks like an HTML page, not a count table",
				}
			}
		}

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")

		if table == nil {
			// Header row
			if len(fields) < metaColumns+1 {
				return nil, &FormatError{
					Line:    lineNum,
					Message: fmt.Sprintf("header has %d columns, need at least %d (6 metadata + 1 sample)", len(fields), metaColumns+1),
				}
			}
			table = &Table{Samples: fields[metaColumns:]}
			continue
		}

		table.Genes = append(table.Genes, p.parseRow(fields, len(table.Samples), lineNum))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan count table: %w", err)
	}

	if table == nil {
		return nil, &FormatError{Line: lineNum, Message: "no header line found"}
	}
	if len(table.Genes) == 0 {
		return nil, &FormatError{Line: lineNum, Message: "no data rows found"}
	}

	return table, nil
}

// ParseString parses a count table held in a string.
func (p *Parser) ParseString(text string) (*Table, error) {
	return p.Parse(strings.NewReader(text))
}

// Parse parses a count table with soft-failure logging disabled.
func Parse(r io.Reader) (*Table, error) {
	return NewParser().Parse(r)
}

// ParseString parses a count table string with logging disabled.
func ParseString(text string) (*Table, error) {
	return NewParser().ParseString(text)
}

// parseRow parses one data line into a Gene. Rows shorter than the
// header are zero-padded so the count vector always matches the
// sample count.
func (p *Parser) parseRow(fields []string, nSamples, lineNum int) Gene {
	g := Gene{
		ID:     fields[0],
		Counts: make([]float64, nSamples),
	}
	if len(fields) > 1 {
		g.Chrom = fields[1]
	}
	if len(fields) > 2 {
		g.Start = fields[2]
	}
	if len(fields) > 3 {
		g.End = fields[3]
	}
	if len(fields) > 4 {
		g.Strand = fields[4]
	}
	if len(fields) > 5 {
		length, err := strconv.ParseFloat(fields[5], 64)
		if err != nil {
			p.logger.Warn("unparsable feature length, normalization divisor falls back to 1",
				zap.String("gene", g.ID),
				zap.String("value", fields[5]),
				zap.Int("line", lineNum))
			length = 0
		}
		g.Length = length
	}

	for i := 0; i < nSamples; i++ {
		col := metaColumns + i
		if col >= len(fields) {
			break
		}
		g.Counts[i] = p.safeParseCount(fields[col], g.ID, lineNum)
	}

	return g
}

// safeParseCount parses a raw count, substituting 0 for malformed
// values so a messy row never aborts ingestion.
func (p *Parser) safeParseCount(s, geneID string, lineNum int) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != v {
		if s != "" {
			p.logger.Warn("malformed count treated as 0",
				zap.String("gene", geneID),
				zap.String("value", s),
				zap.Int("line", lineNum))
		}
		return 0
	}
	return v
}

// looksLikeHTML reports whether a line resembles the start of an HTML
// document, e.g. an error page fetched in place of real data.
func looksLikeHTML(line string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(line))
	return strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html")
}

// FormatError represents a structurally invalid count table.
type FormatError struct {
	Line    int
	Message string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("count table format error at line %d: %s", e.Line, e.Message)
}
