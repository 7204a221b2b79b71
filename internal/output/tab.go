// Package output provides summary output formatters.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rnalab/tpmview/internal/expr"
	"github.com/rnalab/tpmview/internal/gff"
)

// TabWriter writes per-gene, per-condition summaries in tab-delimited
// format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited summary writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Gene",
			"Name",
			"Product",
			"Biotype",
			"Condition",
			"Mean",
			"StdDev",
			"RangeLow",
			"RangeHigh",
			"MeanRawCount",
			"Samples",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes one summary row.
func (tw *TabWriter) Write(geneID string, ann gff.Entry, s expr.Summary) error {
	name := ann.GeneName
	if name == "" {
		name = "-"
	}
	product := ann.Product
	if product == "" {
		product = "-"
	}
	biotype := ann.Biotype
	if biotype == "" {
		biotype = "-"
	}

	values := []string{
		geneID,
		name,
		product,
		biotype,
		s.Condition,
		formatFloat(s.Mean),
		formatFloat(s.StdDev),
		formatFloat(s.RangeLow),
		formatFloat(s.RangeHigh),
		formatFloat(s.MeanRawCount),
		fmt.Sprintf("%d", s.SampleCount),
	}

	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

// formatFloat renders a value with up to four decimal places,
// trimming trailing zeros.
func formatFloat(v float64) string {
	s := strings.TrimRight(fmt.Sprintf("%.4f", v), "0")
	return strings.TrimRight(s, ".")
}
