package output

import (
	"encoding/json"
	"io"

	"github.com/rnalab/tpmview/internal/dataset"
	"github.com/rnalab/tpmview/internal/expr"
	"github.com/rnalab/tpmview/internal/gff"
)

// WriteDatasetJSON writes a full loaded dataset as an indented JSON
// document: gene records, sample labels, conditions, normalized and
// raw matrices, and the annotation map. The payload is plain data, so
// it can cross a process boundary unchanged.
func WriteDatasetJSON(w io.Writer, ds *dataset.Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ds)
}

// GeneSummaries is the JSON document produced for a single gene: its
// annotation entry plus one summary per condition.
type GeneSummaries struct {
	Gene       string         `json:"gene"`
	Annotation gff.Entry      `json:"annotation"`
	Summaries  []expr.Summary `json:"summaries"`
}

// WriteSummariesJSON writes per-condition summaries for one gene.
func WriteSummariesJSON(w io.Writer, geneID string, ann gff.Entry, summaries []expr.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(GeneSummaries{
		Gene:       geneID,
		Annotation: ann,
		Summaries:  summaries,
	})
}
