// Package counts provides read-count table parsing functionality.
package counts

// Number of fixed metadata columns preceding the sample columns:
// Geneid, Chr, Start, End, Strand, Length.
const metaColumns = 6

// Gene holds one parsed count-table row. Chr, Start, End and Strand
// are kept as opaque strings; only Length participates in numeric
// normalization downstream.
type Gene struct {
	ID     string    `json:"id"`
	Chrom  string    `json:"chrom"`
	Start  string    `json:"start"`
	End    string    `json:"end"`
	Strand string    `json:"strand"`
	Length float64   `json:"length"`
	Counts []float64 `json:"counts"`
}

// Table is a parsed count matrix: genes in file order plus the sample
// column labels from the header (fields 7 onward), order preserved.
// Every gene carries exactly one count per sample label.
type Table struct {
	Genes   []Gene   `json:"genes"`
	Samples []string `json:"samples"`
}

// GeneIndex returns a lookup from gene ID to its position in Genes.
func (t *Table) GeneIndex() map[string]int {
	idx := make(map[string]int, len(t.Genes))
	for i, g := range t.Genes {
		idx[g.ID] = i
	}
	return idx
}

// Gene returns the record for the given gene ID, or nil if absent.
func (t *Table) Gene(id string) *Gene {
	for i := range t.Genes {
		if t.Genes[i].ID == id {
			return &t.Genes[i]
		}
	}
	return nil
}
