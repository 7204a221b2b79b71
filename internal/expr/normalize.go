// Package expr computes normalized expression values and
// per-condition summary statistics from raw read counts.
package expr

import (
	"math"
	"sort"
	"strings"

	"github.com/rnalab/tpmview/internal/counts"
)

// Matrix holds length- and library-size-normalized expression values
// for every (gene, sample) pair of a count table, alongside the raw
// counts. Gene and sample order match the input table. Conditions is
// the distinct set of condition names derived from the sample labels,
// in natural ascending order.
type Matrix struct {
	Samples    []string    `json:"samples"`
	Conditions []string    `json:"conditions"`
	GeneIDs    []string    `json:"gene_ids"`
	Values     [][]float64 `json:"values"`
	Raw        [][]float64 `json:"raw_counts"`

	geneIndex map[string]int
}

// Normalize converts raw counts into log-scale TPM-like values:
//
//	RPK     = count / (length / 1000)
//	scaling = sum(RPK per sample) / 1e6
//	value   = log2(RPK/scaling + 1)
//
// A zero or unparsable length contributes a divisor of 1 (RPK equals
// the raw count), and a zero scaling factor is replaced by 1, so the
// transform is defined for every finite non-negative input. Values
// are always >= 0.
func Normalize(t *counts.Table) *Matrix {
	nGenes := len(t.Genes)
	nSamples := len(t.Samples)

	m := &Matrix{
		Samples:    append([]string(nil), t.Samples...),
		Conditions: Conditions(t.Samples),
		GeneIDs:    make([]string, nGenes),
		Values:     make([][]float64, nGenes),
		Raw:        make([][]float64, nGenes),
		geneIndex:  make(map[string]int, nGenes),
	}

	// Reads per kilobase of feature length.
	rpk := make([][]float64, nGenes)
	scaling := make([]float64, nSamples)

	for gi, g := range t.Genes {
		m.GeneIDs[gi] = g.ID
		m.geneIndex[g.ID] = gi
		m.Raw[gi] = append([]float64(nil), g.Counts...)

		divisor := safeDivisor(g.Length / 1000)
		row := make([]float64, nSamples)
		for si, c := range g.Counts {
			row[si] = c / divisor
			scaling[si] += row[si]
		}
		rpk[gi] = row
	}

	for si := range scaling {
		scaling[si] = safeDivisor(scaling[si] / 1e6)
	}

	for gi := range rpk {
		row := make([]float64, nSamples)
		for si, v := range rpk[gi] {
			row[si] = math.Log2(v/scaling[si] + 1)
		}
		m.Values[gi] = row
	}

	return m
}

// safeDivisor replaces a zero, negative or NaN divisor with 1 so a
// division never produces Inf or NaN.
func safeDivisor(d float64) float64 {
	if d <= 0 || math.IsNaN(d) {
		return 1
	}
	return d
}

// GeneIndex returns the row index for a gene ID.
func (m *Matrix) GeneIndex(id string) (int, bool) {
	i, ok := m.geneIndex[id]
	return i, ok
}

// ConditionOf derives the condition name from a sample label: the
// substring before the first underscore, or the whole label when no
// underscore is present.
func ConditionOf(label string) string {
	if i := strings.Index(label, "_"); i >= 0 {
		return label[:i]
	}
	return label
}

// Conditions returns the distinct condition names for a set of sample
// labels, in natural ascending order.
func Conditions(samples []string) []string {
	seen := make(map[string]bool)
	var conds []string
	for _, s := range samples {
		c := ConditionOf(s)
		if !seen[c] {
			seen[c] = true
			conds = append(conds, c)
		}
	}
	sort.Slice(conds, func(i, j int) bool {
		return compareNatural(conds[i], conds[j]) < 0
	})
	return conds
}
