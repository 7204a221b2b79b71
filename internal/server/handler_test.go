package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rnalab/tpmview/internal/counts"
	"github.com/rnalab/tpmview/internal/dataset"
	"github.com/rnalab/tpmview/internal/expr"
	"github.com/rnalab/tpmview/internal/gff"
)

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	table, err := counts.ParseString("Geneid\tChr\tStart\tEnd\tStrand\tLength\tWT_1\tWT_2\tMut_1\n" +
		"g1\tchr1\t1\t100\t+\t100\t10\t20\t5\n" +
		"g2\tchr1\t200\t500\t-\t300\t0\t3\t8\n")
	require.NoError(t, err)

	return &dataset.Dataset{
		Table:  table,
		Matrix: expr.Normalize(table),
		Annotations: gff.Map{
			"g1": {Product: "thr operon leader peptide", GeneName: "thrL", Biotype: "gene"},
		},
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_Conditions(t *testing.T) {
	h := NewHandler(testDataset(t))

	rec := get(t, h, "/api/v1/conditions")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Conditions []string `json:"conditions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"Mut", "WT"}, body.Conditions)
}

func TestHandler_Samples(t *testing.T) {
	h := NewHandler(testDataset(t))

	rec := get(t, h, "/api/v1/samples")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Samples []string `json:"samples"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"WT_1", "WT_2", "Mut_1"}, body.Samples)
}

func TestHandler_GeneList(t *testing.T) {
	h := NewHandler(testDataset(t))

	rec := get(t, h, "/api/v1/genes")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Genes []geneListItem `json:"genes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Genes, 2)

	assert.Equal(t, "g1", body.Genes[0].ID)
	assert.Equal(t, "thrL", body.Genes[0].GeneName)
	// Unannotated gene falls back to the placeholder product.
	assert.Equal(t, "Hypothetical protein", body.Genes[1].Product)
}

func TestHandler_Gene(t *testing.T) {
	h := NewHandler(testDataset(t))

	rec := get(t, h, "/api/v1/genes/g1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Annotation gff.Entry      `json:"annotation"`
		Summaries  []expr.Summary `json:"summaries"`
		Normalized []float64      `json:"normalized"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "thrL", body.Annotation.GeneName)
	require.Len(t, body.Summaries, 2)
	assert.Equal(t, "Mut", body.Summaries[0].Condition)
	assert.Len(t, body.Normalized, 3)
}

func TestHandler_GeneNotFound(t *testing.T) {
	h := NewHandler(testDataset(t))

	rec := get(t, h, "/api/v1/genes/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Dataset(t *testing.T) {
	h := NewHandler(testDataset(t))

	rec := get(t, h, "/api/v1/dataset")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var ds dataset.Dataset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ds))
	assert.Len(t, ds.Table.Genes, 2)
	assert.Equal(t, []string{"Mut", "WT"}, ds.Matrix.Conditions)
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := NewHandler(testDataset(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/dataset", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandler_UnknownPath(t *testing.T) {
	h := NewHandler(testDataset(t))

	rec := get(t, h, "/api/v1/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_NoDataset(t *testing.T) {
	h := NewHandler(nil)

	rec := get(t, h, "/api/v1/dataset")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
