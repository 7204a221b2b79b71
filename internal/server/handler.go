// Package server exposes a loaded dataset over HTTP as JSON for the
// chart frontend. The dataset is immutable after load, so concurrent
// requests need no locking.
package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/rnalab/tpmview/internal/counts"
	"github.com/rnalab/tpmview/internal/dataset"
	"github.com/rnalab/tpmview/internal/expr"
	"github.com/rnalab/tpmview/internal/gff"
)

// Handler provides HTTP access to a loaded dataset.
type Handler struct {
	ds     *dataset.Dataset
	logger *zap.Logger
}

// NewHandler constructs a dataset HTTP handler.
func NewHandler(ds *dataset.Dataset) *Handler {
	return &Handler{ds: ds, logger: zap.NewNop()}
}

// SetLogger sets the request logger.
func (h *Handler) SetLogger(l *zap.Logger) {
	h.logger = l
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.ds == nil {
		writeError(w, http.StatusInternalServerError, "no dataset loaded")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")
	h.logger.Debug("request", zap.String("method", r.Method), zap.String("path", path))

	switch {
	case path == "/api/v1/dataset":
		writeJSON(w, http.StatusOK, h.ds)
	case path == "/api/v1/conditions":
		writeJSON(w, http.StatusOK, map[string]any{"conditions": h.ds.Matrix.Conditions})
	case path == "/api/v1/samples":
		writeJSON(w, http.StatusOK, map[string]any{"samples": h.ds.Matrix.Samples})
	case path == "/api/v1/genes":
		h.handleListGenes(w)
	case strings.HasPrefix(path, "/api/v1/genes/"):
		h.handleGene(w, strings.TrimPrefix(path, "/api/v1/genes/"))
	default:
		http.NotFound(w, r)
	}
}

type geneListItem struct {
	ID       string `json:"id"`
	Product  string `json:"product"`
	GeneName string `json:"gene_name,omitempty"`
}

func (h *Handler) handleListGenes(w http.ResponseWriter) {
	items := make([]geneListItem, 0, len(h.ds.Table.Genes))
	for _, g := range h.ds.Table.Genes {
		ann := h.ds.Annotation(g.ID)
		items = append(items, geneListItem{ID: g.ID, Product: ann.Product, GeneName: ann.GeneName})
	}
	writeJSON(w, http.StatusOK, map[string]any{"genes": items})
}

type geneResponse struct {
	Gene       *counts.Gene   `json:"gene"`
	Annotation gff.Entry      `json:"annotation"`
	Summaries  []expr.Summary `json:"summaries"`
	Normalized []float64      `json:"normalized"`
	Raw        []float64      `json:"raw_counts"`
}

func (h *Handler) handleGene(w http.ResponseWriter, id string) {
	g := h.ds.Table.Gene(id)
	if g == nil {
		writeError(w, http.StatusNotFound, "gene not found")
		return
	}

	gi, ok := h.ds.Matrix.GeneIndex(id)
	if !ok {
		writeError(w, http.StatusNotFound, "gene not found")
		return
	}

	summaries, err := h.ds.Matrix.SummarizeAll(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, geneResponse{
		Gene:       g,
		Annotation: h.ds.Annotation(id),
		Summaries:  summaries,
		Normalized: h.ds.Matrix.Values[gi],
		Raw:        h.ds.Matrix.Raw[gi],
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
