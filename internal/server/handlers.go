package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/recall-labs/recall/internal/engine"
	"github.com/recall-labs/recall/internal/metadata"
)

type ingestRequest struct {
	Text     string       `json:"text"`
	Metadata metadata.Map `json:"metadata,omitempty"`
	SourceID string       `json:"source_id,omitempty"`
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

type searchResponse struct {
	Results []engine.SearchResult `json:"results"`
}

type statsResponse struct {
	Collection string `json:"collection"`
	Parents    int    `json:"parents"`
	Children   int    `json:"children"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Ready(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := metadata.ValidateUserSupplied(req.Metadata); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.engine.Ingest(r.Context(), collection, req.Text, req.Metadata, req.SourceID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.TopK <= 0 {
		req.TopK = engine.DefaultTopK
	}

	results, err := s.engine.Search(r.Context(), collection, req.Query, req.TopK)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if results == nil {
		results = []engine.SearchResult{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Results: results})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	parents, children, err := s.engine.Stats(r.Context(), collection)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Collection: collection,
		Parents:    parents,
		Children:   children,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	if err := s.engine.Reset(r.Context(), collection); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeEngineError maps engine validation errors to 400 and everything
// else to 500.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrEmptyInput),
		errors.Is(err, engine.ErrEmptyQuery),
		errors.Is(err, engine.ErrNoCollection):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
