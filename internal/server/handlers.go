package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/skill-profiler/internal/types"
)

var validate = validator.New()

// AnalyzeRequest is the request body for POST /analyze.
type AnalyzeRequest struct {
	Ratings           map[string]int      `json:"ratings" validate:"dive,gte=1,lte=5"`
	OpenTexts         map[string]string   `json:"open_texts"`
	Choices           map[string][]string `json:"choices"`
	Timestamp         string              `json:"timestamp,omitempty"`
	IncludeGeneration *bool               `json:"include_generation,omitempty"`
}

// AnalyzeResponse wraps the analysis result with its persisted id, if any.
type AnalyzeResponse struct {
	ID     string                `json:"id,omitempty"`
	Result *types.AnalysisResult `json:"result"`
}

// handleAnalyze runs the full pipeline on one set of responses.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	includeGeneration := true
	if req.IncludeGeneration != nil {
		includeGeneration = *req.IncludeGeneration
	}

	responses := &types.UserResponses{
		Ratings:   req.Ratings,
		OpenTexts: req.OpenTexts,
		Choices:   req.Choices,
		Timestamp: req.Timestamp,
	}

	result, err := s.pipeline.Run(r.Context(), responses, includeGeneration)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		return
	}

	resp := AnalyzeResponse{Result: result}
	if s.store != nil {
		version := s.pipeline.Referential().Version
		id, err := s.store.SaveAnalysis(r.Context(), version, req.Timestamp, result)
		if err != nil {
			// Persistence is best-effort; the analysis itself succeeded.
			log.Printf("Failed to persist analysis: %v", err)
		} else {
			resp.ID = id.String()
		}
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleListAnalyses returns recent persisted analysis records.
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusNotFound, "Analysis store is not configured")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	records, err := s.store.ListAnalyses(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, records)
}

// handleGetAnalysis returns one persisted analysis result.
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusNotFound, "Analysis store is not configured")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid analysis ID format")
		return
	}

	result, err := s.store.GetAnalysis(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if result == nil {
		s.errorResponse(w, http.StatusNotFound, "Analysis not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{ID: id.String(), Result: result})
}
