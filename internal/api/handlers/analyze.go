package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/veracityhq/veracity/internal/service"
)

type AnalyzeHandler struct {
	svc *service.AnalyzerService
}

func NewAnalyzeHandler(svc *service.AnalyzerService) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc}
}

type analyzeRequest struct {
	URL        string   `json:"url"`
	FocusAreas []string `json:"focus_areas,omitempty"`
}

func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	analysis, err := h.svc.AnalyzeWebpage(r.Context(), req.URL, req.FocusAreas)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyURL):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrFetchFailed):
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to analyze webpage")
		}
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}
