package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veracityhq/veracity/internal/service"
	"github.com/veracityhq/veracity/internal/store"
)

type DigestHandler struct {
	svc *service.DigestService
}

func NewDigestHandler(svc *service.DigestService) *DigestHandler {
	return &DigestHandler{svc: svc}
}

type digestRequest struct {
	Date            string `json:"date,omitempty"`
	IncludeTrending *bool  `json:"include_trending,omitempty"`
}

// Generate builds (or returns) the digest for the requested day.
// Trending topics are included unless the caller opts out.
func (h *DigestHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req digestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	includeTrending := true
	if req.IncludeTrending != nil {
		includeTrending = *req.IncludeTrending
	}

	digest, err := h.svc.GenerateDigest(r.Context(), req.Date, includeTrending)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to generate digest")
		return
	}

	writeJSON(w, http.StatusOK, digest)
}

func (h *DigestHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	digest, err := h.svc.GetDigest(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDate):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "no digest for that date")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get digest")
		}
		return
	}

	writeJSON(w, http.StatusOK, digest)
}
