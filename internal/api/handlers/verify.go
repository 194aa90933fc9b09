package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/veracityhq/veracity/internal/service"
)

type VerifyHandler struct {
	svc *service.VerifierService
}

func NewVerifyHandler(svc *service.VerifierService) *VerifyHandler {
	return &VerifyHandler{svc: svc}
}

type verifyRequest struct {
	Claim   string `json:"claim"`
	Context string `json:"context,omitempty"`
}

func (h *VerifyHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	verdict, err := h.svc.Verify(r.Context(), req.Claim, req.Context)
	if err != nil {
		if errors.Is(err, service.ErrEmptyClaim) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to verify claim")
		return
	}

	writeJSON(w, http.StatusOK, verdict)
}
