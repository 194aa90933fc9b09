package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/veracityhq/veracity/internal/domain"
	"github.com/veracityhq/veracity/internal/store"
)

// VerdictsHandler exposes read-only access to stored verdicts. Lookups never
// trigger a verification; POST /v1/verify is the write path.
type VerdictsHandler struct {
	store domain.VerdictStore
}

func NewVerdictsHandler(s domain.VerdictStore) *VerdictsHandler {
	return &VerdictsHandler{store: s}
}

type listVerdictsResponse struct {
	Verdicts []domain.Verdict `json:"verdicts"`
	Count    int              `json:"count"`
	Since    string           `json:"since"`
}

// List returns stored verdicts. With ?claim= it returns the most recent
// verdict for that exact claim; otherwise it lists verdicts since a date
// (?since=YYYY-MM-DD, default today UTC).
func (h *VerdictsHandler) List(w http.ResponseWriter, r *http.Request) {
	if claim := r.URL.Query().Get("claim"); claim != "" {
		verdict, err := h.store.FindByClaim(r.Context(), claim)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "no verdict for that claim")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to look up verdict")
			return
		}
		writeJSON(w, http.StatusOK, verdict)
		return
	}

	since := r.URL.Query().Get("since")
	if since == "" {
		since = time.Now().UTC().Format(domain.DigestDateLayout)
	}
	start, err := time.Parse(domain.DigestDateLayout, since)
	if err != nil {
		writeError(w, http.StatusBadRequest, "since must be YYYY-MM-DD")
		return
	}

	verdicts, err := h.store.ListSince(r.Context(), start)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list verdicts")
		return
	}
	if verdicts == nil {
		verdicts = []domain.Verdict{}
	}

	writeJSON(w, http.StatusOK, listVerdictsResponse{
		Verdicts: verdicts,
		Count:    len(verdicts),
		Since:    since,
	})
}
