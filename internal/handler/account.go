package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// GetAccount handles GET /api/v1/account. Returns the full dashboard
// summary: balances, stake positions with totals, conversion history.
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	summary, err := h.accounts.Summary(r.Context(), walletFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// ClaimVideo handles POST /api/v1/videos/{id}/claim.
func (h *Handler) ClaimVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "video_not_found")
		return
	}

	var req struct {
		WatchedSeconds int `json:"watchedSeconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	acct, err := h.accounts.ClaimWatchReward(r.Context(), walletFrom(r.Context()), videoID, req.WatchedSeconds)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}
