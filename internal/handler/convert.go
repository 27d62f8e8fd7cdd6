package handler

import (
	"encoding/json"
	"net/http"
)

// Convert handles POST /api/v1/conversions.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TierID string `json:"tierId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	rec, err := h.converts.Convert(r.Context(), walletFrom(r.Context()), req.TierID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}
