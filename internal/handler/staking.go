package handler

import (
	"encoding/json"
	"net/http"
	"time"
)

// ListStakes handles GET /api/v1/stakes. Each position carries its unlock
// countdown string.
func (h *Handler) ListStakes(w http.ResponseWriter, r *http.Request) {
	stakes, err := h.staking.Positions(r.Context(), walletFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stakes)
}

// Stake handles POST /api/v1/stakes.
func (h *Handler) Stake(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PoolID string  `json:"poolId"`
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_amount")
		return
	}

	stake, err := h.staking.Stake(r.Context(), walletFrom(r.Context()), req.PoolID, req.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, stake)
}

// Withdraw handles POST /api/v1/stakes/withdraw. The position is addressed
// by its pool and staking timestamp.
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PoolID   string    `json:"poolId"`
		StakedAt time.Time `json:"stakedAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.StakedAt.IsZero() {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	acct, err := h.staking.Unstake(r.Context(), walletFrom(r.Context()), req.PoolID, req.StakedAt)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}
