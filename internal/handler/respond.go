package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"owatch-server/internal/reward"
	"owatch-server/internal/service"
)

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError writes the uniform error envelope.
func writeError(w http.ResponseWriter, status int, reason string) {
	writeJSON(w, status, map[string]string{"error": reason})
}

// writeServiceError maps typed rejections from the service and reward
// layers onto HTTP statuses. Anything unrecognized is a storage or
// internal failure and surfaces as a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		writeError(w, http.StatusNotFound, "video_not_found")
	case errors.Is(err, service.ErrTierNotFound):
		writeError(w, http.StatusNotFound, "tier_not_found")
	case errors.Is(err, service.ErrPoolNotFound):
		writeError(w, http.StatusNotFound, "pool_not_found")
	case errors.Is(err, service.ErrStakeNotFound):
		writeError(w, http.StatusNotFound, "stake_not_found")
	case errors.Is(err, reward.ErrInsufficientPoints):
		writeError(w, http.StatusPaymentRequired, "insufficient_points")
	case errors.Is(err, service.ErrInsufficientBalance):
		writeError(w, http.StatusPaymentRequired, "insufficient_balance")
	case errors.Is(err, reward.ErrBelowMinimum):
		writeError(w, http.StatusBadRequest, "below_minimum_stake")
	case errors.Is(err, reward.ErrAboveMaximum):
		writeError(w, http.StatusBadRequest, "above_maximum_stake")
	case errors.Is(err, service.ErrWatchIncomplete):
		writeError(w, http.StatusConflict, "watch_incomplete")
	case errors.Is(err, service.ErrRewardAlreadyClaimed):
		writeError(w, http.StatusConflict, "reward_already_claimed")
	case errors.Is(err, service.ErrStillLocked):
		writeError(w, http.StatusConflict, "still_locked")
	default:
		log.Error().Err(err).Msg("Request failed")
		writeError(w, http.StatusInternalServerError, "internal_error")
	}
}
