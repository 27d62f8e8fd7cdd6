package handler

import (
	"net/http"

	"owatch-server/internal/catalog"
)

// ListPools handles GET /api/v1/catalog/pools.
func (h *Handler) ListPools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Pools())
}

// ListTiers handles GET /api/v1/catalog/tiers.
func (h *Handler) ListTiers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Tiers())
}

// ListVideos handles GET /api/v1/catalog/videos.
func (h *Handler) ListVideos(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Videos())
}
