// Package handler implements the HTTP API for the earn/convert/stake
// dashboard backend.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"owatch-server/internal/service"
)

// Handler holds all API handler state.
type Handler struct {
	accounts *service.AccountService
	converts *service.ConvertService
	staking  *service.StakingService

	// health reports storage availability for the health endpoint.
	// Nil means no backing store to probe.
	health func(ctx context.Context) error
}

// NewHandler creates a new API handler.
func NewHandler(
	accounts *service.AccountService,
	converts *service.ConvertService,
	staking *service.StakingService,
	health func(ctx context.Context) error,
) *Handler {
	return &Handler{
		accounts: accounts,
		converts: converts,
		staking:  staking,
		health:   health,
	}
}

// Router builds the full route tree. Catalog routes are public; every
// other /api/v1 route requires the wallet header.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/pools", h.ListPools)
			r.Get("/tiers", h.ListTiers)
			r.Get("/videos", h.ListVideos)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireWallet)

			r.Get("/account", h.GetAccount)
			r.Post("/videos/{id}/claim", h.ClaimVideo)
			r.Post("/conversions", h.Convert)
			r.Get("/stakes", h.ListStakes)
			r.Post("/stakes", h.Stake)
			r.Post("/stakes/withdraw", h.Withdraw)
		})
	})

	return r
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "storage_unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
