package reward

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecoloop/ecoloop-api/internal/middleware"
)

// Routes wires the reward catalog and redemption endpoints.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Public catalog
	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/redemptions", h.ListMyRedemptions)
		r.Post("/{slug}/redeem", h.Redeem)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireStaff)

			r.Get("/redemptions/all", h.ListAllRedemptions)
			r.Patch("/redemptions/{id}/status", h.UpdateRedemptionStatus)
		})
	})

	r.Get("/{slug}", h.Get)

	return r
}
