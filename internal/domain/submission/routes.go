package submission

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecoloop/ecoloop-api/internal/middleware"
)

// Routes returns submission router. The estimate endpoint is public; the
// rest requires auth, and status changes are staff-only.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/estimate", h.Estimate)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Post("/", h.Create)
		r.Get("/", h.ListMine)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireStaff)

			r.Get("/all", h.ListAll)
			r.Patch("/{id}/status", h.UpdateStatus)
		})
	})

	return r
}
