package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecoloop/ecoloop-api/internal/middleware"
)

// Routes wires the resident and staff dashboard views.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Get("/", h.Resident)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireStaff)
		r.Get("/admin", h.Staff)
	})

	return r
}
