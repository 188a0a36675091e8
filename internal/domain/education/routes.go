package education

import (
	"github.com/go-chi/chi/v5"
)

// Routes exposes public educational reference content.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/components", h.ListComponents)
	r.Get("/components/{slug}", h.GetComponent)
	r.Get("/modules", h.ListModules)
	r.Get("/modules/{slug}", h.GetModule)

	return r
}
