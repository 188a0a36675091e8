package facility

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns facility router. All reads are public.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/services", h.ListServices)
	r.Get("/{slug}", h.Get)

	return r
}
