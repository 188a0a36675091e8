package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecoloop/ecoloop-api/internal/middleware"
)

// Routes returns catalog router. Reads are public; writes are staff-only.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListModels)
	r.Get("/categories", h.ListCategories)
	r.Get("/{slug}", h.GetModel)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireStaff)

		r.Post("/", h.CreateModel)
		r.Post("/categories", h.CreateCategory)
		r.Put("/{slug}", h.UpdateModel)
		r.Delete("/{slug}", h.DeleteModel)
		r.Post("/{slug}/image", h.UploadImage)
	})

	return r
}
