package ledger

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns profile router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.GetProfile)
	r.Patch("/", h.UpdateProfile)
	r.Get("/transactions", h.ListTransactions)

	return r
}
