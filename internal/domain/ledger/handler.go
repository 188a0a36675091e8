package ledger

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ecoloop/ecoloop-api/internal/middleware"
	"github.com/ecoloop/ecoloop-api/internal/pkg/response"
	"github.com/ecoloop/ecoloop-api/internal/pkg/validator"
)

// Handler handles profile and credit ledger HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates ledger handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetProfile handles GET /profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, ProfileResponseFromEntity(profile))
}

// UpdateProfile handles PATCH /profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}
	if req.PhoneNumber != nil {
		profile.PhoneNumber = *req.PhoneNumber
	}
	if req.HomeLocation != nil {
		profile.HomeLocation = *req.HomeLocation
	}
	if req.NewsletterOptIn != nil {
		profile.NewsletterOptIn = *req.NewsletterOptIn
	}

	if err := h.service.UpdateProfile(r.Context(), profile); err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, ProfileResponseFromEntity(profile))
}

// ListTransactions handles GET /profile/transactions
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	limit := 20
	offset := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	transactions, err := h.service.ListTransactions(r.Context(), profile.ID, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]*TransactionResponse, 0, len(transactions))
	for i := range transactions {
		out = append(out, TransactionResponseFromEntity(&transactions[i]))
	}

	response.OK(w, out)
}
