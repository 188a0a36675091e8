package reward

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ecoloop/ecoloop-api/internal/domain/ledger"
	"github.com/ecoloop/ecoloop-api/internal/middleware"
	"github.com/ecoloop/ecoloop-api/internal/pkg/response"
	"github.com/ecoloop/ecoloop-api/internal/pkg/validator"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	rewards, err := h.service.ListActive(r.Context(), limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]RewardResponse, 0, len(rewards))
	for i := range rewards {
		out = append(out, NewRewardResponse(&rewards[i]))
	}
	response.OK(w, out)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	rw, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, ErrRewardNotFound) {
			response.NotFound(w, "Reward not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, NewRewardResponse(rw))
}

func (h *Handler) Redeem(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	slug := chi.URLParam(r, "slug")

	redemption, err := h.service.Redeem(r.Context(), userID, slug)
	if err != nil {
		switch {
		case errors.Is(err, ErrRewardNotFound):
			response.NotFound(w, "Reward not found")
		case errors.Is(err, ErrRewardInactive):
			response.Conflict(w, "Reward is no longer available")
		case errors.Is(err, ledger.ErrInsufficientCredits):
			response.Conflict(w, "Not enough credits for this reward")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, NewRedemptionResponse(redemption))
}

func (h *Handler) ListMyRedemptions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	limit, offset := parsePagination(r)

	redemptions, err := h.service.ListMyRedemptions(r.Context(), userID, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, toRedemptionResponses(redemptions))
}

func (h *Handler) ListAllRedemptions(w http.ResponseWriter, r *http.Request) {
	status := RedemptionStatus(r.URL.Query().Get("status"))
	if status != "" && !status.IsValid() {
		response.BadRequest(w, "Unknown redemption status")
		return
	}
	limit, offset := parsePagination(r)

	redemptions, err := h.service.ListAllRedemptions(r.Context(), status, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, toRedemptionResponses(redemptions))
}

func (h *Handler) UpdateRedemptionStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid redemption ID")
		return
	}

	var req UpdateRedemptionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	actorID := middleware.GetUserID(r.Context())
	red, err := h.service.UpdateRedemptionStatus(r.Context(), id, RedemptionStatus(req.Status), actorID, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, ErrRedemptionNotFound):
			response.NotFound(w, "Redemption not found")
		case errors.Is(err, ErrInvalidStatusTransition):
			response.Conflict(w, "Invalid redemption status transition")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, NewRedemptionResponse(red))
}

func toRedemptionResponses(redemptions []RewardRedemption) []RedemptionResponse {
	out := make([]RedemptionResponse, 0, len(redemptions))
	for i := range redemptions {
		out = append(out, NewRedemptionResponse(&redemptions[i]))
	}
	return out
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit = 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
