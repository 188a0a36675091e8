package submission

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecoloop/ecoloop-api/internal/domain/valuation"
	"github.com/ecoloop/ecoloop-api/internal/middleware"
	"github.com/ecoloop/ecoloop-api/internal/pkg/response"
	"github.com/ecoloop/ecoloop-api/internal/pkg/validator"
)

// Handler handles submission HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates submission handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /submissions
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if _, ok := parseAmount(req.EstimatedMetalMass); !ok {
		response.BadRequest(w, "Invalid estimated_precious_metal_mass")
		return
	}
	if _, ok := parseAmount(req.EstimatedCreditValue); !ok {
		response.BadRequest(w, "Invalid estimated_credit_value")
		return
	}

	sub, facilitySlug, err := h.service.Create(r.Context(), CreateInput{
		UserID:               userID,
		DeviceModelID:        req.DeviceModelID,
		CustomDeviceName:     req.CustomDeviceName,
		DeviceType:           req.DeviceType,
		FacilityID:           req.FacilityID,
		EstimatedMetalMass:   req.EstimatedMetalMass,
		EstimatedCreditValue: req.EstimatedCreditValue,
		MessageToFacility:    req.MessageToFacility,
		PickupAddress:        req.PickupAddress,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDeviceRequired):
			response.BadRequest(w, "A device model reference or device name is required")
		case errors.Is(err, ErrFacilityRequired):
			response.BadRequest(w, "A valid drop-off facility is required")
		default:
			response.InternalError(w)
		}
		return
	}

	out := SubmissionResponseFromEntity(sub)
	out.FacilitySlug = facilitySlug
	response.Created(w, out)
}

// Estimate handles POST /submissions/estimate
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	valReq := valuation.Request{
		DeviceName:     req.DeviceName,
		DeviceCategory: req.DeviceCategory,
		FacilityName:   req.FacilityName,
		Components:     req.Components,
		UserNotes:      req.UserNotes,
		PickupAddress:  req.PickupAddress,
	}
	if req.UserEstimatedMass != "" {
		if mass, err := decimal.NewFromString(req.UserEstimatedMass); err == nil && !mass.IsNegative() {
			valReq.UserEstimatedMass = &mass
		}
	}

	result, err := h.service.Estimate(r.Context(), valReq)
	if err != nil {
		response.InternalError(w)
		return
	}
	if result == nil {
		response.Unprocessable(w, "ESTIMATE_UNAVAILABLE", "No estimate could be produced")
		return
	}

	out := EstimateResponse{Success: true, Confidence: result.Confidence}
	if result.PreciousMetalMassGrams != nil {
		v := result.PreciousMetalMassGrams.StringFixed(2)
		out.EstimatedPreciousMetalMassGrams = &v
	}
	if result.CreditValue != nil {
		v := result.CreditValue.StringFixed(2)
		out.EstimatedCreditValue = &v
	}
	response.OK(w, out)
}

// ListMine handles GET /submissions
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	limit, offset := parsePagination(r)

	submissions, err := h.service.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, toResponses(submissions))
}

// ListAll handles GET /submissions/all (staff)
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	status := Status(r.URL.Query().Get("status"))
	if status != "" && !status.IsValid() {
		response.BadRequest(w, "Invalid status filter")
		return
	}

	submissions, err := h.service.ListAll(r.Context(), status, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, toResponses(submissions))
}

// Get handles GET /submissions/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid submission ID")
		return
	}

	sub, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSubmissionNotFound) {
			response.NotFound(w, "Submission not found")
			return
		}
		response.InternalError(w)
		return
	}

	// Owners see their own submissions; staff see everything.
	userID := middleware.GetUserID(r.Context())
	role := middleware.GetRole(r.Context())
	isStaff := role == "staff" || role == "admin"
	if !isStaff && (sub.UserID == nil || *sub.UserID != userID) {
		response.NotFound(w, "Submission not found")
		return
	}

	response.OK(w, SubmissionResponseFromEntity(sub))
}

// UpdateStatus handles PATCH /submissions/{id}/status (staff)
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid submission ID")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	sub, err := h.service.UpdateStatus(r.Context(), id, Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, ErrSubmissionNotFound):
			response.NotFound(w, "Submission not found")
		case errors.Is(err, ErrInvalidStatusTransition):
			response.Conflict(w, "Invalid status transition")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, SubmissionResponseFromEntity(sub))
}

func toResponses(submissions []Submission) []*SubmissionResponse {
	out := make([]*SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		out = append(out, SubmissionResponseFromEntity(&submissions[i]))
	}
	return out
}

func parsePagination(r *http.Request) (int, int) {
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
	return limit, offset
}
