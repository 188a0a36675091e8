package facility

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ecoloop/ecoloop-api/internal/pkg/response"
)

// Handler handles facility HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates facility handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /facilities
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Query:       r.URL.Query().Get("q"),
		City:        r.URL.Query().Get("city"),
		ServiceSlug: r.URL.Query().Get("service"),
		Limit:       20,
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			filter.Limit = v
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			filter.Offset = v
		}
	}

	facilities, err := h.service.List(r.Context(), filter)
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]*FacilityResponse, 0, len(facilities))
	for i := range facilities {
		out = append(out, FacilityResponseFromEntity(&facilities[i]))
	}
	response.OK(w, out)
}

// Get handles GET /facilities/{slug}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	f, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, ErrFacilityNotFound) {
			response.NotFound(w, "Facility not found")
			return
		}
		response.InternalError(w)
		return
	}

	services, err := h.service.ListFacilityServices(r.Context(), f.ID)
	if err != nil {
		response.InternalError(w)
		return
	}
	items, err := h.service.ListAcceptedItems(r.Context(), f.ID)
	if err != nil {
		response.InternalError(w)
		return
	}

	detail := FacilityDetailResponse{
		FacilityResponse: *FacilityResponseFromEntity(f),
		Services:         make([]ServiceResponse, 0, len(services)),
		AcceptedItems:    make([]AcceptedItemResponse, 0, len(items)),
	}
	for _, s := range services {
		detail.Services = append(detail.Services, ServiceResponse{
			Name: s.Name, Slug: s.Slug, Description: s.Description, Icon: s.Icon,
		})
	}
	for _, item := range items {
		detail.AcceptedItems = append(detail.AcceptedItems, AcceptedItemResponse{
			Category: item.Category, Notes: item.Notes,
		})
	}

	response.OK(w, detail)
}

// ListServices handles GET /facilities/services
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.ListServices(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, ServiceResponse{Name: s.Name, Slug: s.Slug, Description: s.Description, Icon: s.Icon})
	}
	response.OK(w, out)
}
