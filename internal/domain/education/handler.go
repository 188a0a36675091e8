package education

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ecoloop/ecoloop-api/internal/pkg/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListComponents(w http.ResponseWriter, r *http.Request) {
	level := HazardLevel(r.URL.Query().Get("hazard_level"))
	switch level {
	case "", HazardLow, HazardModerate, HazardHigh, HazardExtreme:
	default:
		response.BadRequest(w, "Unknown hazard level")
		return
	}

	limit, offset := parsePagination(r)
	components, err := h.service.ListComponents(r.Context(), level, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]ComponentResponse, 0, len(components))
	for i := range components {
		out = append(out, NewComponentResponse(&components[i]))
	}
	response.OK(w, out)
}

func (h *Handler) GetComponent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	c, err := h.service.GetComponent(r.Context(), slug)
	if err != nil {
		if errors.Is(err, ErrComponentNotFound) {
			response.NotFound(w, "Hazardous component not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, NewComponentResponse(c))
}

func (h *Handler) ListModules(w http.ResponseWriter, r *http.Request) {
	moduleType := ModuleType(r.URL.Query().Get("type"))
	switch moduleType {
	case "", ModuleAwareness, ModuleAction, ModuleDeepDive:
	default:
		response.BadRequest(w, "Unknown module type")
		return
	}

	limit, offset := parsePagination(r)
	modules, err := h.service.ListModules(r.Context(), moduleType, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]ModuleResponse, 0, len(modules))
	for i := range modules {
		out = append(out, NewModuleResponse(&modules[i]))
	}
	response.OK(w, out)
}

func (h *Handler) GetModule(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	m, components, err := h.service.GetModule(r.Context(), slug)
	if err != nil {
		if errors.Is(err, ErrModuleNotFound) {
			response.NotFound(w, "Learning module not found")
			return
		}
		response.InternalError(w)
		return
	}

	detail := ModuleDetailResponse{
		ModuleResponse: NewModuleResponse(m),
		Body:           m.Body,
		Components:     make([]ComponentResponse, 0, len(components)),
	}
	for i := range components {
		detail.Components = append(detail.Components, NewComponentResponse(&components[i]))
	}
	response.OK(w, detail)
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
