package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ecoloop/ecoloop-api/internal/pkg/response"
	"github.com/ecoloop/ecoloop-api/internal/pkg/validator"
)

// MaxImageSize caps catalog image uploads at 10 MB.
const MaxImageSize = 10 * 1024 * 1024

// Handler handles catalog HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates catalog handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListModels handles GET /catalog
func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Query:        r.URL.Query().Get("q"),
		CategorySlug: r.URL.Query().Get("category"),
		Limit:        20,
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

	models, err := h.service.ListModels(r.Context(), filter)
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]*ModelResponse, 0, len(models))
	for i := range models {
		out = append(out, ModelResponseFromEntity(&models[i]))
	}
	response.OK(w, out)
}

// GetModel handles GET /catalog/{slug}
func (h *Handler) GetModel(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	model, err := h.service.GetModelBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, ErrModelNotFound) {
			response.NotFound(w, "Device model not found")
			return
		}
		response.InternalError(w)
		return
	}

	components, err := h.service.ListModelComponents(r.Context(), model.ID)
	if err != nil {
		response.InternalError(w)
		return
	}
	estimates, err := h.service.ListMaterialEstimates(r.Context(), model.ID)
	if err != nil {
		response.InternalError(w)
		return
	}

	detail := ModelDetailResponse{
		ModelResponse:     *ModelResponseFromEntity(model),
		Components:        make([]ComponentResponse, 0, len(components)),
		MaterialEstimates: make([]MaterialEstimateResponse, 0, len(estimates)),
	}
	for _, c := range components {
		detail.Components = append(detail.Components, ComponentResponse{
			ID: c.ID, Name: c.Name, Slug: c.Slug, HazardLevel: c.HazardLevel,
		})
	}
	for _, e := range estimates {
		detail.MaterialEstimates = append(detail.MaterialEstimates, MaterialEstimateResponse{
			MaterialName:       e.MaterialName,
			EstimatedMassGrams: e.EstimatedMassGrams.StringFixed(2),
			EstimatedValue:     e.EstimatedValue.StringFixed(2),
		})
	}

	response.OK(w, detail)
}

// ListCategories handles GET /catalog/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]*CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, CategoryResponseFromEntity(&categories[i]))
	}
	response.OK(w, out)
}

// CreateCategory handles POST /catalog/categories (staff)
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	category, err := h.service.CreateCategory(r.Context(), req.Name, req.Description, req.Icon)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.Created(w, CategoryResponseFromEntity(category))
}

// CreateModel handles POST /catalog (staff)
func (h *Handler) CreateModel(w http.ResponseWriter, r *http.Request) {
	var req CreateModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	points, err := ParsePoints(req.EstimatedPoints)
	if err != nil {
		response.BadRequest(w, "Invalid estimated_points")
		return
	}

	category, err := h.service.GetCategoryBySlug(r.Context(), req.CategorySlug)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			response.NotFound(w, "Category not found")
			return
		}
		response.InternalError(w)
		return
	}

	model := &DeviceModel{
		CategoryID:             category.ID,
		Manufacturer:           req.Manufacturer,
		ModelName:              req.ModelName,
		ReleaseYear:            req.ReleaseYear,
		EstimatedPoints:        points,
		EstimatedRecoveryNotes: req.EstimatedRecoveryNotes,
	}

	if err := h.service.CreateModel(r.Context(), model); err != nil {
		if errors.Is(err, ErrDuplicateModel) {
			response.Conflict(w, "Device model already exists")
			return
		}
		response.InternalError(w)
		return
	}
	response.Created(w, ModelResponseFromEntity(model))
}

// UpdateModel handles PUT /catalog/{slug} (staff)
func (h *Handler) UpdateModel(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	model, err := h.service.GetModelBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, ErrModelNotFound) {
			response.NotFound(w, "Device model not found")
			return
		}
		response.InternalError(w)
		return
	}

	var req UpdateModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if req.Manufacturer != nil {
		model.Manufacturer = *req.Manufacturer
	}
	if req.ModelName != nil {
		model.ModelName = *req.ModelName
	}
	if req.ReleaseYear != nil {
		model.ReleaseYear = req.ReleaseYear
	}
	if req.EstimatedPoints != nil {
		points, err := ParsePoints(*req.EstimatedPoints)
		if err != nil {
			response.BadRequest(w, "Invalid estimated_points")
			return
		}
		model.EstimatedPoints = points
	}
	if req.EstimatedRecoveryNotes != nil {
		model.EstimatedRecoveryNotes = *req.EstimatedRecoveryNotes
	}
	if req.CategorySlug != nil {
		category, err := h.service.GetCategoryBySlug(r.Context(), *req.CategorySlug)
		if err != nil {
			if errors.Is(err, ErrCategoryNotFound) {
				response.NotFound(w, "Category not found")
				return
			}
			response.InternalError(w)
			return
		}
		model.CategoryID = category.ID
	}

	if err := h.service.UpdateModel(r.Context(), model); err != nil {
		if errors.Is(err, ErrDuplicateModel) {
			response.Conflict(w, "Device model already exists")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, ModelResponseFromEntity(model))
}

// DeleteModel handles DELETE /catalog/{slug} (staff)
func (h *Handler) DeleteModel(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if err := h.service.DeleteModel(r.Context(), slug); err != nil {
		if errors.Is(err, ErrModelNotFound) {
			response.NotFound(w, "Device model not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.NoContent(w)
}

// UploadImage handles POST /catalog/{slug}/image (staff, multipart)
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if err := r.ParseMultipartForm(MaxImageSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "Missing image file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	url, err := h.service.UploadModelImage(r.Context(), slug, header.Filename, contentType, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrModelNotFound):
			response.NotFound(w, "Device model not found")
		case errors.Is(err, ErrStorageUnavailable):
			response.Unprocessable(w, "STORAGE_UNAVAILABLE", "Image uploads are not configured")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"image_url": url})
}
