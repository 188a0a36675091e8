package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest for POST /catalog/categories
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Icon        string `json:"icon" validate:"omitempty,max=100"`
}

// CreateModelRequest for POST /catalog
type CreateModelRequest struct {
	CategorySlug           string `json:"category_slug" validate:"required"`
	Manufacturer           string `json:"manufacturer" validate:"required,max=100"`
	ModelName              string `json:"model_name" validate:"required,max=200"`
	ReleaseYear            *int   `json:"release_year" validate:"omitempty,min=1950,max=2100"`
	EstimatedPoints        string `json:"estimated_points" validate:"omitempty"`
	EstimatedRecoveryNotes string `json:"estimated_recovery_notes" validate:"omitempty,max=2000"`
}

// UpdateModelRequest for PUT /catalog/{slug}
type UpdateModelRequest struct {
	CategorySlug           *string `json:"category_slug"`
	Manufacturer           *string `json:"manufacturer" validate:"omitempty,max=100"`
	ModelName              *string `json:"model_name" validate:"omitempty,max=200"`
	ReleaseYear            *int    `json:"release_year" validate:"omitempty,min=1950,max=2100"`
	EstimatedPoints        *string `json:"estimated_points"`
	EstimatedRecoveryNotes *string `json:"estimated_recovery_notes" validate:"omitempty,max=2000"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
}

// ModelResponse represents a device model in API responses
type ModelResponse struct {
	ID                     uuid.UUID `json:"id"`
	CategoryID             uuid.UUID `json:"category_id"`
	Manufacturer           string    `json:"manufacturer"`
	ModelName              string    `json:"model_name"`
	Slug                   string    `json:"slug"`
	ReleaseYear            *int      `json:"release_year,omitempty"`
	EstimatedPoints        string    `json:"estimated_points"`
	EstimatedRecoveryNotes string    `json:"estimated_recovery_notes,omitempty"`
	ImageURL               string    `json:"image_url,omitempty"`
}

// ModelDetailResponse adds reference data to the model page
type ModelDetailResponse struct {
	ModelResponse
	Components        []ComponentResponse        `json:"components"`
	MaterialEstimates []MaterialEstimateResponse `json:"material_estimates"`
}

// ComponentResponse represents a hazardous component link
type ComponentResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	HazardLevel string    `json:"hazard_level"`
}

// MaterialEstimateResponse represents recoverable material reference data
type MaterialEstimateResponse struct {
	MaterialName       string `json:"material_name"`
	EstimatedMassGrams string `json:"estimated_mass_grams"`
	EstimatedValue     string `json:"estimated_value"`
}

// CategoryResponseFromEntity converts entity to response DTO
func CategoryResponseFromEntity(c *DeviceCategory) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Icon:        c.Icon,
	}
}

// ModelResponseFromEntity converts entity to response DTO
func ModelResponseFromEntity(m *DeviceModel) *ModelResponse {
	return &ModelResponse{
		ID:                     m.ID,
		CategoryID:             m.CategoryID,
		Manufacturer:           m.Manufacturer,
		ModelName:              m.ModelName,
		Slug:                   m.Slug,
		ReleaseYear:            m.ReleaseYear,
		EstimatedPoints:        m.EstimatedPoints.StringFixed(2),
		EstimatedRecoveryNotes: m.EstimatedRecoveryNotes,
		ImageURL:               m.ImageURL,
	}
}

// ParsePoints parses a decimal points field from a request, rejecting
// negatives. Empty input yields zero.
func ParsePoints(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidPoints
	}
	return d.Round(2), nil
}
