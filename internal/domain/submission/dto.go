package submission

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateRequest for POST /submissions
type CreateRequest struct {
	DeviceModelID        *uuid.UUID `json:"device_model_id"`
	CustomDeviceName     string     `json:"custom_device_name" validate:"omitempty,max=120"`
	DeviceType           string     `json:"device_type" validate:"omitempty,max=80"`
	FacilityID           *uuid.UUID `json:"facility_id"`
	EstimatedMetalMass   string     `json:"estimated_precious_metal_mass" validate:"omitempty"`
	EstimatedCreditValue string     `json:"estimated_credit_value" validate:"omitempty"`
	MessageToFacility    string     `json:"message_to_facility" validate:"omitempty,max=280"`
	PickupAddress        string     `json:"pickup_address" validate:"omitempty,max=1000"`
}

// UpdateStatusRequest for PATCH /submissions/{id}/status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,submission_status"`
}

// EstimateRequest for POST /submissions/estimate
type EstimateRequest struct {
	DeviceName        string   `json:"device_name" validate:"required,max=200"`
	DeviceCategory    string   `json:"device_category" validate:"omitempty,max=100"`
	FacilityName      string   `json:"facility_name" validate:"omitempty,max=200"`
	UserEstimatedMass string   `json:"user_estimated_mass" validate:"omitempty"`
	Components        []string `json:"components" validate:"omitempty,max=25,dive,max=120"`
	UserNotes         string   `json:"user_notes" validate:"omitempty,max=2000"`
	PickupAddress     string   `json:"pickup_address" validate:"omitempty,max=1000"`
}

// EstimateResponse for a successful estimate
type EstimateResponse struct {
	Success                         bool    `json:"success"`
	EstimatedPreciousMetalMassGrams *string `json:"estimated_precious_metal_mass_grams,omitempty"`
	EstimatedCreditValue            *string `json:"estimated_credit_value,omitempty"`
	Confidence                      string  `json:"confidence,omitempty"`
}

// SubmissionResponse represents a submission in API responses
type SubmissionResponse struct {
	ID                   uuid.UUID  `json:"id"`
	UserID               *uuid.UUID `json:"user_id,omitempty"`
	DeviceModelID        *uuid.UUID `json:"device_model_id,omitempty"`
	CustomDeviceName     string     `json:"custom_device_name,omitempty"`
	DeviceType           string     `json:"device_type,omitempty"`
	FacilityID           *uuid.UUID `json:"facility_id,omitempty"`
	FacilitySlug         string     `json:"facility_slug,omitempty"`
	Status               string     `json:"status"`
	EstimatedMetalMass   string     `json:"estimated_precious_metal_mass"`
	EstimatedCreditValue string     `json:"estimated_credit_value"`
	MessageToFacility    string     `json:"message_to_facility,omitempty"`
	PickupAddress        string     `json:"pickup_address,omitempty"`
	CatalogEntryCreated  bool       `json:"catalog_entry_created"`
	CreditsAwarded       bool       `json:"credits_awarded"`
	SubmittedAt          string     `json:"submitted_at"`
	UpdatedAt            string     `json:"updated_at"`
}

// SubmissionResponseFromEntity converts entity to response DTO
func SubmissionResponseFromEntity(s *Submission) *SubmissionResponse {
	return &SubmissionResponse{
		ID:                   s.ID,
		UserID:               s.UserID,
		DeviceModelID:        s.DeviceModelID,
		CustomDeviceName:     s.CustomDeviceName,
		DeviceType:           s.DeviceType,
		FacilityID:           s.FacilityID,
		Status:               string(s.Status),
		EstimatedMetalMass:   s.EstimatedMetalMass.StringFixed(2),
		EstimatedCreditValue: s.EstimatedCreditValue.StringFixed(2),
		MessageToFacility:    s.MessageToFacility,
		PickupAddress:        s.PickupAddress,
		CatalogEntryCreated:  s.CatalogEntryCreated,
		CreditsAwarded:       s.CreditsAwarded,
		SubmittedAt:          s.SubmittedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:            s.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// parseAmount parses an optional non-negative decimal request field.
func parseAmount(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d.Round(2), true
}
