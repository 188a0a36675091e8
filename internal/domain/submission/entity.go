package submission

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status of a device submission
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusReceived  Status = "received"
	StatusCredited  Status = "credited"
	StatusCancelled Status = "cancelled"
)

// IsValid reports whether s is a known status value.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusReceived, StatusCredited, StatusCancelled:
		return true
	}
	return false
}

// Submission records one device handed in for recycling. Rows are never
// deleted; deleting the account nullifies user_id and the submission stays
// for audit.
type Submission struct {
	ID                   uuid.UUID       `db:"id"`
	UserID               *uuid.UUID      `db:"user_id"`
	DeviceModelID        *uuid.UUID      `db:"device_model_id"`
	CustomDeviceName     string          `db:"custom_device_name"`
	DeviceType           string          `db:"device_type"`
	FacilityID           *uuid.UUID      `db:"facility_id"`
	Status               Status          `db:"status"`
	EstimatedMetalMass   decimal.Decimal `db:"estimated_precious_metal_mass"`
	EstimatedCreditValue decimal.Decimal `db:"estimated_credit_value"`
	MessageToFacility    string          `db:"message_to_facility"`
	PickupAddress        string          `db:"pickup_address"`
	CatalogEntryCreated  bool            `db:"catalog_entry_created"`
	CreditsAwarded       bool            `db:"credits_awarded"`
	SubmittedAt          time.Time       `db:"submitted_at"`
	UpdatedAt            time.Time       `db:"updated_at"`
}

// CanBeUpdatedTo checks if status transition is valid. Credited and
// cancelled are final: there is no clawback path once credits are issued.
func (s *Submission) CanBeUpdatedTo(newStatus Status) bool {
	transitions := map[Status][]Status{
		StatusDraft:     {StatusPending, StatusCancelled},
		StatusPending:   {StatusReceived, StatusCancelled},
		StatusReceived:  {StatusCredited, StatusCancelled},
		StatusCredited:  {}, // Final state
		StatusCancelled: {}, // Final state
	}

	allowed, ok := transitions[s.Status]
	if !ok {
		return false
	}

	for _, st := range allowed {
		if st == newStatus {
			return true
		}
	}
	return false
}

// DisplayName returns the best human-readable name for the device.
func (s *Submission) DisplayName() string {
	if s.CustomDeviceName != "" {
		return s.CustomDeviceName
	}
	if s.DeviceType != "" {
		return s.DeviceType
	}
	return "Custom device"
}
