package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// FallbackManufacturer is used when a derived device name has no
	// manufacturer token of its own.
	FallbackManufacturer = "Recovered"

	// FallbackCategoryName is the category for devices whose type is unknown.
	FallbackCategoryName = "Uncategorized"

	// DefaultRecoveryNotes is applied to auto-created models with no
	// facility message to borrow from.
	DefaultRecoveryNotes = "Automatically generated from community submission."
)

// DeviceCategory groups device models by kind (phones, laptops, ...).
type DeviceCategory struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Description string    `db:"description"`
	Icon        string    `db:"icon"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// DeviceModel is a catalog entry for a known device. Rows are created by
// staff or materialized automatically from community submissions.
// (manufacturer, model_name) is unique.
type DeviceModel struct {
	ID                     uuid.UUID       `db:"id"`
	CategoryID             uuid.UUID       `db:"category_id"`
	Manufacturer           string          `db:"manufacturer"`
	ModelName              string          `db:"model_name"`
	Slug                   string          `db:"slug"`
	ReleaseYear            *int            `db:"release_year"`
	EstimatedPoints        decimal.Decimal `db:"estimated_points"`
	EstimatedRecoveryNotes string          `db:"estimated_recovery_notes"`
	ImageURL               string          `db:"image_url"`
	CreatedAt              time.Time       `db:"created_at"`
	UpdatedAt              time.Time       `db:"updated_at"`
}

// DisplayName returns "<manufacturer> <model>" for user-facing text.
func (m *DeviceModel) DisplayName() string {
	if m.Manufacturer == "" {
		return m.ModelName
	}
	return m.Manufacturer + " " + m.ModelName
}

// MaterialEstimate is reference data: the expected recoverable material
// content of one device model. Never mutated by the submission lifecycle.
type MaterialEstimate struct {
	ID                 uuid.UUID       `db:"id"`
	DeviceModelID      uuid.UUID       `db:"device_model_id"`
	MaterialName       string          `db:"material_name"`
	EstimatedMassGrams decimal.Decimal `db:"estimated_mass_grams"`
	EstimatedValue     decimal.Decimal `db:"estimated_value"`
	CreatedAt          time.Time       `db:"created_at"`
}

// ModelComponent is a hazardous component linked to a device model,
// read from the education tables for display on the model page.
type ModelComponent struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	HazardLevel string    `db:"hazard_level"`
}

// ListFilter narrows the catalog listing.
type ListFilter struct {
	Query        string
	CategorySlug string
	Limit        int
	Offset       int
}

// ModelDefaults are applied when materialization creates a model that does
// not exist yet. On an existing model only empty fields are backfilled.
type ModelDefaults struct {
	CategoryID      uuid.UUID
	EstimatedPoints decimal.Decimal
	RecoveryNotes   string
}
