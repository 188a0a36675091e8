package facility

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Facility is a physical drop-off or collection point.
type Facility struct {
	ID                  uuid.UUID        `db:"id"`
	Name                string           `db:"name"`
	Slug                string           `db:"slug"`
	Tagline             string           `db:"tagline"`
	Description         string           `db:"description"`
	StreetAddress       string           `db:"street_address"`
	City                string           `db:"city"`
	StateProvince       string           `db:"state_province"`
	PostalCode          string           `db:"postal_code"`
	Country             string           `db:"country"`
	Latitude            *decimal.Decimal `db:"latitude"`
	Longitude           *decimal.Decimal `db:"longitude"`
	PhoneNumber         string           `db:"phone_number"`
	Email               string           `db:"email"`
	Website             string           `db:"website"`
	DropOffInstructions string           `db:"drop_off_instructions"`
	IsVerified          bool             `db:"is_verified"`
	CreatedAt           time.Time        `db:"created_at"`
	UpdatedAt           time.Time        `db:"updated_at"`
}

// FullAddress renders the street-level address on one line.
func (f *Facility) FullAddress() string {
	return f.StreetAddress + ", " + f.City + ", " + f.StateProvince + " " + f.PostalCode
}

// ServiceItem is a named service a facility offers (pickup, data wiping, ...).
type ServiceItem struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Description string    `db:"description"`
	Icon        string    `db:"icon"`
}

// AcceptedItem is a device category a facility takes, with optional notes.
type AcceptedItem struct {
	ID         uuid.UUID `db:"id"`
	FacilityID uuid.UUID `db:"facility_id"`
	Category   string    `db:"category"`
	Notes      string    `db:"notes"`
}

// ListFilter narrows the facility listing.
type ListFilter struct {
	Query       string
	City        string
	ServiceSlug string
	Limit       int
	Offset      int
}
