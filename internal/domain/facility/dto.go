package facility

import "github.com/google/uuid"

// FacilityResponse represents a facility in API responses
type FacilityResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Slug                string    `json:"slug"`
	Tagline             string    `json:"tagline,omitempty"`
	Description         string    `json:"description,omitempty"`
	FullAddress         string    `json:"full_address"`
	City                string    `json:"city"`
	Country             string    `json:"country"`
	Latitude            *string   `json:"latitude,omitempty"`
	Longitude           *string   `json:"longitude,omitempty"`
	PhoneNumber         string    `json:"phone_number,omitempty"`
	Email               string    `json:"email,omitempty"`
	Website             string    `json:"website,omitempty"`
	DropOffInstructions string    `json:"drop_off_instructions,omitempty"`
	IsVerified          bool      `json:"is_verified"`
}

// FacilityDetailResponse adds services and accepted items
type FacilityDetailResponse struct {
	FacilityResponse
	Services      []ServiceResponse      `json:"services"`
	AcceptedItems []AcceptedItemResponse `json:"accepted_items"`
}

// ServiceResponse represents an offered service
type ServiceResponse struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// AcceptedItemResponse represents an accepted device category
type AcceptedItemResponse struct {
	Category string `json:"category"`
	Notes    string `json:"notes,omitempty"`
}

// FacilityResponseFromEntity converts entity to response DTO
func FacilityResponseFromEntity(f *Facility) *FacilityResponse {
	resp := &FacilityResponse{
		ID:                  f.ID,
		Name:                f.Name,
		Slug:                f.Slug,
		Tagline:             f.Tagline,
		Description:         f.Description,
		FullAddress:         f.FullAddress(),
		City:                f.City,
		Country:             f.Country,
		PhoneNumber:         f.PhoneNumber,
		Email:               f.Email,
		Website:             f.Website,
		DropOffInstructions: f.DropOffInstructions,
		IsVerified:          f.IsVerified,
	}
	if f.Latitude != nil {
		v := f.Latitude.StringFixed(6)
		resp.Latitude = &v
	}
	if f.Longitude != nil {
		v := f.Longitude.StringFixed(6)
		resp.Longitude = &v
	}
	return resp
}
