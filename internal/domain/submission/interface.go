package submission

import (
	"context"

	"github.com/google/uuid"
)

// FacilityRef is the slice of facility data the lifecycle needs.
type FacilityRef struct {
	ID   uuid.UUID
	Name string
	Slug string
}

// FacilityDirectory resolves drop-off facilities. Implemented by an adapter
// over the facility service in cmd/api.
type FacilityDirectory interface {
	GetFacility(ctx context.Context, id uuid.UUID) (*FacilityRef, error)
}
