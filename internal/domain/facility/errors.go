package facility

import "errors"

var (
	// ErrFacilityNotFound is returned when no facility matches the lookup
	ErrFacilityNotFound = errors.New("facility not found")

	ErrInternal = errors.New("internal error")
)
