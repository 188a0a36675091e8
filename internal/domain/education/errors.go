package education

import "errors"

var (
	// ErrComponentNotFound is returned when no component matches the lookup
	ErrComponentNotFound = errors.New("hazardous component not found")

	// ErrModuleNotFound is returned when no learning module matches the lookup
	ErrModuleNotFound = errors.New("learning module not found")

	ErrInternal = errors.New("internal error")
)
