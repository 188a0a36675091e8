package catalog

import "errors"

var (
	// ErrCategoryNotFound is returned when no category matches the lookup
	ErrCategoryNotFound = errors.New("category not found")

	// ErrModelNotFound is returned when no device model matches the lookup
	ErrModelNotFound = errors.New("device model not found")

	// ErrDuplicateModel is returned when (manufacturer, model_name) already exists
	ErrDuplicateModel = errors.New("device model already exists")

	// ErrInvalidPoints is returned for a negative points value
	ErrInvalidPoints = errors.New("estimated points must be non-negative")

	// ErrStorageUnavailable is returned when no object storage is configured
	ErrStorageUnavailable = errors.New("object storage not configured")

	ErrInternal = errors.New("internal error")
)
