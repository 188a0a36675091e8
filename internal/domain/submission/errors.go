package submission

import "errors"

var (
	// ErrSubmissionNotFound is returned when no submission matches the lookup
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrInvalidStatusTransition is returned for a disallowed status change
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrDeviceRequired is returned when a submission names no device at all:
	// neither a catalog model reference nor custom name/type
	ErrDeviceRequired = errors.New("a device model reference or device name is required")

	// ErrFacilityRequired is returned when no drop-off facility is given
	ErrFacilityRequired = errors.New("a drop-off facility is required")

	ErrInternal = errors.New("internal error")
)
