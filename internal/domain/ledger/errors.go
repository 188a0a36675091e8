package ledger

import "errors"

var (
	// ErrProfileNotFound is returned when no profile exists for the lookup
	ErrProfileNotFound = errors.New("profile not found")

	// ErrInsufficientCredits is returned when a deduction would take the balance below zero
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrInvalidAmount is returned when the adjustment amount is zero
	ErrInvalidAmount = errors.New("invalid amount: must be non-zero")

	ErrInternal = errors.New("internal error")
)
