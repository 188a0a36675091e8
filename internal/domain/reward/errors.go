package reward

import "errors"

var (
	ErrRewardNotFound     = errors.New("reward not found")
	ErrRedemptionNotFound = errors.New("redemption not found")

	// ErrRewardInactive is returned when redeeming a delisted reward
	ErrRewardInactive = errors.New("reward is not active")

	// ErrInvalidStatusTransition is returned on disallowed redemption
	// status changes
	ErrInvalidStatusTransition = errors.New("invalid redemption status transition")

	ErrInternal = errors.New("internal error")
)
