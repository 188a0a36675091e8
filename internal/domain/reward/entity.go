package reward

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RedemptionStatus tracks the fulfilment lifecycle of a redemption.
type RedemptionStatus string

const (
	RedemptionPending   RedemptionStatus = "pending"
	RedemptionFulfilled RedemptionStatus = "fulfilled"
	RedemptionCancelled RedemptionStatus = "cancelled"
)

func (s RedemptionStatus) IsValid() bool {
	switch s {
	case RedemptionPending, RedemptionFulfilled, RedemptionCancelled:
		return true
	}
	return false
}

// CanBeUpdatedTo reports whether a transition is allowed. Fulfilled and
// cancelled are final.
func (s RedemptionStatus) CanBeUpdatedTo(newStatus RedemptionStatus) bool {
	transitions := map[RedemptionStatus][]RedemptionStatus{
		RedemptionPending:   {RedemptionFulfilled, RedemptionCancelled},
		RedemptionFulfilled: {}, // Final state
		RedemptionCancelled: {}, // Final state
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == newStatus {
			return true
		}
	}
	return false
}

// Reward is a partner perk residents can spend credits on.
type Reward struct {
	ID             uuid.UUID       `db:"id"`
	Name           string          `db:"name"`
	Slug           string          `db:"slug"`
	Summary        string          `db:"summary"`
	Description    string          `db:"description"`
	PointsRequired decimal.Decimal `db:"points_required"`
	ImageURL       string          `db:"image_url"`
	PartnerURL     string          `db:"partner_url"`
	IsActive       bool            `db:"is_active"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// RewardRedemption records a spend against a reward. PointsSpent is frozen
// at redemption time so later price changes never affect refunds.
type RewardRedemption struct {
	ID               uuid.UUID        `db:"id"`
	ProfileID        uuid.UUID        `db:"profile_id"`
	RewardID         uuid.UUID        `db:"reward_id"`
	Status           RedemptionStatus `db:"status"`
	PointsSpent      decimal.Decimal  `db:"points_spent"`
	RequestedAt      time.Time        `db:"requested_at"`
	FulfilledBy      *uuid.UUID       `db:"fulfilled_by"`
	FulfillmentNotes string           `db:"fulfillment_notes"`
	UpdatedAt        time.Time        `db:"updated_at"`
}
