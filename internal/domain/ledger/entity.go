package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Source identifies what produced a credit adjustment.
const (
	SourceDeviceSubmission = "device-submission"
	SourceRewardRedemption = "reward-redemption"
	SourceManual           = "manual"
)

// UserProfile holds the running credit balance for one account.
// total_credits is maintained as a running sum by Adjust, never recomputed
// from the transaction log.
type UserProfile struct {
	ID              uuid.UUID       `db:"id"`
	UserID          uuid.UUID       `db:"user_id"`
	AvatarURL       string          `db:"avatar_url"`
	PhoneNumber     string          `db:"phone_number"`
	HomeLocation    string          `db:"home_location"`
	TotalCredits    decimal.Decimal `db:"total_credits"`
	NewsletterOptIn bool            `db:"newsletter_opt_in"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// CreditTransaction is an immutable ledger row. Rows are only ever inserted,
// and listed newest-first.
type CreditTransaction struct {
	ID        uuid.UUID       `db:"id"`
	ProfileID uuid.UUID       `db:"profile_id"`
	Amount    decimal.Decimal `db:"amount"`
	Reason    string          `db:"reason"`
	Source    string          `db:"source"`
	CreatedAt time.Time       `db:"created_at"`
}

// Pagination controls simple list pagination.
type Pagination struct {
	Limit  int
	Offset int
}
