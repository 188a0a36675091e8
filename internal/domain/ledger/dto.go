package ledger

import (
	"github.com/google/uuid"
)

// UpdateProfileRequest for PATCH /profile
type UpdateProfileRequest struct {
	AvatarURL       *string `json:"avatar_url" validate:"omitempty,url"`
	PhoneNumber     *string `json:"phone_number" validate:"omitempty,max=20"`
	HomeLocation    *string `json:"home_location" validate:"omitempty,max=255"`
	NewsletterOptIn *bool   `json:"newsletter_opt_in"`
}

// ProfileResponse represents a profile in API responses
type ProfileResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	PhoneNumber     string    `json:"phone_number,omitempty"`
	HomeLocation    string    `json:"home_location,omitempty"`
	TotalCredits    string    `json:"total_credits"`
	NewsletterOptIn bool      `json:"newsletter_opt_in"`
	CreatedAt       string    `json:"created_at"`
}

// TransactionResponse represents a ledger row in API responses
type TransactionResponse struct {
	ID        uuid.UUID `json:"id"`
	Amount    string    `json:"amount"`
	Reason    string    `json:"reason,omitempty"`
	Source    string    `json:"source,omitempty"`
	CreatedAt string    `json:"created_at"`
}

// ProfileResponseFromEntity converts entity to response DTO
func ProfileResponseFromEntity(p *UserProfile) *ProfileResponse {
	return &ProfileResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		AvatarURL:       p.AvatarURL,
		PhoneNumber:     p.PhoneNumber,
		HomeLocation:    p.HomeLocation,
		TotalCredits:    p.TotalCredits.StringFixed(2),
		NewsletterOptIn: p.NewsletterOptIn,
		CreatedAt:       p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// TransactionResponseFromEntity converts entity to response DTO
func TransactionResponseFromEntity(t *CreditTransaction) *TransactionResponse {
	return &TransactionResponse{
		ID:        t.ID,
		Amount:    t.Amount.StringFixed(2),
		Reason:    t.Reason,
		Source:    t.Source,
		CreatedAt: t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
