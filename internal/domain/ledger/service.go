package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// Service interface defines credit ledger operations.
// Adjust/AdjustTx are the only sanctioned mutators of a profile's balance.
type Service interface {
	// EnsureProfile creates the profile for a newly registered account.
	// Idempotent: safe to call for accounts that already have one.
	EnsureProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error)

	// GetProfile returns the profile for a user
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error)

	// UpdateProfile updates contact/preference fields, never the balance
	UpdateProfile(ctx context.Context, profile *UserProfile) error

	// Adjust atomically applies a signed credit adjustment with its ledger row
	Adjust(ctx context.Context, profileID uuid.UUID, amount decimal.Decimal, reason, source string) error

	// AdjustTx applies an adjustment within an external transaction (FOR UPDATE
	// row lock). Used when the adjustment must be atomic with another operation,
	// e.g. crediting a device submission.
	AdjustTx(ctx context.Context, tx *sqlx.Tx, profileID uuid.UUID, amount decimal.Decimal, reason, source string) error

	// GetOrCreateProfileTx resolves (or defensively creates) a user's profile
	// inside a caller-owned transaction
	GetOrCreateProfileTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) (*UserProfile, error)

	// ListTransactions returns the user's ledger, newest first
	ListTransactions(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]CreditTransaction, error)
}

type service struct {
	repo Repository
}

// NewService creates a new ledger service
func NewService(db *sqlx.DB) Service {
	return &service{repo: NewRepository(db)}
}

func (s *service) EnsureProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error) {
	return s.repo.GetOrCreateByUserID(ctx, userID)
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error) {
	// Defensive get-or-create: profiles are created on registration, but an
	// account predating that hook may not have one yet.
	return s.repo.GetOrCreateByUserID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, profile *UserProfile) error {
	return s.repo.UpdateDetails(ctx, profile)
}

func (s *service) Adjust(ctx context.Context, profileID uuid.UUID, amount decimal.Decimal, reason, source string) error {
	return s.repo.Adjust(ctx, profileID, amount, reason, source)
}

func (s *service) AdjustTx(ctx context.Context, tx *sqlx.Tx, profileID uuid.UUID, amount decimal.Decimal, reason, source string) error {
	return s.repo.AdjustTx(ctx, tx, profileID, amount, reason, source)
}

func (s *service) GetOrCreateProfileTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) (*UserProfile, error) {
	return s.repo.GetOrCreateByUserIDTx(ctx, tx, userID)
}

func (s *service) ListTransactions(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]CreditTransaction, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListTransactions(ctx, profileID, Pagination{Limit: limit, Offset: offset})
}
