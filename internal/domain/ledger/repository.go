package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const queryTimeout = 3 * time.Second

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*UserProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*UserProfile, error)
	GetOrCreateByUserID(ctx context.Context, userID uuid.UUID) (*UserProfile, error)
	GetOrCreateByUserIDTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) (*UserProfile, error)
	UpdateDetails(ctx context.Context, profile *UserProfile) error
	Adjust(ctx context.Context, profileID uuid.UUID, amount decimal.Decimal, reason, source string) error
	AdjustTx(ctx context.Context, tx *sqlx.Tx, profileID uuid.UUID, amount decimal.Decimal, reason, source string) error
	ListTransactions(ctx context.Context, profileID uuid.UUID, pagination Pagination) ([]CreditTransaction, error)
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
}

// LedgerRepository provides profile balance and credit ledger operations.
type LedgerRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, nil)
}

func (r *LedgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*UserProfile, error) {
	var p UserProfile
	err := r.db.GetContext(ctx, &p, `SELECT * FROM user_profiles WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("%w: get profile", ErrInternal)
	}
	return &p, nil
}

func (r *LedgerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*UserProfile, error) {
	var p UserProfile
	err := r.db.GetContext(ctx, &p, `SELECT * FROM user_profiles WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("%w: get profile by user", ErrInternal)
	}
	return &p, nil
}

// GetOrCreateByUserID returns the profile for a user, creating an empty one
// when missing. Safe under concurrent callers via ON CONFLICT DO NOTHING.
func (r *LedgerRepository) GetOrCreateByUserID(ctx context.Context, userID uuid.UUID) (*UserProfile, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx2, `
		INSERT INTO user_profiles (id, user_id, total_credits)
		VALUES ($1, $2, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, uuid.New(), userID)
	if err != nil {
		return nil, fmt.Errorf("%w: ensure profile", ErrInternal)
	}

	return r.GetByUserID(ctx2, userID)
}

// GetOrCreateByUserIDTx is GetOrCreateByUserID inside a caller-owned transaction.
func (r *LedgerRepository) GetOrCreateByUserIDTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) (*UserProfile, error) {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO user_profiles (id, user_id, total_credits)
		VALUES ($1, $2, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, uuid.New(), userID)
	if err != nil {
		return nil, fmt.Errorf("%w: ensure profile", ErrInternal)
	}

	var p UserProfile
	err = tx.GetContext(ctx, &p, `SELECT * FROM user_profiles WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("%w: get profile by user", ErrInternal)
	}
	return &p, nil
}

// UpdateDetails updates the non-balance profile fields. total_credits is
// deliberately excluded: Adjust/AdjustTx are its only writers.
func (r *LedgerRepository) UpdateDetails(ctx context.Context, profile *UserProfile) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx2, `
		UPDATE user_profiles
		SET avatar_url = $2, phone_number = $3, home_location = $4, newsletter_opt_in = $5, updated_at = NOW()
		WHERE id = $1
	`, profile.ID, profile.AvatarURL, profile.PhoneNumber, profile.HomeLocation, profile.NewsletterOptIn)
	if err != nil {
		return fmt.Errorf("%w: update profile", ErrInternal)
	}
	return nil
}

// Adjust applies a signed credit adjustment and appends the matching ledger
// row inside one transaction. Negative adjustments may not take the balance
// below zero.
func (r *LedgerRepository) Adjust(ctx context.Context, profileID uuid.UUID, amount decimal.Decimal, reason, source string) error {
	if amount.IsZero() {
		return ErrInvalidAmount
	}

	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	if err := r.AdjustTx(ctx2, tx, profileID, amount, reason, source); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit tx", ErrInternal)
	}

	return nil
}

// AdjustTx applies a signed credit adjustment within an external transaction
// using a FOR UPDATE row lock. The caller owns commit/rollback.
func (r *LedgerRepository) AdjustTx(ctx context.Context, tx *sqlx.Tx, profileID uuid.UUID, amount decimal.Decimal, reason, source string) error {
	if amount.IsZero() {
		return ErrInvalidAmount
	}

	var balance decimal.Decimal
	err := tx.QueryRowContext(ctx, `SELECT total_credits FROM user_profiles WHERE id = $1 FOR UPDATE`, profileID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("%w: lock profile row", ErrInternal)
	}

	if amount.IsNegative() && balance.Add(amount).IsNegative() {
		return ErrInsufficientCredits
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE user_profiles
		SET total_credits = total_credits + $2, updated_at = NOW()
		WHERE id = $1
	`, profileID, amount)
	if err != nil {
		return fmt.Errorf("%w: update profile balance", ErrInternal)
	}

	if err := r.insertTransaction(ctx, tx, profileID, amount, reason, source); err != nil {
		return err
	}

	return nil
}

func (r *LedgerRepository) ListTransactions(ctx context.Context, profileID uuid.UUID, pagination Pagination) ([]CreditTransaction, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	limit := pagination.Limit
	if limit <= 0 {
		limit = 20
	}

	transactions := make([]CreditTransaction, 0)
	err := r.db.SelectContext(ctx2, &transactions, `
		SELECT id, profile_id, amount, reason, source, created_at
		FROM credit_transactions
		WHERE profile_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, profileID, limit, pagination.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list transactions", ErrInternal)
	}

	return transactions, nil
}

func (r *LedgerRepository) insertTransaction(ctx context.Context, tx *sqlx.Tx, profileID uuid.UUID, amount decimal.Decimal, reason, source string) error {
	if source == "" {
		source = SourceManual
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO credit_transactions (id, profile_id, amount, reason, source)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New(), profileID, amount, reason, source)
	if err != nil {
		return fmt.Errorf("%w: insert transaction", ErrInternal)
	}

	return nil
}
