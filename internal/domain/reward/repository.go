package reward

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

type Repository interface {
	ListActive(ctx context.Context, limit, offset int) ([]Reward, error)
	GetBySlug(ctx context.Context, slug string) (*Reward, error)
	ListRedemptionsByProfile(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]RewardRedemption, error)
	ListAllRedemptions(ctx context.Context, status RedemptionStatus, limit, offset int) ([]RewardRedemption, error)

	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	GetBySlugTx(ctx context.Context, tx *sqlx.Tx, slug string) (*Reward, error)
	CreateRedemptionTx(ctx context.Context, tx *sqlx.Tx, redemption *RewardRedemption) error
	GetRedemptionByIDTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*RewardRedemption, error)
	UpdateRedemptionStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status RedemptionStatus, fulfilledBy *uuid.UUID, notes string) error
}

// RewardRepository persists rewards and their redemptions.
type RewardRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *RewardRepository {
	return &RewardRepository{db: db}
}

func (r *RewardRepository) ListActive(ctx context.Context, limit, offset int) ([]Reward, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 {
		limit = 20
	}

	rewards := make([]Reward, 0)
	err := r.db.SelectContext(ctx2, &rewards, `
		SELECT * FROM rewards
		WHERE is_active = true
		ORDER BY points_required, name
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list rewards", ErrInternal)
	}
	return rewards, nil
}

func (r *RewardRepository) GetBySlug(ctx context.Context, slug string) (*Reward, error) {
	var rw Reward
	err := r.db.GetContext(ctx, &rw, `SELECT * FROM rewards WHERE slug = $1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRewardNotFound
		}
		return nil, fmt.Errorf("%w: get reward", ErrInternal)
	}
	return &rw, nil
}

func (r *RewardRepository) ListRedemptionsByProfile(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]RewardRedemption, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 {
		limit = 20
	}

	redemptions := make([]RewardRedemption, 0)
	err := r.db.SelectContext(ctx2, &redemptions, `
		SELECT * FROM reward_redemptions
		WHERE profile_id = $1
		ORDER BY requested_at DESC
		LIMIT $2 OFFSET $3
	`, profileID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list redemptions", ErrInternal)
	}
	return redemptions, nil
}

func (r *RewardRepository) ListAllRedemptions(ctx context.Context, status RedemptionStatus, limit, offset int) ([]RewardRedemption, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 {
		limit = 20
	}

	query := `SELECT * FROM reward_redemptions`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY requested_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	redemptions := make([]RewardRedemption, 0)
	if err := r.db.SelectContext(ctx2, &redemptions, query, args...); err != nil {
		return nil, fmt.Errorf("%w: list all redemptions", ErrInternal)
	}
	return redemptions, nil
}

func (r *RewardRepository) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin tx", ErrInternal)
	}
	return tx, nil
}

func (r *RewardRepository) GetBySlugTx(ctx context.Context, tx *sqlx.Tx, slug string) (*Reward, error) {
	var rw Reward
	err := tx.GetContext(ctx, &rw, `SELECT * FROM rewards WHERE slug = $1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRewardNotFound
		}
		return nil, fmt.Errorf("%w: get reward", ErrInternal)
	}
	return &rw, nil
}

func (r *RewardRepository) CreateRedemptionTx(ctx context.Context, tx *sqlx.Tx, redemption *RewardRedemption) error {
	if redemption.ID == uuid.Nil {
		redemption.ID = uuid.New()
	}
	now := time.Now()
	redemption.RequestedAt = now
	redemption.UpdatedAt = now
	if redemption.Status == "" {
		redemption.Status = RedemptionPending
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO reward_redemptions (id, profile_id, reward_id, status, points_spent, requested_at, fulfillment_notes, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, redemption.ID, redemption.ProfileID, redemption.RewardID, redemption.Status,
		redemption.PointsSpent, redemption.RequestedAt, redemption.FulfillmentNotes, redemption.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: create redemption", ErrInternal)
	}
	return nil
}

// GetRedemptionByIDTx locks the redemption row, serializing concurrent
// status updates so a cancellation can refund at most once.
func (r *RewardRepository) GetRedemptionByIDTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*RewardRedemption, error) {
	var red RewardRedemption
	err := tx.GetContext(ctx, &red, `SELECT * FROM reward_redemptions WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRedemptionNotFound
		}
		return nil, fmt.Errorf("%w: get redemption", ErrInternal)
	}
	return &red, nil
}

func (r *RewardRepository) UpdateRedemptionStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status RedemptionStatus, fulfilledBy *uuid.UUID, notes string) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE reward_redemptions
		SET status = $2, fulfilled_by = $3, fulfillment_notes = $4, updated_at = $5
		WHERE id = $1
	`, id, status, fulfilledBy, notes, time.Now())
	if err != nil {
		return fmt.Errorf("%w: update redemption status", ErrInternal)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected", ErrInternal)
	}
	if rows == 0 {
		return ErrRedemptionNotFound
	}
	return nil
}
