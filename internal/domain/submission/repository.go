package submission

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
	Create(ctx context.Context, s *Submission) error
	GetByID(ctx context.Context, id uuid.UUID) (*Submission, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Submission, error)
	ListAll(ctx context.Context, status Status, limit, offset int) ([]Submission, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)

	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*Submission, error)
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status Status) error
	SetCatalogEntryTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, deviceModelID *uuid.UUID) error
	SetCreditsAwardedTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error
	UpdateEstimates(ctx context.Context, id uuid.UUID, s *Submission) error
}

// SubmissionRepository provides device submission persistence.
type SubmissionRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, nil)
}

func (r *SubmissionRepository) Create(ctx context.Context, s *Submission) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx2, `
		INSERT INTO device_submissions
			(id, user_id, device_model_id, custom_device_name, device_type, facility_id,
			 status, estimated_precious_metal_mass, estimated_credit_value,
			 message_to_facility, pickup_address, catalog_entry_created, credits_awarded)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, false, false)
	`, s.ID, s.UserID, s.DeviceModelID, s.CustomDeviceName, s.DeviceType, s.FacilityID,
		s.Status, s.EstimatedMetalMass, s.EstimatedCreditValue,
		s.MessageToFacility, s.PickupAddress)
	if err != nil {
		return fmt.Errorf("%w: create submission", ErrInternal)
	}
	return nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Submission, error) {
	var s Submission
	err := r.db.GetContext(ctx, &s, `SELECT * FROM device_submissions WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("%w: get submission", ErrInternal)
	}
	return &s, nil
}

func (r *SubmissionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Submission, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 {
		limit = 20
	}

	submissions := make([]Submission, 0)
	err := r.db.SelectContext(ctx2, &submissions, `
		SELECT * FROM device_submissions
		WHERE user_id = $1
		ORDER BY submitted_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list submissions", ErrInternal)
	}
	return submissions, nil
}

func (r *SubmissionRepository) ListAll(ctx context.Context, status Status, limit, offset int) ([]Submission, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 {
		limit = 20
	}

	query := `SELECT * FROM device_submissions`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY submitted_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	submissions := make([]Submission, 0)
	if err := r.db.SelectContext(ctx2, &submissions, query, args...); err != nil {
		return nil, fmt.Errorf("%w: list submissions", ErrInternal)
	}
	return submissions, nil
}

func (r *SubmissionRepository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows := []struct {
		Status Status `db:"status"`
		Count  int    `db:"count"`
	}{}
	err := r.db.SelectContext(ctx2, &rows, `
		SELECT status, COUNT(*) AS count FROM device_submissions GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: count submissions", ErrInternal)
	}

	counts := make(map[Status]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// GetByIDTx loads a submission with a FOR UPDATE row lock. Concurrent status
// updates on the same submission serialize on this lock, which is what makes
// the materialization and credit flags reliable.
func (r *SubmissionRepository) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*Submission, error) {
	var s Submission
	err := tx.GetContext(ctx, &s, `SELECT * FROM device_submissions WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("%w: lock submission row", ErrInternal)
	}
	return &s, nil
}

func (r *SubmissionRepository) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status Status) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE device_submissions SET status = $2, updated_at = NOW() WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("%w: update submission status", ErrInternal)
	}
	return nil
}

// SetCatalogEntryTx records the materialized catalog link. The flag is
// monotonic: it is only ever set to true.
func (r *SubmissionRepository) SetCatalogEntryTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, deviceModelID *uuid.UUID) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE device_submissions
		SET device_model_id = COALESCE($2, device_model_id), catalog_entry_created = true, updated_at = NOW()
		WHERE id = $1
	`, id, deviceModelID)
	if err != nil {
		return fmt.Errorf("%w: mark catalog entry created", ErrInternal)
	}
	return nil
}

// SetCreditsAwardedTx marks the submission as credited. Monotonic.
func (r *SubmissionRepository) SetCreditsAwardedTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE device_submissions SET credits_awarded = true, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("%w: mark credits awarded", ErrInternal)
	}
	return nil
}

// UpdateEstimates persists valuation output on a fresh submission.
func (r *SubmissionRepository) UpdateEstimates(ctx context.Context, id uuid.UUID, s *Submission) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE device_submissions
		SET estimated_precious_metal_mass = $2, estimated_credit_value = $3, updated_at = NOW()
		WHERE id = $1
	`, id, s.EstimatedMetalMass, s.EstimatedCreditValue)
	if err != nil {
		return fmt.Errorf("%w: update submission estimates", ErrInternal)
	}
	return nil
}
