package submission

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/ecoloop/ecoloop-api/internal/domain/catalog"
	"github.com/ecoloop/ecoloop-api/internal/domain/ledger"
	"github.com/ecoloop/ecoloop-api/internal/domain/valuation"
)

// CreateInput carries a validated submission creation request.
type CreateInput struct {
	UserID               uuid.UUID
	DeviceModelID        *uuid.UUID
	CustomDeviceName     string
	DeviceType           string
	FacilityID           *uuid.UUID
	EstimatedMetalMass   string
	EstimatedCreditValue string
	MessageToFacility    string
	PickupAddress        string
}

// Service interface defines the device submission lifecycle.
type Service interface {
	// Create persists a pending submission and best-effort enriches its
	// estimates through the valuation adapter. Returns the submission and
	// the drop-off facility slug for the success redirect.
	Create(ctx context.Context, input CreateInput) (*Submission, string, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Submission, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Submission, error)
	ListAll(ctx context.Context, status Status, limit, offset int) ([]Submission, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)

	// UpdateStatus validates and applies a status transition. The status
	// write, catalog materialization, and credit issuance commit in one
	// transaction or not at all. Writing the current status is a no-op.
	UpdateStatus(ctx context.Context, id uuid.UUID, newStatus Status) (*Submission, error)

	// Estimate appraises a prospective device. A nil result means no
	// estimate could be produced.
	Estimate(ctx context.Context, req valuation.Request) (*valuation.Result, error)
}

type service struct {
	repo       Repository
	catalog    catalog.Service
	ledger     ledger.Service
	facilities FacilityDirectory
	estimator  valuation.Estimator
}

// NewService creates a new submission service. estimator may be nil when
// valuation is unconfigured.
func NewService(db *sqlx.DB, catalogSvc catalog.Service, ledgerSvc ledger.Service, facilities FacilityDirectory, estimator valuation.Estimator) Service {
	return &service{
		repo:       NewRepository(db),
		catalog:    catalogSvc,
		ledger:     ledgerSvc,
		facilities: facilities,
		estimator:  estimator,
	}
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Submission, string, error) {
	if input.DeviceModelID == nil &&
		strings.TrimSpace(input.CustomDeviceName) == "" &&
		strings.TrimSpace(input.DeviceType) == "" {
		return nil, "", ErrDeviceRequired
	}
	if input.FacilityID == nil {
		return nil, "", ErrFacilityRequired
	}

	facility, err := s.facilities.GetFacility(ctx, *input.FacilityID)
	if err != nil {
		return nil, "", ErrFacilityRequired
	}

	mass, ok := parseAmount(input.EstimatedMetalMass)
	if !ok {
		return nil, "", fmt.Errorf("%w: invalid mass estimate", ErrInternal)
	}
	value, ok := parseAmount(input.EstimatedCreditValue)
	if !ok {
		return nil, "", fmt.Errorf("%w: invalid credit estimate", ErrInternal)
	}

	userID := input.UserID
	sub := &Submission{
		ID:                   uuid.New(),
		UserID:               &userID,
		DeviceModelID:        input.DeviceModelID,
		CustomDeviceName:     strings.TrimSpace(input.CustomDeviceName),
		DeviceType:           strings.TrimSpace(input.DeviceType),
		FacilityID:           &facility.ID,
		Status:               StatusPending,
		EstimatedMetalMass:   mass,
		EstimatedCreditValue: value,
		MessageToFacility:    input.MessageToFacility,
		PickupAddress:        input.PickupAddress,
	}

	deviceName := sub.CustomDeviceName
	if input.DeviceModelID != nil {
		model, err := s.catalog.GetModelByID(ctx, *input.DeviceModelID)
		if err != nil {
			return nil, "", err
		}
		if deviceName == "" {
			deviceName = model.DisplayName()
		}
		// A referenced model seeds a missing credit estimate from its points.
		if sub.EstimatedCreditValue.IsZero() && model.EstimatedPoints.IsPositive() {
			sub.EstimatedCreditValue = model.EstimatedPoints
		}
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, "", err
	}

	s.enrichEstimates(ctx, sub, deviceName, facility.Name)

	return sub, facility.Slug, nil
}

// enrichEstimates applies best-effort valuation on top of the persisted
// baseline. Any failure leaves the baseline untouched.
func (s *service) enrichEstimates(ctx context.Context, sub *Submission, deviceName, facilityName string) {
	if s.estimator == nil {
		return
	}

	req := valuation.Request{
		DeviceName:     deviceName,
		DeviceCategory: sub.DeviceType,
		FacilityName:   facilityName,
		UserNotes:      sub.MessageToFacility,
		PickupAddress:  sub.PickupAddress,
	}
	if !sub.EstimatedMetalMass.IsZero() {
		mass := sub.EstimatedMetalMass
		req.UserEstimatedMass = &mass
	}

	result, err := s.estimator.Estimate(ctx, req)
	if err != nil || result == nil {
		return
	}

	changed := false
	if result.PreciousMetalMassGrams != nil {
		sub.EstimatedMetalMass = result.PreciousMetalMassGrams.Round(2)
		changed = true
	}
	if result.CreditValue != nil {
		sub.EstimatedCreditValue = result.CreditValue.Round(2)
		changed = true
	}
	if !changed {
		return
	}

	if err := s.repo.UpdateEstimates(ctx, sub.ID, sub); err != nil {
		log.Warn().Err(err).Str("submission_id", sub.ID.String()).Msg("failed to persist valuation estimates")
	}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Submission, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Submission, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *service) ListAll(ctx context.Context, status Status, limit, offset int) ([]Submission, error) {
	return s.repo.ListAll(ctx, status, limit, offset)
}

func (s *service) CountByStatus(ctx context.Context) (map[Status]int, error) {
	return s.repo.CountByStatus(ctx)
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus Status) (*Submission, error) {
	if !newStatus.IsValid() {
		return nil, ErrInvalidStatusTransition
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	sub, err := s.repo.GetByIDTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	// Writing the current status again is an idempotent no-op.
	if sub.Status == newStatus {
		return sub, nil
	}

	if !sub.CanBeUpdatedTo(newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, sub.Status, newStatus)
	}

	if err := s.repo.UpdateStatusTx(ctx, tx, sub.ID, newStatus); err != nil {
		return nil, err
	}
	sub.Status = newStatus

	if (newStatus == StatusReceived || newStatus == StatusCredited) && !sub.CatalogEntryCreated {
		if err := s.materializeTx(ctx, tx, sub); err != nil {
			return nil, err
		}
	}

	if newStatus == StatusCredited && !sub.CreditsAwarded {
		if err := s.awardCreditsTx(ctx, tx, sub); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit tx", ErrInternal)
	}

	return sub, nil
}

// materializeTx backs the submission with a catalog entry. Runs inside the
// status-update transaction: the flag and the catalog rows commit together.
func (s *service) materializeTx(ctx context.Context, tx *sqlx.Tx, sub *Submission) error {
	if sub.CatalogEntryCreated {
		return nil
	}

	// Already linked to a catalog model: just flip the flag.
	if sub.DeviceModelID != nil {
		if err := s.repo.SetCatalogEntryTx(ctx, tx, sub.ID, nil); err != nil {
			return err
		}
		sub.CatalogEntryCreated = true
		return nil
	}

	deviceName := strings.TrimSpace(sub.CustomDeviceName)
	if deviceName == "" {
		deviceName = strings.TrimSpace(sub.DeviceType)
	}
	if deviceName == "" {
		// Nothing to materialize from.
		return nil
	}

	parts := strings.Fields(deviceName)
	manufacturer := catalog.FallbackManufacturer
	modelName := deviceName
	if len(parts) > 1 {
		manufacturer = parts[0]
		modelName = strings.Join(parts[1:], " ")
	}

	categoryName := strings.TrimSpace(sub.DeviceType)
	if categoryName == "" {
		categoryName = catalog.FallbackCategoryName
	}
	category, err := s.catalog.GetOrCreateCategoryTx(ctx, tx, categoryName)
	if err != nil {
		return err
	}

	model, err := s.catalog.GetOrCreateModelTx(ctx, tx, manufacturer, modelName, catalog.ModelDefaults{
		CategoryID:      category.ID,
		EstimatedPoints: sub.EstimatedCreditValue,
		RecoveryNotes:   sub.MessageToFacility,
	})
	if err != nil {
		return err
	}

	if err := s.repo.SetCatalogEntryTx(ctx, tx, sub.ID, &model.ID); err != nil {
		return err
	}
	sub.DeviceModelID = &model.ID
	sub.CatalogEntryCreated = true
	return nil
}

// awardCreditsTx issues the credit for a credited submission exactly once.
// Runs inside the status-update transaction under the submission's row lock.
func (s *service) awardCreditsTx(ctx context.Context, tx *sqlx.Tx, sub *Submission) error {
	if sub.CreditsAwarded || sub.UserID == nil || !sub.EstimatedCreditValue.IsPositive() {
		return nil
	}

	profile, err := s.ledger.GetOrCreateProfileTx(ctx, tx, *sub.UserID)
	if err != nil {
		return err
	}

	reason := fmt.Sprintf("Device submission credited (%s)", s.creditDisplayNameTx(ctx, tx, sub))
	if err := s.ledger.AdjustTx(ctx, tx, profile.ID, sub.EstimatedCreditValue, reason, ledger.SourceDeviceSubmission); err != nil {
		return err
	}

	if err := s.repo.SetCreditsAwardedTx(ctx, tx, sub.ID); err != nil {
		return err
	}
	sub.CreditsAwarded = true
	return nil
}

func (s *service) creditDisplayNameTx(ctx context.Context, tx *sqlx.Tx, sub *Submission) string {
	if sub.CustomDeviceName != "" {
		return sub.CustomDeviceName
	}
	if sub.DeviceModelID != nil {
		if model, err := s.catalog.GetModelByIDTx(ctx, tx, *sub.DeviceModelID); err == nil {
			return model.DisplayName()
		}
	}
	return "Custom device"
}

func (s *service) Estimate(ctx context.Context, req valuation.Request) (*valuation.Result, error) {
	if s.estimator == nil {
		return nil, nil
	}
	return s.estimator.Estimate(ctx, req)
}
