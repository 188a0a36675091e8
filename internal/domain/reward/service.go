package reward

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ecoloop/ecoloop-api/internal/domain/ledger"
)

type Service interface {
	ListActive(ctx context.Context, limit, offset int) ([]Reward, error)
	GetBySlug(ctx context.Context, slug string) (*Reward, error)

	// Redeem spends the reward's point cost from the user's balance and
	// records a pending redemption, both in one transaction.
	Redeem(ctx context.Context, userID uuid.UUID, slug string) (*RewardRedemption, error)

	ListMyRedemptions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]RewardRedemption, error)
	ListAllRedemptions(ctx context.Context, status RedemptionStatus, limit, offset int) ([]RewardRedemption, error)

	// UpdateRedemptionStatus moves a redemption through its lifecycle.
	// Cancelling a pending redemption refunds the points spent.
	UpdateRedemptionStatus(ctx context.Context, id uuid.UUID, status RedemptionStatus, actorID uuid.UUID, notes string) (*RewardRedemption, error)
}

type rewardService struct {
	repo      Repository
	ledgerSvc ledger.Service
}

func NewService(repo Repository, ledgerSvc ledger.Service) Service {
	return &rewardService{repo: repo, ledgerSvc: ledgerSvc}
}

func (s *rewardService) ListActive(ctx context.Context, limit, offset int) ([]Reward, error) {
	return s.repo.ListActive(ctx, limit, offset)
}

func (s *rewardService) GetBySlug(ctx context.Context, slug string) (*Reward, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *rewardService) Redeem(ctx context.Context, userID uuid.UUID, slug string) (*RewardRedemption, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rw, err := s.repo.GetBySlugTx(ctx, tx, slug)
	if err != nil {
		return nil, err
	}
	if !rw.IsActive {
		return nil, ErrRewardInactive
	}

	profile, err := s.ledgerSvc.GetOrCreateProfileTx(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	reason := fmt.Sprintf("Reward redeemed (%s)", rw.Name)
	if err := s.ledgerSvc.AdjustTx(ctx, tx, profile.ID, rw.PointsRequired.Neg(), reason, ledger.SourceRewardRedemption); err != nil {
		return nil, err
	}

	redemption := &RewardRedemption{
		ProfileID:   profile.ID,
		RewardID:    rw.ID,
		Status:      RedemptionPending,
		PointsSpent: rw.PointsRequired,
	}
	if err := s.repo.CreateRedemptionTx(ctx, tx, redemption); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit redeem", ErrInternal)
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("reward", rw.Slug).
		Str("points_spent", rw.PointsRequired.StringFixed(2)).
		Msg("reward redeemed")

	return redemption, nil
}

func (s *rewardService) ListMyRedemptions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]RewardRedemption, error) {
	profile, err := s.ledgerSvc.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListRedemptionsByProfile(ctx, profile.ID, limit, offset)
}

func (s *rewardService) ListAllRedemptions(ctx context.Context, status RedemptionStatus, limit, offset int) ([]RewardRedemption, error) {
	return s.repo.ListAllRedemptions(ctx, status, limit, offset)
}

func (s *rewardService) UpdateRedemptionStatus(ctx context.Context, id uuid.UUID, status RedemptionStatus, actorID uuid.UUID, notes string) (*RewardRedemption, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	red, err := s.repo.GetRedemptionByIDTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if red.Status == status {
		return red, nil
	}

	if !red.Status.CanBeUpdatedTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, red.Status, status)
	}

	var fulfilledBy *uuid.UUID
	if status == RedemptionFulfilled {
		fulfilledBy = &actorID
	}

	// Refund happens inside the same transaction as the status change, and
	// the row lock above guarantees a pending redemption cancels only once.
	if status == RedemptionCancelled {
		if err := s.ledgerSvc.AdjustTx(ctx, tx, red.ProfileID, red.PointsSpent, "Reward redemption cancelled (refund)", ledger.SourceRewardRedemption); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateRedemptionStatusTx(ctx, tx, id, status, fulfilledBy, notes); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit status update", ErrInternal)
	}

	red.Status = status
	red.FulfilledBy = fulfilledBy
	red.FulfillmentNotes = notes
	return red, nil
}
