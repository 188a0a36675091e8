package facility

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Service interface defines facility reference data operations.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]Facility, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Facility, error)
	GetBySlug(ctx context.Context, slug string) (*Facility, error)
	Count(ctx context.Context) (int, error)
	ListServices(ctx context.Context) ([]ServiceItem, error)
	ListFacilityServices(ctx context.Context, facilityID uuid.UUID) ([]ServiceItem, error)
	ListAcceptedItems(ctx context.Context, facilityID uuid.UUID) ([]AcceptedItem, error)
}

type service struct {
	repo Repository
}

// NewService creates a new facility service
func NewService(db *sqlx.DB) Service {
	return &service{repo: NewRepository(db)}
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]Facility, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Facility, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Facility, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *service) ListServices(ctx context.Context) ([]ServiceItem, error) {
	return s.repo.ListServices(ctx)
}

func (s *service) ListFacilityServices(ctx context.Context, facilityID uuid.UUID) ([]ServiceItem, error) {
	return s.repo.ListFacilityServices(ctx, facilityID)
}

func (s *service) ListAcceptedItems(ctx context.Context, facilityID uuid.UUID) ([]AcceptedItem, error) {
	return s.repo.ListAcceptedItems(ctx, facilityID)
}
