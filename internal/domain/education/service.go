package education

import (
	"context"
)

type Service interface {
	ListComponents(ctx context.Context, level HazardLevel, limit, offset int) ([]HazardousComponent, error)
	GetComponent(ctx context.Context, slug string) (*HazardousComponent, error)
	ListModules(ctx context.Context, moduleType ModuleType, limit, offset int) ([]LearningModule, error)
	GetModule(ctx context.Context, slug string) (*LearningModule, []HazardousComponent, error)
	CountModules(ctx context.Context) (int, error)
}

type educationService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &educationService{repo: repo}
}

func (s *educationService) ListComponents(ctx context.Context, level HazardLevel, limit, offset int) ([]HazardousComponent, error) {
	return s.repo.ListComponents(ctx, level, limit, offset)
}

func (s *educationService) GetComponent(ctx context.Context, slug string) (*HazardousComponent, error) {
	return s.repo.GetComponentBySlug(ctx, slug)
}

// ListModules only surfaces published modules; drafts stay internal.
func (s *educationService) ListModules(ctx context.Context, moduleType ModuleType, limit, offset int) ([]LearningModule, error) {
	return s.repo.ListModules(ctx, moduleType, true, limit, offset)
}

func (s *educationService) GetModule(ctx context.Context, slug string) (*LearningModule, []HazardousComponent, error) {
	m, err := s.repo.GetModuleBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	if !m.IsPublished {
		return nil, nil, ErrModuleNotFound
	}
	components, err := s.repo.ListModuleComponents(ctx, m.ID)
	if err != nil {
		return nil, nil, err
	}
	return m, components, nil
}

func (s *educationService) CountModules(ctx context.Context) (int, error) {
	return s.repo.CountModules(ctx)
}
