package education

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
	ListComponents(ctx context.Context, level HazardLevel, limit, offset int) ([]HazardousComponent, error)
	GetComponentBySlug(ctx context.Context, slug string) (*HazardousComponent, error)
	ListModules(ctx context.Context, moduleType ModuleType, publishedOnly bool, limit, offset int) ([]LearningModule, error)
	GetModuleBySlug(ctx context.Context, slug string) (*LearningModule, error)
	ListModuleComponents(ctx context.Context, moduleID uuid.UUID) ([]HazardousComponent, error)
	CountModules(ctx context.Context) (int, error)
}

// EducationRepository provides educational reference data persistence.
type EducationRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *EducationRepository {
	return &EducationRepository{db: db}
}

func (r *EducationRepository) ListComponents(ctx context.Context, level HazardLevel, limit, offset int) ([]HazardousComponent, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 {
		limit = 20
	}

	query := `SELECT * FROM hazardous_components`
	args := []interface{}{}
	if level != "" {
		query += ` WHERE hazard_level = $1`
		args = append(args, level)
	}
	query += fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	components := make([]HazardousComponent, 0)
	if err := r.db.SelectContext(ctx2, &components, query, args...); err != nil {
		return nil, fmt.Errorf("%w: list components", ErrInternal)
	}
	return components, nil
}

func (r *EducationRepository) GetComponentBySlug(ctx context.Context, slug string) (*HazardousComponent, error) {
	var c HazardousComponent
	err := r.db.GetContext(ctx, &c, `SELECT * FROM hazardous_components WHERE slug = $1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrComponentNotFound
		}
		return nil, fmt.Errorf("%w: get component", ErrInternal)
	}
	return &c, nil
}

func (r *EducationRepository) ListModules(ctx context.Context, moduleType ModuleType, publishedOnly bool, limit, offset int) ([]LearningModule, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 {
		limit = 20
	}

	query := `SELECT * FROM learning_modules WHERE 1=1`
	args := []interface{}{}
	if publishedOnly {
		query += ` AND is_published = true`
	}
	if moduleType != "" {
		query += fmt.Sprintf(` AND module_type = $%d`, len(args)+1)
		args = append(args, moduleType)
	}
	query += fmt.Sprintf(` ORDER BY title LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	modules := make([]LearningModule, 0)
	if err := r.db.SelectContext(ctx2, &modules, query, args...); err != nil {
		return nil, fmt.Errorf("%w: list modules", ErrInternal)
	}
	return modules, nil
}

func (r *EducationRepository) GetModuleBySlug(ctx context.Context, slug string) (*LearningModule, error) {
	var m LearningModule
	err := r.db.GetContext(ctx, &m, `SELECT * FROM learning_modules WHERE slug = $1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrModuleNotFound
		}
		return nil, fmt.Errorf("%w: get module", ErrInternal)
	}
	return &m, nil
}

func (r *EducationRepository) ListModuleComponents(ctx context.Context, moduleID uuid.UUID) ([]HazardousComponent, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	components := make([]HazardousComponent, 0)
	err := r.db.SelectContext(ctx2, &components, `
		SELECT hc.* FROM hazardous_components hc
		JOIN learning_module_components lmc ON lmc.component_id = hc.id
		WHERE lmc.module_id = $1
		ORDER BY hc.name
	`, moduleID)
	if err != nil {
		return nil, fmt.Errorf("%w: list module components", ErrInternal)
	}
	return components, nil
}

func (r *EducationRepository) CountModules(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM learning_modules WHERE is_published = true`); err != nil {
		return 0, fmt.Errorf("%w: count modules", ErrInternal)
	}
	return n, nil
}
