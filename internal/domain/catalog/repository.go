package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const queryTimeout = 3 * time.Second

type Repository interface {
	ListCategories(ctx context.Context) ([]DeviceCategory, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*DeviceCategory, error)
	CreateCategory(ctx context.Context, category *DeviceCategory) error
	GetOrCreateCategoryTx(ctx context.Context, tx *sqlx.Tx, name, slug string) (*DeviceCategory, error)

	ListModels(ctx context.Context, filter ListFilter) ([]DeviceModel, error)
	GetModelByID(ctx context.Context, id uuid.UUID) (*DeviceModel, error)
	GetModelBySlug(ctx context.Context, slug string) (*DeviceModel, error)
	CreateModel(ctx context.Context, model *DeviceModel) error
	UpdateModel(ctx context.Context, model *DeviceModel) error
	DeleteModel(ctx context.Context, id uuid.UUID) error
	SetModelImage(ctx context.Context, id uuid.UUID, imageURL string) error

	GetModelByIDTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*DeviceModel, error)
	GetModelByMakerAndNameTx(ctx context.Context, tx *sqlx.Tx, manufacturer, modelName string) (*DeviceModel, error)
	ModelSlugExistsTx(ctx context.Context, tx *sqlx.Tx, slug string) (bool, error)
	CreateModelTx(ctx context.Context, tx *sqlx.Tx, model *DeviceModel) error
	BackfillModelTx(ctx context.Context, tx *sqlx.Tx, model *DeviceModel) error

	ListMaterialEstimates(ctx context.Context, modelID uuid.UUID) ([]MaterialEstimate, error)
	CreateMaterialEstimate(ctx context.Context, estimate *MaterialEstimate) error
	ListModelComponents(ctx context.Context, modelID uuid.UUID) ([]ModelComponent, error)
}

// CatalogRepository provides device category and model persistence.
type CatalogRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

/* =========================
   Categories
   ========================= */

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]DeviceCategory, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	categories := make([]DeviceCategory, 0)
	err := r.db.SelectContext(ctx2, &categories, `SELECT * FROM device_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: list categories", ErrInternal)
	}
	return categories, nil
}

func (r *CatalogRepository) GetCategoryBySlug(ctx context.Context, slug string) (*DeviceCategory, error) {
	var c DeviceCategory
	err := r.db.GetContext(ctx, &c, `SELECT * FROM device_categories WHERE slug = $1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("%w: get category", ErrInternal)
	}
	return &c, nil
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, category *DeviceCategory) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx2, `
		INSERT INTO device_categories (id, name, slug, description, icon)
		VALUES ($1, $2, $3, $4, $5)
	`, category.ID, category.Name, category.Slug, category.Description, category.Icon)
	if err != nil {
		return fmt.Errorf("%w: create category", ErrInternal)
	}
	return nil
}

// GetOrCreateCategoryTx resolves a category by name inside a caller-owned
// transaction, creating it when missing. Safe under concurrent callers:
// ON CONFLICT (name) DO NOTHING followed by a lookup.
func (r *CatalogRepository) GetOrCreateCategoryTx(ctx context.Context, tx *sqlx.Tx, name, slug string) (*DeviceCategory, error) {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO device_categories (id, name, slug)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO NOTHING
	`, uuid.New(), name, slug)
	if err != nil {
		return nil, fmt.Errorf("%w: ensure category", ErrInternal)
	}

	var c DeviceCategory
	err = tx.GetContext(ctx, &c, `SELECT * FROM device_categories WHERE name = $1`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("%w: get category by name", ErrInternal)
	}
	return &c, nil
}

/* =========================
   Models
   ========================= */

func (r *CatalogRepository) ListModels(ctx context.Context, filter ListFilter) ([]DeviceModel, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT m.* FROM device_models m
		JOIN device_categories c ON c.id = m.category_id
		WHERE 1=1
	`
	args := []interface{}{}
	argn := 1

	if filter.Query != "" {
		query += fmt.Sprintf(" AND (m.manufacturer ILIKE $%d OR m.model_name ILIKE $%d)", argn, argn)
		args = append(args, "%"+strings.TrimSpace(filter.Query)+"%")
		argn++
	}
	if filter.CategorySlug != "" {
		query += fmt.Sprintf(" AND c.slug = $%d", argn)
		args = append(args, filter.CategorySlug)
		argn++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY m.manufacturer, m.model_name LIMIT $%d OFFSET $%d", argn, argn+1)
	args = append(args, limit, filter.Offset)

	models := make([]DeviceModel, 0)
	if err := r.db.SelectContext(ctx2, &models, query, args...); err != nil {
		return nil, fmt.Errorf("%w: list models", ErrInternal)
	}
	return models, nil
}

func (r *CatalogRepository) GetModelByID(ctx context.Context, id uuid.UUID) (*DeviceModel, error) {
	var m DeviceModel
	err := r.db.GetContext(ctx, &m, `SELECT * FROM device_models WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrModelNotFound
		}
		return nil, fmt.Errorf("%w: get model", ErrInternal)
	}
	return &m, nil
}

func (r *CatalogRepository) GetModelBySlug(ctx context.Context, slug string) (*DeviceModel, error) {
	var m DeviceModel
	err := r.db.GetContext(ctx, &m, `SELECT * FROM device_models WHERE slug = $1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrModelNotFound
		}
		return nil, fmt.Errorf("%w: get model by slug", ErrInternal)
	}
	return &m, nil
}

func (r *CatalogRepository) CreateModel(ctx context.Context, model *DeviceModel) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx2, `
		INSERT INTO device_models
			(id, category_id, manufacturer, model_name, slug, release_year, estimated_points, estimated_recovery_notes, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, model.ID, model.CategoryID, model.Manufacturer, model.ModelName, model.Slug,
		model.ReleaseYear, model.EstimatedPoints, model.EstimatedRecoveryNotes, model.ImageURL)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateModel
		}
		return fmt.Errorf("%w: create model", ErrInternal)
	}
	return nil
}

func (r *CatalogRepository) UpdateModel(ctx context.Context, model *DeviceModel) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx2, `
		UPDATE device_models
		SET category_id = $2, manufacturer = $3, model_name = $4, release_year = $5,
		    estimated_points = $6, estimated_recovery_notes = $7, updated_at = NOW()
		WHERE id = $1
	`, model.ID, model.CategoryID, model.Manufacturer, model.ModelName,
		model.ReleaseYear, model.EstimatedPoints, model.EstimatedRecoveryNotes)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateModel
		}
		return fmt.Errorf("%w: update model", ErrInternal)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrModelNotFound
	}
	return nil
}

func (r *CatalogRepository) DeleteModel(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM device_models WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: delete model", ErrInternal)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrModelNotFound
	}
	return nil
}

func (r *CatalogRepository) SetModelImage(ctx context.Context, id uuid.UUID, imageURL string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE device_models SET image_url = $2, updated_at = NOW() WHERE id = $1
	`, id, imageURL)
	if err != nil {
		return fmt.Errorf("%w: set model image", ErrInternal)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrModelNotFound
	}
	return nil
}

/* =========================
   Transactional primitives (materialization)
   ========================= */

func (r *CatalogRepository) GetModelByIDTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*DeviceModel, error) {
	var m DeviceModel
	err := tx.GetContext(ctx, &m, `SELECT * FROM device_models WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrModelNotFound
		}
		return nil, fmt.Errorf("%w: get model", ErrInternal)
	}
	return &m, nil
}

func (r *CatalogRepository) GetModelByMakerAndNameTx(ctx context.Context, tx *sqlx.Tx, manufacturer, modelName string) (*DeviceModel, error) {
	var m DeviceModel
	err := tx.GetContext(ctx, &m, `
		SELECT * FROM device_models WHERE manufacturer = $1 AND model_name = $2
	`, manufacturer, modelName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrModelNotFound
		}
		return nil, fmt.Errorf("%w: get model by maker and name", ErrInternal)
	}
	return &m, nil
}

func (r *CatalogRepository) ModelSlugExistsTx(ctx context.Context, tx *sqlx.Tx, slug string) (bool, error) {
	var exists bool
	err := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM device_models WHERE slug = $1)`, slug)
	if err != nil {
		return false, fmt.Errorf("%w: check slug", ErrInternal)
	}
	return exists, nil
}

// CreateModelTx inserts a model inside a caller-owned transaction. A
// concurrent insert of the same name or slug reports ErrDuplicateModel
// via ON CONFLICT DO NOTHING instead of a unique violation, which would
// abort the enclosing transaction and make a recovery re-select
// impossible. Postgres resolves the conflict only after the competing
// transaction commits, so the winner's row is visible to the caller's
// next statement.
func (r *CatalogRepository) CreateModelTx(ctx context.Context, tx *sqlx.Tx, model *DeviceModel) error {
	result, err := tx.ExecContext(ctx, `
		INSERT INTO device_models
			(id, category_id, manufacturer, model_name, slug, release_year, estimated_points, estimated_recovery_notes, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT DO NOTHING
	`, model.ID, model.CategoryID, model.Manufacturer, model.ModelName, model.Slug,
		model.ReleaseYear, model.EstimatedPoints, model.EstimatedRecoveryNotes, model.ImageURL)
	if err != nil {
		return fmt.Errorf("%w: create model", ErrInternal)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: create model rows", ErrInternal)
	}
	if rows == 0 {
		return ErrDuplicateModel
	}
	return nil
}

// BackfillModelTx persists fields filled in by materialization on an existing
// model. Callers only change the category on mismatch and fields that were
// previously empty; populated notes and points are never overwritten.
func (r *CatalogRepository) BackfillModelTx(ctx context.Context, tx *sqlx.Tx, model *DeviceModel) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE device_models
		SET category_id = $2, estimated_points = $3, estimated_recovery_notes = $4, updated_at = NOW()
		WHERE id = $1
	`, model.ID, model.CategoryID, model.EstimatedPoints, model.EstimatedRecoveryNotes)
	if err != nil {
		return fmt.Errorf("%w: backfill model", ErrInternal)
	}
	return nil
}

/* =========================
   Reference data
   ========================= */

func (r *CatalogRepository) ListMaterialEstimates(ctx context.Context, modelID uuid.UUID) ([]MaterialEstimate, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	estimates := make([]MaterialEstimate, 0)
	err := r.db.SelectContext(ctx2, &estimates, `
		SELECT * FROM device_material_estimates
		WHERE device_model_id = $1
		ORDER BY material_name
	`, modelID)
	if err != nil {
		return nil, fmt.Errorf("%w: list material estimates", ErrInternal)
	}
	return estimates, nil
}

func (r *CatalogRepository) CreateMaterialEstimate(ctx context.Context, estimate *MaterialEstimate) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO device_material_estimates (id, device_model_id, material_name, estimated_mass_grams, estimated_value)
		VALUES ($1, $2, $3, $4, $5)
	`, estimate.ID, estimate.DeviceModelID, estimate.MaterialName, estimate.EstimatedMassGrams, estimate.EstimatedValue)
	if err != nil {
		return fmt.Errorf("%w: create material estimate", ErrInternal)
	}
	return nil
}

func (r *CatalogRepository) ListModelComponents(ctx context.Context, modelID uuid.UUID) ([]ModelComponent, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	components := make([]ModelComponent, 0)
	err := r.db.SelectContext(ctx2, &components, `
		SELECT hc.id, hc.name, hc.slug, hc.hazard_level
		FROM hazardous_components hc
		JOIN device_model_components mc ON mc.component_id = hc.id
		WHERE mc.device_model_id = $1
		ORDER BY hc.name
	`, modelID)
	if err != nil {
		return nil, fmt.Errorf("%w: list model components", ErrInternal)
	}
	return components, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
