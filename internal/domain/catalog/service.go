package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/ecoloop/ecoloop-api/internal/pkg/slug"
	"github.com/ecoloop/ecoloop-api/internal/pkg/storage"
)

// Service interface defines catalog operations. The Tx methods are
// composable into a caller-owned transaction; submission materialization
// uses them to create catalog rows atomically with the status change.
type Service interface {
	ListCategories(ctx context.Context) ([]DeviceCategory, error)
	GetCategoryBySlug(ctx context.Context, s string) (*DeviceCategory, error)
	CreateCategory(ctx context.Context, name, description, icon string) (*DeviceCategory, error)

	ListModels(ctx context.Context, filter ListFilter) ([]DeviceModel, error)
	GetModelBySlug(ctx context.Context, s string) (*DeviceModel, error)
	GetModelByID(ctx context.Context, id uuid.UUID) (*DeviceModel, error)
	CreateModel(ctx context.Context, model *DeviceModel) error
	UpdateModel(ctx context.Context, model *DeviceModel) error
	DeleteModel(ctx context.Context, slug string) error

	// GetOrCreateCategoryTx resolves a category by name, creating it when missing
	GetOrCreateCategoryTx(ctx context.Context, tx *sqlx.Tx, name string) (*DeviceCategory, error)

	// GetOrCreateModelTx resolves a model by exact (manufacturer, model name).
	// A missing model is created with the defaults and a collision-free slug;
	// an existing model only has its empty fields backfilled.
	GetOrCreateModelTx(ctx context.Context, tx *sqlx.Tx, manufacturer, modelName string, defaults ModelDefaults) (*DeviceModel, error)

	GetModelByIDTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*DeviceModel, error)

	ListMaterialEstimates(ctx context.Context, modelID uuid.UUID) ([]MaterialEstimate, error)
	CreateMaterialEstimate(ctx context.Context, estimate *MaterialEstimate) error
	ListModelComponents(ctx context.Context, modelID uuid.UUID) ([]ModelComponent, error)

	// UploadModelImage stores an image and records its URL on the model
	UploadModelImage(ctx context.Context, modelSlug, fileName, contentType string, body io.Reader) (string, error)
}

type service struct {
	repo  Repository
	store storage.Storage
}

// NewService creates a new catalog service
func NewService(db *sqlx.DB, store storage.Storage) Service {
	return &service{repo: NewRepository(db), store: store}
}

func (s *service) ListCategories(ctx context.Context) ([]DeviceCategory, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) GetCategoryBySlug(ctx context.Context, sl string) (*DeviceCategory, error) {
	return s.repo.GetCategoryBySlug(ctx, sl)
}

func (s *service) CreateCategory(ctx context.Context, name, description, icon string) (*DeviceCategory, error) {
	c := &DeviceCategory{
		ID:          uuid.New(),
		Name:        name,
		Slug:        slug.Make(name),
		Description: description,
		Icon:        icon,
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListModels(ctx context.Context, filter ListFilter) ([]DeviceModel, error) {
	return s.repo.ListModels(ctx, filter)
}

func (s *service) GetModelBySlug(ctx context.Context, sl string) (*DeviceModel, error) {
	return s.repo.GetModelBySlug(ctx, sl)
}

func (s *service) GetModelByID(ctx context.Context, id uuid.UUID) (*DeviceModel, error) {
	return s.repo.GetModelByID(ctx, id)
}

func (s *service) CreateModel(ctx context.Context, model *DeviceModel) error {
	if model.ID == uuid.Nil {
		model.ID = uuid.New()
	}
	if model.Slug == "" {
		model.Slug = slug.Make(model.Manufacturer + " " + model.ModelName)
	}
	return s.repo.CreateModel(ctx, model)
}

func (s *service) UpdateModel(ctx context.Context, model *DeviceModel) error {
	return s.repo.UpdateModel(ctx, model)
}

func (s *service) DeleteModel(ctx context.Context, sl string) error {
	model, err := s.repo.GetModelBySlug(ctx, sl)
	if err != nil {
		return err
	}
	return s.repo.DeleteModel(ctx, model.ID)
}

func (s *service) GetOrCreateCategoryTx(ctx context.Context, tx *sqlx.Tx, name string) (*DeviceCategory, error) {
	return s.repo.GetOrCreateCategoryTx(ctx, tx, name, slug.Make(name))
}

func (s *service) GetOrCreateModelTx(ctx context.Context, tx *sqlx.Tx, manufacturer, modelName string, defaults ModelDefaults) (*DeviceModel, error) {
	existing, err := s.repo.GetModelByMakerAndNameTx(ctx, tx, manufacturer, modelName)
	if err == nil {
		return s.backfillTx(ctx, tx, existing, defaults)
	}
	if !errors.Is(err, ErrModelNotFound) {
		return nil, err
	}

	notes := defaults.RecoveryNotes
	if notes == "" {
		notes = DefaultRecoveryNotes
	}

	// The insert resolves conflicts without aborting the enclosing
	// transaction, so a lost race recovers in place: re-read the winner's
	// row by name, or re-probe the slug when the winner carried a
	// different name.
	for attempt := 0; attempt < 3; attempt++ {
		uniqueSlug, err := s.uniqueModelSlugTx(ctx, tx, manufacturer+" "+modelName)
		if err != nil {
			return nil, err
		}

		model := &DeviceModel{
			ID:                     uuid.New(),
			CategoryID:             defaults.CategoryID,
			Manufacturer:           manufacturer,
			ModelName:              modelName,
			Slug:                   uniqueSlug,
			EstimatedPoints:        defaults.EstimatedPoints,
			EstimatedRecoveryNotes: notes,
		}
		err = s.repo.CreateModelTx(ctx, tx, model)
		if err == nil {
			return model, nil
		}
		if !errors.Is(err, ErrDuplicateModel) {
			return nil, err
		}

		// Lost a race to a concurrent materialization of the same name.
		existing, err := s.repo.GetModelByMakerAndNameTx(ctx, tx, manufacturer, modelName)
		if err == nil {
			return s.backfillTx(ctx, tx, existing, defaults)
		}
		if !errors.Is(err, ErrModelNotFound) {
			return nil, err
		}
		// The collision was on the slug alone; the competing row is
		// committed by now, so the next probe sees it.
	}
	return nil, ErrDuplicateModel
}

func (s *service) GetModelByIDTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*DeviceModel, error) {
	return s.repo.GetModelByIDTx(ctx, tx, id)
}

// backfillTx corrects a category mismatch and fills empty fields on an
// existing model from the defaults. Populated notes and points are never
// overwritten.
func (s *service) backfillTx(ctx context.Context, tx *sqlx.Tx, model *DeviceModel, defaults ModelDefaults) (*DeviceModel, error) {
	changed := false

	if defaults.CategoryID != uuid.Nil && model.CategoryID != defaults.CategoryID {
		model.CategoryID = defaults.CategoryID
		changed = true
	}
	if model.EstimatedPoints.IsZero() && defaults.EstimatedPoints.IsPositive() {
		model.EstimatedPoints = defaults.EstimatedPoints
		changed = true
	}
	if model.EstimatedRecoveryNotes == "" && defaults.RecoveryNotes != "" {
		model.EstimatedRecoveryNotes = defaults.RecoveryNotes
		changed = true
	}

	if !changed {
		return model, nil
	}
	if err := s.repo.BackfillModelTx(ctx, tx, model); err != nil {
		return nil, err
	}
	return model, nil
}

// uniqueModelSlugTx derives a slug and appends -1, -2, ... until no model
// carries it.
func (s *service) uniqueModelSlugTx(ctx context.Context, tx *sqlx.Tx, name string) (string, error) {
	var checkErr error
	unique := slug.MakeUnique(slug.Make(name), func(candidate string) bool {
		if checkErr != nil {
			return false
		}
		exists, err := s.repo.ModelSlugExistsTx(ctx, tx, candidate)
		if err != nil {
			checkErr = err
			return false
		}
		return exists
	})
	if checkErr != nil {
		return "", checkErr
	}
	return unique, nil
}

func (s *service) ListMaterialEstimates(ctx context.Context, modelID uuid.UUID) ([]MaterialEstimate, error) {
	return s.repo.ListMaterialEstimates(ctx, modelID)
}

func (s *service) CreateMaterialEstimate(ctx context.Context, estimate *MaterialEstimate) error {
	if estimate.ID == uuid.Nil {
		estimate.ID = uuid.New()
	}
	return s.repo.CreateMaterialEstimate(ctx, estimate)
}

func (s *service) ListModelComponents(ctx context.Context, modelID uuid.UUID) ([]ModelComponent, error) {
	return s.repo.ListModelComponents(ctx, modelID)
}

func (s *service) UploadModelImage(ctx context.Context, modelSlug, fileName, contentType string, body io.Reader) (string, error) {
	if s.store == nil {
		return "", ErrStorageUnavailable
	}

	model, err := s.repo.GetModelBySlug(ctx, modelSlug)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	key := fmt.Sprintf("catalog/%s/%s%s", model.Slug, uuid.New().String(), ext)

	if err := s.store.Put(ctx, key, body, contentType); err != nil {
		log.Error().Err(err).Str("model", model.Slug).Msg("model image upload failed")
		return "", fmt.Errorf("%w: store image", ErrInternal)
	}

	url := s.store.GetURL(key)
	if err := s.repo.SetModelImage(ctx, model.ID, url); err != nil {
		return "", err
	}
	return url, nil
}
