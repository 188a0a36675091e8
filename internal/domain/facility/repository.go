package facility

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Facility, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Facility, error)
	GetBySlug(ctx context.Context, slug string) (*Facility, error)
	Count(ctx context.Context) (int, error)
	ListServices(ctx context.Context) ([]ServiceItem, error)
	ListFacilityServices(ctx context.Context, facilityID uuid.UUID) ([]ServiceItem, error)
	ListAcceptedItems(ctx context.Context, facilityID uuid.UUID) ([]AcceptedItem, error)
}

// FacilityRepository provides facility reference data persistence.
type FacilityRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *FacilityRepository {
	return &FacilityRepository{db: db}
}

func (r *FacilityRepository) List(ctx context.Context, filter ListFilter) ([]Facility, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT DISTINCT f.* FROM facilities f`
	args := []interface{}{}
	argn := 1
	where := []string{}

	if filter.ServiceSlug != "" {
		query += `
			JOIN facility_service_links l ON l.facility_id = f.id
			JOIN facility_services s ON s.id = l.service_id`
		where = append(where, fmt.Sprintf("s.slug = $%d", argn))
		args = append(args, filter.ServiceSlug)
		argn++
	}
	if filter.City != "" {
		where = append(where, fmt.Sprintf("f.city ILIKE $%d", argn))
		args = append(args, filter.City)
		argn++
	}
	if filter.Query != "" {
		where = append(where, fmt.Sprintf("(f.name ILIKE $%d OR f.description ILIKE $%d)", argn, argn))
		args = append(args, "%"+strings.TrimSpace(filter.Query)+"%")
		argn++
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY f.name LIMIT $%d OFFSET $%d", argn, argn+1)
	args = append(args, limit, filter.Offset)

	facilities := make([]Facility, 0)
	if err := r.db.SelectContext(ctx2, &facilities, query, args...); err != nil {
		return nil, fmt.Errorf("%w: list facilities", ErrInternal)
	}
	return facilities, nil
}

func (r *FacilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*Facility, error) {
	var f Facility
	err := r.db.GetContext(ctx, &f, `SELECT * FROM facilities WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("%w: get facility", ErrInternal)
	}
	return &f, nil
}

func (r *FacilityRepository) GetBySlug(ctx context.Context, slug string) (*Facility, error) {
	var f Facility
	err := r.db.GetContext(ctx, &f, `SELECT * FROM facilities WHERE slug = $1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("%w: get facility by slug", ErrInternal)
	}
	return &f, nil
}

func (r *FacilityRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM facilities`); err != nil {
		return 0, fmt.Errorf("%w: count facilities", ErrInternal)
	}
	return n, nil
}

func (r *FacilityRepository) ListServices(ctx context.Context) ([]ServiceItem, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	services := make([]ServiceItem, 0)
	err := r.db.SelectContext(ctx2, &services, `SELECT * FROM facility_services ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: list services", ErrInternal)
	}
	return services, nil
}

func (r *FacilityRepository) ListFacilityServices(ctx context.Context, facilityID uuid.UUID) ([]ServiceItem, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	services := make([]ServiceItem, 0)
	err := r.db.SelectContext(ctx2, &services, `
		SELECT s.* FROM facility_services s
		JOIN facility_service_links l ON l.service_id = s.id
		WHERE l.facility_id = $1
		ORDER BY s.name
	`, facilityID)
	if err != nil {
		return nil, fmt.Errorf("%w: list facility services", ErrInternal)
	}
	return services, nil
}

func (r *FacilityRepository) ListAcceptedItems(ctx context.Context, facilityID uuid.UUID) ([]AcceptedItem, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	items := make([]AcceptedItem, 0)
	err := r.db.SelectContext(ctx2, &items, `
		SELECT * FROM facility_accepted_items WHERE facility_id = $1 ORDER BY category
	`, facilityID)
	if err != nil {
		return nil, fmt.Errorf("%w: list accepted items", ErrInternal)
	}
	return items, nil
}
