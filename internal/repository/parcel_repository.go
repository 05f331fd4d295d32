package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/segyhp/landsale-engine/internal/domain"
	customError "github.com/segyhp/landsale-engine/pkg/errors"
)

const pqUniqueViolation = "23505"

type parcelRepository struct {
	db *sqlx.DB
}

func NewParcelRepository(db *sqlx.DB) ParcelRepository {
	return &parcelRepository{db: db}
}

func (r *parcelRepository) Create(ctx context.Context, parcel *domain.Parcel) error {
	query := `
		INSERT INTO parcels (id, parcel_number, location, acreage, asking_price, status, created_at, updated_at)
		VALUES (:id, :parcel_number, :location, :acreage, :asking_price, :status, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, parcel)
	if isUniqueViolation(err) {
		return customError.ErrParcelAlreadyExists
	}

	return err
}

func (r *parcelRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Parcel, error) {
	query := `
		SELECT id, parcel_number, location, acreage, asking_price, status, created_at, updated_at
		FROM parcels
		WHERE id = $1
	`

	var parcel domain.Parcel
	if err := r.db.GetContext(ctx, &parcel, query, id); err != nil {
		return nil, err
	}

	return &parcel, nil
}

func (r *parcelRepository) List(ctx context.Context, status string) ([]*domain.Parcel, error) {
	query := `
		SELECT id, parcel_number, location, acreage, asking_price, status, created_at, updated_at
		FROM parcels
		WHERE ($1 = '' OR status = $1)
		ORDER BY parcel_number
	`

	parcels := []*domain.Parcel{}
	if err := r.db.SelectContext(ctx, &parcels, query, status); err != nil {
		return nil, err
	}

	return parcels, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
