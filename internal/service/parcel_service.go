package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/segyhp/landsale-engine/internal/domain"
	"github.com/segyhp/landsale-engine/internal/repository"
	customError "github.com/segyhp/landsale-engine/pkg/errors"
)

type ParcelService struct {
	ParcelRepo repository.ParcelRepository
	logger     *slog.Logger
	now        func() time.Time
}

func NewParcelService(parcelRepo repository.ParcelRepository, logger *slog.Logger) *ParcelService {
	return &ParcelService{
		ParcelRepo: parcelRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateParcel registers a new parcel as available
func (s *ParcelService) CreateParcel(ctx context.Context, request *domain.CreateParcelRequest) (*domain.Parcel, error) {
	if !request.Acreage.IsPositive() {
		return nil, customError.WrapValidation(customError.NewValidationError("acreage", "must be greater than 0"))
	}
	if request.AskingPrice.IsNegative() {
		return nil, customError.WrapValidation(customError.NewValidationError("asking_price", "must not be negative"))
	}

	now := s.now().UTC()
	parcel := &domain.Parcel{
		ID:           uuid.New(),
		ParcelNumber: request.ParcelNumber,
		Location:     request.Location,
		Acreage:      request.Acreage,
		AskingPrice:  request.AskingPrice,
		Status:       domain.ParcelStatusAvailable,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.ParcelRepo.Create(ctx, parcel); err != nil {
		if errors.Is(err, customError.ErrParcelAlreadyExists) {
			return nil, customError.WrapParcelAlreadyExists(request.ParcelNumber)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	s.logger.Info("parcel created", "parcel_id", parcel.ID, "parcel_number", parcel.ParcelNumber)

	return parcel, nil
}

// GetParcel returns a single parcel
func (s *ParcelService) GetParcel(ctx context.Context, id uuid.UUID) (*domain.Parcel, error) {
	parcel, err := s.ParcelRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapParcelNotFound(id.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return parcel, nil
}

// ListParcels returns parcels, optionally filtered by status
func (s *ParcelService) ListParcels(ctx context.Context, status string) ([]*domain.Parcel, error) {
	switch status {
	case "", domain.ParcelStatusAvailable, domain.ParcelStatusSold:
	default:
		return nil, customError.WrapValidation(customError.NewValidationError("status", "must be available or sold"))
	}

	parcels, err := s.ParcelRepo.List(ctx, status)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return parcels, nil
}
