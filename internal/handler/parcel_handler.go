package handler

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/segyhp/landsale-engine/internal/domain"
	"github.com/segyhp/landsale-engine/pkg/response"
)

type ParcelService interface {
	CreateParcel(ctx context.Context, request *domain.CreateParcelRequest) (*domain.Parcel, error)
	GetParcel(ctx context.Context, id uuid.UUID) (*domain.Parcel, error)
	ListParcels(ctx context.Context, status string) ([]*domain.Parcel, error)
}

type ParcelHandler struct {
	service   ParcelService
	validator *validator.Validate
}

func NewParcelHandler(service ParcelService) *ParcelHandler {
	return &ParcelHandler{
		service:   service,
		validator: NewValidator(),
	}
}

// CreateParcel handles POST /api/v1/parcels
func (h *ParcelHandler) CreateParcel(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateParcelRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		response.FromError(w, err)
		return
	}

	parcel, err := h.service.CreateParcel(r.Context(), &request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, parcel)
}

// GetParcel handles GET /api/v1/parcels/{parcelId}
func (h *ParcelHandler) GetParcel(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "parcelId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	parcel, err := h.service.GetParcel(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, parcel)
}

// ListParcels handles GET /api/v1/parcels?status=available
func (h *ParcelHandler) ListParcels(w http.ResponseWriter, r *http.Request) {
	parcels, err := h.service.ListParcels(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, parcels)
}
