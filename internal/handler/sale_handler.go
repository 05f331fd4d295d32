package handler

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/segyhp/landsale-engine/internal/domain"
	customError "github.com/segyhp/landsale-engine/pkg/errors"
	"github.com/segyhp/landsale-engine/pkg/response"
)

// SaleService is the behaviour SaleHandler needs from the service layer
type SaleService interface {
	PreviewSale(request *domain.SalePreviewRequest) (*domain.SalePreviewResponse, error)
	CreateSale(ctx context.Context, request *domain.CreateSaleRequest) (*domain.Sale, []*domain.PaymentRecord, error)
	GetSale(ctx context.Context, saleID uuid.UUID) (*domain.SaleDetailResponse, error)
	ListSales(ctx context.Context) ([]*domain.Sale, error)
	GetSchedule(ctx context.Context, saleID uuid.UUID) ([]*domain.PaymentRecord, error)
	GetPayoff(ctx context.Context, saleID uuid.UUID) (*domain.PayoffResponse, error)
	RecordPayment(ctx context.Context, paymentID uuid.UUID, request *domain.RecordPaymentRequest, method string) (*domain.PaymentRecord, error)
}

type SaleHandler struct {
	service   SaleService
	validator *validator.Validate
}

func NewSaleHandler(service SaleService) *SaleHandler {
	return &SaleHandler{
		service:   service,
		validator: NewValidator(),
	}
}

// PreviewSale handles POST /api/v1/sales/preview
func (h *SaleHandler) PreviewSale(w http.ResponseWriter, r *http.Request) {
	var request domain.SalePreviewRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		response.FromError(w, err)
		return
	}

	preview, err := h.service.PreviewSale(&request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, preview)
}

// CreateSale handles POST /api/v1/sales
func (h *SaleHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateSaleRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		response.FromError(w, err)
		return
	}

	sale, payments, err := h.service.CreateSale(r.Context(), &request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, domain.CreateSaleResponse{Sale: sale, Payments: payments})
}

// ListSales handles GET /api/v1/sales
func (h *SaleHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.ListSales(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, sales)
}

// GetSale handles GET /api/v1/sales/{saleId}
func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	saleID, err := pathUUID(r, "saleId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	detail, err := h.service.GetSale(r.Context(), saleID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, detail)
}

// GetSchedule handles GET /api/v1/sales/{saleId}/schedule
func (h *SaleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	saleID, err := pathUUID(r, "saleId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	payments, err := h.service.GetSchedule(r.Context(), saleID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, payments)
}

// GetPayoff handles GET /api/v1/sales/{saleId}/payoff
func (h *SaleHandler) GetPayoff(w http.ResponseWriter, r *http.Request) {
	saleID, err := pathUUID(r, "saleId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	payoff, err := h.service.GetPayoff(r.Context(), saleID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, payoff)
}

// RecordPayment handles POST /api/v1/payments/{paymentId}/pay
func (h *SaleHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	h.recordPayment(w, r, domain.PaymentMethodManual)
}

// ConfirmCardPayment handles POST /api/v1/payments/{paymentId}/confirm,
// called once the card processor reports a successful charge
func (h *SaleHandler) ConfirmCardPayment(w http.ResponseWriter, r *http.Request) {
	h.recordPayment(w, r, domain.PaymentMethodCard)
}

func (h *SaleHandler) recordPayment(w http.ResponseWriter, r *http.Request, method string) {
	paymentID, err := pathUUID(r, "paymentId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var request domain.RecordPaymentRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		response.FromError(w, err)
		return
	}

	payment, err := h.service.RecordPayment(r.Context(), paymentID, &request, method)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, payment)
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, customError.WrapValidation(customError.NewValidationError(name, "must be a UUID"))
	}
	return id, nil
}
