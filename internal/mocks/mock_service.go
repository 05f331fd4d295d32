package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/landsale-engine/internal/domain"
)

type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) PreviewSale(request *domain.SalePreviewRequest) (*domain.SalePreviewResponse, error) {
	args := m.Called(request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalePreviewResponse), args.Error(1)
}

func (m *MockSaleService) CreateSale(ctx context.Context, request *domain.CreateSaleRequest) (*domain.Sale, []*domain.PaymentRecord, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Sale), args.Get(1).([]*domain.PaymentRecord), args.Error(2)
}

func (m *MockSaleService) GetSale(ctx context.Context, saleID uuid.UUID) (*domain.SaleDetailResponse, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaleDetailResponse), args.Error(1)
}

func (m *MockSaleService) ListSales(ctx context.Context) ([]*domain.Sale, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Sale), args.Error(1)
}

func (m *MockSaleService) GetSchedule(ctx context.Context, saleID uuid.UUID) ([]*domain.PaymentRecord, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PaymentRecord), args.Error(1)
}

func (m *MockSaleService) GetPayoff(ctx context.Context, saleID uuid.UUID) (*domain.PayoffResponse, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayoffResponse), args.Error(1)
}

func (m *MockSaleService) RecordPayment(ctx context.Context, paymentID uuid.UUID, request *domain.RecordPaymentRequest, method string) (*domain.PaymentRecord, error) {
	args := m.Called(ctx, paymentID, request, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentRecord), args.Error(1)
}

type MockParcelService struct {
	mock.Mock
}

func (m *MockParcelService) CreateParcel(ctx context.Context, request *domain.CreateParcelRequest) (*domain.Parcel, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Parcel), args.Error(1)
}

func (m *MockParcelService) GetParcel(ctx context.Context, id uuid.UUID) (*domain.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Parcel), args.Error(1)
}

func (m *MockParcelService) ListParcels(ctx context.Context, status string) ([]*domain.Parcel, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Parcel), args.Error(1)
}

// NewMockSaleService creates a new mock sale service instance
func NewMockSaleService() *MockSaleService {
	return &MockSaleService{}
}
