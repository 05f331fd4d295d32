package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/landsale-engine/internal/domain"
)

type MockParcelRepository struct {
	mock.Mock
}

func (m *MockParcelRepository) Create(ctx context.Context, parcel *domain.Parcel) error {
	args := m.Called(ctx, parcel)
	return args.Error(0)
}

func (m *MockParcelRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Parcel), args.Error(1)
}

func (m *MockParcelRepository) List(ctx context.Context, status string) ([]*domain.Parcel, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Parcel), args.Error(1)
}

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) CreateWithPayments(ctx context.Context, sale *domain.Sale, payments []*domain.PaymentRecord) error {
	args := m.Called(ctx, sale, payments)
	return args.Error(0)
}

func (m *MockSaleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) List(ctx context.Context) ([]*domain.Sale, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Sale), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]*domain.PaymentRecord, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) MarkPaid(ctx context.Context, id uuid.UUID, amount decimal.Decimal, paidDate time.Time, method string) (*domain.PaymentRecord, bool, error) {
	args := m.Called(ctx, id, amount, paidDate, method)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.PaymentRecord), args.Bool(1), args.Error(2)
}

func (m *MockPaymentRepository) MarkLate(ctx context.Context, asOf time.Time) ([]uuid.UUID, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type MockSaleCache struct {
	mock.Mock
}

func (m *MockSaleCache) GetSaleDetail(ctx context.Context, saleID uuid.UUID) (*domain.SaleDetailResponse, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaleDetailResponse), args.Error(1)
}

func (m *MockSaleCache) Generation(ctx context.Context, saleID uuid.UUID) (int64, error) {
	args := m.Called(ctx, saleID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleCache) SetSaleDetail(ctx context.Context, detail *domain.SaleDetailResponse, generation int64) error {
	args := m.Called(ctx, detail, generation)
	return args.Error(0)
}

func (m *MockSaleCache) Invalidate(ctx context.Context, saleID uuid.UUID) error {
	args := m.Called(ctx, saleID)
	return args.Error(0)
}
