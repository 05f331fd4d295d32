package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/landsale-engine/internal/domain"
)

// ParcelRepository defines the interface for parcel data operations
type ParcelRepository interface {
	// Create creates a new parcel; a duplicate parcel number yields ErrParcelAlreadyExists
	Create(ctx context.Context, parcel *domain.Parcel) error

	// GetByID retrieves a parcel by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Parcel, error)

	// List retrieves parcels, filtered by status when status is not empty
	List(ctx context.Context, status string) ([]*domain.Parcel, error)
}

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// CreateWithPayments persists the sale, marks its parcel sold and inserts
	// the payment records in one transaction
	CreateWithPayments(ctx context.Context, sale *domain.Sale, payments []*domain.PaymentRecord) error

	// GetByID retrieves a sale by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error)

	// List retrieves all sales, newest first
	List(ctx context.Context) ([]*domain.Sale, error)
}

// PaymentRepository defines the interface for payment record operations
type PaymentRepository interface {
	// GetBySaleID retrieves the payment records of a sale ordered by payment number
	GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]*domain.PaymentRecord, error)

	// MarkPaid transitions a record to paid; an already paid record yields
	// ErrPaymentAlreadyRecorded. When it was the sale's last unpaid record the
	// sale is marked paid off in the same transaction and saleClosed is true.
	MarkPaid(ctx context.Context, id uuid.UUID, amount decimal.Decimal, paidDate time.Time, method string) (payment *domain.PaymentRecord, saleClosed bool, err error)

	// MarkLate promotes pending records due before asOf to late and returns
	// the IDs of the sales that had records promoted
	MarkLate(ctx context.Context, asOf time.Time) ([]uuid.UUID, error)
}
