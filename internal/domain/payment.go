package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/landsale-engine/pkg/amortization"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusLate    = "late"
	PaymentStatusMissed  = "missed"
)

const (
	PaymentMethodManual = "manual"
	PaymentMethodCard   = "card"
)

// PaymentRecord is a persisted schedule entry plus payment tracking
type PaymentRecord struct {
	ID            uuid.UUID           `json:"id" db:"id"`
	SaleID        uuid.UUID           `json:"sale_id" db:"sale_id"`
	PaymentNumber int                 `json:"payment_number" db:"payment_number"`
	DueDate       time.Time           `json:"due_date" db:"due_date"`
	AmountDue     decimal.Decimal     `json:"amount_due" db:"amount_due"`
	Principal     decimal.Decimal     `json:"principal" db:"principal"`
	Interest      decimal.Decimal     `json:"interest" db:"interest"`
	Balance       decimal.Decimal     `json:"balance" db:"balance"`
	Status        string              `json:"status" db:"status"`
	PaidAmount    decimal.NullDecimal `json:"paid_amount" db:"paid_amount"`
	PaidDate      *time.Time          `json:"paid_date" db:"paid_date"`
	PaymentMethod *string             `json:"payment_method" db:"payment_method"`
	CreatedAt     time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at" db:"updated_at"`
}

// NewPaymentRecord creates the pending record for a schedule entry
func NewPaymentRecord(saleID uuid.UUID, entry amortization.ScheduleEntry, now time.Time) *PaymentRecord {
	return &PaymentRecord{
		ID:            uuid.New(),
		SaleID:        saleID,
		PaymentNumber: entry.PaymentNumber,
		DueDate:       entry.DueDate,
		AmountDue:     entry.AmountDue,
		Principal:     entry.Principal,
		Interest:      entry.Interest,
		Balance:       entry.Balance,
		Status:        PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (p *PaymentRecord) ScheduledPrincipal() decimal.Decimal {
	return p.Principal
}

func (p *PaymentRecord) IsPaid() bool {
	return p.Status == PaymentStatusPaid
}

type RecordPaymentRequest struct {
	PaidAmount decimal.Decimal `json:"paid_amount" validate:"decimal_gt=0"`
	PaidDate   string          `json:"paid_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type LatePaymentsResult struct {
	AsOf  time.Time `json:"as_of"`
	Sales int       `json:"sales"`
}
