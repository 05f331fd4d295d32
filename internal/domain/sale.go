package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/landsale-engine/pkg/amortization"
)

const (
	SaleStatusActive  = "active"
	SaleStatusPaidOff = "paid_off"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// Sale represents a seller-financed sale of a parcel.
// FinanceAmount, MonthlyPayment and TotalPayment are the snapshot taken at
// creation and are never recomputed.
type Sale struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	ParcelID       uuid.UUID       `json:"parcel_id" db:"parcel_id"`
	BuyerName      string          `json:"buyer_name" db:"buyer_name"`
	BuyerEmail     string          `json:"buyer_email" db:"buyer_email"`
	SalePrice      decimal.Decimal `json:"sale_price" db:"sale_price"`
	DownPayment    decimal.Decimal `json:"down_payment" db:"down_payment"`
	InterestRate   decimal.Decimal `json:"interest_rate" db:"interest_rate"` // annual percent
	TermMonths     int             `json:"term_months" db:"term_months"`
	SaleDate       time.Time       `json:"sale_date" db:"sale_date"`
	FinanceAmount  decimal.Decimal `json:"finance_amount" db:"finance_amount"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment" db:"monthly_payment"`
	TotalPayment   decimal.Decimal `json:"total_payment" db:"total_payment"`
	Status         string          `json:"status" db:"status"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// Financials returns the stored snapshot
func (s *Sale) Financials() amortization.SaleFinancials {
	return amortization.SaleFinancials{
		FinanceAmount:  s.FinanceAmount,
		MonthlyPayment: s.MonthlyPayment,
		TotalPayment:   s.TotalPayment,
	}
}

// DTOs for requests and responses

type CreateSaleRequest struct {
	ParcelID     uuid.UUID        `json:"parcel_id" validate:"required"`
	BuyerName    string           `json:"buyer_name" validate:"required,max=255"`
	BuyerEmail   string           `json:"buyer_email" validate:"required,email"`
	SalePrice    decimal.Decimal  `json:"sale_price" validate:"decimal_gt=0"`
	DownPayment  decimal.Decimal  `json:"down_payment" validate:"decimal_gte=0"`
	InterestRate *decimal.Decimal `json:"interest_rate,omitempty" validate:"omitempty,decimal_gte=0"`
	TermMonths   int              `json:"term_months,omitempty" validate:"omitempty,gt=0,lte=600"`
	SaleDate     string           `json:"sale_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type SalePreviewRequest struct {
	SalePrice    decimal.Decimal `json:"sale_price" validate:"decimal_gt=0"`
	DownPayment  decimal.Decimal `json:"down_payment" validate:"decimal_gte=0"`
	InterestRate decimal.Decimal `json:"interest_rate" validate:"decimal_gte=0"`
	TermMonths   int             `json:"term_months" validate:"required,gt=0,lte=600"`
}

type SalePreviewResponse struct {
	amortization.SaleFinancials
	TotalInterest decimal.Decimal `json:"total_interest"`
}

type CreateSaleResponse struct {
	Sale     *Sale            `json:"sale"`
	Payments []*PaymentRecord `json:"payments"`
}

type SaleDetailResponse struct {
	Sale          *Sale            `json:"sale"`
	Payments      []*PaymentRecord `json:"payments"`
	PayoffAmount  decimal.Decimal  `json:"payoff_amount"`
	TotalInterest decimal.Decimal  `json:"total_interest"`
	PaidCount     int              `json:"paid_count"`
}

type PayoffResponse struct {
	SaleID       uuid.UUID       `json:"sale_id"`
	PayoffAmount decimal.Decimal `json:"payoff_amount"`
}
