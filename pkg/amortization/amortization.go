// Package amortization turns a financed amount, an annual rate and a term into
// a fixed monthly payment, a month-by-month schedule and the derived totals
// shown on a sale. Everything here is pure: no I/O, no clock, no shared state.
package amortization

import (
	"time"

	customError "github.com/segyhp/landsale-engine/pkg/errors"

	"github.com/shopspring/decimal"
)

var (
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
)

// LoanTerms describes the financed part of a sale.
type LoanTerms struct {
	Principal         decimal.Decimal
	AnnualRatePercent decimal.Decimal // 9.9 means 9.9% per year
	TermMonths        int
	StartDate         time.Time
}

// NewLoanTerms builds LoanTerms, rejecting negative principal, rate or term.
// A zero principal or zero term is accepted and yields an empty schedule.
func NewLoanTerms(principal, annualRatePercent decimal.Decimal, termMonths int, startDate time.Time) (LoanTerms, error) {
	if principal.IsNegative() {
		return LoanTerms{}, customError.NewValidationError("principal", "must not be negative")
	}
	if annualRatePercent.IsNegative() {
		return LoanTerms{}, customError.NewValidationError("annual_rate_percent", "must not be negative")
	}
	if termMonths < 0 {
		return LoanTerms{}, customError.NewValidationError("term_months", "must not be negative")
	}

	return LoanTerms{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TermMonths:        termMonths,
		StartDate:         startDate,
	}, nil
}

// ScheduleEntry is one installment of an amortization schedule.
type ScheduleEntry struct {
	PaymentNumber int             `json:"payment_number"`
	DueDate       time.Time       `json:"due_date"`
	AmountDue     decimal.Decimal `json:"amount_due"`
	Principal     decimal.Decimal `json:"principal"`
	Interest      decimal.Decimal `json:"interest"`
	Balance       decimal.Decimal `json:"balance"`
}

// SaleFinancials is the snapshot stored on a sale when it is created.
type SaleFinancials struct {
	FinanceAmount  decimal.Decimal `json:"finance_amount"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPayment   decimal.Decimal `json:"total_payment"`
}

// Round2 rounds to the nearest cent, half away from zero.
func Round2(x decimal.Decimal) decimal.Decimal {
	return x.Round(2)
}
