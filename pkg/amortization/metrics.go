package amortization

import (
	"github.com/shopspring/decimal"
)

// Installment is a persisted schedule entry as seen by PayoffAmount.
type Installment interface {
	ScheduledPrincipal() decimal.Decimal
	IsPaid() bool
}

// FinanceAmount is the sale price less the down payment, never negative.
func FinanceAmount(salePrice, downPayment decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, salePrice.Sub(downPayment))
}

// TotalPayment is everything the buyer pays over the life of the sale.
func TotalPayment(monthly decimal.Decimal, termMonths int, downPayment decimal.Decimal) decimal.Decimal {
	return monthly.Mul(decimal.NewFromInt(int64(termMonths))).Add(downPayment)
}

// TotalInterest is the amount paid above the sale price, never negative.
func TotalInterest(totalPayment, salePrice decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, totalPayment.Sub(salePrice))
}

// PayoffAmount returns the scheduled principal not yet retired. Only an
// installment marked paid retires its principal, and it retires exactly the
// scheduled amount regardless of what was actually paid.
func PayoffAmount[I Installment](installments []I) decimal.Decimal {
	total := decimal.Zero
	paid := decimal.Zero

	for _, inst := range installments {
		total = total.Add(inst.ScheduledPrincipal())
		if inst.IsPaid() {
			paid = paid.Add(inst.ScheduledPrincipal())
		}
	}

	return Round2(total.Sub(paid))
}

// CalculateSaleDetails previews the financial snapshot of a proposed sale.
// Each value is rounded to cents; the total uses the rounded monthly payment.
func CalculateSaleDetails(salePrice, downPayment, annualRatePercent decimal.Decimal, termMonths int) SaleFinancials {
	financeAmount := Round2(FinanceAmount(salePrice, downPayment))
	monthly := Round2(MonthlyPayment(financeAmount, annualRatePercent, termMonths))

	return SaleFinancials{
		FinanceAmount:  financeAmount,
		MonthlyPayment: monthly,
		TotalPayment:   Round2(TotalPayment(monthly, termMonths, downPayment)),
	}
}
