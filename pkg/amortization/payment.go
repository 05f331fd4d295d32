package amortization

import (
	"math"

	"github.com/shopspring/decimal"
)

// MonthlyRate converts an annual percentage into a monthly fraction.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(hundred).Div(monthsPerYear)
}

// MonthlyPayment returns the unrounded fixed monthly payment:
//
//	payment = P * r(1+r)^n / ((1+r)^n - 1), r = annualRatePercent/100/12
//
// A zero rate splits the principal evenly. Non-positive principal or term
// returns zero.
func MonthlyPayment(principal, annualRatePercent decimal.Decimal, termMonths int) decimal.Decimal {
	if !principal.IsPositive() || termMonths <= 0 {
		return decimal.Zero
	}

	if annualRatePercent.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(termMonths)))
	}

	// The power is taken in float64; money stays in decimal.
	r := MonthlyRate(annualRatePercent).InexactFloat64()
	factor := math.Pow(1+r, float64(termMonths))

	return principal.Mul(decimal.NewFromFloat(r * factor / (factor - 1)))
}
