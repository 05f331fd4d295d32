package amortization

import (
	"github.com/segyhp/landsale-engine/pkg/utils"

	"github.com/shopspring/decimal"
)

// GenerateSchedule computes the installment-by-installment amortization of
// terms. Interest accrues on the running balance; the rest of the fixed
// monthly payment retires principal. The last installment absorbs whatever
// principal remains, so its amount due may differ from the fixed payment by a
// few cents and its balance is exactly zero.
//
// Principal, interest, amount due and balance are rounded to cents, and the
// running balance is tracked on the rounded principal, so the principal column
// always sums to Round2(terms.Principal).
//
// A non-positive principal or term yields an empty schedule.
func GenerateSchedule(terms LoanTerms) []ScheduleEntry {
	if !terms.Principal.IsPositive() || terms.TermMonths <= 0 {
		return []ScheduleEntry{}
	}

	monthly := MonthlyPayment(terms.Principal, terms.AnnualRatePercent, terms.TermMonths)
	monthlyRate := MonthlyRate(terms.AnnualRatePercent)
	zeroRate := terms.AnnualRatePercent.IsZero()

	schedule := make([]ScheduleEntry, 0, terms.TermMonths)
	balance := Round2(terms.Principal)

	for n := 1; n <= terms.TermMonths; n++ {
		interest := decimal.Zero
		if !zeroRate {
			interest = Round2(balance.Mul(monthlyRate))
		}

		principal := Round2(monthly.Sub(interest))
		if principal.IsNegative() {
			principal = decimal.Zero
		}
		// Never retire more than is owed; later installments carry zero principal.
		if principal.GreaterThan(balance) {
			principal = balance
		}

		remaining := balance.Sub(principal)
		if n == terms.TermMonths {
			principal = principal.Add(remaining)
			remaining = decimal.Zero
		}

		schedule = append(schedule, ScheduleEntry{
			PaymentNumber: n,
			DueDate:       utils.CalculateDueDate(terms.StartDate, n),
			AmountDue:     principal.Add(interest),
			Principal:     principal,
			Interest:      interest,
			Balance:       remaining,
		})

		balance = remaining
	}

	return schedule
}
