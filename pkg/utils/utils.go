package utils

import "time"

// AddMonths advances date by the given number of calendar months.
// When the target month is shorter than the source day-of-month the day is
// clamped to the last day of the target month (Jan 31 + 1 month = Feb 28/29).
func AddMonths(date time.Time, months int) time.Time {
	year, month, day := date.Date()
	hour, minute, sec := date.Clock()

	// Day 1 of the target month never overflows, so AddDate only rolls the month.
	firstOfTarget := time.Date(year, month, 1, hour, minute, sec, date.Nanosecond(), date.Location()).
		AddDate(0, months, 0)

	lastDay := DaysInMonth(firstOfTarget.Year(), firstOfTarget.Month())
	if day > lastDay {
		day = lastDay
	}

	return firstOfTarget.AddDate(0, 0, day-1)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CalculateDueDate returns the due date of the n-th monthly installment
// counted from the start date. Installment 1 is due one month after start.
func CalculateDueDate(startDate time.Time, paymentNumber int) time.Time {
	return AddMonths(startDate, paymentNumber)
}

// TruncateToDay drops the clock portion of t, keeping its location.
func TruncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
