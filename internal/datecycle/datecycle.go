// Package datecycle provides billing-cycle date arithmetic: statement dates,
// due dates, and calendar-month math. All functions operate on date-only
// semantics; times are normalized to midnight UTC and days of month are
// clamped to 1-28 so every month qualifies.
package datecycle

import "time"

// maxCycleDay is the highest day-of-month used in cycle math. Clamping here
// keeps February and 30-day months from producing invalid dates.
const maxCycleDay = 28

// Truncate normalizes a time to its calendar date at midnight UTC.
func Truncate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ClampDay restricts a day-of-month to the usable 1-28 range.
func ClampDay(day int) int {
	if day < 1 {
		return 1
	}
	if day > maxCycleDay {
		return maxCycleDay
	}
	return day
}

// NextDayOfMonth returns the next occurrence of the given day-of-month,
// counting base itself as a candidate: if base's day is on or before the
// target day the result falls in base's month, otherwise in the next month.
// A zero base yields the zero time.
func NextDayOfMonth(base time.Time, day int) time.Time {
	if base.IsZero() {
		return time.Time{}
	}
	day = ClampDay(day)
	base = Truncate(base)
	if base.Day() <= day {
		return time.Date(base.Year(), base.Month(), day, 0, 0, 0, 0, time.UTC)
	}
	// time.Date normalizes month overflow into the next year.
	return time.Date(base.Year(), base.Month()+1, day, 0, 0, 0, 0, time.UTC)
}

// NextStatementDate returns the first statement close on or after the
// purchase date.
func NextStatementDate(purchaseDate time.Time, statementDay int) time.Time {
	return NextDayOfMonth(purchaseDate, statementDay)
}

// NextDueDate returns the payment due date for a purchase: the next
// occurrence of dueDay strictly after the statement closes. Even when
// statementDay equals dueDay the due date lands at least one day past the
// statement date.
func NextDueDate(purchaseDate time.Time, statementDay, dueDay int) time.Time {
	statement := NextStatementDate(purchaseDate, statementDay)
	if statement.IsZero() {
		return time.Time{}
	}
	return NextDayOfMonth(statement.AddDate(0, 0, 1), dueDay)
}

// AddMonths advances a date by n calendar months, clamping the day of month
// to 28 to avoid invalid dates such as February 30.
func AddMonths(date time.Time, n int) time.Time {
	if date.IsZero() {
		return time.Time{}
	}
	date = Truncate(date)
	day := date.Day()
	if day > maxCycleDay {
		day = maxCycleDay
	}
	return time.Date(date.Year(), date.Month()+time.Month(n), day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the absolute number of whole days between two dates.
func DaysBetween(a, b time.Time) int {
	a, b = Truncate(a), Truncate(b)
	days := int(b.Sub(a).Hours() / 24)
	if days < 0 {
		return -days
	}
	return days
}
