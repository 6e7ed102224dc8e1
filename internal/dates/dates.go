// Package dates handles calendar-date parsing for the ledger.
//
// The ledger historically accepted dates in two layouts, DD-MM-YYYY and
// YYYY-MM-DD. Writes keep accepting both; everything is stored as a native
// date value truncated to midnight UTC.
package dates

import (
	"time"

	apperrors "tally/internal/errors"
)

const (
	// LayoutDayFirst is the receipt/legacy layout (DD-MM-YYYY).
	LayoutDayFirst = "02-01-2006"
	// LayoutISO is the ISO calendar-date layout (YYYY-MM-DD).
	LayoutISO = "2006-01-02"
)

// ParseLedgerDate parses a calendar date, trying DD-MM-YYYY first and
// falling back to YYYY-MM-DD. Returns ErrMalformedDate when neither
// layout matches.
func ParseLedgerDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(LayoutDayFirst, s, time.UTC); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(LayoutISO, s, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, apperrors.WithMessage(apperrors.ErrMalformedDate, "unparseable date: "+s)
}

// ParseStrictDayFirst parses a date that must be DD-MM-YYYY, with no
// fallback. Receipt records use this layout exclusively.
func ParseStrictDayFirst(s string) (time.Time, error) {
	t, err := time.ParseInLocation(LayoutDayFirst, s, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrMalformedDate, "unparseable date: "+s)
	}
	return t, nil
}

// Truncate drops the time-of-day component, keeping the calendar date in UTC.
func Truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthBounds returns the first and last day of the given calendar month.
// The last day accounts for month length and leap years.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// MonthStart returns the first day of the month containing t.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}
