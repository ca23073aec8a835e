package birthday

import (
	"errors"
	"time"
)

// ErrInvalidDateFormat is returned when user input matches neither accepted
// date layout or names an impossible calendar date (month 13, Feb 30, ...).
var ErrInvalidDateFormat = errors.New("invalid date format, expected MM-DD-YYYY or YYYY-MM-DD")

const (
	// LayoutCanonical is the storage form. Values in the store are always this.
	LayoutCanonical = "2006-01-02"
	// LayoutDisplay is the form shown to users. Never stored.
	LayoutDisplay = "01-02-2006"
)

// Date is a calendar date where only month and day are meaningful. The year is
// whatever the user typed at set-time; it is kept so the value round-trips
// through the canonical form, but it is never presented as a birth year.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate accepts MM-DD-YYYY and YYYY-MM-DD, tried in that order; the first
// layout that yields a valid calendar date wins.
func ParseDate(text string) (Date, error) {
	for _, layout := range []string{LayoutDisplay, LayoutCanonical} {
		t, err := time.Parse(layout, text)
		if err != nil {
			continue
		}
		return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
	}
	return Date{}, ErrInvalidDateFormat
}

// ParseCanonical decodes a stored YYYY-MM-DD value.
func ParseCanonical(value string) (Date, error) {
	t, err := time.Parse(LayoutCanonical, value)
	if err != nil {
		return Date{}, ErrInvalidDateFormat
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// Canonical renders the storage form, YYYY-MM-DD.
func (d Date) Canonical() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(LayoutCanonical)
}

// Display renders the user-facing form, MM-DD-YYYY.
func (d Date) Display() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(LayoutDisplay)
}
