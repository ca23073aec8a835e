package birthday

import (
	"time"
)

// Bucket classifies how soon a birthday's next occurrence falls.
type Bucket int

const (
	// BucketNone: the next occurrence is more than two calendar months away.
	BucketNone Bucket = iota
	// BucketThisMonth: the next occurrence falls in the current calendar month.
	BucketThisMonth
	// BucketUpcoming: the next occurrence falls in one of the following two
	// calendar months, wrapping December into January.
	BucketUpcoming
)

// NextOccurrence resolves the date on which the birthday next recurs relative
// to today: this year if the month-day has not passed yet, else next year.
// Feb-29 normalizes to Mar-1 in non-leap years (time.Date behavior).
func NextOccurrence(d Date, today time.Time) time.Time {
	year := today.Year()
	occ := time.Date(year, d.Month, d.Day, 0, 0, 0, 0, today.Location())
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if occ.Before(todayDate) {
		occ = time.Date(year+1, d.Month, d.Day, 0, 0, 0, 0, today.Location())
	}
	return occ
}

// DaysUntil is the whole number of days from today to the next occurrence.
func DaysUntil(d Date, today time.Time) int {
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return int(NextOccurrence(d, today).Sub(todayDate).Hours() / 24)
}

// BucketFor places a birthday relative to today. Months are compared as
// calendar months, so a Jan-10 birthday seen from Dec-01 is BucketUpcoming.
func BucketFor(d Date, today time.Time) Bucket {
	occ := NextOccurrence(d, today)
	if occ.Year() == today.Year() && occ.Month() == today.Month() {
		return BucketThisMonth
	}
	monthsAhead := (occ.Year()-today.Year())*12 + int(occ.Month()) - int(today.Month())
	if monthsAhead == 1 || monthsAhead == 2 {
		return BucketUpcoming
	}
	return BucketNone
}

// Forecast holds the records whose birthdays are close enough to announce,
// split by bucket. Slice order follows the input order.
type Forecast struct {
	ThisMonth []Record
	Upcoming  []Record
}

// Empty reports whether there is nothing to announce.
func (f Forecast) Empty() bool {
	return len(f.ThisMonth) == 0 && len(f.Upcoming) == 0
}

// BuildForecast buckets records against today, dropping everything more than
// two calendar months out.
func BuildForecast(records []Record, today time.Time) Forecast {
	var f Forecast
	for _, r := range records {
		switch BucketFor(r.Date, today) {
		case BucketThisMonth:
			f.ThisMonth = append(f.ThisMonth, r)
		case BucketUpcoming:
			f.Upcoming = append(f.Upcoming, r)
		}
	}
	return f
}
