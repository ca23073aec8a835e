package birthday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, input string) Date {
	t.Helper()
	d, err := ParseDate(input)
	require.NoError(t, err)
	return d
}

func today(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 12, 0, 0, 0, time.UTC)
}

func TestNextOccurrence(t *testing.T) {
	now := today(2024, time.June, 15)

	later := NextOccurrence(date(t, "08-01-1990"), now)
	assert.Equal(t, 2024, later.Year())
	assert.Equal(t, time.August, later.Month())

	passed := NextOccurrence(date(t, "03-10-1990"), now)
	assert.Equal(t, 2025, passed.Year())

	sameDay := NextOccurrence(date(t, "06-15-1990"), now)
	assert.Equal(t, 2024, sameDay.Year(), "a birthday today occurs today, not next year")
}

func TestDaysUntil(t *testing.T) {
	now := today(2024, time.January, 1)
	assert.Equal(t, 14, DaysUntil(date(t, "01-15-1990"), now))
	assert.Equal(t, 0, DaysUntil(date(t, "01-01-1990"), now))
}

func TestBucketFor(t *testing.T) {
	now := today(2024, time.January, 1)

	assert.Equal(t, BucketThisMonth, BucketFor(date(t, "01-15-1990"), now))
	assert.Equal(t, BucketUpcoming, BucketFor(date(t, "03-01-1990"), now))
	assert.Equal(t, BucketNone, BucketFor(date(t, "06-01-1990"), now))
}

func TestBucketFor_YearWrap(t *testing.T) {
	now := today(2024, time.December, 1)

	occ := NextOccurrence(date(t, "01-10-1990"), now)
	assert.Equal(t, 2025, occ.Year())
	assert.Equal(t, time.January, occ.Month())

	assert.Equal(t, BucketUpcoming, BucketFor(date(t, "01-10-1990"), now))
	assert.Equal(t, BucketUpcoming, BucketFor(date(t, "02-20-1990"), now))
	assert.Equal(t, BucketThisMonth, BucketFor(date(t, "12-25-1990"), now))
	assert.Equal(t, BucketNone, BucketFor(date(t, "03-05-1990"), now))
}

func TestBucketFor_BirthdayEarlierThisMonthIsNotThisMonth(t *testing.T) {
	// A Jan-05 birthday seen from Jan-20 next occurs a year out.
	now := today(2024, time.January, 20)
	assert.Equal(t, BucketNone, BucketFor(date(t, "01-05-1990"), now))
}

func TestBuildForecast(t *testing.T) {
	now := today(2024, time.January, 1)
	records := []Record{
		{SubjectID: "alice", Date: date(t, "01-15-1990")},
		{SubjectID: "bob", Date: date(t, "03-01-1985")},
		{SubjectID: "carol", Date: date(t, "06-01-2000")},
		{SubjectID: "dave", Date: date(t, "01-02-1970")},
	}

	f := BuildForecast(records, now)

	require.Len(t, f.ThisMonth, 2)
	assert.Equal(t, "alice", f.ThisMonth[0].SubjectID, "input order is preserved")
	assert.Equal(t, "dave", f.ThisMonth[1].SubjectID)
	require.Len(t, f.Upcoming, 1)
	assert.Equal(t, "bob", f.Upcoming[0].SubjectID)
	assert.False(t, f.Empty())
}

func TestBuildForecast_Empty(t *testing.T) {
	now := today(2024, time.January, 1)

	f := BuildForecast(nil, now)
	assert.True(t, f.Empty())

	f = BuildForecast([]Record{{SubjectID: "carol", Date: date(t, "06-01-2000")}}, now)
	assert.True(t, f.Empty(), "records outside both buckets are dropped")
}
