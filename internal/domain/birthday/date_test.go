package birthday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_AcceptsBothLayouts(t *testing.T) {
	cases := []struct {
		input string
		month time.Month
		day   int
		year  int
	}{
		{"04-27-1990", time.April, 27, 1990},
		{"1990-04-27", time.April, 27, 1990},
		{"12-31-2000", time.December, 31, 2000},
		{"2000-12-31", time.December, 31, 2000},
		{"02-29-2024", time.February, 29, 2024}, // leap day
	}
	for _, tc := range cases {
		d, err := ParseDate(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.month, d.Month, "input %q", tc.input)
		assert.Equal(t, tc.day, d.Day, "input %q", tc.input)
		assert.Equal(t, tc.year, d.Year, "input %q", tc.input)
	}
}

func TestParseDate_RejectsInvalidInput(t *testing.T) {
	cases := []string{
		"",
		"not a date",
		"13-01-1990", // month 13
		"01-32-1990", // day 32
		"02-30-1999", // Feb 30
		"1990-13-01",
		"1990-02-30",
		"27-04-1990", // DD-MM-YYYY is not accepted
		"04/27/1990",
	}
	for _, input := range cases {
		_, err := ParseDate(input)
		assert.ErrorIs(t, err, ErrInvalidDateFormat, "input %q", input)
	}
}

func TestDate_StorageAndDisplayFormsDiffer(t *testing.T) {
	d, err := ParseDate("04-27-1990")
	require.NoError(t, err)

	assert.Equal(t, "1990-04-27", d.Canonical())
	assert.Equal(t, "04-27-1990", d.Display())
}

func TestParseDate_RoundTripsThroughDisplayForm(t *testing.T) {
	for _, input := range []string{"04-27-1990", "1990-04-27", "2001-01-01"} {
		d, err := ParseDate(input)
		require.NoError(t, err)

		again, err := ParseDate(d.Display())
		require.NoError(t, err)
		assert.Equal(t, d, again, "input %q", input)
	}
}

func TestParseCanonical(t *testing.T) {
	d, err := ParseCanonical("1990-04-27")
	require.NoError(t, err)
	assert.Equal(t, "04-27-1990", d.Display())

	_, err = ParseCanonical("04-27-1990")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}
