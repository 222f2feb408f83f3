package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay_KeepsWrittenCalendarDay(t *testing.T) {
	cases := map[string]string{
		"2025-03-05":                "2025-03-05",
		"2025-03-05T23:30:00-05:00": "2025-03-05",
		"2025-03-05T00:30:00+05:30": "2025-03-05",
		"2025-03-05T18:00:00Z":      "2025-03-05",
		"2025-03-05T10:11:12":       "2025-03-05",
	}
	for in, want := range cases {
		got, err := ParseDay(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, FormatDay(got), in)
		assert.Equal(t, time.UTC, got.Location())
		assert.Zero(t, got.Hour())
	}
}

func TestParseDay_Invalid(t *testing.T) {
	_, err := ParseDay("05/03/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestMonthRange(t *testing.T) {
	m, err := ParseMonth("2024-12")
	require.NoError(t, err)
	start, end := MonthRange(m)
	assert.Equal(t, "2024-12-01", FormatDay(start))
	assert.Equal(t, "2025-01-01", FormatDay(end))
}

func TestParseMonth_Invalid(t *testing.T) {
	_, err := ParseMonth("2024-13")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestInclusiveRange(t *testing.T) {
	a, _ := ParseDay("2025-06-01")
	b, _ := ParseDay("2025-06-03")
	start, end := InclusiveRange(a, b)
	assert.Equal(t, "2025-06-01", FormatDay(start))
	assert.Equal(t, "2025-06-04", FormatDay(end))
}
