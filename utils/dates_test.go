package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysBetween(t *testing.T) {
	base := time.Date(2024, 1, 15, 13, 45, 0, 0, time.UTC)

	// Time of day never shifts the distance
	assert.Equal(t, 0, DaysBetween(base, base.Add(9*time.Hour)))
	assert.Equal(t, 1, DaysBetween(base, time.Date(2024, 1, 16, 0, 1, 0, 0, time.UTC)))
	assert.Equal(t, -1, DaysBetween(base, time.Date(2024, 1, 14, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, 17, DaysBetween(base, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))

	// Across a month boundary backwards
	assert.Equal(t, -15, DaysBetween(base, time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC)))
}

func TestDaysBetweenMixedLocations(t *testing.T) {
	// End dates are stored as UTC midnights; the as-of side is a local
	// wall-clock time. Negative offsets must not lose a day to truncation.
	endDate, err := ParseDay("2024-01-16")
	require.NoError(t, err)

	est := time.FixedZone("EST", -5*3600)
	assert.Equal(t, 1, DaysBetween(time.Date(2024, 1, 15, 10, 0, 0, 0, est), endDate))

	ist := time.FixedZone("IST", 5*3600+1800)
	assert.Equal(t, 1, DaysBetween(time.Date(2024, 1, 15, 10, 0, 0, 0, ist), endDate))
	assert.Equal(t, -1, DaysBetween(time.Date(2024, 1, 17, 10, 0, 0, 0, ist), endDate))
}

func TestParseAndFormatDay(t *testing.T) {
	day, err := ParseDay("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), day)
	assert.Equal(t, "2024-01-15", FormatDay(day))

	for _, bad := range []string{"", "15-01-2024", "2024/01/15", "2024-13-01", "yesterday"} {
		_, err := ParseDay(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestBeginningOfDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	ts := time.Date(2024, 1, 15, 23, 59, 59, 0, loc)
	start := BeginningOfDay(ts)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, loc), start)
	assert.Equal(t, loc, start.Location())
}
