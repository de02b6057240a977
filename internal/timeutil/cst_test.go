package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2024, time.March, 15, 18, 45, 12, 0, CST)
	start := StartOfDay(ts)

	assert.Equal(t, 2024, start.Year())
	assert.Equal(t, time.March, start.Month())
	assert.Equal(t, 15, start.Day())
	assert.Zero(t, start.Hour())
	assert.Zero(t, start.Minute())
}

func TestStartOfDayConvertsFromUTC(t *testing.T) {
	// 02:00 UTC on the 16th is still the evening of the 15th in Mexico City
	ts := time.Date(2024, time.March, 16, 2, 0, 0, 0, time.UTC)
	start := StartOfDay(ts)

	assert.Equal(t, 15, start.Day())
}

func TestStartOfMonthAndPrior(t *testing.T) {
	ts := time.Date(2024, time.March, 20, 12, 0, 0, 0, CST)

	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, CST), StartOfMonth(ts))
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, CST), StartOfPriorMonth(ts))

	// Year boundary
	jan := time.Date(2024, time.January, 5, 8, 0, 0, 0, CST)
	assert.Equal(t, time.Date(2023, time.December, 1, 0, 0, 0, 0, CST), StartOfPriorMonth(jan))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, time.March, 15, 1, 0, 0, 0, CST)
	b := time.Date(2024, time.March, 15, 23, 30, 0, 0, CST)
	c := time.Date(2024, time.March, 16, 0, 30, 0, 0, CST)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(b, c))
}

func TestParseInCST(t *testing.T) {
	parsed, err := ParseInCST(DateLayout, "2024-03-15")
	assert.NoError(t, err)
	assert.Equal(t, 15, parsed.Day())
	assert.Equal(t, CST.String(), parsed.Location().String())

	_, err = ParseInCST(DateLayout, "not-a-date")
	assert.Error(t, err)
}
