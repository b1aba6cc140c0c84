package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.February, 29), d)
	assert.Equal(t, "2024-02-29", d.String())

	_, err = ParseDate("29/02/2024")
	require.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDate("2023-02-29")
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2024, time.February, 28)

	assert.Equal(t, NewDate(2024, time.February, 29), d.AddDays(1))
	assert.Equal(t, NewDate(2024, time.March, 1), d.AddDays(2))
	assert.Equal(t, NewDate(2024, time.January, 31), d.AddDays(-28))
	assert.Equal(t, 29, d.DaysInMonth())
	assert.Equal(t, 28, NewDate(2023, time.February, 1).DaysInMonth())
	assert.Equal(t, time.Thursday, NewDate(2024, time.February, 29).Weekday())
}

func TestDateOrdering(t *testing.T) {
	early := NewDate(2024, time.January, 31)
	late := NewDate(2024, time.February, 1)

	assert.True(t, early.Before(late))
	assert.True(t, late.After(early))
	assert.False(t, early.Before(early))
	assert.True(t, early.Equal(early))

	assert.Equal(t, late, MaxDate(early, late))
	assert.Equal(t, late, MaxDate(late, early))
	assert.Equal(t, early, MaxDate(early))
}

func TestDateOfUsesInstantLocation(t *testing.T) {
	sast := time.FixedZone("SAST", 2*60*60)
	instant := time.Date(2024, 1, 9, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, NewDate(2024, time.January, 9), DateOf(instant))
	assert.Equal(t, NewDate(2024, time.January, 10), DateOf(instant.In(sast)))
}
