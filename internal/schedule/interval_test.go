package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestLocalWindowToUTC(t *testing.T) {
	saoPaulo := mustLoc(t, "America/Sao_Paulo")
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("converts local window to UTC", func(t *testing.T) {
		start, end, err := LocalWindowToUTC(date, "10:00", "12:00", saoPaulo)
		require.NoError(t, err)
		// Sao Paulo is UTC-3 with no DST
		assert.Equal(t, time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC), end)
		assert.True(t, start.Before(end))
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		_, _, err := LocalWindowToUTC(date, "12:00", "10:00", saoPaulo)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("rejects zero-length window", func(t *testing.T) {
		_, _, err := LocalWindowToUTC(date, "10:00", "10:00", saoPaulo)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("rejects malformed clock strings", func(t *testing.T) {
		for _, bad := range []string{"10", "10:0x", "25:00", "10:60", "ten:30", "10:00:00"} {
			_, _, err := LocalWindowToUTC(date, bad, "23:59", saoPaulo)
			assert.ErrorIs(t, err, ErrInvalidWindow, "start %q", bad)
		}
		_, _, err := LocalWindowToUTC(date, "10:00", "nope", saoPaulo)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})
}

func TestAgeOn(t *testing.T) {
	birth := time.Date(2010, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("day before anniversary", func(t *testing.T) {
		assert.Equal(t, 13, AgeOn(birth, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)))
	})
	t.Run("on anniversary", func(t *testing.T) {
		assert.Equal(t, 14, AgeOn(birth, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)))
	})
	t.Run("day after anniversary", func(t *testing.T) {
		assert.Equal(t, 14, AgeOn(birth, time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)))
	})
	t.Run("earlier month", func(t *testing.T) {
		assert.Equal(t, 13, AgeOn(birth, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	})
}

func TestIsWithin(t *testing.T) {
	open := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	close := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)

	assert.True(t, IsWithin(open, open, close), "inclusive at open")
	assert.True(t, IsWithin(close, open, close), "inclusive at close")
	assert.True(t, IsWithin(open.Add(time.Hour), open, close))
	assert.False(t, IsWithin(open.Add(-time.Second), open, close))
	assert.False(t, IsWithin(close.Add(time.Second), open, close))
}
