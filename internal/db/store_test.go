package db

import (
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenca-app/presenca/internal/model"
	"github.com/presenca-app/presenca/internal/schedule"
)

func TestMain(m *testing.M) {
	if os.Getenv("TEST_DATABASE_URL") != "" {
		if err := InitTestDB("../../migrations"); err != nil {
			log.Fatal().Err(err).Msg("test db init failed")
		}
	}
	os.Exit(m.Run())
}

// requireStore skips integration tests when no test database is configured.
func requireStore(t *testing.T) Store {
	t.Helper()
	if TestStore == nil {
		t.Skip("TEST_DATABASE_URL is not set")
	}
	return TestStore
}

func TestRunMigrationsWithMissingPath(t *testing.T) {
	// zero .up.sql files is valid, not an error
	assert.NoError(t, RunMigrations("./does-not-exist"))
}

func TestReplaceEventOccurrencesRoundTrip(t *testing.T) {
	store := requireStore(t)

	ev, err := store.CreateEvent(&model.Event{Name: "integration round trip"})
	require.NoError(t, err)
	defer func() { _ = store.DeleteEvent(ev.ID) }()

	intervals := []schedule.Interval{
		{Start: time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC), End: time.Date(2024, 6, 1, 16, 0, 0, 0, time.UTC)},
		{Start: time.Date(2024, 6, 8, 14, 0, 0, 0, time.UTC), End: time.Date(2024, 6, 8, 16, 0, 0, 0, time.UTC)},
	}

	created, err := store.ReplaceEventOccurrences(ev.ID, intervals)
	require.NoError(t, err)
	require.Len(t, created, 2)

	// replacing with the same intervals must not grow the set
	again, err := store.ReplaceEventOccurrences(ev.ID, intervals)
	require.NoError(t, err)
	assert.Len(t, again, 2)

	listed, err := store.ListEventOccurrences(ev.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.True(t, listed[0].StartAt.Before(listed[1].StartAt))
}
