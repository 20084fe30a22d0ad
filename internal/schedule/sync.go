package schedule

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/presenca-app/presenca/internal/model"
)

// OccurrenceStore is the persistence surface Regenerate needs. The replace
// must be atomic: a failure midway leaves either the prior occurrence set or
// the new one, never a mixture.
type OccurrenceStore interface {
	ReplaceEventOccurrences(eventID int, intervals []Interval) ([]model.Occurrence, error)
}

// Regenerate expands the event's schedule and replaces every persisted
// occurrence of the event with the fresh set. It is idempotent: running it
// twice against an unchanged event yields the same occurrence set.
//
// Deleting an occurrence cascades to its attendances; schedule edits discard
// attendance history for the event, which is accepted behavior.
func Regenerate(store OccurrenceStore, ev *model.Event, loc *time.Location) ([]model.Occurrence, error) {
	intervals, err := Expand(ev, loc)
	if err != nil {
		return nil, err
	}
	occurrences, err := store.ReplaceEventOccurrences(ev.ID, intervals)
	if err != nil {
		return nil, err
	}
	log.Info().Int("event_id", ev.ID).Int("count", len(occurrences)).Msg("regenerated occurrences")
	return occurrences, nil
}
