package model

import "time"

// Occurrence is one concrete time-boxed instance of an event. Occurrences are
// derived data: regenerated wholesale whenever the owning event's schedule
// changes, never hand-edited.
type Occurrence struct {
	ID      int       `db:"id" json:"id"`
	EventID int       `db:"event_id" json:"event_id"`
	StartAt time.Time `db:"start_at" json:"start_at"`
	EndAt   time.Time `db:"end_at" json:"end_at"`
}
