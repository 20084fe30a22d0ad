package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TimeWindow is one local clock-time slot of a recurrence rule ("HH:MM").
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// RecurrenceRule is stored as a jsonb column on events.
// Weekdays use Monday=0 .. Sunday=6.
type RecurrenceRule struct {
	Frequency   string       `json:"frequency,omitempty"`
	Weekdays    []int        `json:"weekdays"`
	TimeWindows []TimeWindow `json:"time_windows"`
}

// Value implements driver.Valuer so sqlx can write the rule as jsonb.
func (r RecurrenceRule) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for the jsonb column.
func (r *RecurrenceRule) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	case nil:
		return nil
	default:
		return fmt.Errorf("recurrence_rule: cannot scan %T", src)
	}
}

type Event struct {
	ID          int     `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	IsRecurring bool    `db:"is_recurring" json:"is_recurring"`

	// one-off events
	SingleStart *time.Time `db:"single_start" json:"single_start"`
	SingleEnd   *time.Time `db:"single_end" json:"single_end"`

	// recurring events; dates are inclusive
	RecurrenceStartDate *time.Time      `db:"recurrence_start_date" json:"recurrence_start_date"`
	RecurrenceEndDate   *time.Time      `db:"recurrence_end_date" json:"recurrence_end_date"`
	RecurrenceRule      *RecurrenceRule `db:"recurrence_rule" json:"recurrence_rule"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
