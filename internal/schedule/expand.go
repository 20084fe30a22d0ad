package schedule

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/presenca-app/presenca/internal/model"
)

// ErrMissingRecurrenceData is returned for a recurring event whose rule, date
// range, weekday set, or window list is absent or empty.
var ErrMissingRecurrenceData = errors.New("incomplete recurrence configuration")

// specWeekday converts Go's Sunday=0 weekday to the rule convention Monday=0.
func specWeekday(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// Expand produces the event's concrete occurrence intervals, ordered by date
// ascending then by window declaration order. It is a pure function of the
// event: regenerating twice with no changes yields the same sequence.
//
// A non-recurring event yields exactly one interval when both single bounds
// are set and nothing otherwise. For recurring events, malformed individual
// time windows are skipped with a warning rather than aborting the expansion.
func Expand(ev *model.Event, loc *time.Location) ([]Interval, error) {
	if !ev.IsRecurring {
		if ev.SingleStart == nil || ev.SingleEnd == nil {
			return nil, nil
		}
		return []Interval{{Start: ev.SingleStart.UTC(), End: ev.SingleEnd.UTC()}}, nil
	}

	rule := ev.RecurrenceRule
	if rule == nil || ev.RecurrenceStartDate == nil || ev.RecurrenceEndDate == nil ||
		len(rule.Weekdays) == 0 || len(rule.TimeWindows) == 0 {
		return nil, ErrMissingRecurrenceData
	}

	weekdays := make(map[int]bool, len(rule.Weekdays))
	for _, d := range rule.Weekdays {
		weekdays[d] = true
	}

	// Iterate the inclusive date range; start > end is an empty sequence.
	// The range bounds are calendar dates, so only Y/M/D is read from them:
	// re-anchoring in loc keeps the weekday independent of how the driver
	// scanned the date column.
	sd, ed := *ev.RecurrenceStartDate, *ev.RecurrenceEndDate
	first := time.Date(sd.Year(), sd.Month(), sd.Day(), 0, 0, 0, 0, loc)
	last := time.Date(ed.Year(), ed.Month(), ed.Day(), 0, 0, 0, 0, loc)

	var out []Interval
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if !weekdays[specWeekday(day.Weekday())] {
			continue
		}
		for _, w := range rule.TimeWindows {
			start, end, err := LocalWindowToUTC(day, w.Start, w.End, loc)
			if err != nil {
				log.Warn().Err(err).
					Int("event_id", ev.ID).
					Str("window_start", w.Start).
					Str("window_end", w.End).
					Msg("skipping malformed time window")
				continue
			}
			out = append(out, Interval{Start: start, End: end})
		}
	}
	return out, nil
}
