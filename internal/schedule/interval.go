// Package schedule holds the occurrence scheduling engine: local-time interval
// math, recurrence expansion, the check-in/check-out window policy, and the
// idempotent occurrence regeneration that keeps the store in sync.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidWindow is returned when a time window is unparseable or its start
// does not precede its end.
var ErrInvalidWindow = errors.New("invalid time window")

// Interval is an absolute UTC start/end pair.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// parseClock parses a strict "HH:MM" string into hour and minute.
func parseClock(s string) (int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidWindow, s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: bad hour in %q", ErrInvalidWindow, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: bad minute in %q", ErrInvalidWindow, s)
	}
	return hour, minute, nil
}

// LocalWindowToUTC combines a calendar date with a local clock-time window in
// loc and returns the corresponding UTC instants. The start must precede the
// end on the same day.
func LocalWindowToUTC(date time.Time, startClock, endClock string, loc *time.Location) (time.Time, time.Time, error) {
	startHour, startMin, err := parseClock(startClock)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endHour, endMin, err := parseClock(endClock)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if startHour*60+startMin >= endHour*60+endMin {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s >= %s", ErrInvalidWindow, startClock, endClock)
	}

	year, month, day := date.Date()
	start := time.Date(year, month, day, startHour, startMin, 0, 0, loc).UTC()
	end := time.Date(year, month, day, endHour, endMin, 0, 0, loc).UTC()
	return start, end, nil
}

// AgeOn returns whole years elapsed from birth to ref, decremented by one when
// ref falls before the birthday anniversary in its year. Callers guarantee
// ref >= birth.
func AgeOn(birth, ref time.Time) int {
	years := ref.Year() - birth.Year()
	if ref.Month() < birth.Month() ||
		(ref.Month() == birth.Month() && ref.Day() < birth.Day()) {
		years--
	}
	return years
}

// IsWithin reports whether t falls inside [open, close], inclusive on both ends.
func IsWithin(t, open, close time.Time) bool {
	return !t.Before(open) && !t.After(close)
}
