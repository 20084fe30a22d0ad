package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenca-app/presenca/internal/model"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestExpandSingleEvent(t *testing.T) {
	loc := mustLoc(t, "America/Sao_Paulo")
	start := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 1, 16, 0, 0, 0, time.UTC)

	t.Run("both bounds set yields exactly one interval", func(t *testing.T) {
		ev := &model.Event{SingleStart: &start, SingleEnd: &end}
		intervals, err := Expand(ev, loc)
		require.NoError(t, err)
		require.Len(t, intervals, 1)
		assert.Equal(t, start, intervals[0].Start)
		assert.Equal(t, end, intervals[0].End)
	})

	t.Run("missing bound yields nothing", func(t *testing.T) {
		intervals, err := Expand(&model.Event{SingleStart: &start}, loc)
		require.NoError(t, err)
		assert.Empty(t, intervals)
	})
}

func TestExpandMissingRecurrenceData(t *testing.T) {
	loc := mustLoc(t, "America/Sao_Paulo")

	cases := map[string]*model.Event{
		"no rule": {
			IsRecurring:         true,
			RecurrenceStartDate: datePtr(2024, 1, 1),
			RecurrenceEndDate:   datePtr(2024, 1, 14),
		},
		"no start date": {
			IsRecurring:       true,
			RecurrenceEndDate: datePtr(2024, 1, 14),
			RecurrenceRule: &model.RecurrenceRule{
				Weekdays:    []int{0},
				TimeWindows: []model.TimeWindow{{Start: "10:00", End: "12:00"}},
			},
		},
		"empty weekday set": {
			IsRecurring:         true,
			RecurrenceStartDate: datePtr(2024, 1, 1),
			RecurrenceEndDate:   datePtr(2024, 1, 14),
			RecurrenceRule: &model.RecurrenceRule{
				TimeWindows: []model.TimeWindow{{Start: "10:00", End: "12:00"}},
			},
		},
		"empty window list": {
			IsRecurring:         true,
			RecurrenceStartDate: datePtr(2024, 1, 1),
			RecurrenceEndDate:   datePtr(2024, 1, 14),
			RecurrenceRule:      &model.RecurrenceRule{Weekdays: []int{0}},
		},
	}

	for name, ev := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Expand(ev, loc)
			assert.ErrorIs(t, err, ErrMissingRecurrenceData)
		})
	}
}

func TestExpandRecurringEvent(t *testing.T) {
	loc := mustLoc(t, "America/Sao_Paulo")

	// 2024-01-01 is a Monday; Mondays and Wednesdays over two weeks
	ev := &model.Event{
		ID:                  7,
		IsRecurring:         true,
		RecurrenceStartDate: datePtr(2024, 1, 1),
		RecurrenceEndDate:   datePtr(2024, 1, 14),
		RecurrenceRule: &model.RecurrenceRule{
			Weekdays:    []int{0, 2},
			TimeWindows: []model.TimeWindow{{Start: "10:00", End: "12:00"}},
		},
	}

	intervals, err := Expand(ev, loc)
	require.NoError(t, err)
	require.Len(t, intervals, 4)

	// Jan 1, 3, 8, 10 at 10:00-12:00 local = 13:00-15:00 UTC
	expectedDays := []int{1, 3, 8, 10}
	for i, iv := range intervals {
		assert.Equal(t, time.Date(2024, 1, expectedDays[i], 13, 0, 0, 0, time.UTC), iv.Start)
		assert.Equal(t, time.Date(2024, 1, expectedDays[i], 15, 0, 0, 0, time.UTC), iv.End)
	}
}

func TestExpandOrderingAndProperties(t *testing.T) {
	loc := mustLoc(t, "America/Sao_Paulo")

	ev := &model.Event{
		IsRecurring:         true,
		RecurrenceStartDate: datePtr(2024, 3, 1),
		RecurrenceEndDate:   datePtr(2024, 3, 31),
		RecurrenceRule: &model.RecurrenceRule{
			Weekdays: []int{1, 3}, // Tue, Thu
			TimeWindows: []model.TimeWindow{
				{Start: "14:00", End: "16:00"},
				{Start: "18:00", End: "20:00"},
			},
		},
	}

	intervals, err := Expand(ev, loc)
	require.NoError(t, err)
	require.NotEmpty(t, intervals)

	allowed := map[int]bool{1: true, 3: true}
	for i, iv := range intervals {
		localWeekday := (int(iv.Start.In(loc).Weekday()) + 6) % 7
		assert.True(t, allowed[localWeekday], "interval %d on weekday %d", i, localWeekday)
		assert.Equal(t, 2*time.Hour, iv.End.Sub(iv.Start))
		if i > 0 {
			assert.False(t, iv.Start.Before(intervals[i-1].Start), "output must be ordered")
		}
	}
}

func TestExpandEdgeCases(t *testing.T) {
	loc := mustLoc(t, "America/Sao_Paulo")
	rule := &model.RecurrenceRule{
		Weekdays:    []int{0}, // Monday
		TimeWindows: []model.TimeWindow{{Start: "10:00", End: "12:00"}},
	}

	t.Run("single-day range with matching weekday", func(t *testing.T) {
		ev := &model.Event{
			IsRecurring:         true,
			RecurrenceStartDate: datePtr(2024, 1, 1),
			RecurrenceEndDate:   datePtr(2024, 1, 1),
			RecurrenceRule:      rule,
		}
		intervals, err := Expand(ev, loc)
		require.NoError(t, err)
		assert.Len(t, intervals, 1)
	})

	t.Run("single-day range with non-matching weekday", func(t *testing.T) {
		ev := &model.Event{
			IsRecurring:         true,
			RecurrenceStartDate: datePtr(2024, 1, 2),
			RecurrenceEndDate:   datePtr(2024, 1, 2),
			RecurrenceRule:      rule,
		}
		intervals, err := Expand(ev, loc)
		require.NoError(t, err)
		assert.Empty(t, intervals)
	})

	t.Run("inverted range is empty, not an error", func(t *testing.T) {
		ev := &model.Event{
			IsRecurring:         true,
			RecurrenceStartDate: datePtr(2024, 1, 14),
			RecurrenceEndDate:   datePtr(2024, 1, 1),
			RecurrenceRule:      rule,
		}
		intervals, err := Expand(ev, loc)
		require.NoError(t, err)
		assert.Empty(t, intervals)
	})

	t.Run("malformed window is skipped, not fatal", func(t *testing.T) {
		ev := &model.Event{
			IsRecurring:         true,
			RecurrenceStartDate: datePtr(2024, 1, 1),
			RecurrenceEndDate:   datePtr(2024, 1, 1),
			RecurrenceRule: &model.RecurrenceRule{
				Weekdays: []int{0},
				TimeWindows: []model.TimeWindow{
					{Start: "banana", End: "12:00"},
					{Start: "10:00", End: "12:00"},
				},
			},
		}
		intervals, err := Expand(ev, loc)
		require.NoError(t, err)
		assert.Len(t, intervals, 1)
	})
}
