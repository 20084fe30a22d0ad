package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/presenca-app/presenca/internal/model"
)

func TestStatusWindows(t *testing.T) {
	occ := &model.Occurrence{
		ID:      1,
		EventID: 1,
		StartAt: time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2024, 6, 1, 16, 0, 0, 0, time.UTC),
	}

	st := Status(occ, occ.StartAt)
	assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), st.CheckinOpensAt)
	assert.Equal(t, time.Date(2024, 6, 1, 13, 20, 0, 0, time.UTC), st.CheckinClosesAt)
	assert.Equal(t, occ.StartAt, st.CheckoutOpensAt)
	assert.Equal(t, occ.EndAt, st.CheckoutClosesAt)
}

func TestStatusClassification(t *testing.T) {
	occ := &model.Occurrence{
		StartAt: time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2024, 6, 1, 16, 0, 0, 0, time.UTC),
	}

	cases := []struct {
		name          string
		now           time.Time
		code          StatusCode
		checkinAvail  bool
		checkoutAvail bool
	}{
		{
			name: "before checkin opens",
			now:  time.Date(2024, 6, 1, 11, 59, 0, 0, time.UTC),
			code: StatusEventNotStarted,
		},
		{
			name:         "checkin open before event start",
			now:          time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC),
			code:         StatusCheckinAvailable,
			checkinAvail: true,
		},
		{
			name: "gap between checkin close and event start",
			now:  time.Date(2024, 6, 1, 13, 30, 0, 0, time.UTC),
			code: StatusCheckinClosed,
		},
		{
			name:          "during event only checkout open",
			now:           time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC),
			code:          StatusCheckoutAvailable,
			checkoutAvail: true,
		},
		{
			name: "after event ends",
			now:  time.Date(2024, 6, 1, 16, 0, 1, 0, time.UTC),
			code: StatusEventEnded,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := Status(occ, tc.now)
			assert.Equal(t, tc.code, st.Code)
			assert.Equal(t, tc.checkinAvail, st.CheckinAvailable)
			assert.Equal(t, tc.checkoutAvail, st.CheckoutAvailable)
			assert.NotEmpty(t, st.Text)
		})
	}
}

// the window boundaries are inclusive on both ends
func TestStatusBoundariesInclusive(t *testing.T) {
	occ := &model.Occurrence{
		StartAt: time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2024, 6, 1, 16, 0, 0, 0, time.UTC),
	}

	st := Status(occ, time.Date(2024, 6, 1, 13, 20, 0, 0, time.UTC))
	assert.True(t, st.CheckinAvailable, "checkin close instant is inclusive")

	st = Status(occ, occ.EndAt)
	assert.True(t, st.CheckoutAvailable, "checkout close instant is inclusive")
	assert.Equal(t, StatusCheckoutAvailable, st.Code)
}

func TestStatusExactlyOneApplies(t *testing.T) {
	occ := &model.Occurrence{
		StartAt: time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2024, 6, 1, 16, 0, 0, 0, time.UTC),
	}
	known := map[StatusCode]bool{
		StatusEventNotStarted:   true,
		StatusEventEnded:        true,
		StatusCheckinAvailable:  true,
		StatusCheckoutAvailable: true,
		StatusCheckinClosed:     true,
	}
	for now := occ.StartAt.Add(-3 * time.Hour); now.Before(occ.EndAt.Add(time.Hour)); now = now.Add(5 * time.Minute) {
		st := Status(occ, now)
		assert.True(t, known[st.Code], "unknown status %q at %s", st.Code, now)
	}
}
