package schedule

import (
	"time"

	"github.com/presenca-app/presenca/internal/model"
)

// Fixed attendance-window offsets: check-in opens two hours before the
// occurrence starts and closes 40 minutes before it starts; check-out is
// open for the whole occurrence.
const (
	checkinOpenLead  = 2 * time.Hour
	checkinCloseLead = 40 * time.Minute
)

type StatusCode string

const (
	StatusEventNotStarted   StatusCode = "event_not_started"
	StatusEventEnded        StatusCode = "event_ended"
	StatusCheckinAvailable  StatusCode = "checkin_available"
	StatusCheckoutAvailable StatusCode = "checkout_available"
	StatusCheckinClosed     StatusCode = "checkin_closed"
)

var statusText = map[StatusCode]string{
	StatusEventNotStarted:   "event has not started yet",
	StatusEventEnded:        "event has ended",
	StatusCheckinAvailable:  "check-in is open",
	StatusCheckoutAvailable: "check-out is open",
	StatusCheckinClosed:     "check-in is closed",
}

// WindowStatus describes check-in/check-out availability for one occurrence
// at one instant. Exactly one StatusCode applies at any time.
type WindowStatus struct {
	CheckinOpensAt    time.Time  `json:"checkin_opens_at"`
	CheckinClosesAt   time.Time  `json:"checkin_closes_at"`
	CheckoutOpensAt   time.Time  `json:"checkout_opens_at"`
	CheckoutClosesAt  time.Time  `json:"checkout_closes_at"`
	CheckinAvailable  bool       `json:"checkin_available"`
	CheckoutAvailable bool       `json:"checkout_available"`
	Code              StatusCode `json:"status"`
	Text              string     `json:"status_text"`
}

// OccurrenceWithStatus composes an occurrence with its window status for
// listings and form rendering.
type OccurrenceWithStatus struct {
	Occurrence model.Occurrence `json:"occurrence"`
	Status     WindowStatus     `json:"status"`
}

// Status computes the attendance windows of occ at now. Callers should
// compute now once per operation and pass the same instant to every check.
func Status(occ *model.Occurrence, now time.Time) WindowStatus {
	st := WindowStatus{
		CheckinOpensAt:   occ.StartAt.Add(-checkinOpenLead),
		CheckinClosesAt:  occ.StartAt.Add(-checkinCloseLead),
		CheckoutOpensAt:  occ.StartAt,
		CheckoutClosesAt: occ.EndAt,
	}
	st.CheckinAvailable = IsWithin(now, st.CheckinOpensAt, st.CheckinClosesAt)
	st.CheckoutAvailable = IsWithin(now, st.CheckoutOpensAt, st.CheckoutClosesAt)

	switch {
	case now.Before(st.CheckinOpensAt):
		st.Code = StatusEventNotStarted
	case now.After(st.CheckoutClosesAt):
		st.Code = StatusEventEnded
	case st.CheckinAvailable:
		st.Code = StatusCheckinAvailable
	case st.CheckoutAvailable:
		st.Code = StatusCheckoutAvailable
	default:
		st.Code = StatusCheckinClosed
	}
	st.Text = statusText[st.Code]
	return st
}
