package packets

import (
	"github.com/presenca-app/presenca/internal/model"
	"github.com/presenca-app/presenca/internal/schedule"
)

type LoginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type EventResponse struct {
	Event       model.Event `json:"event"`
	Occurrences int         `json:"occurrences"`
}

type OccurrenceFeedResponse struct {
	EventID     int                             `json:"event_id"`
	Occurrences []schedule.OccurrenceWithStatus `json:"occurrences"`
}

// CheckinResponse carries the one-time plaintext security code for minors;
// it is never returned again after this response.
type CheckinResponse struct {
	Attendance model.Attendance `json:"attendance"`
	Code       string           `json:"code,omitempty"`
}

type CheckoutResponse struct {
	Attendance model.Attendance `json:"attendance"`
}
