package model

import "time"

// Attendance is keyed by (occurrence_id, participant_id). CodeHash holds the
// sha256 of the security code issued to minors at check-in; the plaintext is
// never stored.
type Attendance struct {
	OccurrenceID            int        `db:"occurrence_id" json:"occurrence_id"`
	ParticipantID           int        `db:"participant_id" json:"participant_id"`
	CheckinAt               time.Time  `db:"checkin_at" json:"checkin_at"`
	CheckoutAt              *time.Time `db:"checkout_at" json:"checkout_at"`
	CodeHash                *string    `db:"code_hash" json:"-"`
	CheckoutByParticipantID *int       `db:"checkout_by_participant_id" json:"checkout_by_participant_id"`
}
