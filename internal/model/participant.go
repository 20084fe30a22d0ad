package model

import "time"

// Participant may optionally reference another participant as guardian
// (one level, typically an adult).
type Participant struct {
	ID           int       `db:"id" json:"id"`
	FullName     string    `db:"full_name" json:"full_name"`
	Phone        *string   `db:"phone" json:"phone"`
	BirthDate    time.Time `db:"birth_date" json:"birth_date"`
	Observations *string   `db:"observations" json:"observations"`
	GuardianID   *int      `db:"guardian_id" json:"guardian_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
