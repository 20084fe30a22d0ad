package model

import "time"

const (
	RegistrationPending  = "pending"
	RegistrationApproved = "approved"
	RegistrationRejected = "rejected"
)

// RegistrationRequest is a self-service signup awaiting admin review. The
// password is hashed at submission time so the plaintext never reaches the
// approval flow.
type RegistrationRequest struct {
	ID           int        `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Profile      *string    `db:"profile" json:"profile"`
	Status       string     `db:"status" json:"status"`
	RequestedAt  time.Time  `db:"requested_at" json:"requested_at"`
	ReviewedAt   *time.Time `db:"reviewed_at" json:"reviewed_at"`
}
