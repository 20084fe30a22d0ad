package model

import "time"

const (
	ProfileAdmin     = "admin"
	ProfileOrganizer = "organizer"
	ProfileVolunteer = "volunteer"
)

type User struct {
	ID           int       `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Profile      *string   `db:"profile" json:"profile"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// HasProfile reports whether the user carries one of the given profiles.
func (u *User) HasProfile(profiles ...string) bool {
	if u.Profile == nil {
		return false
	}
	for _, p := range profiles {
		if *u.Profile == p {
			return true
		}
	}
	return false
}
