package packets

import "github.com/presenca-app/presenca/internal/model"

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string  `json:"username" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Profile  *string `json:"profile"`
}

type ReviewRegistrationRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Profile  *string `json:"profile"`
}

type CreateParticipantRequest struct {
	FullName     string  `json:"full_name" binding:"required"`
	Phone        *string `json:"phone"`
	BirthDate    string  `json:"birth_date" binding:"required"` // YYYY-MM-DD
	Observations *string `json:"observations"`
	GuardianID   *int    `json:"guardian_id"`
}

type UpdateParticipantRequest struct {
	FullName     string  `json:"full_name" binding:"required"`
	Phone        *string `json:"phone"`
	BirthDate    string  `json:"birth_date" binding:"required"`
	Observations *string `json:"observations"`
	GuardianID   *int    `json:"guardian_id"`
}

// CreateEventRequest covers both shapes: one-off events carry the single
// bounds, recurring events carry the date range and rule.
type CreateEventRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	IsRecurring bool    `json:"is_recurring"`

	SingleStart *string `json:"single_start"` // RFC 3339
	SingleEnd   *string `json:"single_end"`

	RecurrenceStartDate *string               `json:"recurrence_start_date"` // YYYY-MM-DD
	RecurrenceEndDate   *string               `json:"recurrence_end_date"`
	RecurrenceRule      *model.RecurrenceRule `json:"recurrence_rule"`
}

type UpdateEventRequest = CreateEventRequest

type CheckinRequest struct {
	ParticipantID int `json:"participant_id" binding:"required"`
}

type CheckoutRequest struct {
	ParticipantID           int    `json:"participant_id" binding:"required"`
	CheckoutByParticipantID int    `json:"checkout_by_participant_id" binding:"required"`
	Code                    string `json:"code"`
}
