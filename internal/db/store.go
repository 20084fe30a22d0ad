// exposes a Store interface that is passed to API modules
package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/presenca-app/presenca/internal/attendance"
	"github.com/presenca-app/presenca/internal/model"
	"github.com/presenca-app/presenca/internal/schedule"
)

type Store interface {
	// user functions
	CreateUser(username, email, hashedPassword string, profile *string, isActive bool) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	ListUsers() ([]model.User, error)

	// registration request functions
	CreateRegistrationRequest(username, email, hashedPassword string, profile *string) (*model.RegistrationRequest, error)
	GetRegistrationRequest(id int) (*model.RegistrationRequest, error)
	ListRegistrationRequests() ([]model.RegistrationRequest, error)
	SetRegistrationRequestStatus(id int, status string, reviewedAt time.Time) error

	// participant functions
	CreateParticipant(fullName string, phone *string, birthDate time.Time, observations *string, guardianID *int) (*model.Participant, error)
	GetParticipantByID(id int) (*model.Participant, error)
	ListParticipants() ([]model.Participant, error)
	UpdateParticipant(id int, fullName string, phone *string, birthDate time.Time, observations *string, guardianID *int) error
	DeleteParticipant(id int) error

	// event functions
	CreateEvent(ev *model.Event) (*model.Event, error)
	GetEventByID(id int) (*model.Event, error)
	ListEvents() ([]model.Event, error)
	UpdateEvent(ev *model.Event) error
	DeleteEvent(id int) error

	// occurrence functions
	ReplaceEventOccurrences(eventID int, intervals []schedule.Interval) ([]model.Occurrence, error)
	ListEventOccurrences(eventID int) ([]model.Occurrence, error)
	GetOccurrenceByID(id int) (*model.Occurrence, error)

	// attendance functions
	GetAttendance(occurrenceID, participantID int) (*model.Attendance, error)
	ListOccurrenceAttendance(occurrenceID int) ([]model.Attendance, error)
	CreateAttendance(occurrenceID, participantID int, checkinAt time.Time, codeHash *string) (*model.Attendance, error)
	SetAttendanceCheckout(occurrenceID, participantID int, checkoutAt time.Time, checkoutByParticipantID int) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time checks that pgStore covers the Store interface and the
// narrower surfaces the core packages consume.
var (
	_ Store                    = (*pgStore)(nil)
	_ schedule.OccurrenceStore = (*pgStore)(nil)
	_ attendance.Store         = (*pgStore)(nil)
)

func NewStore(database *sqlx.DB) Store {
	return &pgStore{db: database}
}
