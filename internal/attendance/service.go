// Package attendance implements the per-(occurrence, participant) check-in /
// check-out state machine: NoAttendance -> CheckedIn -> CheckedOut. Minors get
// a guardian security code at check-in that must be presented at check-out.
package attendance

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/presenca-app/presenca/internal/model"
	"github.com/presenca-app/presenca/internal/schedule"
)

const adultAge = 18

// Store is the persistence surface the state machine needs. GetAttendance
// returns (nil, nil) when no record exists for the pair. CreateAttendance must
// return ErrAlreadyCheckedIn when the (occurrence, participant) uniqueness
// constraint is violated, so concurrent duplicate check-ins surface as a
// business rejection rather than a storage error.
type Store interface {
	GetOccurrenceByID(id int) (*model.Occurrence, error)
	GetParticipantByID(id int) (*model.Participant, error)
	GetAttendance(occurrenceID, participantID int) (*model.Attendance, error)
	CreateAttendance(occurrenceID, participantID int, checkinAt time.Time, codeHash *string) (*model.Attendance, error)
	SetAttendanceCheckout(occurrenceID, participantID int, checkoutAt time.Time, checkoutByParticipantID int) error
}

type Service struct {
	store Store
	loc   *time.Location
}

// NewService builds the state machine over a store. loc is the process-wide
// timezone used to derive the calendar date for age checks.
func NewService(store Store, loc *time.Location) *Service {
	return &Service{store: store, loc: loc}
}

// CheckInResult carries the persisted attendance plus, for minors, the
// one-time plaintext security code. The code is not retrievable afterwards.
type CheckInResult struct {
	Attendance *model.Attendance
	Code       string
}

func (s *Service) isMinor(p *model.Participant, now time.Time) bool {
	return schedule.AgeOn(p.BirthDate, now.In(s.loc)) < adultAge
}

// CheckIn records the participant's arrival at the occurrence. now is
// computed once by the caller and used for every window and age check.
func (s *Service) CheckIn(occurrenceID, participantID int, now time.Time) (*CheckInResult, error) {
	occ, err := s.store.GetOccurrenceByID(occurrenceID)
	if err != nil {
		return nil, fmt.Errorf("load occurrence %d: %w", occurrenceID, err)
	}
	if !schedule.Status(occ, now).CheckinAvailable {
		return nil, ErrWindowClosed
	}

	existing, err := s.store.GetAttendance(occurrenceID, participantID)
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyCheckedIn
	}

	participant, err := s.store.GetParticipantByID(participantID)
	if err != nil {
		return nil, fmt.Errorf("load participant %d: %w", participantID, err)
	}

	var code string
	var codeHash *string
	if s.isMinor(participant, now) {
		code, err = generateCode()
		if err != nil {
			return nil, err
		}
		h := hashCode(code)
		codeHash = &h
	}

	att, err := s.store.CreateAttendance(occurrenceID, participantID, now.UTC(), codeHash)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("occurrence_id", occurrenceID).
		Int("participant_id", participantID).
		Bool("minor", codeHash != nil).
		Msg("check-in recorded")
	return &CheckInResult{Attendance: att, Code: code}, nil
}

// CheckOut records the participant's departure. For minors the supplied code
// must match the hash stored at check-in; the checked-out-by participant is
// recorded but not validated against the guardian relationship.
func (s *Service) CheckOut(occurrenceID, participantID, checkoutByParticipantID int, suppliedCode string, now time.Time) (*model.Attendance, error) {
	occ, err := s.store.GetOccurrenceByID(occurrenceID)
	if err != nil {
		return nil, fmt.Errorf("load occurrence %d: %w", occurrenceID, err)
	}
	if !schedule.Status(occ, now).CheckoutAvailable {
		return nil, ErrWindowClosed
	}

	att, err := s.store.GetAttendance(occurrenceID, participantID)
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	if att == nil {
		return nil, ErrNotCheckedIn
	}
	if att.CheckoutAt != nil {
		return nil, ErrAlreadyCheckedOut
	}

	participant, err := s.store.GetParticipantByID(participantID)
	if err != nil {
		return nil, fmt.Errorf("load participant %d: %w", participantID, err)
	}

	if s.isMinor(participant, now) {
		if suppliedCode == "" {
			return nil, ErrCodeRequired
		}
		if att.CodeHash == nil || !verifyCode(*att.CodeHash, suppliedCode) {
			return nil, ErrInvalidCode
		}
	}

	checkoutAt := now.UTC()
	if err := s.store.SetAttendanceCheckout(occurrenceID, participantID, checkoutAt, checkoutByParticipantID); err != nil {
		return nil, err
	}
	att.CheckoutAt = &checkoutAt
	att.CheckoutByParticipantID = &checkoutByParticipantID
	log.Info().
		Int("occurrence_id", occurrenceID).
		Int("participant_id", participantID).
		Int("checkout_by", checkoutByParticipantID).
		Msg("check-out recorded")
	return att, nil
}
