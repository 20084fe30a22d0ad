package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/presenca-app/presenca/internal/attendance"
	"github.com/presenca-app/presenca/internal/model"
)

const pgUniqueViolation = "23505"

// GetAttendance returns (nil, nil) when no record exists for the pair.
func (s *pgStore) GetAttendance(occurrenceID, participantID int) (*model.Attendance, error) {
	var att model.Attendance
	const q = `
	SELECT occurrence_id, participant_id, checkin_at, checkout_at, code_hash, checkout_by_participant_id
	  FROM attendance
	 WHERE occurrence_id = $1 AND participant_id = $2;`
	err := s.db.Get(&att, q, occurrenceID, participantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).
			Int("occurrence_id", occurrenceID).
			Int("participant_id", participantID).
			Msg("GetAttendance failed")
		return nil, err
	}
	return &att, nil
}

func (s *pgStore) ListOccurrenceAttendance(occurrenceID int) ([]model.Attendance, error) {
	var out []model.Attendance
	const q = `
	SELECT occurrence_id, participant_id, checkin_at, checkout_at, code_hash, checkout_by_participant_id
	  FROM attendance
	 WHERE occurrence_id = $1
	 ORDER BY checkin_at;`
	if err := s.db.Select(&out, q, occurrenceID); err != nil {
		log.Error().Err(err).Int("occurrence_id", occurrenceID).Msg("ListOccurrenceAttendance failed")
		return nil, err
	}
	return out, nil
}

// CreateAttendance inserts the check-in row. The composite primary key makes
// concurrent duplicate check-ins fail at the store; that failure is mapped to
// attendance.ErrAlreadyCheckedIn rather than surfaced as a storage error.
func (s *pgStore) CreateAttendance(occurrenceID, participantID int, checkinAt time.Time, codeHash *string) (*model.Attendance, error) {
	var att model.Attendance
	const q = `
	INSERT INTO attendance (occurrence_id, participant_id, checkin_at, code_hash)
	VALUES ($1, $2, $3, $4)
	RETURNING occurrence_id, participant_id, checkin_at, checkout_at, code_hash, checkout_by_participant_id;`
	err := s.db.Get(&att, q, occurrenceID, participantID, checkinAt, codeHash)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, attendance.ErrAlreadyCheckedIn
		}
		log.Error().Err(err).
			Int("occurrence_id", occurrenceID).
			Int("participant_id", participantID).
			Msg("CreateAttendance failed")
		return nil, err
	}
	return &att, nil
}

// SetAttendanceCheckout sets the checkout fields exactly once; a row whose
// checkout_at is already set is not updated.
func (s *pgStore) SetAttendanceCheckout(occurrenceID, participantID int, checkoutAt time.Time, checkoutByParticipantID int) error {
	const q = `
	UPDATE attendance
	   SET checkout_at = $3, checkout_by_participant_id = $4
	 WHERE occurrence_id = $1 AND participant_id = $2 AND checkout_at IS NULL;`
	res, err := s.db.Exec(q, occurrenceID, participantID, checkoutAt, checkoutByParticipantID)
	if err != nil {
		log.Error().Err(err).
			Int("occurrence_id", occurrenceID).
			Int("participant_id", participantID).
			Msg("SetAttendanceCheckout failed")
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return attendance.ErrAlreadyCheckedOut
	}
	return nil
}
