package db

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/presenca-app/presenca/internal/model"
)

const participantColumns = `
	id, full_name, phone, birth_date, observations, guardian_id, created_at, updated_at`

func (s *pgStore) CreateParticipant(fullName string, phone *string, birthDate time.Time, observations *string, guardianID *int) (*model.Participant, error) {
	var p model.Participant
	const q = `
	INSERT INTO participants (full_name, phone, birth_date, observations, guardian_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, now(), now())
	RETURNING ` + participantColumns + `;`
	if err := s.db.Get(&p, q, fullName, phone, birthDate, observations, guardianID); err != nil {
		log.Error().Err(err).Msg("CreateParticipant failed")
		return nil, err
	}
	return &p, nil
}

func (s *pgStore) GetParticipantByID(id int) (*model.Participant, error) {
	var p model.Participant
	err := s.db.Get(&p, `SELECT `+participantColumns+` FROM participants WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("participant_id", id).Msg("GetParticipantByID failed")
		return nil, err
	}
	return &p, nil
}

func (s *pgStore) ListParticipants() ([]model.Participant, error) {
	var out []model.Participant
	if err := s.db.Select(&out, `SELECT `+participantColumns+` FROM participants ORDER BY full_name, id;`); err != nil {
		log.Error().Err(err).Msg("ListParticipants failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) UpdateParticipant(id int, fullName string, phone *string, birthDate time.Time, observations *string, guardianID *int) error {
	const q = `
	UPDATE participants
	   SET full_name = $2, phone = $3, birth_date = $4, observations = $5, guardian_id = $6, updated_at = now()
	 WHERE id = $1;`
	_, err := s.db.Exec(q, id, fullName, phone, birthDate, observations, guardianID)
	if err != nil {
		log.Error().Err(err).Int("participant_id", id).Msg("UpdateParticipant failed")
	}
	return err
}

func (s *pgStore) DeleteParticipant(id int) error {
	_, err := s.db.Exec(`DELETE FROM participants WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("participant_id", id).Msg("DeleteParticipant failed")
	}
	return err
}
