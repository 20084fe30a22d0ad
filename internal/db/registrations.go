package db

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/presenca-app/presenca/internal/model"
)

const registrationColumns = `
	id, username, email, password_hash, profile, status, requested_at, reviewed_at`

func (s *pgStore) CreateRegistrationRequest(username, email, hashedPassword string, profile *string) (*model.RegistrationRequest, error) {
	var r model.RegistrationRequest
	const q = `
	INSERT INTO registration_requests (username, email, password_hash, profile, status, requested_at)
	VALUES ($1, $2, $3, $4, 'pending', now())
	RETURNING ` + registrationColumns + `;`
	if err := s.db.Get(&r, q, username, email, hashedPassword, profile); err != nil {
		log.Error().Err(err).Str("username", username).Msg("CreateRegistrationRequest failed")
		return nil, err
	}
	return &r, nil
}

func (s *pgStore) GetRegistrationRequest(id int) (*model.RegistrationRequest, error) {
	var r model.RegistrationRequest
	err := s.db.Get(&r, `SELECT `+registrationColumns+` FROM registration_requests WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("request_id", id).Msg("GetRegistrationRequest failed")
		return nil, err
	}
	return &r, nil
}

func (s *pgStore) ListRegistrationRequests() ([]model.RegistrationRequest, error) {
	var out []model.RegistrationRequest
	const q = `SELECT ` + registrationColumns + ` FROM registration_requests ORDER BY requested_at DESC;`
	if err := s.db.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("ListRegistrationRequests failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) SetRegistrationRequestStatus(id int, status string, reviewedAt time.Time) error {
	_, err := s.db.Exec(`
	UPDATE registration_requests SET status = $2, reviewed_at = $3 WHERE id = $1;`, id, status, reviewedAt)
	if err != nil {
		log.Error().Err(err).Int("request_id", id).Msg("SetRegistrationRequestStatus failed")
	}
	return err
}
