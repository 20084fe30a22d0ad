package db

import (
	"github.com/rs/zerolog/log"

	"github.com/presenca-app/presenca/internal/model"
)

const userColumns = `
	id, username, email, password_hash, profile, is_active, created_at, updated_at`

func (s *pgStore) CreateUser(username, email, hashedPassword string, profile *string, isActive bool) (*model.User, error) {
	var u model.User
	const q = `
	INSERT INTO users (username, email, password_hash, profile, is_active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, now(), now())
	RETURNING ` + userColumns + `;`
	if err := s.db.Get(&u, q, username, email, hashedPassword, profile, isActive); err != nil {
		log.Error().Err(err).Str("username", username).Msg("CreateUser failed")
		return nil, err
	}
	return &u, nil
}

func (s *pgStore) GetUserByID(id int) (*model.User, error) {
	var u model.User
	err := s.db.Get(&u, `SELECT `+userColumns+` FROM users WHERE id = $1;`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *pgStore) GetUserByUsername(username string) (*model.User, error) {
	var u model.User
	err := s.db.Get(&u, `SELECT `+userColumns+` FROM users WHERE username = $1;`, username)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *pgStore) GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	err := s.db.Get(&u, `SELECT `+userColumns+` FROM users WHERE email = $1;`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *pgStore) ListUsers() ([]model.User, error) {
	var out []model.User
	if err := s.db.Select(&out, `SELECT `+userColumns+` FROM users ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("ListUsers failed")
		return nil, err
	}
	return out, nil
}
