package db

import (
	"github.com/rs/zerolog/log"

	"github.com/presenca-app/presenca/internal/model"
)

const eventColumns = `
	id, name, description, is_recurring,
	single_start, single_end,
	recurrence_start_date, recurrence_end_date, recurrence_rule,
	created_at, updated_at`

func (s *pgStore) CreateEvent(ev *model.Event) (*model.Event, error) {
	var out model.Event
	const q = `
	INSERT INTO events
	  (name, description, is_recurring, single_start, single_end,
	   recurrence_start_date, recurrence_end_date, recurrence_rule,
	   created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
	RETURNING ` + eventColumns + `;`
	err := s.db.Get(&out, q,
		ev.Name, ev.Description, ev.IsRecurring,
		ev.SingleStart, ev.SingleEnd,
		ev.RecurrenceStartDate, ev.RecurrenceEndDate, ev.RecurrenceRule)
	if err != nil {
		log.Error().Err(err).Msg("CreateEvent failed")
		return nil, err
	}
	return &out, nil
}

func (s *pgStore) GetEventByID(id int) (*model.Event, error) {
	var ev model.Event
	err := s.db.Get(&ev, `SELECT `+eventColumns+` FROM events WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("event_id", id).Msg("GetEventByID failed")
		return nil, err
	}
	return &ev, nil
}

func (s *pgStore) ListEvents() ([]model.Event, error) {
	var out []model.Event
	if err := s.db.Select(&out, `SELECT `+eventColumns+` FROM events ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("ListEvents failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) UpdateEvent(ev *model.Event) error {
	const q = `
	UPDATE events
	   SET name = $2, description = $3, is_recurring = $4,
	       single_start = $5, single_end = $6,
	       recurrence_start_date = $7, recurrence_end_date = $8, recurrence_rule = $9,
	       updated_at = now()
	 WHERE id = $1;`
	_, err := s.db.Exec(q,
		ev.ID, ev.Name, ev.Description, ev.IsRecurring,
		ev.SingleStart, ev.SingleEnd,
		ev.RecurrenceStartDate, ev.RecurrenceEndDate, ev.RecurrenceRule)
	if err != nil {
		log.Error().Err(err).Int("event_id", ev.ID).Msg("UpdateEvent failed")
	}
	return err
}

func (s *pgStore) DeleteEvent(id int) error {
	_, err := s.db.Exec(`DELETE FROM events WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("event_id", id).Msg("DeleteEvent failed")
	}
	return err
}
