package db

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/presenca-app/presenca/internal/model"
	"github.com/presenca-app/presenca/internal/schedule"
)

// ReplaceEventOccurrences deletes every occurrence of the event and inserts
// the freshly expanded set inside one transaction, so concurrent readers never
// observe a partially replaced schedule. Deleting occurrences cascades to
// their attendances.
func (s *pgStore) ReplaceEventOccurrences(eventID int, intervals []schedule.Interval) ([]model.Occurrence, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		log.Error().Err(err).Int("event_id", eventID).Msg("ReplaceEventOccurrences begin failed")
		return nil, fmt.Errorf("begin occurrence replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM event_occurrences WHERE event_id = $1;`, eventID); err != nil {
		log.Error().Err(err).Int("event_id", eventID).Msg("ReplaceEventOccurrences delete failed")
		return nil, fmt.Errorf("delete stale occurrences: %w", err)
	}

	out := make([]model.Occurrence, 0, len(intervals))
	const q = `
	INSERT INTO event_occurrences (event_id, start_at, end_at)
	VALUES ($1, $2, $3)
	RETURNING id, event_id, start_at, end_at;`
	for _, iv := range intervals {
		var occ model.Occurrence
		if err := tx.Get(&occ, q, eventID, iv.Start, iv.End); err != nil {
			log.Error().Err(err).Int("event_id", eventID).Msg("ReplaceEventOccurrences insert failed")
			return nil, fmt.Errorf("insert occurrence: %w", err)
		}
		out = append(out, occ)
	}

	if err := tx.Commit(); err != nil {
		log.Error().Err(err).Int("event_id", eventID).Msg("ReplaceEventOccurrences commit failed")
		return nil, fmt.Errorf("commit occurrence replace: %w", err)
	}
	return out, nil
}

func (s *pgStore) ListEventOccurrences(eventID int) ([]model.Occurrence, error) {
	var out []model.Occurrence
	const q = `
	SELECT id, event_id, start_at, end_at
	  FROM event_occurrences
	 WHERE event_id = $1
	 ORDER BY start_at, id;`
	if err := s.db.Select(&out, q, eventID); err != nil {
		log.Error().Err(err).Int("event_id", eventID).Msg("ListEventOccurrences failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) GetOccurrenceByID(id int) (*model.Occurrence, error) {
	var occ model.Occurrence
	err := s.db.Get(&occ, `SELECT id, event_id, start_at, end_at FROM event_occurrences WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("occurrence_id", id).Msg("GetOccurrenceByID failed")
		return nil, err
	}
	return &occ, nil
}
