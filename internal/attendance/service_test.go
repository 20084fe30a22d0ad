package attendance

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenca-app/presenca/internal/model"
)

type pairKey struct {
	occurrenceID  int
	participantID int
}

// fakeStore enforces the same composite-key uniqueness the Postgres store
// does, so the duplicate check-in path is exercised both ways.
type fakeStore struct {
	occurrences  map[int]*model.Occurrence
	participants map[int]*model.Participant
	attendance   map[pairKey]*model.Attendance
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		occurrences:  make(map[int]*model.Occurrence),
		participants: make(map[int]*model.Participant),
		attendance:   make(map[pairKey]*model.Attendance),
	}
}

func (f *fakeStore) GetOccurrenceByID(id int) (*model.Occurrence, error) {
	occ, ok := f.occurrences[id]
	if !ok {
		return nil, fmt.Errorf("occurrence %d not found", id)
	}
	return occ, nil
}

func (f *fakeStore) GetParticipantByID(id int) (*model.Participant, error) {
	p, ok := f.participants[id]
	if !ok {
		return nil, fmt.Errorf("participant %d not found", id)
	}
	return p, nil
}

func (f *fakeStore) GetAttendance(occurrenceID, participantID int) (*model.Attendance, error) {
	att, ok := f.attendance[pairKey{occurrenceID, participantID}]
	if !ok {
		return nil, nil
	}
	copied := *att
	return &copied, nil
}

func (f *fakeStore) CreateAttendance(occurrenceID, participantID int, checkinAt time.Time, codeHash *string) (*model.Attendance, error) {
	key := pairKey{occurrenceID, participantID}
	if _, exists := f.attendance[key]; exists {
		return nil, ErrAlreadyCheckedIn
	}
	att := &model.Attendance{
		OccurrenceID:  occurrenceID,
		ParticipantID: participantID,
		CheckinAt:     checkinAt,
		CodeHash:      codeHash,
	}
	f.attendance[key] = att
	copied := *att
	return &copied, nil
}

func (f *fakeStore) SetAttendanceCheckout(occurrenceID, participantID int, checkoutAt time.Time, checkoutByParticipantID int) error {
	att, ok := f.attendance[pairKey{occurrenceID, participantID}]
	if !ok {
		return errors.New("attendance not found")
	}
	if att.CheckoutAt != nil {
		return ErrAlreadyCheckedOut
	}
	att.CheckoutAt = &checkoutAt
	att.CheckoutByParticipantID = &checkoutByParticipantID
	return nil
}

// fixture: occurrence 2024-06-01 14:00-16:00 UTC, an adult, a minor, and the
// minor's guardian
func newFixture(t *testing.T) (*Service, *fakeStore, time.Time) {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	store := newFakeStore()
	store.occurrences[1] = &model.Occurrence{
		ID:      1,
		EventID: 10,
		StartAt: time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2024, 6, 1, 16, 0, 0, 0, time.UTC),
	}
	guardianID := 3
	store.participants[1] = &model.Participant{
		ID:        1,
		FullName:  "Ana Souza",
		BirthDate: time.Date(1985, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	store.participants[2] = &model.Participant{
		ID:         2,
		FullName:   "Pedro Souza",
		BirthDate:  time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC),
		GuardianID: &guardianID,
	}
	store.participants[3] = &model.Participant{
		ID:        3,
		FullName:  "Carla Souza",
		BirthDate: time.Date(1980, 7, 22, 0, 0, 0, 0, time.UTC),
	}

	// inside the check-in window (opens 12:00Z)
	now := time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC)
	return NewService(store, loc), store, now
}

func TestCheckInAdult(t *testing.T) {
	svc, store, now := newFixture(t)

	result, err := svc.CheckIn(1, 1, now)
	require.NoError(t, err)
	assert.Empty(t, result.Code, "adults get no security code")
	assert.Nil(t, result.Attendance.CodeHash)
	assert.Equal(t, now.UTC(), result.Attendance.CheckinAt)
	assert.Contains(t, store.attendance, pairKey{1, 1})
}

func TestCheckInMinorIssuesCode(t *testing.T) {
	svc, store, now := newFixture(t)

	result, err := svc.CheckIn(1, 2, now)
	require.NoError(t, err)
	assert.Len(t, result.Code, codeLength)
	require.NotNil(t, result.Attendance.CodeHash)
	assert.Equal(t, hashCode(result.Code), *result.Attendance.CodeHash)

	// the plaintext is never persisted; a later read exposes only the hash
	stored := store.attendance[pairKey{1, 2}]
	require.NotNil(t, stored.CodeHash)
	assert.NotContains(t, *stored.CodeHash, result.Code)
}

func TestCheckInRejections(t *testing.T) {
	svc, _, now := newFixture(t)

	t.Run("window closed before opening", func(t *testing.T) {
		_, err := svc.CheckIn(1, 1, time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC))
		assert.ErrorIs(t, err, ErrWindowClosed)
	})

	t.Run("window closed after close lead", func(t *testing.T) {
		_, err := svc.CheckIn(1, 1, time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC))
		assert.ErrorIs(t, err, ErrWindowClosed)
	})

	t.Run("double check-in", func(t *testing.T) {
		_, err := svc.CheckIn(1, 1, now)
		require.NoError(t, err)
		_, err = svc.CheckIn(1, 1, now)
		assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	})
}

func TestCheckOutAdult(t *testing.T) {
	svc, _, now := newFixture(t)

	_, err := svc.CheckIn(1, 1, now)
	require.NoError(t, err)

	checkoutAt := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)
	att, err := svc.CheckOut(1, 1, 3, "", checkoutAt)
	require.NoError(t, err)
	require.NotNil(t, att.CheckoutAt)
	assert.Equal(t, checkoutAt, *att.CheckoutAt)
	require.NotNil(t, att.CheckoutByParticipantID)
	assert.Equal(t, 3, *att.CheckoutByParticipantID)
}

func TestCheckOutMinorCodeFlow(t *testing.T) {
	checkoutAt := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)

	t.Run("code required", func(t *testing.T) {
		svc, _, now := newFixture(t)
		_, err := svc.CheckIn(1, 2, now)
		require.NoError(t, err)
		_, err = svc.CheckOut(1, 2, 3, "", checkoutAt)
		assert.ErrorIs(t, err, ErrCodeRequired)
	})

	t.Run("wrong code rejected", func(t *testing.T) {
		svc, _, now := newFixture(t)
		_, err := svc.CheckIn(1, 2, now)
		require.NoError(t, err)
		_, err = svc.CheckOut(1, 2, 3, "NOPE22", checkoutAt)
		assert.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("correct code records checkout_by", func(t *testing.T) {
		svc, _, now := newFixture(t)
		result, err := svc.CheckIn(1, 2, now)
		require.NoError(t, err)
		att, err := svc.CheckOut(1, 2, 3, result.Code, checkoutAt)
		require.NoError(t, err)
		require.NotNil(t, att.CheckoutByParticipantID)
		assert.Equal(t, 3, *att.CheckoutByParticipantID)
	})
}

func TestCheckOutRejections(t *testing.T) {
	checkoutAt := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)

	t.Run("before check-in", func(t *testing.T) {
		svc, _, _ := newFixture(t)
		_, err := svc.CheckOut(1, 1, 3, "", checkoutAt)
		assert.ErrorIs(t, err, ErrNotCheckedIn)
	})

	t.Run("double checkout", func(t *testing.T) {
		svc, _, now := newFixture(t)
		_, err := svc.CheckIn(1, 1, now)
		require.NoError(t, err)
		_, err = svc.CheckOut(1, 1, 3, "", checkoutAt)
		require.NoError(t, err)
		_, err = svc.CheckOut(1, 1, 3, "", checkoutAt)
		assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
	})

	t.Run("window closed before event start", func(t *testing.T) {
		svc, _, now := newFixture(t)
		_, err := svc.CheckIn(1, 1, now)
		require.NoError(t, err)
		_, err = svc.CheckOut(1, 1, 3, "", time.Date(2024, 6, 1, 13, 30, 0, 0, time.UTC))
		assert.ErrorIs(t, err, ErrWindowClosed)
	})

	t.Run("window closed after event end", func(t *testing.T) {
		svc, _, now := newFixture(t)
		_, err := svc.CheckIn(1, 1, now)
		require.NoError(t, err)
		_, err = svc.CheckOut(1, 1, 3, "", time.Date(2024, 6, 1, 16, 0, 1, 0, time.UTC))
		assert.ErrorIs(t, err, ErrWindowClosed)
	})
}
