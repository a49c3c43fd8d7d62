package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/eldercare/internal/client/models"
	"github.com/dmitrijs2005/eldercare/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentService_AddAndDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	s := NewAppointmentService(store, logging.Discard(), fixedClock(500))

	assert.Empty(t, s.All(ctx))

	a1, err := s.Add(ctx, "2026-03-10", "Dentist", "10:00 AM", "")
	require.NoError(t, err)
	a2, err := s.Add(ctx, "2026-03-10", "Cardiologist", "2:00 PM", "bring ECG")
	require.NoError(t, err)
	assert.NotEqual(t, a1.ID, a2.ID)

	assert.Equal(t, []models.Appointment{a1, a2}, s.On(ctx, "2026-03-10"))

	require.NoError(t, s.Delete(ctx, "2026-03-10", a1.ID))
	assert.Equal(t, []models.Appointment{a2}, s.On(ctx, "2026-03-10"))

	require.NoError(t, s.Delete(ctx, "2026-03-10", a2.ID))
	raw, ok, err := store.Get(ctx, models.KeyAppointments)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{}`, raw, "empty day is dropped")

	assert.ErrorIs(t, s.Delete(ctx, "2026-03-10", a2.ID), ErrNotFound)
}

func TestAppointmentService_AddValidation(t *testing.T) {
	ctx := context.Background()
	s := NewAppointmentService(newTestStore(t), logging.Discard(), nil)

	_, err := s.Add(ctx, "03/10/2026", "Dentist", "10:00", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.Add(ctx, "2026-03-10", "", "10:00", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.Add(ctx, "2026-03-10", "Dentist", " ", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAppointmentService_Upcoming(t *testing.T) {
	ctx := context.Background()
	s := NewAppointmentService(newTestStore(t), logging.Discard(), fixedClock(1))

	_, err := s.Add(ctx, "2026-01-01", "Past", "9:00", "")
	require.NoError(t, err)
	_, err = s.Add(ctx, "2026-02-02", "B", "9:00", "")
	require.NoError(t, err)
	_, err = s.Add(ctx, "2026-01-15", "A", "9:00", "")
	require.NoError(t, err)
	_, err = s.Add(ctx, "2026-02-02", "C", "11:00", "")
	require.NoError(t, err)

	from := time.Date(2026, 1, 15, 18, 0, 0, 0, time.UTC)

	got := s.Upcoming(ctx, from, 0)
	require.Len(t, got, 3)
	assert.Equal(t, "A", got[0].Title)
	assert.Equal(t, "2026-01-15", got[0].Date)
	assert.Equal(t, "B", got[1].Title)
	assert.Equal(t, "C", got[2].Title)

	assert.Len(t, s.Upcoming(ctx, from, 2), 2)
}

func TestAppointmentService_AllDegradesOnCorruptValue(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Set(ctx, models.KeyAppointments, "[1,2"))

	s := NewAppointmentService(store, logging.Discard(), nil)
	assert.Empty(t, s.All(ctx))

	_, err := s.Add(ctx, "2026-03-10", "Dentist", "10:00", "")
	assert.ErrorIs(t, err, ErrCorruptValue)
}

func TestMonthGrid(t *testing.T) {
	// March 2026 starts on a Sunday.
	g := MonthGrid(time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))
	require.Len(t, g, 31)
	assert.Equal(t, 1, g[0])

	// January 2026 starts on a Thursday.
	g = MonthGrid(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Len(t, g, 4+31)
	assert.Equal(t, []int{0, 0, 0, 0, 1}, g[:5])
	assert.Equal(t, 31, g[len(g)-1])

	// leap year
	g = MonthGrid(time.Date(2028, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 29, g[len(g)-1])
}
