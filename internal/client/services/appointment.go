package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/eldercare/internal/client/models"
	"github.com/dmitrijs2005/eldercare/internal/client/storage"
	"github.com/dmitrijs2005/eldercare/internal/common"
	"github.com/dmitrijs2005/eldercare/internal/logging"
)

type AppointmentService struct {
	store storage.Adapter
	log   logging.Logger
	ids   *idSource
}

func NewAppointmentService(store storage.Adapter, log logging.Logger, now func() time.Time) *AppointmentService {
	return &AppointmentService{store: store, log: log, ids: newIDSource(now)}
}

// DatedAppointment is an appointment together with its calendar day.
type DatedAppointment struct {
	Date string
	models.Appointment
}

// All returns the full calendar; an empty map when nothing is stored or
// storage is unreadable.
func (s *AppointmentService) All(ctx context.Context) models.Appointments {
	var appts models.Appointments
	found, err := loadJSON(ctx, s.store, models.KeyAppointments, &appts)
	if err != nil {
		s.log.Warn(ctx, "loading appointments failed, showing empty calendar", "err", err)
		return models.Appointments{}
	}
	if !found || appts == nil {
		return models.Appointments{}
	}
	return appts
}

// On returns the appointments of one day.
func (s *AppointmentService) On(ctx context.Context, date string) []models.Appointment {
	return s.All(ctx)[date]
}

func (s *AppointmentService) load(ctx context.Context) (models.Appointments, error) {
	var appts models.Appointments
	if _, err := loadJSON(ctx, s.store, models.KeyAppointments, &appts); err != nil {
		return nil, fmt.Errorf("load appointments: %w", err)
	}
	if appts == nil {
		appts = models.Appointments{}
	}
	return appts, nil
}

func (s *AppointmentService) Add(ctx context.Context, date, title, at, notes string) (models.Appointment, error) {
	if _, err := models.ParseDate(date); err != nil {
		return models.Appointment{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if common.Blank(title) || common.Blank(at) {
		return models.Appointment{}, fmt.Errorf("%w: title and time are required", ErrValidation)
	}

	appts, err := s.load(ctx)
	if err != nil {
		return models.Appointment{}, err
	}

	a := models.Appointment{
		ID:    s.ids.next(),
		Title: strings.TrimSpace(title),
		Time:  strings.TrimSpace(at),
		Notes: strings.TrimSpace(notes),
	}
	appts[date] = append(appts[date], a)

	if err := saveJSON(ctx, s.store, models.KeyAppointments, appts); err != nil {
		return models.Appointment{}, err
	}
	s.log.Info(ctx, "appointment added", "date", date, "id", a.ID)
	return a, nil
}

// Delete removes one appointment; the day disappears with its last entry.
func (s *AppointmentService) Delete(ctx context.Context, date string, id int64) error {
	appts, err := s.load(ctx)
	if err != nil {
		return err
	}

	day := appts[date]
	idx := slices.IndexFunc(day, func(a models.Appointment) bool { return a.ID == id })
	if idx < 0 {
		return fmt.Errorf("appointment %d on %s: %w", id, date, ErrNotFound)
	}

	day = slices.Delete(day, idx, idx+1)
	if len(day) == 0 {
		delete(appts, date)
	} else {
		appts[date] = day
	}

	if err := saveJSON(ctx, s.store, models.KeyAppointments, appts); err != nil {
		return err
	}
	s.log.Info(ctx, "appointment deleted", "date", date, "id", id)
	return nil
}

// Upcoming returns up to n appointments on or after from's calendar day,
// ordered by day and then by insertion order. n <= 0 means no limit.
func (s *AppointmentService) Upcoming(ctx context.Context, from time.Time, n int) []DatedAppointment {
	appts := s.All(ctx)
	start := from.Format(models.DateLayout)

	days := make([]string, 0, len(appts))
	for d := range appts {
		if d >= start {
			days = append(days, d)
		}
	}
	slices.Sort(days)

	var out []DatedAppointment
	for _, d := range days {
		for _, a := range appts[d] {
			if n > 0 && len(out) == n {
				return out
			}
			out = append(out, DatedAppointment{Date: d, Appointment: a})
		}
	}
	return out
}

// MonthGrid lays out the month containing month for a Sunday-first calendar:
// zeros for the blanks before the 1st, then day numbers 1..N.
func MonthGrid(month time.Time) []int {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	lead := int(first.Weekday())

	cells := make([]int, lead, lead+days)
	for d := 1; d <= days; d++ {
		cells = append(cells, d)
	}
	return cells
}
