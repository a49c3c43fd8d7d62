// Package reminders fires medicine reminders at the times written in each
// medicine's timing text, and resets the taken flags every midnight.
package reminders

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/eldercare/internal/client/models"
	"github.com/dmitrijs2005/eldercare/internal/logging"
	"github.com/robfig/cron/v3"
)

// DailyResetSpec runs at local midnight.
const DailyResetSpec = "0 0 * * *"

type Reminder struct {
	MedicineID int64
	Name       string
	Dosage     string
	Spec       string
}

// Notifier delivers a due reminder.
type Notifier interface {
	Notify(ctx context.Context, r Reminder)
}

type NotifierFunc func(ctx context.Context, r Reminder)

func (f NotifierFunc) Notify(ctx context.Context, r Reminder) { f(ctx, r) }

type Scheduler struct {
	cron     *cron.Cron
	notifier Notifier
	log      logging.Logger

	mu      sync.Mutex
	ctx     context.Context
	entries []cron.EntryID
	reset   cron.EntryID
	running bool
}

func NewScheduler(notifier Notifier, log logging.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		notifier: notifier,
		log:      log.With("component", "reminders"),
		ctx:      context.Background(),
	}
}

// Sync replaces every scheduled medicine reminder with the ones derived from
// meds. It returns how many reminders are now scheduled.
func (s *Scheduler) Sync(ctx context.Context, meds []models.Medicine) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.entries {
		s.cron.Remove(id)
	}
	s.entries = s.entries[:0]

	for _, m := range meds {
		specs, errs := ParseTiming(m.Timing)
		for _, err := range errs {
			s.log.Warn(ctx, "skipping reminder time", "medicine", m.Name, "err", err)
		}
		for _, spec := range specs {
			r := Reminder{MedicineID: m.ID, Name: m.Name, Dosage: m.Dosage, Spec: spec}
			id, err := s.cron.AddFunc(spec, func() { s.notifier.Notify(s.jobContext(), r) })
			if err != nil {
				s.log.Warn(ctx, "scheduling reminder failed", "medicine", m.Name, "spec", spec, "err", err)
				continue
			}
			s.entries = append(s.entries, id)
		}
	}

	s.log.Debug(ctx, "reminders synced", "count", len(s.entries))
	return len(s.entries)
}

// ResetDaily runs fn every midnight, replacing any earlier reset job.
func (s *Scheduler) ResetDaily(fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reset != 0 {
		s.cron.Remove(s.reset)
	}
	id, err := s.cron.AddFunc(DailyResetSpec, func() {
		ctx := s.jobContext()
		if err := fn(ctx); err != nil {
			s.log.Error(ctx, "daily reset failed", "err", err)
			return
		}
		s.log.Info(ctx, "daily reset done")
	})
	if err != nil {
		return err
	}
	s.reset = id
	return nil
}

// Start begins firing jobs; ctx is passed to every job.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.ctx = ctx
	s.running = true
	s.cron.Start()
	s.log.Info(ctx, "reminder scheduler started", "reminders", len(s.entries))
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
}

func (s *Scheduler) jobContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}
