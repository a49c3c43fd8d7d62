package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/eldercare/internal/client/models"
	"github.com/dmitrijs2005/eldercare/internal/client/vitals"
	"github.com/dmitrijs2005/eldercare/internal/logging"
)

type Contact struct {
	Name  string
	Phone string
}

// Alert is what an SOS would send. Nothing leaves the process.
type Alert struct {
	SentAt   time.Time
	Contacts []Contact
	Location models.Location
	Vitals   vitals.Snapshot
}

type SOSService struct {
	profile  *ProfileService
	location *LocationService
	log      logging.Logger
	now      func() time.Time

	mu         sync.Mutex
	monitoring bool
}

func NewSOSService(profile *ProfileService, location *LocationService, log logging.Logger, now func() time.Time) *SOSService {
	if now == nil {
		now = time.Now
	}
	return &SOSService{profile: profile, location: location, log: log, now: now}
}

// Trigger builds the alert: emergency services first, then the profile's
// emergency contact when one is set.
func (s *SOSService) Trigger(ctx context.Context) Alert {
	p := s.profile.Get(ctx)

	contacts := []Contact{{Name: "Emergency Services", Phone: EmergencyNumber}}
	if phone := p["emergencyContact"]; phone != "" {
		name := p["emergencyName"]
		if name == "" {
			name = "Emergency Contact"
		}
		contacts = append(contacts, Contact{Name: name, Phone: phone})
	}

	a := Alert{
		SentAt:   s.now(),
		Contacts: contacts,
		Location: s.location.Get(ctx),
		Vitals:   vitals.SOSSnapshot(),
	}
	s.log.Warn(ctx, "sos alert triggered", "contacts", len(a.Contacts), "location", a.Location.String())
	return a
}

// ToggleMonitoring flips emergency detection and returns the new state.
func (s *SOSService) ToggleMonitoring(ctx context.Context) bool {
	s.mu.Lock()
	s.monitoring = !s.monitoring
	on := s.monitoring
	s.mu.Unlock()

	s.log.Info(ctx, "emergency monitoring toggled", "active", on)
	return on
}

func (s *SOSService) Monitoring() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.monitoring
}
