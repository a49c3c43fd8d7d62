package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/eldercare/internal/client/models"
	"github.com/dmitrijs2005/eldercare/internal/client/storage"
	"github.com/dmitrijs2005/eldercare/internal/logging"
)

type ProfileService struct {
	store storage.Adapter
	log   logging.Logger
}

func NewProfileService(store storage.Adapter, log logging.Logger) *ProfileService {
	return &ProfileService{store: store, log: log}
}

// Get returns the stored profile with every known field present. Unknown
// stored fields are kept.
func (s *ProfileService) Get(ctx context.Context) models.Profile {
	p := models.EmptyProfile()

	var stored models.Profile
	if _, err := loadJSON(ctx, s.store, models.KeyUserProfile, &stored); err != nil {
		s.log.Warn(ctx, "loading profile failed, showing empty profile", "err", err)
		return p
	}
	for k, v := range stored {
		p[k] = v
	}
	return p
}

// Update sets one known field to a non-blank value.
func (s *ProfileService) Update(ctx context.Context, field, value string) (models.Profile, error) {
	f, ok := models.LookupProfileField(field)
	if !ok {
		return nil, fmt.Errorf("%w: unknown profile field %q", ErrValidation, field)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%w: %s must not be empty", ErrValidation, f.Label)
	}

	p := models.EmptyProfile()
	var stored models.Profile
	if _, err := loadJSON(ctx, s.store, models.KeyUserProfile, &stored); err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	for k, v := range stored {
		p[k] = v
	}

	p[f.Key] = value
	if err := saveJSON(ctx, s.store, models.KeyUserProfile, p); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "profile updated", "field", f.Key)
	return p, nil
}

// Fields lists the editable fields grouped by section.
func (s *ProfileService) Fields() []models.ProfileSection {
	return models.ProfileSections
}
