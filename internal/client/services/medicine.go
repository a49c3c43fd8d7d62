package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/eldercare/internal/client/models"
	"github.com/dmitrijs2005/eldercare/internal/client/storage"
	"github.com/dmitrijs2005/eldercare/internal/common"
	"github.com/dmitrijs2005/eldercare/internal/logging"
)

type MedicineService struct {
	store storage.Adapter
	log   logging.Logger
	ids   *idSource
}

// NewMedicineService uses now for medicine IDs; nil means time.Now.
func NewMedicineService(store storage.Adapter, log logging.Logger, now func() time.Time) *MedicineService {
	return &MedicineService{store: store, log: log, ids: newIDSource(now)}
}

// List returns the medicine list. A fresh installation is seeded with the
// default list, which is persisted. When storage cannot be read the default
// list is returned without saving it.
func (s *MedicineService) List(ctx context.Context) ([]models.Medicine, error) {
	var meds []models.Medicine
	found, err := loadJSON(ctx, s.store, models.KeyMedicines, &meds)
	if err != nil {
		s.log.Warn(ctx, "loading medicines failed, showing defaults", "err", err)
		return models.DefaultMedicines(), nil
	}
	if found {
		return meds, nil
	}

	meds = models.DefaultMedicines()
	if err := saveJSON(ctx, s.store, models.KeyMedicines, meds); err != nil {
		return meds, err
	}
	return meds, nil
}

// load is the strict read used before a mutation.
func (s *MedicineService) load(ctx context.Context) ([]models.Medicine, error) {
	var meds []models.Medicine
	found, err := loadJSON(ctx, s.store, models.KeyMedicines, &meds)
	if err != nil {
		return nil, fmt.Errorf("load medicines: %w", err)
	}
	if !found {
		meds = models.DefaultMedicines()
	}
	return meds, nil
}

func (s *MedicineService) Add(ctx context.Context, name, dosage, timing string) (models.Medicine, error) {
	name, dosage, timing = strings.TrimSpace(name), strings.TrimSpace(dosage), strings.TrimSpace(timing)
	if common.Blank(name) || common.Blank(dosage) || common.Blank(timing) {
		return models.Medicine{}, fmt.Errorf("%w: name, dosage and timing are required", ErrValidation)
	}

	meds, err := s.load(ctx)
	if err != nil {
		return models.Medicine{}, err
	}

	m := models.Medicine{ID: s.ids.next(), Name: name, Dosage: dosage, Timing: timing}
	meds = append(meds, m)
	if err := saveJSON(ctx, s.store, models.KeyMedicines, meds); err != nil {
		return models.Medicine{}, err
	}

	s.log.Info(ctx, "medicine added", "id", m.ID, "name", m.Name)
	return m, nil
}

// ToggleTaken flips the taken flag and returns the updated medicine.
func (s *MedicineService) ToggleTaken(ctx context.Context, id int64) (models.Medicine, error) {
	meds, err := s.load(ctx)
	if err != nil {
		return models.Medicine{}, err
	}

	for i := range meds {
		if meds[i].ID == id {
			meds[i].Taken = !meds[i].Taken
			if err := saveJSON(ctx, s.store, models.KeyMedicines, meds); err != nil {
				return models.Medicine{}, err
			}
			return meds[i], nil
		}
	}
	return models.Medicine{}, fmt.Errorf("medicine %d: %w", id, ErrNotFound)
}

func (s *MedicineService) Delete(ctx context.Context, id int64) error {
	meds, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := meds[:0]
	for _, m := range meds {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(meds) {
		return fmt.Errorf("medicine %d: %w", id, ErrNotFound)
	}

	if err := saveJSON(ctx, s.store, models.KeyMedicines, kept); err != nil {
		return err
	}
	s.log.Info(ctx, "medicine deleted", "id", id)
	return nil
}

// ResetTaken clears every taken flag, for the start of a new day.
func (s *MedicineService) ResetTaken(ctx context.Context) error {
	meds, err := s.load(ctx)
	if err != nil {
		return err
	}

	changed := false
	for i := range meds {
		if meds[i].Taken {
			meds[i].Taken = false
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return saveJSON(ctx, s.store, models.KeyMedicines, meds)
}
