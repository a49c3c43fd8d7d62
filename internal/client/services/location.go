package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/eldercare/internal/client/models"
	"github.com/dmitrijs2005/eldercare/internal/client/storage"
	"github.com/dmitrijs2005/eldercare/internal/common"
	"github.com/dmitrijs2005/eldercare/internal/logging"
)

type LocationService struct {
	store storage.Adapter
	log   logging.Logger
}

func NewLocationService(store storage.Adapter, log logging.Logger) *LocationService {
	return &LocationService{store: store, log: log}
}

// Get returns the saved location, or the zero Location.
func (s *LocationService) Get(ctx context.Context) models.Location {
	var loc models.Location
	if _, err := loadJSON(ctx, s.store, models.KeyUserLocation, &loc); err != nil {
		s.log.Warn(ctx, "loading location failed", "err", err)
		return models.Location{}
	}
	return loc
}

func (s *LocationService) Save(ctx context.Context, loc models.Location) error {
	loc.Address = strings.TrimSpace(loc.Address)
	loc.City = strings.TrimSpace(loc.City)
	loc.ZipCode = strings.TrimSpace(loc.ZipCode)

	if common.Blank(loc.Address) || common.Blank(loc.City) {
		return fmt.Errorf("%w: address and city are required", ErrValidation)
	}
	if err := saveJSON(ctx, s.store, models.KeyUserLocation, loc); err != nil {
		return err
	}
	s.log.Info(ctx, "location saved", "city", loc.City)
	return nil
}
