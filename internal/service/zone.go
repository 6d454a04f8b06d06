// Package service contains the business logic for the demand prediction API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No storage access lives here — services depend on repo interfaces,
// not implementations.
package service

import (
	"fmt"
	"strings"

	"github.com/demand-prediction/backend/internal/domain"
	"github.com/demand-prediction/backend/internal/repo"
)

// ZoneService implements business logic for Zone operations.
type ZoneService struct {
	zones repo.ZoneRepo
}

// NewZoneService constructs a ZoneService backed by the provided ZoneRepo.
func NewZoneService(zones repo.ZoneRepo) *ZoneService {
	return &ZoneService{zones: zones}
}

// Create validates and stores a new zone under its caller-assigned id.
// Returns domain.ErrInvalidInput for business-rule violations and
// domain.ErrDuplicate if the id is already taken.
func (s *ZoneService) Create(zone domain.Zone) (domain.Zone, error) {
	if err := validateZone(&zone); err != nil {
		return domain.Zone{}, err
	}
	result, err := s.zones.Create(zone)
	if err != nil {
		return domain.Zone{}, fmt.Errorf("service.ZoneService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single zone by id.
func (s *ZoneService) GetByID(id int) (domain.Zone, error) {
	result, err := s.zones.GetByID(id)
	if err != nil {
		return domain.Zone{}, fmt.Errorf("service.ZoneService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all zones matching the filter, in insertion order.
func (s *ZoneService) List(filter domain.ZoneFilter) ([]domain.Zone, error) {
	return s.zones.List(filter), nil
}

// Update validates and fully replaces the mutable fields of an existing zone.
// created_at is preserved by the store.
func (s *ZoneService) Update(zone domain.Zone) (domain.Zone, error) {
	if err := validateZone(&zone); err != nil {
		return domain.Zone{}, err
	}
	result, err := s.zones.Update(zone)
	if err != nil {
		return domain.Zone{}, fmt.Errorf("service.ZoneService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a zone by id. Routes referencing the zone are left alone:
// referential integrity is only enforced at route create/update time, so a
// delete can leave dangling pickup/dropoff ids behind.
func (s *ZoneService) Delete(id int) error {
	if err := s.zones.Delete(id); err != nil {
		return fmt.Errorf("service.ZoneService.Delete: %w", err)
	}
	return nil
}

// validateZone enforces business rules common to both Create and Update,
// trimming surrounding whitespace from text fields as a side effect.
//   - ID must be positive (TLC LocationIDs start at 1).
//   - Borough and ZoneName must be non-blank.
func validateZone(zone *domain.Zone) error {
	zone.Borough = strings.TrimSpace(zone.Borough)
	zone.ZoneName = strings.TrimSpace(zone.ZoneName)
	zone.ServiceZone = strings.TrimSpace(zone.ServiceZone)

	if zone.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", domain.ErrInvalidInput)
	}
	if zone.Borough == "" {
		return fmt.Errorf("%w: borough is required", domain.ErrInvalidInput)
	}
	if zone.ZoneName == "" {
		return fmt.Errorf("%w: zone_name is required", domain.ErrInvalidInput)
	}
	return nil
}
