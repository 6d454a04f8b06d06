// Package repo contains the storage layer for the demand prediction API.
// Each resource has its own file with an interface and an in-memory
// implementation. Storage is deliberately process-local: two mutex-guarded
// maps that do not survive a restart. No business logic lives here — only
// map access and insertion-order bookkeeping.
package repo

import (
	"fmt"
	"sync"
	"time"

	"github.com/demand-prediction/backend/internal/domain"
)

// ZoneRepo defines the storage operations for Zones.
// The service layer depends on this interface, not the concrete in-memory
// implementation, which allows the service to be unit-tested with a mock.
type ZoneRepo interface {
	// Create stores a new zone under its caller-assigned id and returns the
	// stored record with created_at populated.
	// Returns domain.ErrDuplicate if the id is already present.
	Create(zone domain.Zone) (domain.Zone, error)

	// GetByID retrieves a single zone by its integer primary key.
	// Returns domain.ErrNotFound if no zone with that id exists.
	GetByID(id int) (domain.Zone, error)

	// List returns all zones matching the filter, in insertion order.
	List(filter domain.ZoneFilter) []domain.Zone

	// Update overwrites the mutable fields of an existing zone, preserving
	// created_at, and returns the updated record.
	// Returns domain.ErrNotFound if no zone with that id exists.
	Update(zone domain.Zone) (domain.Zone, error)

	// Delete removes a zone by id. Returns domain.ErrNotFound if it does
	// not exist. Routes referencing the zone are not touched.
	Delete(id int) error

	// Exists reports whether a zone with the given id is stored.
	Exists(id int) bool
}

// memZoneRepo is the in-memory implementation of ZoneRepo.
// A single RWMutex guards the map for the duration of each operation;
// there is no coordination across operations.
type memZoneRepo struct {
	mu    sync.RWMutex
	zones map[int]domain.Zone
	order []int // ids in insertion order, so List is deterministic
}

// NewZoneRepo constructs an empty in-memory ZoneRepo.
func NewZoneRepo() ZoneRepo {
	return &memZoneRepo{zones: make(map[int]domain.Zone)}
}

// Create stores the zone and stamps created_at.
func (r *memZoneRepo) Create(zone domain.Zone) (domain.Zone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.zones[zone.ID]; ok {
		return domain.Zone{}, fmt.Errorf("repo.ZoneRepo.Create: zone %d: %w", zone.ID, domain.ErrDuplicate)
	}

	zone.CreatedAt = time.Now().UTC()
	r.zones[zone.ID] = zone
	r.order = append(r.order, zone.ID)
	return zone, nil
}

// GetByID retrieves a zone by primary key.
func (r *memZoneRepo) GetByID(id int) (domain.Zone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	zone, ok := r.zones[id]
	if !ok {
		return domain.Zone{}, fmt.Errorf("repo.ZoneRepo.GetByID: zone %d: %w", id, domain.ErrNotFound)
	}
	return zone, nil
}

// List returns matching zones in insertion order. Always returns a non-nil
// slice so callers can safely range over and serialize it.
func (r *memZoneRepo) List(filter domain.ZoneFilter) []domain.Zone {
	r.mu.RLock()
	defer r.mu.RUnlock()

	zones := make([]domain.Zone, 0, len(r.order))
	for _, id := range r.order {
		z := r.zones[id]
		if filter.Active != nil && z.Active != *filter.Active {
			continue
		}
		if filter.Borough != nil && z.Borough != *filter.Borough {
			continue
		}
		zones = append(zones, z)
	}
	return zones
}

// Update fully replaces the mutable fields of a zone, keeping created_at.
func (r *memZoneRepo) Update(zone domain.Zone) (domain.Zone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.zones[zone.ID]
	if !ok {
		return domain.Zone{}, fmt.Errorf("repo.ZoneRepo.Update: zone %d: %w", zone.ID, domain.ErrNotFound)
	}

	zone.CreatedAt = existing.CreatedAt
	r.zones[zone.ID] = zone
	return zone, nil
}

// Delete removes a zone by primary key.
func (r *memZoneRepo) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.zones[id]; !ok {
		return fmt.Errorf("repo.ZoneRepo.Delete: zone %d: %w", id, domain.ErrNotFound)
	}

	delete(r.zones, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Exists reports whether the zone id is present.
func (r *memZoneRepo) Exists(id int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.zones[id]
	return ok
}
