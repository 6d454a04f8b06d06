package repo

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/demand-prediction/backend/internal/domain"
)

// RouteRepo defines the storage operations for Routes.
type RouteRepo interface {
	// Create stores a new route under a freshly assigned UUID and returns
	// the stored record with id and created_at populated.
	Create(route domain.Route) (domain.Route, error)

	// GetByID retrieves a single route by its UUID primary key.
	// Returns domain.ErrNotFound if no route with that id exists.
	GetByID(id uuid.UUID) (domain.Route, error)

	// List returns all routes matching the filter, in insertion order.
	List(filter domain.RouteFilter) []domain.Route

	// FindByZonePair returns the route with the exact (pickup, dropoff)
	// pair, located by linear scan. This is the upsert lookup used by the
	// upload pipeline. Returns domain.ErrNotFound when no such route exists.
	FindByZonePair(pickupZoneID, dropoffZoneID int) (domain.Route, error)

	// Update overwrites the mutable fields of an existing route, preserving
	// created_at, and returns the updated record.
	// Returns domain.ErrNotFound if no route with that id exists.
	Update(route domain.Route) (domain.Route, error)

	// Delete removes a route by id. Returns domain.ErrNotFound if it does
	// not exist.
	Delete(id uuid.UUID) error
}

// memRouteRepo is the in-memory implementation of RouteRepo.
type memRouteRepo struct {
	mu     sync.RWMutex
	routes map[uuid.UUID]domain.Route
	order  []uuid.UUID
}

// NewRouteRepo constructs an empty in-memory RouteRepo.
func NewRouteRepo() RouteRepo {
	return &memRouteRepo{routes: make(map[uuid.UUID]domain.Route)}
}

// Create assigns a new UUID, stamps created_at, and stores the route.
func (r *memRouteRepo) Create(route domain.Route) (domain.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	route.ID = uuid.New()
	route.CreatedAt = time.Now().UTC()
	r.routes[route.ID] = route
	r.order = append(r.order, route.ID)
	return route, nil
}

// GetByID retrieves a route by primary key.
func (r *memRouteRepo) GetByID(id uuid.UUID) (domain.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	route, ok := r.routes[id]
	if !ok {
		return domain.Route{}, fmt.Errorf("repo.RouteRepo.GetByID: route %s: %w", id, domain.ErrNotFound)
	}
	return route, nil
}

// List returns matching routes in insertion order. Always returns a non-nil
// slice so callers can safely range over and serialize it.
func (r *memRouteRepo) List(filter domain.RouteFilter) []domain.Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make([]domain.Route, 0, len(r.order))
	for _, id := range r.order {
		rt := r.routes[id]
		if filter.Active != nil && rt.Active != *filter.Active {
			continue
		}
		if filter.PickupZoneID != nil && rt.PickupZoneID != *filter.PickupZoneID {
			continue
		}
		if filter.DropoffZoneID != nil && rt.DropoffZoneID != *filter.DropoffZoneID {
			continue
		}
		routes = append(routes, rt)
	}
	return routes
}

// FindByZonePair scans insertion order for an exact pair match.
func (r *memRouteRepo) FindByZonePair(pickupZoneID, dropoffZoneID int) (domain.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		rt := r.routes[id]
		if rt.PickupZoneID == pickupZoneID && rt.DropoffZoneID == dropoffZoneID {
			return rt, nil
		}
	}
	return domain.Route{}, fmt.Errorf("repo.RouteRepo.FindByZonePair: pair (%d,%d): %w",
		pickupZoneID, dropoffZoneID, domain.ErrNotFound)
}

// Update fully replaces the mutable fields of a route, keeping created_at.
func (r *memRouteRepo) Update(route domain.Route) (domain.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.routes[route.ID]
	if !ok {
		return domain.Route{}, fmt.Errorf("repo.RouteRepo.Update: route %s: %w", route.ID, domain.ErrNotFound)
	}

	route.CreatedAt = existing.CreatedAt
	r.routes[route.ID] = route
	return route, nil
}

// Delete removes a route by primary key.
func (r *memRouteRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.routes[id]; !ok {
		return fmt.Errorf("repo.RouteRepo.Delete: route %s: %w", id, domain.ErrNotFound)
	}

	delete(r.routes, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
