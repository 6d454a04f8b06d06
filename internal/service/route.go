package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/demand-prediction/backend/internal/domain"
	"github.com/demand-prediction/backend/internal/repo"
)

// routeNameMinLen is the minimum route name length after trimming.
const routeNameMinLen = 3

// RouteService implements business logic for Route operations.
// It holds both repos because creating or updating a route requires
// verifying that the referenced zones exist.
type RouteService struct {
	zones  repo.ZoneRepo
	routes repo.RouteRepo
}

// NewRouteService constructs a RouteService backed by the provided repos.
func NewRouteService(zones repo.ZoneRepo, routes repo.RouteRepo) *RouteService {
	return &RouteService{zones: zones, routes: routes}
}

// Create validates the route, verifies both referenced zones exist, then
// stores it under a freshly assigned id.
// Returns domain.ErrInvalidInput for any business-rule violation.
func (s *RouteService) Create(route domain.Route) (domain.Route, error) {
	if err := s.validateRoute(&route); err != nil {
		return domain.Route{}, err
	}
	result, err := s.routes.Create(route)
	if err != nil {
		return domain.Route{}, fmt.Errorf("service.RouteService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single route by id.
func (s *RouteService) GetByID(id uuid.UUID) (domain.Route, error) {
	result, err := s.routes.GetByID(id)
	if err != nil {
		return domain.Route{}, fmt.Errorf("service.RouteService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all routes matching the filter, in insertion order.
func (s *RouteService) List(filter domain.RouteFilter) ([]domain.Route, error) {
	return s.routes.List(filter), nil
}

// Update validates and fully replaces the mutable fields of an existing
// route. Zone existence is re-checked: an update may not point a route at
// zones that are no longer in the store.
func (s *RouteService) Update(route domain.Route) (domain.Route, error) {
	if err := s.validateRoute(&route); err != nil {
		return domain.Route{}, err
	}
	result, err := s.routes.Update(route)
	if err != nil {
		return domain.Route{}, fmt.Errorf("service.RouteService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a route by id.
func (s *RouteService) Delete(id uuid.UUID) error {
	if err := s.routes.Delete(id); err != nil {
		return fmt.Errorf("service.RouteService.Delete: %w", err)
	}
	return nil
}

// validateRoute enforces business rules common to both Create and Update.
//   - Both zone ids must be positive and must differ.
//   - Both zones must exist in the store at this moment.
//   - Name must be at least 3 characters after trimming.
func (s *RouteService) validateRoute(route *domain.Route) error {
	route.Name = strings.TrimSpace(route.Name)

	if route.PickupZoneID <= 0 {
		return fmt.Errorf("%w: pickup_zone_id must be positive", domain.ErrInvalidInput)
	}
	if route.DropoffZoneID <= 0 {
		return fmt.Errorf("%w: dropoff_zone_id must be positive", domain.ErrInvalidInput)
	}
	if route.PickupZoneID == route.DropoffZoneID {
		return fmt.Errorf("%w: pickup_zone_id and dropoff_zone_id must be different", domain.ErrInvalidInput)
	}
	if len(route.Name) < routeNameMinLen {
		return fmt.Errorf("%w: name must be at least %d characters", domain.ErrInvalidInput, routeNameMinLen)
	}
	if !s.zones.Exists(route.PickupZoneID) {
		return fmt.Errorf("%w: pickup zone %d does not exist", domain.ErrInvalidInput, route.PickupZoneID)
	}
	if !s.zones.Exists(route.DropoffZoneID) {
		return fmt.Errorf("%w: dropoff zone %d does not exist", domain.ErrInvalidInput, route.DropoffZoneID)
	}
	return nil
}
