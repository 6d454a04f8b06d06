package domain

import (
	"time"

	"github.com/google/uuid"
)

// Route represents a directed pickup→dropoff pair between two zones.
// The id is server-assigned on create. Pickup and dropoff must reference
// existing zones at create/update time and must always differ; if a
// referenced zone is deleted later the route keeps its dangling ids.
type Route struct {
	ID            uuid.UUID `json:"id"`
	PickupZoneID  int       `json:"pickup_zone_id"`
	DropoffZoneID int       `json:"dropoff_zone_id"`
	Name          string    `json:"name"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// RouteFilter holds optional equality predicates for listing routes.
// Nil fields match everything.
type RouteFilter struct {
	Active        *bool
	PickupZoneID  *int
	DropoffZoneID *int
}
