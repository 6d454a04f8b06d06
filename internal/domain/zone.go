// Package domain contains the core data types for the demand prediction API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import "time"

// Zone represents a TLC taxi zone (LocationID). The id is caller-assigned —
// it comes from the TLC lookup table, not from this service.
type Zone struct {
	ID          int       `json:"id"`
	Borough     string    `json:"borough"`
	ZoneName    string    `json:"zone_name"`
	ServiceZone string    `json:"service_zone"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Defaults applied when the upload pipeline creates a zone that a trip
// record references but the store does not yet contain.
const (
	DefaultBorough     = "Unknown"
	DefaultServiceZone = "Unknown"
)

// ZoneFilter holds optional equality predicates for listing zones.
// Nil fields match everything.
type ZoneFilter struct {
	Active  *bool
	Borough *string
}
