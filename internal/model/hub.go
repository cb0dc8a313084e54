// Package model defines the core entities of the coverage planner: hub zones,
// imported points, and the persisted application state.
package model

import "time"

// Default service radii for a hub zone, in meters.
const (
	DefaultPrimaryRadiusM  = 50000.0
	DefaultExtendedRadiusM = 100000.0
)

// Hub is a service zone center. The primary radius is the guaranteed coverage
// band, the extended radius the best-effort band around it.
type Hub struct {
	ID              string    `json:"id"`
	Label           string    `json:"label"`
	Lat             float64   `json:"lat"`
	Lng             float64   `json:"lng"`
	PrimaryRadiusM  float64   `json:"primary_radius_m"`
	ExtendedRadiusM float64   `json:"extended_radius_m"`
	CreatedAt       time.Time `json:"created_at"`
}
