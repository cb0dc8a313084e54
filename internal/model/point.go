package model

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Category classifies an imported point. The set is closed.
type Category string

const (
	CategoryExisting Category = "existing"
	CategoryRequest  Category = "request"
	CategoryPending  Category = "pending"
	CategoryOutzone  Category = "outzone"
)

// CategoryOrder is the fixed iteration order for report columns and tallies.
var CategoryOrder = []Category{CategoryExisting, CategoryRequest, CategoryPending, CategoryOutzone}

// ParseCategory maps a case-insensitive category name to its Category.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryExisting:
		return CategoryExisting, nil
	case CategoryRequest:
		return CategoryRequest, nil
	case CategoryPending:
		return CategoryPending, nil
	case CategoryOutzone:
		return CategoryOutzone, nil
	}
	return "", eris.Errorf("model: unknown category %q", s)
}

// Display returns the category name as it appears in reports.
func (c Category) Display() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// Color returns the map marker color associated with the category.
func (c Category) Color() string {
	switch c {
	case CategoryExisting:
		return "#2e7d32"
	case CategoryRequest:
		return "#f9a825"
	case CategoryPending:
		return "#1565c0"
	case CategoryOutzone:
		return "#c62828"
	}
	return "#757575"
}

// CoverageStatus describes how a point relates to the hub network.
type CoverageStatus string

const (
	StatusCovered CoverageStatus = "covered" // within the nearest hub's primary radius
	StatusNear    CoverageStatus = "near"    // within the extended radius only
	StatusNone    CoverageStatus = "none"    // beyond every extended radius, or no hubs
)

// Coverage holds the derived fields of a point, recomputed after every hub or
// point mutation. NearestZone and DistanceKM are unset when no hubs exist.
type Coverage struct {
	Status        CoverageStatus `json:"status"`
	NearestZone   string         `json:"nearest_zone,omitempty"`
	DistanceKM    *float64       `json:"distance_km,omitempty"`
	CoveringZones []string       `json:"covering_zones,omitempty"`
}

// Point is an imported candidate location together with its derived coverage.
// Province is set only when no explicit name was supplied at import time.
// Customized marks a manual rename and shields the label from later
// enrichment passes.
type Point struct {
	ID         string    `json:"id"`
	Label      string    `json:"label"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Category   Category  `json:"category"`
	Province   string    `json:"province,omitempty"`
	Customized bool      `json:"customized,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	Coverage   Coverage  `json:"coverage"`
}
