// Package report builds the export views of a state snapshot: per-point
// detail rows, per-hub summary rows, and the CSV, XLSX, and GeoJSON writers
// that carry them. Row builders are pure so every writer emits the same data.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pergazuz/thai-map/internal/geo"
	"github.com/pergazuz/thai-map/internal/model"
)

// DetailColumns defines the ordered columns of the per-point detail report.
var DetailColumns = []string{
	"Name",
	"Province",
	"Category",
	"Latitude",
	"Longitude",
	"CoverageStatus",
	"NearestZone",
	"AllCoveringZones",
	"DistanceToNearest(km)",
}

// SummaryColumns defines the ordered columns of the per-hub summary report.
var SummaryColumns = []string{
	"Zone Name",
	"Center Latitude",
	"Center Longitude",
	"Total Existing",
	"Total Request",
	"Total Pending",
	"Total Outzone",
	"Total Covered (50km)",
}

// DetailRows returns one row per point, in point order.
func DetailRows(st model.State) [][]string {
	rows := make([][]string, 0, len(st.Points))
	for _, pt := range st.Points {
		rows = append(rows, buildDetailRow(pt))
	}
	return rows
}

// buildDetailRow maps one point to its detail columns.
func buildDetailRow(pt model.Point) []string {
	distance := ""
	if pt.Coverage.DistanceKM != nil {
		distance = fmt.Sprintf("%.2f", *pt.Coverage.DistanceKM)
	}

	return []string{
		pt.Label,                                      // Name
		pt.Province,                                   // Province
		pt.Category.Display(),                         // Category
		fmt.Sprintf("%.6f", pt.Lat),                   // Latitude
		fmt.Sprintf("%.6f", pt.Lng),                   // Longitude
		string(pt.Coverage.Status),                    // CoverageStatus
		pt.Coverage.NearestZone,                       // NearestZone
		strings.Join(pt.Coverage.CoveringZones, "; "), // AllCoveringZones
		distance, // DistanceToNearest(km)
	}
}

// SummaryRows returns one row per hub, in hub order. Category counts are
// membership counts against that hub's own primary radius, not nearest-hub
// assignments, so a point inside two overlapping zones counts once for each.
func SummaryRows(st model.State) [][]string {
	rows := make([][]string, 0, len(st.Hubs))
	for _, h := range st.Hubs {
		rows = append(rows, buildSummaryRow(h, st.Points))
	}
	return rows
}

// buildSummaryRow counts the points inside one hub's primary radius per
// category. Total Covered is the sum of the category columns.
func buildSummaryRow(h model.Hub, points []model.Point) []string {
	counts := make(map[model.Category]int, len(model.CategoryOrder))
	for _, pt := range points {
		if geo.DistanceMeters(pt.Lat, pt.Lng, h.Lat, h.Lng) <= h.PrimaryRadiusM {
			counts[pt.Category]++
		}
	}

	row := []string{
		h.Label,
		fmt.Sprintf("%.6f", h.Lat),
		fmt.Sprintf("%.6f", h.Lng),
	}
	total := 0
	for _, cat := range model.CategoryOrder {
		row = append(row, strconv.Itoa(counts[cat]))
		total += counts[cat]
	}
	return append(row, strconv.Itoa(total))
}
