package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pergazuz/thai-map/internal/geo"
	"github.com/pergazuz/thai-map/internal/model"
)

// reportState builds a two-hub fixture with known radius memberships. The
// hubs sit 65 km apart so their primary rings overlap between them.
func reportState() model.State {
	created := time.Date(2025, 8, 1, 9, 30, 0, 0, time.UTC)
	hub := func(id, label string, lat, lng float64) model.Hub {
		return model.Hub{
			ID:              id,
			Label:           label,
			Lat:             lat,
			Lng:             lng,
			PrimaryRadiusM:  model.DefaultPrimaryRadiusM,
			ExtendedRadiusM: model.DefaultExtendedRadiusM,
			CreatedAt:       created,
		}
	}
	point := func(id, label string, cat model.Category, lat, lng float64) model.Point {
		return model.Point{ID: id, Label: label, Category: cat, Lat: lat, Lng: lng, CreatedAt: created}
	}

	return model.State{
		Hubs: []model.Hub{
			hub("hub-a", "Central", 13.0, 100.0),
			hub("hub-b", "East", 13.0, 100.6),
		},
		Points: []model.Point{
			point("pt-1", "Depot", model.CategoryExisting, 13.0, 100.0),    // Central only
			point("pt-2", "Chonburi", model.CategoryRequest, 13.0, 100.3),  // both hubs, ~32.5 km each
			point("pt-3", "Shop", model.CategoryExisting, 13.0, 100.6),     // East only
			point("pt-4", "North Site", model.CategoryPending, 18.0, 99.0), // far from both
			point("pt-5", "Edge", model.CategoryOutzone, 13.0, 100.61),     // East only, ~1 km
		},
	}
}

func TestDetailRows(t *testing.T) {
	t.Parallel()

	dist := 12.5
	st := model.State{Points: []model.Point{
		{
			Label:    "Depot",
			Province: "Chonburi",
			Category: model.CategoryExisting,
			Lat:      13.123456,
			Lng:      100.654321,
			Coverage: model.Coverage{
				Status:        model.StatusCovered,
				NearestZone:   "Central",
				DistanceKM:    &dist,
				CoveringZones: []string{"Central", "East"},
			},
		},
		{
			Label:    "13.5000, 100.5000",
			Category: model.CategoryOutzone,
			Lat:      13.5,
			Lng:      100.5,
			Coverage: model.Coverage{Status: model.StatusNone},
		},
	}}

	rows := DetailRows(st)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"Depot", "Chonburi", "Existing",
		"13.123456", "100.654321",
		"covered", "Central", "Central; East", "12.50",
	}, rows[0])
	assert.Equal(t, []string{
		"13.5000, 100.5000", "", "Outzone",
		"13.500000", "100.500000",
		"none", "", "", "",
	}, rows[1])
}

func TestDetailRowsDerived(t *testing.T) {
	t.Parallel()

	st := reportState()
	st.Points = geo.EvaluateAll(st.Points, st.Hubs)

	rows := DetailRows(st)
	require.Len(t, rows, 5)

	// A point on the hub center is covered at zero distance.
	assert.Equal(t, []string{
		"Depot", "", "Existing",
		"13.000000", "100.000000",
		"covered", "Central", "Central", "0.00",
	}, rows[0])

	// The midpoint sits inside both primary rings, in hub order.
	assert.Equal(t, "Central; East", rows[1][7])
	assert.Equal(t, "covered", rows[1][5])

	// Far from every hub: no covering zones, distance still reported.
	assert.Equal(t, "none", rows[3][5])
	assert.Empty(t, rows[3][7])
	assert.NotEmpty(t, rows[3][8])
}

func TestSummaryRows(t *testing.T) {
	t.Parallel()

	rows := SummaryRows(reportState())
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Central", "13.000000", "100.000000", "1", "1", "0", "0", "2"}, rows[0])
	assert.Equal(t, []string{"East", "13.000000", "100.600000", "1", "1", "0", "1", "3"}, rows[1])
}

func TestSummaryRowsNoPoints(t *testing.T) {
	t.Parallel()

	st := reportState()
	st.Points = nil

	rows := SummaryRows(st)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Central", "13.000000", "100.000000", "0", "0", "0", "0", "0"}, rows[0])
}

func TestSummaryRowsEmptyState(t *testing.T) {
	t.Parallel()

	assert.Empty(t, SummaryRows(model.State{}))
	assert.Empty(t, DetailRows(model.State{}))
}
