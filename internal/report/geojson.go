package report

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/pergazuz/thai-map/internal/model"
)

// FeatureCollection converts a state snapshot to GeoJSON: one point feature
// per hub carrying its label and radii, one per imported point carrying
// category, status, province, and marker color. Hubs come first, in
// collection order.
func FeatureCollection(st model.State) *geojson.FeatureCollection {
	features := make([]*geojson.Feature, 0, len(st.Hubs)+len(st.Points))

	for _, h := range st.Hubs {
		features = append(features, &geojson.Feature{
			ID:       h.ID,
			Geometry: geom.NewPointFlat(geom.XY, []float64{h.Lng, h.Lat}).SetSRID(4326),
			Properties: map[string]any{
				"kind":              "hub",
				"label":             h.Label,
				"primary_radius_m":  h.PrimaryRadiusM,
				"extended_radius_m": h.ExtendedRadiusM,
			},
		})
	}

	for _, pt := range st.Points {
		props := map[string]any{
			"kind":     "point",
			"label":    pt.Label,
			"category": string(pt.Category),
			"color":    pt.Category.Color(),
			"status":   string(pt.Coverage.Status),
		}
		if pt.Province != "" {
			props["province"] = pt.Province
		}
		if pt.Coverage.NearestZone != "" {
			props["nearest_zone"] = pt.Coverage.NearestZone
		}
		if pt.Coverage.DistanceKM != nil {
			props["distance_km"] = *pt.Coverage.DistanceKM
		}

		features = append(features, &geojson.Feature{
			ID:         pt.ID,
			Geometry:   geom.NewPointFlat(geom.XY, []float64{pt.Lng, pt.Lat}).SetSRID(4326),
			Properties: props,
		})
	}

	return &geojson.FeatureCollection{Features: features}
}

// WriteGeoJSON writes the feature collection to w.
func WriteGeoJSON(w io.Writer, st model.State) error {
	data, err := json.Marshal(FeatureCollection(st))
	if err != nil {
		return eris.Wrap(err, "report: encode geojson")
	}
	if _, err := w.Write(data); err != nil {
		return eris.Wrap(err, "report: write geojson")
	}
	return nil
}

// ExportGeoJSON writes the feature collection to a file at path.
func ExportGeoJSON(st model.State, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "report: create geojson file")
	}
	defer f.Close()

	return WriteGeoJSON(f, st)
}
