package ingest

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ReadShapefile loads point candidates from an ESRI shapefile. The candidate
// name comes from the nameField attribute when present (case-insensitive
// match). Non-point shapes are skipped with a warning, never an error.
func ReadShapefile(path, nameField string) ([]Candidate, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open shapefile")
	}
	defer func() { _ = reader.Close() }()

	nameIdx := -1
	if nameField != "" {
		nameIdx = fieldIndex(reader, nameField)
		if nameIdx < 0 {
			zap.L().Warn("ingest: name field not found in shapefile",
				zap.String("field", nameField))
		}
	}

	var out []Candidate
	var skipped int
	for reader.Next() {
		num, shape := reader.Shape()
		if shape == nil {
			skipped++
			continue
		}

		var lat, lng float64
		switch s := shape.(type) {
		case *shp.Point:
			lng, lat = s.X, s.Y
		case *shp.PointZ:
			lng, lat = s.X, s.Y
		case *shp.PointM:
			lng, lat = s.X, s.Y
		default:
			zap.L().Warn("ingest: skipping non-point shape", zap.Int("record", num))
			skipped++
			continue
		}

		cand := Candidate{Lat: lat, Lng: lng}
		if nameIdx >= 0 {
			cand.Name = strings.TrimSpace(reader.Attribute(nameIdx))
		}
		out = append(out, cand)
	}

	if skipped > 0 {
		zap.L().Warn("ingest: skipped shapefile records", zap.Int("count", skipped))
	}
	return out, nil
}

// fieldIndex returns the index of a named attribute, or -1 if not found.
// DBF field names are NUL-padded.
func fieldIndex(reader *shp.Reader, name string) int {
	for i, f := range reader.Fields() {
		if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), name) {
			return i
		}
	}
	return -1
}
