package revgeo

import (
	"context"

	"github.com/pergazuz/thai-map/internal/geo"
)

// staticMaxDistanceM bounds nearest-centroid matching. Coordinates farther
// than this from every centroid are outside Thailand for our purposes.
const staticMaxDistanceM = 200000.0

// StaticProvider resolves provinces offline by nearest centroid over the
// embedded province table. It never fails, which also makes it the
// deterministic provider for tests.
type StaticProvider struct{}

// NewStaticProvider creates the offline provider.
func NewStaticProvider() *StaticProvider { return &StaticProvider{} }

// Name implements Provider.
func (p *StaticProvider) Name() string { return "static" }

// Available implements Provider.
func (p *StaticProvider) Available() bool { return true }

// ResolveBatch implements Provider.
func (p *StaticProvider) ResolveBatch(_ context.Context, coords []Coord) ([]string, error) {
	out := make([]string, len(coords))
	for i, c := range coords {
		out[i] = nearestProvince(c)
	}
	return out, nil
}

func nearestProvince(c Coord) string {
	best := ""
	bestDist := 0.0
	for _, prov := range thaiProvinces {
		d := geo.DistanceMeters(c.Lat, c.Lng, prov.lat, prov.lng)
		if best == "" || d < bestDist {
			best = prov.name
			bestDist = d
		}
	}
	if bestDist > staticMaxDistanceM {
		return Unknown
	}
	return best
}
