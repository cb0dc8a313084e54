package geo

import "github.com/pergazuz/thai-map/internal/model"

// Evaluate derives the coverage view of one point against the hub collection:
// the nearest hub (ties go to the earlier hub), the status classified against
// that hub's radii, and every hub whose primary radius reaches the point, in
// hub order. With no hubs the status is none and the nearest fields stay
// unset.
func Evaluate(pt model.Point, hubs []model.Hub) model.Coverage {
	cov := model.Coverage{Status: model.StatusNone}
	if len(hubs) == 0 {
		return cov
	}

	nearestIdx := -1
	nearestDist := 0.0
	for i, h := range hubs {
		d := DistanceMeters(pt.Lat, pt.Lng, h.Lat, h.Lng)
		if nearestIdx < 0 || d < nearestDist {
			nearestIdx = i
			nearestDist = d
		}
		if d <= h.PrimaryRadiusM {
			cov.CoveringZones = append(cov.CoveringZones, h.Label)
		}
	}

	nearest := hubs[nearestIdx]
	km := nearestDist / 1000
	cov.Status = Classify(nearestDist, nearest.PrimaryRadiusM, nearest.ExtendedRadiusM)
	cov.NearestZone = nearest.Label
	cov.DistanceKM = &km
	return cov
}

// EvaluateAll recomputes the coverage of every point, preserving point order.
// The input slice is left untouched.
func EvaluateAll(points []model.Point, hubs []model.Hub) []model.Point {
	out := make([]model.Point, len(points))
	copy(out, points)
	for i := range out {
		out[i].Coverage = Evaluate(out[i], hubs)
	}
	return out
}
