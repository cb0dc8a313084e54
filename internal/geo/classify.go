package geo

import "github.com/pergazuz/thai-map/internal/model"

// Classify returns the coverage status for a point at distM meters from a hub
// with the given radii. Band edges are inclusive on the inner side:
//   - covered: distM <= primaryM
//   - near: primaryM < distM <= extendedM
//   - none: distM > extendedM
func Classify(distM, primaryM, extendedM float64) model.CoverageStatus {
	if distM <= primaryM {
		return model.StatusCovered
	}
	if distM <= extendedM {
		return model.StatusNear
	}
	return model.StatusNone
}
