package model

// State is the full application state: the hub collection and the point
// collection. Each persists as its own JSON array.
type State struct {
	Hubs   []Hub   `json:"hubs"`
	Points []Point `json:"points"`
}

// Clone returns a deep copy so reducers can mutate freely without aliasing
// the caller's slices.
func (s State) Clone() State {
	out := State{}
	if s.Hubs != nil {
		out.Hubs = make([]Hub, len(s.Hubs))
		copy(out.Hubs, s.Hubs)
	}
	if s.Points != nil {
		out.Points = make([]Point, len(s.Points))
		copy(out.Points, s.Points)
		for i := range out.Points {
			cov := &out.Points[i].Coverage
			if cov.DistanceKM != nil {
				d := *cov.DistanceKM
				cov.DistanceKM = &d
			}
			if cov.CoveringZones != nil {
				zones := make([]string, len(cov.CoveringZones))
				copy(zones, cov.CoveringZones)
				cov.CoveringZones = zones
			}
		}
	}
	return out
}
