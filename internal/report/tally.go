package report

import "github.com/pergazuz/thai-map/internal/model"

// StatusOrder is the fixed iteration order for coverage tallies.
var StatusOrder = []model.CoverageStatus{model.StatusCovered, model.StatusNear, model.StatusNone}

// Tally summarizes one snapshot: collection sizes plus point counts by
// coverage status and by category.
type Tally struct {
	Hubs       int
	Points     int
	ByStatus   map[model.CoverageStatus]int
	ByCategory map[model.Category]int
}

// TallyState counts the snapshot. Both maps carry a key for every known
// status and category, so callers can range the fixed orders without
// existence checks.
func TallyState(st model.State) Tally {
	t := Tally{
		Hubs:       len(st.Hubs),
		Points:     len(st.Points),
		ByStatus:   make(map[model.CoverageStatus]int, len(StatusOrder)),
		ByCategory: make(map[model.Category]int, len(model.CategoryOrder)),
	}
	for _, s := range StatusOrder {
		t.ByStatus[s] = 0
	}
	for _, c := range model.CategoryOrder {
		t.ByCategory[c] = 0
	}

	for _, pt := range st.Points {
		t.ByStatus[pt.Coverage.Status]++
		t.ByCategory[pt.Category]++
	}
	return t
}
