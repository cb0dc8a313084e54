// Package state holds the pure transition functions over the hub and point
// collections, plus the service that wires them to storage and resolution.
package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/pergazuz/thai-map/internal/geo"
	"github.com/pergazuz/thai-map/internal/ingest"
	"github.com/pergazuz/thai-map/internal/label"
	"github.com/pergazuz/thai-map/internal/model"
)

var (
	// ErrNotFound means the reference matched no hub or point.
	ErrNotFound = eris.New("state: no such item")
	// ErrAmbiguous means the reference matched more than one item.
	ErrAmbiguous = eris.New("state: ambiguous reference")
	// ErrEmptyName rejects renames to a blank name.
	ErrEmptyName = eris.New("state: name must not be empty")
)

// AddHub appends a hub with default radii. A blank name gets the next
// sequential zone label.
func AddHub(st model.State, lat, lng float64, name string) (model.State, model.Hub) {
	next := st.Clone()

	lbl := strings.TrimSpace(name)
	if lbl == "" {
		lbl = fmt.Sprintf("Zone %d", len(next.Hubs)+1)
	}

	hub := model.Hub{
		ID:              uuid.NewString(),
		Label:           lbl,
		Lat:             lat,
		Lng:             lng,
		PrimaryRadiusM:  model.DefaultPrimaryRadiusM,
		ExtendedRadiusM: model.DefaultExtendedRadiusM,
		CreatedAt:       time.Now().UTC(),
	}
	next.Hubs = append(next.Hubs, hub)
	return withDerived(next), hub
}

// RenameHub changes a hub's label. The input state is returned unchanged on
// error.
func RenameHub(st model.State, ref, newName string) (model.State, model.Hub, error) {
	name := strings.TrimSpace(newName)
	if name == "" {
		return st, model.Hub{}, eris.Wrap(ErrEmptyName, "rename hub")
	}

	idx, err := indexByRef(st.Hubs, ref, hubID, hubLabel)
	if err != nil {
		return st, model.Hub{}, err
	}

	next := st.Clone()
	next.Hubs[idx].Label = name
	return withDerived(next), next.Hubs[idx], nil
}

// RemoveHub deletes a hub and recomputes coverage for every point.
func RemoveHub(st model.State, ref string) (model.State, error) {
	idx, err := indexByRef(st.Hubs, ref, hubID, hubLabel)
	if err != nil {
		return st, err
	}

	next := st.Clone()
	next.Hubs = append(next.Hubs[:idx], next.Hubs[idx+1:]...)
	return withDerived(next), nil
}

// ApplyImport appends one point per candidate, pairing each with its resolved
// province and allocating labels batch-locally. It returns the new state and
// the appended points with coverage derived.
func ApplyImport(st model.State, cands []ingest.Candidate, provinces []string, category model.Category) (model.State, []model.Point) {
	next := st.Clone()
	alloc := label.NewAllocator()

	for i, c := range cands {
		var province string
		if i < len(provinces) {
			province = provinces[i]
		}

		pt := model.Point{
			ID: uuid.NewString(),
			Label: alloc.Next(label.Input{
				ExplicitName: c.Name,
				Province:     province,
				Lat:          c.Lat,
				Lng:          c.Lng,
			}),
			Lat:       c.Lat,
			Lng:       c.Lng,
			Category:  category,
			CreatedAt: time.Now().UTC(),
		}
		if c.Name == "" {
			pt.Province = province
		}
		next.Points = append(next.Points, pt)
	}

	next = withDerived(next)
	added := make([]model.Point, len(cands))
	copy(added, next.Points[len(next.Points)-len(cands):])
	return next, added
}

// ApplyProvinces fills in provinces for the points at the given indices and
// relabels them in one allocator pass. Customized points and empty provinces
// are skipped. Returns the new state and how many points were updated.
func ApplyProvinces(st model.State, indices []int, provinces []string) (model.State, int) {
	next := st.Clone()
	alloc := label.NewAllocator()

	updated := 0
	for i, idx := range indices {
		if idx < 0 || idx >= len(next.Points) || i >= len(provinces) || provinces[i] == "" {
			continue
		}
		pt := &next.Points[idx]
		if pt.Customized {
			continue
		}
		pt.Province = provinces[i]
		pt.Label = alloc.Next(label.Input{Province: provinces[i], Lat: pt.Lat, Lng: pt.Lng})
		updated++
	}

	return withDerived(next), updated
}

// RenamePoint changes a point's label and marks it customized so later
// relabeling passes leave it alone.
func RenamePoint(st model.State, ref, newName string) (model.State, model.Point, error) {
	name := strings.TrimSpace(newName)
	if name == "" {
		return st, model.Point{}, eris.Wrap(ErrEmptyName, "rename point")
	}

	idx, err := indexByRef(st.Points, ref, pointID, pointLabel)
	if err != nil {
		return st, model.Point{}, err
	}

	next := st.Clone()
	next.Points[idx].Label = name
	next.Points[idx].Customized = true
	return withDerived(next), next.Points[idx], nil
}

// RemovePoint deletes a point.
func RemovePoint(st model.State, ref string) (model.State, error) {
	idx, err := indexByRef(st.Points, ref, pointID, pointLabel)
	if err != nil {
		return st, err
	}

	next := st.Clone()
	next.Points = append(next.Points[:idx], next.Points[idx+1:]...)
	return withDerived(next), nil
}

// Recompute re-derives every point's coverage fields against the current hubs.
func Recompute(st model.State) model.State {
	return withDerived(st.Clone())
}

func withDerived(st model.State) model.State {
	st.Points = geo.EvaluateAll(st.Points, st.Hubs)
	return st
}

func hubID(h model.Hub) string        { return h.ID }
func hubLabel(h model.Hub) string     { return h.Label }
func pointID(p model.Point) string    { return p.ID }
func pointLabel(p model.Point) string { return p.Label }

// indexByRef resolves a user-supplied reference to a slice index: ID prefix
// matches take precedence, then exact labels. Zero or multiple matches fail.
func indexByRef[T any](items []T, ref string, id, lbl func(T) string) (int, error) {
	if ref == "" {
		return -1, eris.Wrap(ErrNotFound, "empty reference")
	}

	var matches []int
	for i, it := range items {
		if strings.HasPrefix(id(it), ref) {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		for i, it := range items {
			if lbl(it) == ref {
				matches = append(matches, i)
			}
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return -1, eris.Wrapf(ErrNotFound, "%q", ref)
	default:
		return -1, eris.Wrapf(ErrAmbiguous, "%q matches %d items", ref, len(matches))
	}
}
