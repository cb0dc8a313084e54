package state

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pergazuz/thai-map/internal/ingest"
	"github.com/pergazuz/thai-map/internal/label"
	"github.com/pergazuz/thai-map/internal/metrics"
	"github.com/pergazuz/thai-map/internal/model"
	"github.com/pergazuz/thai-map/internal/store"
	"github.com/pergazuz/thai-map/pkg/revgeo"
)

// Resolver is the slice of the revgeo client the service needs.
type Resolver interface {
	ResolveBatch(ctx context.Context, coords []revgeo.Coord) revgeo.Resolution
}

// ImportReport summarizes one import batch.
type ImportReport struct {
	Added    int           `json:"added"`
	Skipped  int           `json:"skipped"`
	Fallback bool          `json:"fallback"`
	Source   string        `json:"source,omitempty"`
	Points   []model.Point `json:"points,omitempty"`
}

// Service runs state transitions against the store and enriches imports with
// province resolution.
type Service struct {
	store    store.Store
	resolver Resolver
}

// Option configures a Service.
type Option func(*Service)

// WithResolver sets the province resolver used by import and resolve flows.
func WithResolver(r Resolver) Option {
	return func(s *Service) { s.resolver = r }
}

// NewService creates a Service on top of the given store.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{store: st}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the persisted collections.
func (s *Service) State(ctx context.Context) (model.State, error) {
	return s.store.LoadState(ctx)
}

// AddHub creates a hub and persists the recomputed state.
func (s *Service) AddHub(ctx context.Context, lat, lng float64, name string) (model.Hub, error) {
	var hub model.Hub
	err := s.mutate(ctx, func(st model.State) (model.State, error) {
		next, h := AddHub(st, lat, lng, name)
		hub = h
		return next, nil
	})
	if err != nil {
		return model.Hub{}, err
	}
	zap.L().Info("hub added",
		zap.String("id", hub.ID),
		zap.String("label", hub.Label),
		zap.Float64("lat", hub.Lat),
		zap.Float64("lng", hub.Lng),
	)
	return hub, nil
}

// RenameHub renames the hub matching ref.
func (s *Service) RenameHub(ctx context.Context, ref, name string) (model.Hub, error) {
	var hub model.Hub
	err := s.mutate(ctx, func(st model.State) (model.State, error) {
		next, h, err := RenameHub(st, ref, name)
		if err != nil {
			return st, err
		}
		hub = h
		return next, nil
	})
	return hub, err
}

// RemoveHub deletes the hub matching ref.
func (s *Service) RemoveHub(ctx context.Context, ref string) error {
	return s.mutate(ctx, func(st model.State) (model.State, error) {
		return RemoveHub(st, ref)
	})
}

// RenamePoint renames the point matching ref and marks it customized.
func (s *Service) RenamePoint(ctx context.Context, ref, name string) (model.Point, error) {
	var pt model.Point
	err := s.mutate(ctx, func(st model.State) (model.State, error) {
		next, p, err := RenamePoint(st, ref, name)
		if err != nil {
			return st, err
		}
		pt = p
		return next, nil
	})
	return pt, err
}

// RemovePoint deletes the point matching ref.
func (s *Service) RemovePoint(ctx context.Context, ref string) error {
	return s.mutate(ctx, func(st model.State) (model.State, error) {
		return RemovePoint(st, ref)
	})
}

// ImportText parses a free-text block and imports the candidates it yields.
func (s *Service) ImportText(ctx context.Context, text string, category model.Category, resolve bool) (*ImportReport, error) {
	cands, skipped := ingest.ParseText(text)
	return s.importCandidates(ctx, cands, skipped, category, resolve)
}

// ImportCandidates imports pre-parsed candidates (e.g. from a shapefile).
func (s *Service) ImportCandidates(ctx context.Context, cands []ingest.Candidate, category model.Category, resolve bool) (*ImportReport, error) {
	return s.importCandidates(ctx, cands, 0, category, resolve)
}

func (s *Service) importCandidates(ctx context.Context, cands []ingest.Candidate, skipped int, category model.Category, resolve bool) (*ImportReport, error) {
	metrics.ImportsTotal.Inc()
	metrics.ImportLinesSkippedTotal.Add(float64(skipped))

	if len(cands) == 0 {
		zap.L().Info("import: nothing to add", zap.Int("skipped", skipped))
		return &ImportReport{Skipped: skipped}, nil
	}

	provinces, source, fallback := s.resolveCandidates(ctx, cands, resolve)

	var added []model.Point
	err := s.mutate(ctx, func(st model.State) (model.State, error) {
		next, pts := ApplyImport(st, cands, provinces, category)
		added = pts
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PointsImportedTotal.Add(float64(len(added)))
	zap.L().Info("import complete",
		zap.Int("added", len(added)),
		zap.Int("skipped", skipped),
		zap.String("category", string(category)),
		zap.String("resolve_source", source),
		zap.Bool("fallback", fallback),
	)

	return &ImportReport{
		Added:    len(added),
		Skipped:  skipped,
		Fallback: fallback,
		Source:   source,
		Points:   added,
	}, nil
}

// resolveCandidates resolves provinces for the candidates that arrived without
// an explicit name. Named candidates keep an empty slot since their label
// never depends on a province.
func (s *Service) resolveCandidates(ctx context.Context, cands []ingest.Candidate, resolve bool) ([]string, string, bool) {
	provinces := make([]string, len(cands))
	if !resolve || s.resolver == nil {
		return provinces, "", false
	}

	var coords []revgeo.Coord
	var unnamed []int
	for i, c := range cands {
		if c.Name != "" {
			continue
		}
		coords = append(coords, revgeo.Coord{Lat: c.Lat, Lng: c.Lng})
		unnamed = append(unnamed, i)
	}
	if len(coords) == 0 {
		return provinces, "", false
	}

	res := s.resolveBatch(ctx, coords)
	for i, j := range unnamed {
		if p := res.Provinces[i]; p != revgeo.Unknown {
			provinces[j] = p
		}
	}
	return provinces, res.Source, res.Fallback
}

// Resolve re-runs province resolution for points that are still carrying the
// coordinate fallback label. Returns how many points gained a province.
func (s *Service) Resolve(ctx context.Context) (int, error) {
	if s.resolver == nil {
		return 0, eris.New("state: no resolver configured")
	}

	st, err := s.store.LoadState(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "state: load")
	}

	var indices []int
	var coords []revgeo.Coord
	for i, pt := range st.Points {
		if pt.Customized || pt.Province != "" {
			continue
		}
		if pt.Label != label.Fallback(pt.Lat, pt.Lng) {
			// Carries an explicit name, nothing to resolve.
			continue
		}
		indices = append(indices, i)
		coords = append(coords, revgeo.Coord{Lat: pt.Lat, Lng: pt.Lng})
	}
	if len(indices) == 0 {
		return 0, nil
	}

	res := s.resolveBatch(ctx, coords)
	provinces := make([]string, len(indices))
	for i := range indices {
		if p := res.Provinces[i]; p != revgeo.Unknown {
			provinces[i] = p
		}
	}

	next, updated := ApplyProvinces(st, indices, provinces)
	if updated == 0 {
		return 0, nil
	}
	if err := s.store.SaveState(ctx, next); err != nil {
		return 0, eris.Wrap(err, "state: save")
	}

	zap.L().Info("resolve pass complete",
		zap.Int("candidates", len(indices)),
		zap.Int("updated", updated),
		zap.String("source", res.Source),
	)
	return updated, nil
}

func (s *Service) resolveBatch(ctx context.Context, coords []revgeo.Coord) revgeo.Resolution {
	start := time.Now()
	res := s.resolver.ResolveBatch(ctx, coords)
	metrics.ResolveDurationSeconds.Observe(time.Since(start).Seconds())
	metrics.ResolveRequestsTotal.WithLabelValues(res.Source).Inc()
	if res.Fallback {
		metrics.ResolveFallbackTotal.Inc()
	}
	return res
}

// mutate loads the state, applies fn, and persists the result when fn
// succeeds.
func (s *Service) mutate(ctx context.Context, fn func(model.State) (model.State, error)) error {
	st, err := s.store.LoadState(ctx)
	if err != nil {
		return eris.Wrap(err, "state: load")
	}

	next, err := fn(st)
	if err != nil {
		return err
	}

	if err := s.store.SaveState(ctx, next); err != nil {
		return eris.Wrap(err, "state: save")
	}
	return nil
}
