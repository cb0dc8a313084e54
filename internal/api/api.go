// Package api serves the planner state over HTTP: hub and point mutations,
// text imports, and the report exports, mirroring what the map frontend
// needs. Server lifecycle stays with the serve command; this package only
// builds the handler.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pergazuz/thai-map/internal/metrics"
	"github.com/pergazuz/thai-map/internal/model"
	"github.com/pergazuz/thai-map/internal/report"
	"github.com/pergazuz/thai-map/internal/state"
)

// Service is the slice of the state service the API serves.
type Service interface {
	State(ctx context.Context) (model.State, error)
	AddHub(ctx context.Context, lat, lng float64, name string) (model.Hub, error)
	RenameHub(ctx context.Context, ref, name string) (model.Hub, error)
	RemoveHub(ctx context.Context, ref string) error
	ImportText(ctx context.Context, text string, category model.Category, resolve bool) (*state.ImportReport, error)
	RenamePoint(ctx context.Context, ref, name string) (model.Point, error)
	RemovePoint(ctx context.Context, ref string) error
}

// Server holds the handler dependencies.
type Server struct {
	svc         Service
	corsOrigins []string
}

// Option configures the Server.
type Option func(*Server)

// WithCORSOrigins allows the given origins to call the API cross-origin.
// Without it no CORS headers are emitted.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) { s.corsOrigins = origins }
}

// New builds the HTTP handler.
func New(svc Service, opts ...Option) http.Handler {
	s := &Server{svc: svc}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(instrument)
	r.Use(middleware.Recoverer)
	if len(s.corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/hubs", s.handleAddHub)
		r.Patch("/hubs/{id}", s.handleRenameHub)
		r.Delete("/hubs/{id}", s.handleRemoveHub)
		r.Post("/points/import", s.handleImport)
		r.Patch("/points/{id}", s.handleRenamePoint)
		r.Delete("/points/{id}", s.handleRemovePoint)
		r.Route("/export", func(r chi.Router) {
			r.Get("/points.csv", s.handleExportPoints)
			r.Get("/zones.csv", s.handleExportZones)
			r.Get("/coverage.geojson", s.handleExportGeoJSON)
		})
	})

	return r
}

// instrument records the request counter and a debug log line per request.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		zap.L().Debug("api: request",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.State(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if st.Hubs == nil {
		st.Hubs = []model.Hub{}
	}
	if st.Points == nil {
		st.Points = []model.Point{}
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleAddHub(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Lat  *float64 `json:"lat"`
		Lng  *float64 `json:"lng"`
		Name string   `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Lat == nil || req.Lng == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lat and lng are required"})
		return
	}

	hub, err := s.svc.AddHub(r.Context(), *req.Lat, *req.Lng, req.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, hub)
}

func (s *Server) handleRenameHub(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	hub, err := s.svc.RenameHub(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hub)
}

func (s *Server) handleRemoveHub(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RemoveHub(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text     string `json:"text"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	category := model.CategoryRequest
	if req.Category != "" {
		var err error
		category, err = model.ParseCategory(req.Category)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}

	rep, err := s.svc.ImportText(r.Context(), req.Text, category, true)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleRenamePoint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	pt, err := s.svc.RenamePoint(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pt)
}

func (s *Server) handleRemovePoint(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RemovePoint(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportPoints(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.State(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="points.csv"`)
	if err := report.WriteDetailCSV(w, st); err != nil {
		zap.L().Error("api: write points csv", zap.Error(err))
	}
}

func (s *Server) handleExportZones(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.State(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="zones.csv"`)
	if err := report.WriteSummaryCSV(w, st); err != nil {
		zap.L().Error("api: write zones csv", zap.Error(err))
	}
}

func (s *Server) handleExportGeoJSON(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.State(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set("Content-Disposition", `attachment; filename="coverage.geojson"`)
	if err := report.WriteGeoJSON(w, st); err != nil {
		zap.L().Error("api: write geojson", zap.Error(err))
	}
}

// writeError maps state errors to status codes and renders the JSON error
// body. Unexpected errors are logged and come back as 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case eris.Is(err, state.ErrNotFound):
		status = http.StatusNotFound
	case eris.Is(err, state.ErrAmbiguous):
		status = http.StatusConflict
	case eris.Is(err, state.ErrEmptyName):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		zap.L().Error("api: request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("api: encode response", zap.Error(err))
	}
}
