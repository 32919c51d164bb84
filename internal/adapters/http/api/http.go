// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/medals/internal/adapters/catalog"
	"github.com/okian/medals/internal/domain/layout"
	"github.com/okian/medals/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Layout computes the layout of the current catalog with a preset.
	Layout(ctx context.Context, presetID string, opts layout.Options) (types.Layout, error)
	// Presets lists registered layout presets.
	Presets() []layout.PresetInfo
	// Medals returns the current catalog snapshot.
	Medals(ctx context.Context) (*catalog.Catalog, error)
	// Diagnostics reports what the layout drops or omits.
	Diagnostics(ctx context.Context) (types.Diagnostics, error)
	// Reload re-reads the catalog source.
	Reload(ctx context.Context) (*catalog.Catalog, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	presetsHandler     *PresetsHandler
	medalsHandler      *MedalsHandler
	layoutHandler      *LayoutHandler
	diagnosticsHandler *DiagnosticsHandler
	reloadHandler      *ReloadHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		presetsHandler:     NewPresetsHandler(deps),
		medalsHandler:      NewMedalsHandler(deps),
		layoutHandler:      NewLayoutHandler(deps),
		diagnosticsHandler: NewDiagnosticsHandler(deps),
		reloadHandler:      NewReloadHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/presets", MetricsMiddleware(s.presetsHandler.HandleListPresets, "presets"))
	mux.HandleFunc("/medals", MetricsMiddleware(s.medalsHandler.HandleListMedals, "medals"))
	mux.HandleFunc("/layout", MetricsMiddleware(s.layoutHandler.HandleGetLayout, "layout"))
	mux.HandleFunc("/diagnostics", MetricsMiddleware(s.diagnosticsHandler.HandleDiagnostics, "diagnostics"))
	mux.HandleFunc("/reload", MetricsMiddleware(s.reloadHandler.HandleReload, "reload"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeUpstreamError translates service errors into HTTP responses.
func writeUpstreamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNoCatalog):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	case errors.Is(err, catalog.ErrLoadCatalog):
		writeError(w, http.StatusUnprocessableEntity, "invalid_catalog", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// allowMethod writes 405 and reports false unless r uses method.
func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
	return false
}
