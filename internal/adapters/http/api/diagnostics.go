package api

import (
	"context"
	"net/http"

	"github.com/okian/medals/internal/domain/types"
)

// DiagnosticsDependencies defines the interface for catalog diagnostics.
type DiagnosticsDependencies interface {
	Diagnostics(ctx context.Context) (types.Diagnostics, error)
}

// DiagnosticsHandler handles diagnostics requests.
type DiagnosticsHandler struct {
	deps DiagnosticsDependencies
}

// NewDiagnosticsHandler creates a new diagnostics handler.
func NewDiagnosticsHandler(deps DiagnosticsDependencies) *DiagnosticsHandler {
	return &DiagnosticsHandler{deps: deps}
}

// HandleDiagnostics handles GET /diagnostics requests.
func (h *DiagnosticsHandler) HandleDiagnostics(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	d, err := h.deps.Diagnostics(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
