package api

import (
	"net/http"

	"github.com/okian/medals/internal/domain/layout"
)

// PresetsDependencies defines the interface for preset listing.
type PresetsDependencies interface {
	Presets() []layout.PresetInfo
}

// PresetsHandler handles preset listing requests.
type PresetsHandler struct {
	deps PresetsDependencies
}

// NewPresetsHandler creates a new presets handler.
func NewPresetsHandler(deps PresetsDependencies) *PresetsHandler {
	return &PresetsHandler{deps: deps}
}

// HandleListPresets handles GET /presets requests.
func (h *PresetsHandler) HandleListPresets(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	presets := h.deps.Presets()
	if presets == nil {
		presets = []layout.PresetInfo{}
	}
	writeJSON(w, http.StatusOK, presets)
}
