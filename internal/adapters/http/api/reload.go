package api

import (
	"context"
	"net/http"

	"github.com/okian/medals/internal/adapters/catalog"
)

// ReloadDependencies defines the interface for catalog reloads.
type ReloadDependencies interface {
	Reload(ctx context.Context) (*catalog.Catalog, error)
}

// ReloadHandler handles catalog reload requests.
type ReloadHandler struct {
	deps ReloadDependencies
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(deps ReloadDependencies) *ReloadHandler {
	return &ReloadHandler{deps: deps}
}

// HandleReload handles POST /reload requests.
func (h *ReloadHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	cat, err := h.deps.Reload(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCatalogResponse(cat, false))
}
