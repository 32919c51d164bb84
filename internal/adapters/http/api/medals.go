package api

import (
	"context"
	"net/http"
	"time"

	"github.com/okian/medals/internal/adapters/catalog"
	"github.com/okian/medals/internal/domain/model"
)

// MedalsDependencies defines the interface for catalog reads.
type MedalsDependencies interface {
	Medals(ctx context.Context) (*catalog.Catalog, error)
}

// MedalsHandler handles catalog requests.
type MedalsHandler struct {
	deps MedalsDependencies
}

// NewMedalsHandler creates a new medals handler.
func NewMedalsHandler(deps MedalsDependencies) *MedalsHandler {
	return &MedalsHandler{deps: deps}
}

type catalogResponse struct {
	Version  string        `json:"version"`
	Source   string        `json:"source"`
	LoadedAt time.Time     `json:"loadedAt"`
	Count    int           `json:"count"`
	Medals   []model.Medal `json:"medals,omitempty"`
}

func newCatalogResponse(cat *catalog.Catalog, withMedals bool) catalogResponse {
	resp := catalogResponse{
		Version:  cat.Version,
		Source:   cat.Source,
		LoadedAt: cat.LoadedAt,
		Count:    cat.Len(),
	}
	if withMedals {
		resp.Medals = cat.Medals
		if resp.Medals == nil {
			resp.Medals = []model.Medal{}
		}
	}
	return resp
}

// HandleListMedals handles GET /medals requests. The optional type query
// parameter keeps only medals of that type.
func (h *MedalsHandler) HandleListMedals(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	cat, err := h.deps.Medals(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	resp := newCatalogResponse(cat, true)
	if category := r.URL.Query().Get("type"); category != "" {
		filtered := make([]model.Medal, 0, len(resp.Medals))
		for _, m := range resp.Medals {
			if m.Category == category {
				filtered = append(filtered, m)
			}
		}
		resp.Medals = filtered
	}
	writeJSON(w, http.StatusOK, resp)
}
