package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/okian/medals/internal/domain/layout"
	"github.com/okian/medals/internal/domain/types"
)

// LayoutDependencies defines the interface for layout computation.
type LayoutDependencies interface {
	Layout(ctx context.Context, presetID string, opts layout.Options) (types.Layout, error)
}

// LayoutHandler handles layout requests.
type LayoutHandler struct {
	deps LayoutDependencies
}

// NewLayoutHandler creates a new layout handler.
func NewLayoutHandler(deps LayoutDependencies) *LayoutHandler {
	return &LayoutHandler{deps: deps}
}

// HandleGetLayout handles GET /layout?preset=&year_width=&lane_height=&row_height=&radius=
// requests. Omitted or non-positive geometry falls back to the preset
// defaults; an unknown preset falls back to the default preset.
func (h *LayoutHandler) HandleGetLayout(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	opts, err := parseOptions(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	out, err := h.deps.Layout(r.Context(), q.Get("preset"), opts)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func parseOptions(q url.Values) (layout.Options, error) {
	var opts layout.Options
	fields := []struct {
		name string
		dst  *float64
	}{
		{"year_width", &opts.YearWidth},
		{"lane_height", &opts.LaneHeight},
		{"row_height", &opts.RowHeight},
		{"radius", &opts.Radius},
	}
	for _, f := range fields {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return layout.Options{}, fmt.Errorf("%w: %s must be a number", ErrBadRequest, f.name)
		}
		*f.dst = v
	}
	return opts, nil
}
