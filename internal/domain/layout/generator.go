// Package layout turns a medal catalog into positioned nodes and connections
// and keeps the catalog of available layout presets.
package layout

import (
	"github.com/okian/medals/internal/domain/graph"
	"github.com/okian/medals/internal/domain/model"
	"github.com/okian/medals/internal/domain/schedule"
	"github.com/okian/medals/internal/domain/types"
)

// Generator computes a layout. Implementations must be pure: the same medals
// and options always produce the same result.
type Generator interface {
	Generate(medals []model.Medal, opts Options) types.Result
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(medals []model.Medal, opts Options) types.Result

// Generate calls f.
func (f GeneratorFunc) Generate(medals []model.Medal, opts Options) types.Result {
	return f(medals, opts)
}

// Timeline lays medals out on a time axis: x is the earliest attainable
// finish, y is the category lane.
type Timeline struct{}

// Generate implements Generator.
func (Timeline) Generate(medals []model.Medal, opts Options) types.Result {
	g := graph.Build(medals)

	durations := make(map[string]float64, len(medals))
	for _, m := range medals {
		if _, seen := durations[m.ID]; !seen {
			durations[m.ID] = m.Duration()
		}
	}
	sched := schedule.Compute(g, func(id string) float64 { return durations[id] })

	return AssignLanes(medals, g, sched, opts)
}
