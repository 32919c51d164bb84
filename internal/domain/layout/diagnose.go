package layout

import (
	"github.com/okian/medals/internal/domain/graph"
	"github.com/okian/medals/internal/domain/model"
	"github.com/okian/medals/internal/domain/schedule"
	"github.com/okian/medals/internal/domain/types"
)

// Diagnose schedules medals and reports what a layout would drop or omit.
func Diagnose(medals []model.Medal) types.Diagnostics {
	g := graph.Build(medals)
	durations := make(map[string]float64, len(medals))
	for _, m := range medals {
		if _, seen := durations[m.ID]; !seen {
			durations[m.ID] = m.Duration()
		}
	}
	sched := schedule.Compute(g, func(id string) float64 { return durations[id] })

	d := types.Diagnostics{
		Medals:      g.Len(),
		Edges:       g.EdgeCount(),
		Scheduled:   len(sched.Order),
		Unscheduled: append([]string{}, sched.Unscheduled...),
		Dangling:    append([]types.DanglingRef{}, g.Dangling...),
		Duplicates:  append([]string{}, g.Duplicates...),
	}
	for _, f := range sched.Finish {
		if f > d.Horizon {
			d.Horizon = f
		}
	}
	return d
}
