// Package schedule computes earliest attainable finish times over a
// prerequisite graph (critical path propagation).
package schedule

import (
	"sort"

	"github.com/okian/medals/internal/domain/graph"
)

// DurationFunc returns how long a medal takes once started.
type DurationFunc func(id string) float64

// Result holds the outcome of one scheduling pass.
type Result struct {
	// Finish maps each scheduled medal to its earliest finish time.
	Finish map[string]float64
	// Start maps each scheduled medal to its earliest start time.
	Start map[string]float64
	// Order is the topological order in which medals were finalized.
	Order []string
	// Unscheduled lists, sorted, the medals whose pending in-degree never
	// reached zero: cycle members and everything downstream of one.
	Unscheduled []string
}

// Scheduled reports whether id received an earliest finish.
func (r *Result) Scheduled(id string) bool {
	_, ok := r.Finish[id]
	return ok
}

// Compute runs Kahn's algorithm over g, accumulating for every medal the
// latest of its prerequisites' finish + wait as its start, and finishing it
// duration(id) later.
//
// The queue is FIFO and seeded in g.Order, so identical input yields
// identical Order and Finish.
func Compute(g *graph.Graph, duration DurationFunc) Result {
	if duration == nil {
		duration = func(string) float64 { return 0 }
	}

	n := g.Len()
	res := Result{
		Finish: make(map[string]float64, n),
		Start:  make(map[string]float64, n),
		Order:  make([]string, 0, n),
	}

	pending := make(map[string]int, n)
	queue := make([]string, 0, n)
	for _, id := range g.Order {
		d := g.InDegree[id]
		pending[id] = d
		if d == 0 {
			res.Start[id] = 0
			res.Finish[id] = duration(id)
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		res.Order = append(res.Order, cur)
		finish := res.Finish[cur]

		for _, next := range g.Outgoing[cur] {
			candidate := finish + g.Wait(cur, next)
			if s, ok := res.Start[next]; !ok || candidate > s {
				res.Start[next] = candidate
			}
			pending[next]--
			if pending[next] == 0 {
				res.Finish[next] = res.Start[next] + duration(next)
				queue = append(queue, next)
			}
		}
	}

	if len(res.Order) < n {
		for _, id := range g.Order {
			if _, ok := res.Finish[id]; !ok {
				res.Unscheduled = append(res.Unscheduled, id)
				// Partial starts from scheduled predecessors are not meaningful.
				delete(res.Start, id)
			}
		}
		sort.Strings(res.Unscheduled)
	}

	return res
}
