package layout

import (
	"sort"

	"github.com/okian/medals/internal/domain/graph"
	"github.com/okian/medals/internal/domain/model"
	"github.com/okian/medals/internal/domain/schedule"
	"github.com/okian/medals/internal/domain/types"
)

// bucket groups the medals of one lane that share an earliest finish.
type bucket struct {
	finish float64
	ids    []string
}

// AssignLanes turns scheduled finish times into positions.
//
// Lanes are the distinct categories of the scheduled medals in lexicographic
// order. Inside a lane, medals sharing a finish time are stacked one row
// apart in id order. Only scheduled medals are placed; connections are
// emitted for edges whose two endpoints were placed.
func AssignLanes(medals []model.Medal, g *graph.Graph, sched schedule.Result, opts Options) types.Result {
	byID := make(map[string]model.Medal, len(medals))
	for _, m := range medals {
		if _, seen := byID[m.ID]; !seen {
			byID[m.ID] = m
		}
	}

	lanes := make(map[string]map[float64]*bucket)
	for _, id := range g.Order {
		finish, ok := sched.Finish[id]
		if !ok {
			continue
		}
		cat := byID[id].Category
		buckets, ok := lanes[cat]
		if !ok {
			buckets = make(map[float64]*bucket)
			lanes[cat] = buckets
		}
		b, ok := buckets[finish]
		if !ok {
			b = &bucket{finish: finish}
			buckets[finish] = b
		}
		b.ids = append(b.ids, id)
	}

	categories := make([]string, 0, len(lanes))
	for cat := range lanes {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	res := types.Result{
		Nodes:       make([]types.Node, 0, len(sched.Finish)),
		Connections: []types.Connection{},
		Meta: types.Meta{
			Lanes:       make([]types.Lane, 0, len(categories)),
			YearWidth:   opts.YearWidth,
			LaneHeight:  opts.LaneHeight,
			RowHeight:   opts.RowHeight,
			Radius:      opts.Radius,
			Unscheduled: append([]string{}, sched.Unscheduled...),
			Dangling:    append([]types.DanglingRef{}, g.Dangling...),
		},
	}

	for laneIndex, cat := range categories {
		origin := float64(laneIndex) * opts.LaneHeight
		res.Meta.Lanes = append(res.Meta.Lanes, types.Lane{Category: cat, Y: origin, Label: cat})

		ordered := make([]*bucket, 0, len(lanes[cat]))
		for _, b := range lanes[cat] {
			sort.Strings(b.ids)
			ordered = append(ordered, b)
		}
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].finish < ordered[j].finish })

		for _, b := range ordered {
			for slot, id := range b.ids {
				res.Nodes = append(res.Nodes, types.Node{
					MedalID:  id,
					Category: cat,
					Label:    byID[id].Label(),
					Position: types.Position{
						X: b.finish * opts.YearWidth,
						Y: origin + float64(slot)*opts.RowHeight,
					},
					Radius:          opts.Radius,
					EarliestFinish:  b.finish,
					MaxIncomingWait: g.MaxIncomingWait(id),
				})
			}
		}
	}

	res.Connections = connections(g, sched)
	return res
}

// connections lists placed edges in target input order, then prerequisite
// order.
func connections(g *graph.Graph, sched schedule.Result) []types.Connection {
	out := []types.Connection{}
	for _, to := range g.Order {
		if !sched.Scheduled(to) {
			continue
		}
		for _, e := range g.Incoming[to] {
			if !sched.Scheduled(e.From) {
				continue
			}
			out = append(out, types.Connection{From: e.From, To: to, WaitYears: e.Wait})
		}
	}
	return out
}
