// Package graph builds prerequisite adjacency structures from a medal list.
package graph

import (
	"github.com/okian/medals/internal/domain/model"
	"github.com/okian/medals/internal/domain/types"
)

// InEdge is an incoming prerequisite edge.
type InEdge struct {
	From string
	Wait float64
}

// Graph holds the prerequisite adjacency for one medal set.
//
// Every medal id in Order has an entry in Incoming, Outgoing and InDegree,
// even when it has no edges.
type Graph struct {
	Order    []string // unique ids in input order
	Incoming map[string][]InEdge
	Outgoing map[string][]string
	InDegree map[string]int

	// Dangling lists prerequisite references to ids absent from the input.
	// They contribute no edge.
	Dangling []types.DanglingRef

	// Duplicates lists ids seen more than once; the first occurrence wins.
	Duplicates []string

	edges map[edgeKey]int // index into Incoming[to]
}

type edgeKey struct {
	from string
	to   string
}

// Build converts medals into a Graph. Prerequisites referencing unknown ids
// are skipped so the graph can be built over filtered subsets of a catalog.
func Build(medals []model.Medal) *Graph {
	g := &Graph{
		Order:    make([]string, 0, len(medals)),
		Incoming: make(map[string][]InEdge, len(medals)),
		Outgoing: make(map[string][]string, len(medals)),
		InDegree: make(map[string]int, len(medals)),
		edges:    make(map[edgeKey]int),
	}

	known := make(map[string]int, len(medals))
	for i, m := range medals {
		if _, dup := known[m.ID]; dup {
			g.Duplicates = append(g.Duplicates, m.ID)
			continue
		}
		known[m.ID] = i
		g.Order = append(g.Order, m.ID)
		g.Incoming[m.ID] = []InEdge{}
		g.Outgoing[m.ID] = []string{}
		g.InDegree[m.ID] = 0
	}

	for _, id := range g.Order {
		m := medals[known[id]]
		for _, p := range m.Prerequisites {
			if !p.IsMedalRef() {
				continue
			}
			if _, ok := known[p.MedalID]; !ok {
				g.Dangling = append(g.Dangling, types.DanglingRef{MedalID: m.ID, MissingID: p.MedalID})
				continue
			}
			// Repeated references to the same prerequisite form one edge
			// carrying the largest wait.
			w := p.Wait()
			k := edgeKey{from: p.MedalID, to: m.ID}
			if i, dup := g.edges[k]; dup {
				if w > g.Incoming[m.ID][i].Wait {
					g.Incoming[m.ID][i].Wait = w
				}
				continue
			}
			g.edges[k] = len(g.Incoming[m.ID])
			g.Incoming[m.ID] = append(g.Incoming[m.ID], InEdge{From: p.MedalID, Wait: w})
			g.Outgoing[p.MedalID] = append(g.Outgoing[p.MedalID], m.ID)
			g.InDegree[m.ID]++
		}
	}

	return g
}

// Wait returns the wait carried by the edge from -> to.
func (g *Graph) Wait(from, to string) float64 {
	i, ok := g.edges[edgeKey{from: from, to: to}]
	if !ok {
		return 0
	}
	return g.Incoming[to][i].Wait
}

// Len returns the number of unique medals in the graph.
func (g *Graph) Len() int { return len(g.Order) }

// EdgeCount returns the number of resolved prerequisite edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, d := range g.InDegree {
		n += d
	}
	return n
}

// MaxIncomingWait returns the largest wait among id's incoming edges, or 0.
func (g *Graph) MaxIncomingWait(id string) float64 {
	var w float64
	for _, e := range g.Incoming[id] {
		if e.Wait > w {
			w = e.Wait
		}
	}
	return w
}
