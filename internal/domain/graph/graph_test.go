package graph_test

import (
	"testing"

	"github.com/okian/medals/internal/domain/graph"
	"github.com/okian/medals/internal/domain/model"
	"github.com/okian/medals/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func ref(id string, wait ...float64) model.Prerequisite {
	p := model.Prerequisite{Kind: model.PrereqMedal, MedalID: id}
	if len(wait) > 0 {
		p.WaitYears = model.Years(wait[0])
	}
	return p
}

func TestBuild(t *testing.T) {
	Convey("Given a medal list with prerequisites", t, func() {
		medals := []model.Medal{
			{ID: "a", Category: "x"},
			{ID: "b", Category: "x", Prerequisites: []model.Prerequisite{ref("a", 2)}},
			{ID: "c", Category: "y", Prerequisites: []model.Prerequisite{ref("a"), ref("b", -3)}},
		}

		Convey("When building the graph", func() {
			g := graph.Build(medals)

			Convey("Then every medal should be present in all maps", func() {
				for _, id := range []string{"a", "b", "c"} {
					_, in := g.Incoming[id]
					_, out := g.Outgoing[id]
					_, deg := g.InDegree[id]
					So(in, ShouldBeTrue)
					So(out, ShouldBeTrue)
					So(deg, ShouldBeTrue)
				}
				So(g.Order, ShouldResemble, []string{"a", "b", "c"})
				So(g.Len(), ShouldEqual, 3)
			})

			Convey("And edges should carry their waits", func() {
				So(g.Incoming["b"], ShouldResemble, []graph.InEdge{{From: "a", Wait: 2}})
				So(g.Incoming["c"], ShouldResemble, []graph.InEdge{{From: "a", Wait: 0}, {From: "b", Wait: 0}})
				So(g.Wait("a", "b"), ShouldEqual, 2)
				So(g.Wait("b", "c"), ShouldEqual, 0)
			})

			Convey("And degrees and outgoing lists should match", func() {
				So(g.InDegree["a"], ShouldEqual, 0)
				So(g.InDegree["b"], ShouldEqual, 1)
				So(g.InDegree["c"], ShouldEqual, 2)
				So(g.Outgoing["a"], ShouldResemble, []string{"b", "c"})
				So(g.Outgoing["c"], ShouldBeEmpty)
				So(g.EdgeCount(), ShouldEqual, 3)
			})

			Convey("And the max incoming wait should be reported", func() {
				So(g.MaxIncomingWait("a"), ShouldEqual, 0)
				So(g.MaxIncomingWait("b"), ShouldEqual, 2)
			})
		})
	})

	Convey("Given a prerequisite referencing a missing medal", t, func() {
		medals := []model.Medal{
			{ID: "a", Category: "x", Prerequisites: []model.Prerequisite{ref("ghost", 1)}},
		}

		Convey("When building the graph", func() {
			var g *graph.Graph
			So(func() { g = graph.Build(medals) }, ShouldNotPanic)

			Convey("Then no edge should be created", func() {
				So(g.InDegree["a"], ShouldEqual, 0)
				So(g.Incoming["a"], ShouldBeEmpty)
				So(g.EdgeCount(), ShouldEqual, 0)
			})

			Convey("And the reference should be reported as dangling", func() {
				So(g.Dangling, ShouldResemble, []types.DanglingRef{{MedalID: "a", MissingID: "ghost"}})
			})
		})
	})

	Convey("Given non-medal prerequisites and duplicate ids", t, func() {
		medals := []model.Medal{
			{ID: "a", Category: "x"},
			{ID: "b", Category: "x", Prerequisites: []model.Prerequisite{{Kind: "age", MedalID: "a"}}},
			{ID: "a", Category: "y"},
		}

		Convey("When building the graph", func() {
			g := graph.Build(medals)

			Convey("Then only medal references should become edges", func() {
				So(g.InDegree["b"], ShouldEqual, 0)
			})

			Convey("And the first occurrence of a duplicate should win", func() {
				So(g.Order, ShouldResemble, []string{"a", "b"})
				So(g.Duplicates, ShouldResemble, []string{"a"})
			})
		})
	})

	Convey("Given a prerequisite listed twice", t, func() {
		medals := []model.Medal{
			{ID: "a", Category: "x"},
			{ID: "b", Category: "x", Prerequisites: []model.Prerequisite{ref("a", 1), ref("a", 3)}},
		}

		Convey("When building the graph", func() {
			g := graph.Build(medals)

			Convey("Then the references should collapse into one edge with the largest wait", func() {
				So(g.Incoming["b"], ShouldResemble, []graph.InEdge{{From: "a", Wait: 3}})
				So(g.Outgoing["a"], ShouldResemble, []string{"b"})
				So(g.InDegree["b"], ShouldEqual, 1)
				So(g.EdgeCount(), ShouldEqual, 1)
				So(g.Wait("a", "b"), ShouldEqual, 3)
			})
		})
	})

	Convey("Given an empty medal list", t, func() {
		g := graph.Build(nil)

		Convey("Then the graph should be empty", func() {
			So(g.Len(), ShouldEqual, 0)
			So(g.Dangling, ShouldBeEmpty)
		})
	})
}
