package layout_test

import (
	"testing"

	"github.com/okian/medals/internal/domain/layout"
	"github.com/okian/medals/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDiagnose(t *testing.T) {
	Convey("Given medals with a cycle, a dangling reference and a duplicate id", t, func() {
		medals := append(verifyFixture(),
			model.Medal{ID: "d", Category: "merit", Prerequisites: []model.Prerequisite{{Kind: model.PrereqMedal, MedalID: "ghost"}}},
			model.Medal{ID: "a", Category: "other"},
		)

		d := layout.Diagnose(medals)

		Convey("Then the counts should describe the graph", func() {
			So(d.Medals, ShouldEqual, 6)
			So(d.Edges, ShouldEqual, 4)
			So(d.Scheduled, ShouldEqual, 4)
			So(d.Horizon, ShouldEqual, 4)
		})

		Convey("And the problems should be listed", func() {
			So(d.Unscheduled, ShouldResemble, []string{"x", "y"})
			So(len(d.Dangling), ShouldEqual, 1)
			So(d.Dangling[0].MedalID, ShouldEqual, "d")
			So(d.Dangling[0].MissingID, ShouldEqual, "ghost")
			So(d.Duplicates, ShouldResemble, []string{"a"})
			So(d.Healthy(), ShouldBeFalse)
		})
	})

	Convey("Given an acyclic catalog", t, func() {
		d := layout.Diagnose(verifyFixture()[:3])

		Convey("Then it should be healthy", func() {
			So(d.Healthy(), ShouldBeTrue)
			So(d.Unscheduled, ShouldBeEmpty)
		})
	})

	Convey("Given a medal listing the same prerequisite twice", t, func() {
		medals := []model.Medal{
			{ID: "a", Category: "x"},
			{ID: "b", Category: "x", Prerequisites: []model.Prerequisite{
				{Kind: model.PrereqMedal, MedalID: "a", WaitYears: model.Years(1)},
				{Kind: model.PrereqMedal, MedalID: "a", WaitYears: model.Years(3)},
			}},
		}

		d := layout.Diagnose(medals)
		res := layout.Timeline{}.Generate(medals, layout.DefaultOptions())

		Convey("Then the edge count should match the connections", func() {
			So(d.Edges, ShouldEqual, 1)
			So(len(res.Connections), ShouldEqual, 1)
			So(res.Connections[0].WaitYears, ShouldEqual, 3)
			So(d.Horizon, ShouldEqual, 3)
		})
	})
}
