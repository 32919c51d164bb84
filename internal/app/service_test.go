package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/medals/internal/adapters/catalog"
	service "github.com/okian/medals/internal/app"
	"github.com/okian/medals/internal/domain/layout"
	"github.com/okian/medals/internal/domain/model"
	"github.com/okian/medals/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func sampleMedals() []model.Medal {
	return []model.Medal{
		{
			ID: "bronze", Category: "service", DisplayLabel: "Bronze",
			Requirements: []model.Requirement{{Kind: model.RequirementSustained, YearsRequired: 3}},
		},
		{
			ID: "silver", Category: "service", DisplayLabel: "Silver",
			Prerequisites: []model.Prerequisite{{Kind: model.PrereqMedal, MedalID: "bronze", WaitYears: model.Years(2)}},
		},
		{ID: "merit", Category: "merit"},
		{
			ID: "loop-a", Category: "merit",
			Prerequisites: []model.Prerequisite{{Kind: model.PrereqMedal, MedalID: "loop-b"}},
		},
		{
			ID: "loop-b", Category: "merit",
			Prerequisites: []model.Prerequisite{
				{Kind: model.PrereqMedal, MedalID: "loop-a"},
				{Kind: model.PrereqMedal, MedalID: "ghost"},
			},
		},
	}
}

func startedService(opts ...service.Option) *service.Service {
	store, err := catalog.NewStaticStore(sampleMedals())
	So(err, ShouldBeNil)
	svc := service.New(append([]service.Option{service.WithCatalogStore(store)}, opts...)...)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["catalogPath"], ShouldEqual, "medals.yaml")
			So(stats["cacheSize"], ShouldEqual, 64)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithCatalogPath("other.yaml"),
			service.WithCacheSize(0),
			service.WithRegistry(layout.NewDefaultRegistry()),
			service.WithLogger(logger.Get()),
		)

		Convey("Then the options should be applied", func() {
			stats := svc.GetStats()
			So(stats["catalogPath"], ShouldEqual, "other.yaml")
			So(stats["cacheSize"], ShouldEqual, 0)
			So(stats["presets"], ShouldEqual, 2)
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service that has not been started", t, func() {
		svc := service.New()

		Convey("Then catalog operations should fail", func() {
			_, err := svc.Layout(ctx, "", layout.Options{})
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			_, err = svc.Medals(ctx)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			_, err = svc.Reload(ctx)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})

		Convey("And stopping should be a no-op", func() {
			So(func() { svc.Stop() }, ShouldNotPanic)
		})
	})

	Convey("Given a catalog file that does not exist", t, func() {
		svc := service.New(service.WithCatalogPath(filepath.Join(t.TempDir(), "missing.yaml")))

		Convey("Then Start should fail with a load error", func() {
			err := svc.Start(ctx)
			So(errors.Is(err, catalog.ErrLoadCatalog), ShouldBeTrue)
			So(svc.GetStats()["started"], ShouldEqual, false)
		})
	})

	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()

		Convey("Then it should report catalog stats", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["medals"], ShouldEqual, 5)
			So(stats["catalogVersion"], ShouldNotBeEmpty)
		})

		Convey("And starting again should be a no-op", func() {
			So(svc.Start(ctx), ShouldBeNil)
		})

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_Layout(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()

		Convey("When requesting the default layout", func() {
			out, err := svc.Layout(ctx, "", layout.Options{})
			So(err, ShouldBeNil)

			Convey("Then it should place every schedulable medal", func() {
				So(out.Preset, ShouldEqual, layout.PresetTimeline)
				So(out.CatalogVersion, ShouldNotBeEmpty)
				So(len(out.Nodes), ShouldEqual, 3)

				silver, ok := out.Node("silver")
				So(ok, ShouldBeTrue)
				So(silver.EarliestFinish, ShouldEqual, 5)
				So(silver.Position.X, ShouldEqual, 5*layout.DefaultYearWidth)
			})

			Convey("And it should report the cycle and the dangling reference", func() {
				So(out.Meta.Unscheduled, ShouldResemble, []string{"loop-a", "loop-b"})
				So(len(out.Meta.Dangling), ShouldEqual, 1)
				So(out.Meta.Dangling[0].MissingID, ShouldEqual, "ghost")
			})

			Convey("And a repeated request should be served from the cache", func() {
				again, err := svc.Layout(ctx, layout.PresetTimeline, layout.Options{})
				So(err, ShouldBeNil)
				So(again, ShouldResemble, out)
				So(svc.GetStats()["cachedLayouts"], ShouldEqual, int64(1))
			})
		})

		Convey("When requesting an unknown preset", func() {
			out, err := svc.Layout(ctx, "nonexistent", layout.Options{})

			Convey("Then the default preset should be used", func() {
				So(err, ShouldBeNil)
				So(out.Preset, ShouldEqual, layout.PresetTimeline)
			})
		})

		Convey("When requesting the compact preset with a custom radius", func() {
			out, err := svc.Layout(ctx, layout.PresetTimelineCompact, layout.Options{Radius: 5})

			Convey("Then preset defaults should fill the rest", func() {
				So(err, ShouldBeNil)
				So(out.Meta.Radius, ShouldEqual, 5)
				So(out.Meta.YearWidth, ShouldEqual, 60)
				So(out.Meta.LaneHeight, ShouldEqual, 140)
			})
		})
	})

	Convey("Given a service with operator overrides", t, func() {
		svc := startedService(service.WithDefaultOptions(layout.Options{YearWidth: 10}))
		defer svc.Stop()

		Convey("Then overrides should apply before preset defaults", func() {
			out, err := svc.Layout(ctx, layout.PresetTimelineCompact, layout.Options{})
			So(err, ShouldBeNil)
			So(out.Meta.YearWidth, ShouldEqual, 10)
			So(out.Meta.LaneHeight, ShouldEqual, 140)
		})

		Convey("And request options should win over overrides", func() {
			out, err := svc.Layout(ctx, "", layout.Options{YearWidth: 30})
			So(err, ShouldBeNil)
			So(out.Meta.YearWidth, ShouldEqual, 30)
		})
	})

	Convey("Given a service whose registry is empty", t, func() {
		svc := startedService(service.WithRegistry(layout.NewRegistry("none")))
		defer svc.Stop()

		Convey("Then layouts should fail with no preset", func() {
			_, err := svc.Layout(ctx, "", layout.Options{})
			So(errors.Is(err, service.ErrNoPreset), ShouldBeTrue)
		})
	})
}

func TestService_DiagnosticsAndPresets(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()

		Convey("Then diagnostics should summarize the catalog", func() {
			d, err := svc.Diagnostics(ctx)
			So(err, ShouldBeNil)
			So(d.Medals, ShouldEqual, 5)
			So(d.Scheduled, ShouldEqual, 3)
			So(d.Unscheduled, ShouldResemble, []string{"loop-a", "loop-b"})
			So(d.Horizon, ShouldEqual, 5)
			So(d.Healthy(), ShouldBeFalse)
		})

		Convey("And presets should be listed in registration order", func() {
			presets := svc.Presets()
			So(len(presets), ShouldEqual, 2)
			So(presets[0].ID, ShouldEqual, layout.PresetTimeline)
		})

		Convey("And medals should expose the catalog", func() {
			cat, err := svc.Medals(ctx)
			So(err, ShouldBeNil)
			So(cat.Len(), ShouldEqual, 5)
		})
	})
}

func TestService_Reload(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service backed by a catalog file", t, func() {
		path := filepath.Join(t.TempDir(), "medals.yaml")
		So(os.WriteFile(path, []byte("medals:\n  - {id: a, type: x}\n"), 0o600), ShouldBeNil)

		svc := service.New(service.WithCatalogPath(path))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		first, err := svc.Layout(ctx, "", layout.Options{})
		So(err, ShouldBeNil)
		So(len(first.Nodes), ShouldEqual, 1)

		Convey("When the file changes and the catalog is reloaded", func() {
			So(os.WriteFile(path, []byte("medals:\n  - {id: a, type: x}\n  - {id: b, type: y}\n"), 0o600), ShouldBeNil)
			cat, err := svc.Reload(ctx)

			Convey("Then new layouts should reflect the new catalog", func() {
				So(err, ShouldBeNil)
				So(cat.Len(), ShouldEqual, 2)
				So(svc.GetStats()["cachedLayouts"], ShouldEqual, int64(0))

				next, err := svc.Layout(ctx, "", layout.Options{})
				So(err, ShouldBeNil)
				So(len(next.Nodes), ShouldEqual, 2)
				So(next.CatalogVersion, ShouldNotEqual, first.CatalogVersion)
			})
		})

		Convey("When the file breaks", func() {
			So(os.WriteFile(path, []byte("medals: [\n"), 0o600), ShouldBeNil)
			_, err := svc.Reload(ctx)

			Convey("Then the previous catalog should stay in service", func() {
				So(errors.Is(err, catalog.ErrLoadCatalog), ShouldBeTrue)
				again, err := svc.Layout(ctx, "", layout.Options{})
				So(err, ShouldBeNil)
				So(again.CatalogVersion, ShouldEqual, first.CatalogVersion)
			})
		})
	})
}
