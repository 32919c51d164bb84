package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/medals/internal/adapters/catalog"
	"github.com/okian/medals/internal/adapters/http/api"
	service "github.com/okian/medals/internal/app"
	"github.com/okian/medals/internal/domain/layout"
	"github.com/okian/medals/internal/domain/types"
	"github.com/okian/medals/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func init() {
	if err := logger.Init(logger.WithWriter(&bytes.Buffer{})); err != nil {
		panic(err)
	}
}

const healthyCatalog = `
medals:
  - id: bronze
    type: service
    name: Bronze
    requirements:
      - {type: sustained, yearsRequired: 3}
  - id: silver
    type: service
    name: Silver
    prerequisites:
      - {type: medal, medalId: bronze, minYearsAfter: 2}
  - id: merit
    type: merit
    name: Merit
    prerequisites:
      - {type: medal, medalId: ghost}
`

const cyclicCatalog = `
medals:
  - {id: a, type: x, prerequisites: [{type: medal, medalId: b}]}
  - {id: b, type: x, prerequisites: [{type: medal, medalId: a}]}
  - {id: c, type: y}
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "medals.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// testApp wires an App whose services read real catalog files.
func testApp(t *testing.T, catalogPath string) *App {
	t.Helper()
	return &App{
		NewService: func(path string) Service {
			return service.New(service.WithCatalogPath(path), service.WithCacheSize(0))
		},
		CatalogPath: catalogPath,
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestLayoutCmd_JSON(t *testing.T) {
	app := testApp(t, writeCatalog(t, healthyCatalog))

	out, err := executeCmd(t, app, "layout", "-o", "json", "--year-width", "10")
	require.NoError(t, err)

	var res types.Layout
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, layout.PresetTimeline, res.Preset)
	assert.Len(t, res.Nodes, 3)

	silver, ok := res.Node("silver")
	require.True(t, ok)
	assert.Equal(t, 5.0, silver.EarliestFinish)
	assert.Equal(t, 50.0, silver.Position.X)
	assert.Equal(t, 2.0, silver.MaxIncomingWait)
	require.Len(t, res.Meta.Dangling, 1)
	assert.Equal(t, "ghost", res.Meta.Dangling[0].MissingID)
}

func TestLayoutCmd_YAMLUsesJSONKeys(t *testing.T) {
	app := testApp(t, writeCatalog(t, healthyCatalog))

	out, err := executeCmd(t, app, "layout", "-o", "yaml", "--preset", layout.PresetTimelineCompact)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, layout.PresetTimelineCompact, doc["preset"])
	assert.Contains(t, doc, "nodes")
	assert.Contains(t, doc, "meta")
}

func TestLayoutCmd_Table(t *testing.T) {
	app := testApp(t, writeCatalog(t, cyclicCatalog))

	out, err := executeCmd(t, app, "layout", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "TIMELINE LAYOUT")
	assert.Contains(t, out, "c")
	assert.Contains(t, out, "1 medals, 0 connections, 1 lanes")
	assert.Contains(t, out, "omitted (prerequisite cycle): a, b")
	assert.NotContains(t, out, "\x1b[")
}

func TestLayoutCmd_MissingCatalog(t *testing.T) {
	app := testApp(t, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := executeCmd(t, app, "layout")
	assert.ErrorIs(t, err, catalog.ErrLoadCatalog)
}

func TestRootCmd_InvalidFlags(t *testing.T) {
	app := testApp(t, writeCatalog(t, healthyCatalog))

	_, err := executeCmd(t, app, "layout", "-o", "xml")
	assert.ErrorIs(t, err, errUsage)

	_, err = executeCmd(t, app, "layout", "--color", "sometimes")
	assert.ErrorIs(t, err, errUsage)

	_, err = executeCmd(t, app, "layout", "--catalog", " ")
	assert.ErrorIs(t, err, errUsage)
}

func TestPresetsCmd(t *testing.T) {
	app := testApp(t, "")

	out, err := executeCmd(t, app, "presets", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, layout.PresetTimeline)
	assert.Contains(t, out, layout.PresetTimelineCompact)

	out, err = executeCmd(t, app, "presets", "-o", "json")
	require.NoError(t, err)
	var presets []layout.PresetInfo
	require.NoError(t, json.Unmarshal([]byte(out), &presets))
	assert.Len(t, presets, 2)
}

func TestCheckCmd(t *testing.T) {
	t.Run("healthy catalog passes", func(t *testing.T) {
		app := testApp(t, writeCatalog(t, healthyCatalog))
		out, err := executeCmd(t, app, "check", "--color", "never")
		require.NoError(t, err)
		assert.Contains(t, out, "every medal can be scheduled")
		assert.Contains(t, out, "merit requires unknown medal ghost")
	})

	t.Run("strict mode fails on dangling references", func(t *testing.T) {
		app := testApp(t, writeCatalog(t, healthyCatalog))
		_, err := executeCmd(t, app, "check", "--strict")
		assert.ErrorIs(t, err, ErrUnhealthy)
	})

	t.Run("cycles fail", func(t *testing.T) {
		app := testApp(t, writeCatalog(t, cyclicCatalog))
		out, err := executeCmd(t, app, "check", "-o", "json")
		assert.ErrorIs(t, err, ErrUnhealthy)

		var d types.Diagnostics
		require.NoError(t, json.Unmarshal([]byte(out), &d))
		assert.Equal(t, []string{"a", "b"}, d.Unscheduled)
		assert.Equal(t, 1, d.Scheduled)
	})
}

func TestGenerateCmd(t *testing.T) {
	app := testApp(t, "")

	first, err := executeCmd(t, app, "generate", "--medals", "30", "--types", "3", "--seed", "7")
	require.NoError(t, err)
	second, err := executeCmd(t, app, "generate", "--medals", "30", "--types", "3", "--seed", "7")
	require.NoError(t, err)
	assert.Equal(t, first, second, "equal seeds must give equal catalogs")

	medals, err := catalog.Parse([]byte(first))
	require.NoError(t, err)
	assert.Len(t, medals, 30)

	d := layout.Diagnose(medals)
	assert.True(t, d.Healthy(), "generated catalogs are acyclic")
	assert.Empty(t, d.Dangling)

	_, err = executeCmd(t, app, "generate", "--medals", "0")
	assert.ErrorIs(t, err, errUsage)
}

func TestGenerateCmd_ToFile(t *testing.T) {
	app := testApp(t, "")
	path := filepath.Join(t.TempDir(), "generated.yaml")

	out, err := executeCmd(t, app, "generate", "--medals", "5", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 5 medals")

	out, err = executeCmd(t, testApp(t, path), "check", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "every medal can be scheduled")
}

func TestVerifyCmd(t *testing.T) {
	svc := service.New(service.WithCatalogPath(writeCatalog(t, healthyCatalog)))
	require.NoError(t, svc.Start(context.Background()))
	defer svc.Stop()

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	app := testApp(t, "")
	app.HTTPClient = srv.Client()

	out, err := executeCmd(t, app, "verify", "--url", srv.URL, "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, layout.PresetTimeline+": 3 medals, 1 connections")
	assert.Contains(t, out, layout.PresetTimelineCompact+": 3 medals")

	out, err = executeCmd(t, app, "verify", "--url", srv.URL, "--preset", layout.PresetTimeline, "--color", "never")
	require.NoError(t, err)
	assert.NotContains(t, out, layout.PresetTimelineCompact)
}

func TestVerifyCmd_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	app := testApp(t, "")
	app.HTTPClient = srv.Client()

	_, err := executeCmd(t, app, "verify", "--url", srv.URL)
	assert.Error(t, err)
}

func TestMatchDiagnostics(t *testing.T) {
	out := types.Layout{CatalogVersion: "v1", Result: types.Result{
		Nodes: []types.Node{{MedalID: "a"}},
		Meta:  types.Meta{Unscheduled: []string{"x"}},
	}}

	assert.NoError(t, matchDiagnostics(out, types.Diagnostics{CatalogVersion: "v1", Scheduled: 1, Unscheduled: []string{"x"}}))
	assert.NoError(t, matchDiagnostics(out, types.Diagnostics{CatalogVersion: "v2", Scheduled: 5}))
	assert.ErrorIs(t, matchDiagnostics(out, types.Diagnostics{CatalogVersion: "v1", Scheduled: 2}), layout.ErrInconsistentLayout)
}
