// Package cli implements the medalctl command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/okian/medals/internal/domain/layout"
	"github.com/okian/medals/internal/domain/types"
	"github.com/spf13/cobra"
)

var (
	// ErrUnhealthy is returned by check when medals cannot be scheduled.
	ErrUnhealthy = errors.New("catalog has unschedulable medals")
	// ErrVerifyFailed is returned by verify when a served layout is inconsistent.
	ErrVerifyFailed = errors.New("layout verification failed")

	errUsage = errors.New("invalid usage")
)

// Service is the part of the layout service the commands drive.
type Service interface {
	Start(ctx context.Context) error
	Stop()
	Layout(ctx context.Context, presetID string, opts layout.Options) (types.Layout, error)
	Presets() []layout.PresetInfo
	Diagnostics(ctx context.Context) (types.Diagnostics, error)
}

// App holds what commands need from the outside world.
type App struct {
	// NewService builds a service over the catalog at path.
	NewService func(path string) Service
	// CatalogPath is the default for --catalog.
	CatalogPath string
	// Terminal reports whether stdout is a terminal; it enables color in auto mode.
	Terminal bool
	// HTTPClient is used by verify; nil means a client with a 30s timeout.
	HTTPClient *http.Client
}

type globalFlags struct {
	catalog string
	output  string
	color   string
}

// NewRootCmd creates the top-level "medalctl" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "medalctl",
		Short:         "Lay out and check medal prerequisite catalogs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch flags.output {
			case formatTable, formatJSON, formatYAML:
			default:
				return fmt.Errorf("%w: --output must be table, json or yaml", errUsage)
			}
			switch flags.color {
			case "auto", "always", "never":
			default:
				return fmt.Errorf("%w: --color must be auto, always or never", errUsage)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flags.catalog, "catalog", app.CatalogPath, "Path to the medal catalog (YAML or JSON)")
	root.PersistentFlags().StringVarP(&flags.output, "output", "o", formatTable, "Output format: table, json or yaml")
	root.PersistentFlags().StringVar(&flags.color, "color", "auto", "Color output: auto, always or never")

	root.AddCommand(
		newLayoutCmd(app, flags),
		newPresetsCmd(app, flags),
		newCheckCmd(app, flags),
		newGenerateCmd(),
		newVerifyCmd(app, flags),
	)

	return root
}

func (a *App) printer(cmd *cobra.Command, flags *globalFlags) printer {
	color := flags.color == "always" || (flags.color == "auto" && a.Terminal)
	return printer{w: cmd.OutOrStdout(), color: color}
}

func (a *App) httpClient() *http.Client {
	if a.HTTPClient != nil {
		return a.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// withService starts a service over the selected catalog, runs fn and stops it.
func (a *App) withService(cmd *cobra.Command, flags *globalFlags, fn func(ctx context.Context, svc Service) error) error {
	if a.NewService == nil {
		return fmt.Errorf("%w: no service factory configured", errUsage)
	}
	if strings.TrimSpace(flags.catalog) == "" {
		return fmt.Errorf("%w: --catalog is required", errUsage)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc := a.NewService(flags.catalog)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()
	return fn(ctx, svc)
}
