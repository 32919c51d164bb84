package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	app "github.com/okian/medals/internal/app"
	"github.com/okian/medals/internal/cli"
	"github.com/okian/medals/internal/config"
	"github.com/okian/medals/internal/domain/layout"
	"github.com/okian/medals/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	// Logs go to stderr so command output stays machine-readable.
	if err := logger.Init(logger.WithWriter(os.Stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		return err
	}
	// Only warnings unless configured otherwise; the service logs every
	// catalog load at info.
	level := cfg.LogLevel
	if level == config.New().LogLevel {
		level = "warn"
	}
	if err := logger.SetLevelString(level); err != nil {
		_ = logger.SetLevelString("warn")
	}

	registry, err := layout.NewBuiltinRegistry(cfg.DefaultPreset)
	if err != nil {
		return err
	}

	root := cli.NewRootCmd(&cli.App{
		NewService: func(path string) cli.Service {
			return app.New(
				app.WithLogger(logger.Get()),
				app.WithCatalogPath(path),
				app.WithCacheSize(0),
				app.WithRegistry(registry),
				app.WithDefaultOptions(cfg.LayoutOverrides()),
			)
		},
		CatalogPath: cfg.CatalogPath,
		Terminal:    isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	})
	return root.ExecuteContext(ctx)
}
