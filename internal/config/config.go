// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and MEDALS_* env vars.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"github.com/okian/medals/internal/domain/layout"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CatalogPath points at the YAML or JSON medal catalog.
	CatalogPath string `koanf:"catalog_path"`

	// WatchCatalog reloads the catalog whenever its file changes.
	WatchCatalog bool `koanf:"watch_catalog"`

	// DefaultPreset is used when a request names an unknown preset.
	DefaultPreset string `koanf:"default_preset"`

	// CacheSize bounds the number of memoized layouts; 0 disables caching.
	CacheSize int `koanf:"cache_size"`

	// YearWidth, LaneHeight, RowHeight and Radius override preset defaults
	// for every request that leaves them unspecified. Zero keeps the preset's.
	YearWidth  float64 `koanf:"year_width"`
	LaneHeight float64 `koanf:"lane_height"`
	RowHeight  float64 `koanf:"row_height"`
	Radius     float64 `koanf:"radius"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		Addr:          ":9080",
		CatalogPath:   "medals.yaml",
		DefaultPreset: layout.PresetTimeline,
		CacheSize:     64,
	}
}

// LayoutOverrides returns the configured geometry overrides.
func (c *Config) LayoutOverrides() layout.Options {
	return layout.Options{
		YearWidth:  c.YearWidth,
		LaneHeight: c.LaneHeight,
		RowHeight:  c.RowHeight,
		Radius:     c.Radius,
	}
}
