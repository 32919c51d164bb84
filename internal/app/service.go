// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/medals/internal/adapters/cache"
	"github.com/okian/medals/internal/adapters/catalog"
	"github.com/okian/medals/internal/domain/layout"
	"github.com/okian/medals/internal/domain/types"
	"github.com/okian/medals/pkg/logger"
	"github.com/okian/medals/pkg/metrics"
)

// Service serves medal timeline layouts computed from a catalog.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    catalog.Store
	registry *layout.Registry
	cache    cache.Cache

	// Configuration
	catalogPath  string
	watchCatalog bool
	cacheSize    int
	overrides    layout.Options

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCatalogPath sets the catalog file loaded on Start.
func WithCatalogPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.catalogPath = path
		}
	}
}

// WithCatalogWatch reloads a file-backed catalog whenever the file changes.
func WithCatalogWatch(enabled bool) Option {
	return func(s *Service) {
		s.watchCatalog = enabled
	}
}

// WithCatalogStore replaces the file-backed catalog with store.
func WithCatalogStore(store catalog.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithCacheSize sets how many computed layouts are kept. Zero disables caching.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.cacheSize = size
		}
	}
}

// WithRegistry sets the layout preset registry.
func WithRegistry(r *layout.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithDefaultOptions sets operator geometry that applies before preset defaults.
func WithDefaultOptions(opts layout.Options) Option {
	return func(s *Service) {
		s.overrides = opts
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		catalogPath: "medals.yaml",
		cacheSize:   64,
		logger:      nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.registry == nil {
		s.registry = layout.NewDefaultRegistry()
	}
	return s
}

// Start loads the catalog and prepares the layout cache.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = catalog.NewFileStore(s.catalogPath, catalog.WithLogger(s.logger.Named("catalog")))
	}

	s.logger.Info(ctx, "starting medal layout service...")

	cat, err := s.store.Reload(ctx)
	if err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	s.cache = cache.NewInMemoryCache(cache.WithMaxSize(s.cacheSize))

	if fs, ok := s.store.(*catalog.FileStore); ok && s.watchCatalog {
		c := s.cache
		if err := fs.Watch(ctx, func(*catalog.Catalog) {
			c.Purge(ctx)
			metrics.UpdateCacheSize(0)
		}); err != nil {
			return fmt.Errorf("start service: %w", err)
		}
	}

	s.started = true
	s.logger.Info(ctx, "medal layout service started",
		logger.String("catalogVersion", cat.Version),
		logger.Int("medals", cat.Len()),
		logger.Int("cacheSize", s.cacheSize),
		logger.String("defaultPreset", s.registry.DefaultID()),
	)
	return nil
}

// Stop releases the cache. A stopped service may be started again.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping medal layout service...")
	if s.cache != nil {
		s.cache.Purge(context.Background())
		metrics.UpdateCacheSize(0)
	}
	s.started = false
	s.logger.Info(context.Background(), "medal layout service stopped")
}

// Reload re-reads the catalog and drops cached layouts. On failure the
// previous catalog stays in service.
func (s *Service) Reload(ctx context.Context) (*catalog.Catalog, error) {
	s.mu.RLock()
	started, store, c := s.started, s.store, s.cache
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}

	cat, err := store.Reload(ctx)
	if err != nil {
		s.logger.Error(ctx, "catalog reload failed", logger.Error(err))
		return nil, err
	}
	c.Purge(ctx)
	metrics.UpdateCacheSize(0)
	return cat, nil
}

// Layout computes the layout of the current catalog with the named preset.
// Unknown preset ids fall back to the default preset. Unspecified options
// come first from the configured overrides, then from the preset.
func (s *Service) Layout(ctx context.Context, presetID string, opts layout.Options) (types.Layout, error) {
	s.mu.RLock()
	started, store, c, registry, overrides := s.started, s.store, s.cache, s.registry, s.overrides
	s.mu.RUnlock()
	if !started {
		return types.Layout{}, ErrNotStarted
	}

	preset := registry.Get(presetID)
	if preset == nil {
		return types.Layout{}, fmt.Errorf("%w: %q", ErrNoPreset, presetID)
	}
	cat, err := store.Snapshot(ctx)
	if err != nil {
		return types.Layout{}, err
	}

	resolved := preset.Resolve(opts.WithDefaults(overrides))
	key := cache.Key{CatalogVersion: cat.Version, Preset: preset.ID, Options: resolved}
	out := types.Layout{Preset: preset.ID, CatalogVersion: cat.Version}

	if res, ok := c.Get(ctx, key); ok {
		metrics.RecordCacheHit()
		out.Result = res
		return out, nil
	}
	metrics.RecordCacheMiss()

	start := time.Now()
	res := preset.Generate(cat.Medals, resolved)
	elapsed := time.Since(start)

	metrics.RecordLayout(preset.ID, float64(elapsed.Microseconds())/1000.0,
		len(res.Nodes), len(res.Meta.Unscheduled), len(res.Meta.Dangling))
	if n := len(res.Meta.Unscheduled); n > 0 {
		s.logger.Warn(ctx, "medals omitted from layout",
			logger.String("preset", preset.ID),
			logger.Strings("unscheduled", res.Meta.Unscheduled),
		)
	}
	s.logger.Debug(ctx, "layout computed",
		logger.String("preset", preset.ID),
		logger.Int("nodes", len(res.Nodes)),
		logger.Int("connections", len(res.Connections)),
		logger.Duration("elapsed", elapsed),
	)

	c.Put(ctx, key, res)
	metrics.UpdateCacheSize(c.Size())
	out.Result = res
	return out, nil
}

// Presets lists the registered layout presets.
func (s *Service) Presets() []layout.PresetInfo {
	s.mu.RLock()
	registry := s.registry
	s.mu.RUnlock()
	return registry.List()
}

// Medals returns the current catalog.
func (s *Service) Medals(ctx context.Context) (*catalog.Catalog, error) {
	s.mu.RLock()
	started, store := s.started, s.store
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}
	return store.Snapshot(ctx)
}

// Diagnostics reports cycles, dangling references and duplicate ids in the
// current catalog.
func (s *Service) Diagnostics(ctx context.Context) (types.Diagnostics, error) {
	cat, err := s.Medals(ctx)
	if err != nil {
		return types.Diagnostics{}, err
	}
	d := layout.Diagnose(cat.Medals)
	d.CatalogVersion = cat.Version
	return d, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"catalogPath":  s.catalogPath,
		"watchCatalog": s.watchCatalog,
		"cacheSize":    s.cacheSize,
	}

	stats["presets"] = len(s.registry.List())
	stats["defaultPreset"] = s.registry.DefaultID()

	if s.started {
		cached := s.cache.Size()
		stats["cachedLayouts"] = cached
		metrics.UpdateCacheSize(cached)

		if cat, err := s.store.Snapshot(context.Background()); err == nil {
			stats["catalogVersion"] = cat.Version
			stats["medals"] = cat.Len()
			stats["loadedAt"] = cat.LoadedAt
		}
	}

	return stats
}
