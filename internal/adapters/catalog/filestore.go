package catalog

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/knadh/koanf/providers/file"
	"github.com/okian/medals/pkg/logger"
	"github.com/okian/medals/pkg/metrics"
)

// FileStore loads the catalog from a YAML or JSON file and keeps the latest
// good snapshot behind an atomic pointer, so readers never block on reloads.
type FileStore struct {
	path     string
	snapshot atomic.Pointer[Catalog]
	logger   logger.Logger
}

// NewFileStore creates a store for path. Nothing is read until Reload.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{path: path}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("catalog")
	}
	return s
}

// Snapshot returns the current catalog.
func (s *FileStore) Snapshot(_ context.Context) (*Catalog, error) {
	c := s.snapshot.Load()
	if c == nil {
		return nil, ErrNoCatalog
	}
	return c, nil
}

// Reload reads and validates the file, then swaps the snapshot.
func (s *FileStore) Reload(ctx context.Context) (*Catalog, error) {
	start := time.Now()

	data, err := file.Provider(s.path).ReadBytes()
	if err != nil {
		metrics.RecordErrorByComponent("catalog", "read")
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	medals, err := Parse(data)
	if err != nil {
		metrics.RecordErrorByComponent("catalog", "parse")
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadCatalog, s.path, err)
	}

	c := New(s.path, medals)
	prev := s.snapshot.Swap(c)

	durationMs := float64(time.Since(start).Microseconds()) / 1000
	metrics.RecordCatalogReload(durationMs)
	metrics.UpdateCatalogSize(c.Len())

	fields := []logger.Field{
		logger.String("path", s.path),
		logger.Int("medals", c.Len()),
		logger.String("version", c.Version),
		logger.Float64("duration_ms", durationMs),
	}
	if prev != nil {
		fields = append(fields, logger.Bool("changed", prev.Version != c.Version))
	}
	s.logger.Info(ctx, "catalog loaded", fields...)
	return c, nil
}

// Watch reloads the catalog each time the file changes, until ctx is done.
// onReload, if set, receives every successfully loaded catalog. A change that
// fails to load is logged and the previous snapshot stays in place.
func (s *FileStore) Watch(ctx context.Context, onReload func(*Catalog)) error {
	fp := file.Provider(s.path)
	err := fp.Watch(func(_ interface{}, err error) {
		if err != nil {
			metrics.RecordErrorByComponent("catalog", "watch")
			s.logger.Error(ctx, "catalog watch failed", logger.String("path", s.path), logger.Error(err))
			return
		}
		c, err := s.Reload(ctx)
		if err != nil {
			s.logger.Warn(ctx, "ignoring catalog change", logger.String("path", s.path), logger.Error(err))
			return
		}
		if onReload != nil {
			onReload(c)
		}
	})
	if err != nil {
		return fmt.Errorf("%w: watch %s: %w", ErrLoadCatalog, s.path, err)
	}

	go func() {
		<-ctx.Done()
		_ = fp.Unwatch()
	}()
	s.logger.Info(ctx, "watching catalog", logger.String("path", s.path))
	return nil
}
