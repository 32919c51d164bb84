// Package catalog loads the medal catalog and serves immutable snapshots of it.
package catalog

import "github.com/okian/medals/pkg/logger"

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithLogger sets the logger used to report reloads.
func WithLogger(l logger.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.logger = l
		}
	}
}
