package service

import (
	"errors"
	"fmt"

	"github.com/okian/medals/internal/adapters/catalog"
)

var (
	// ErrNotStarted is returned when the service is used before Start.
	// It matches catalog.ErrNoCatalog since nothing has been loaded yet.
	ErrNotStarted = fmt.Errorf("service not started: %w", catalog.ErrNoCatalog)
	// ErrNoPreset is returned when neither the requested nor the default preset exists.
	ErrNoPreset = errors.New("no layout preset available")
)
