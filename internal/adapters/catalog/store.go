// Package catalog loads the medal catalog and serves immutable snapshots of it.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/medals/internal/domain/model"
	"gopkg.in/yaml.v3"
)

// versionNamespace scopes catalog version UUIDs.
var versionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("medals/catalog"))

// Catalog is an immutable snapshot of the medal set.
type Catalog struct {
	// Version is derived from the catalog content: equal content, equal version.
	Version  string
	Source   string
	LoadedAt time.Time
	Medals   []model.Medal
}

// Len returns the number of medals.
func (c *Catalog) Len() int { return len(c.Medals) }

// Store provides access to the current catalog snapshot.
type Store interface {
	// Snapshot returns the current catalog. It never returns nil after a
	// successful load; callers must not mutate it.
	Snapshot(ctx context.Context) (*Catalog, error)

	// Reload re-reads the underlying source and swaps the snapshot.
	// On error the previous snapshot stays in place.
	Reload(ctx context.Context) (*Catalog, error)
}

// document is the on-disk catalog shape.
type document struct {
	Medals []model.Medal `yaml:"medals"`
}

// Parse decodes a YAML or JSON catalog. Both a `medals:` document and a bare
// list of medals are accepted. Ids must be unique and id and type non-empty;
// prerequisite references are not resolved here.
func Parse(data []byte) ([]model.Medal, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	var medals []model.Medal
	if len(root.Content) > 0 && root.Content[0].Kind == yaml.SequenceNode {
		if err := root.Content[0].Decode(&medals); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
		}
	} else if len(root.Content) > 0 {
		var doc document
		if err := root.Content[0].Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
		}
		medals = doc.Medals
	}

	if err := Validate(medals); err != nil {
		return nil, err
	}
	return medals, nil
}

// Validate checks the structural invariants of a medal set.
func Validate(medals []model.Medal) error {
	seen := make(map[string]struct{}, len(medals))
	for i, m := range medals {
		if strings.TrimSpace(m.ID) == "" {
			return fmt.Errorf("%w: medal #%d has no id", ErrInvalidCatalog, i)
		}
		if strings.TrimSpace(m.Category) == "" {
			return fmt.Errorf("%w: medal %q has no type", ErrInvalidCatalog, m.ID)
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("%w: duplicate medal id %q", ErrInvalidCatalog, m.ID)
		}
		seen[m.ID] = struct{}{}
	}
	return nil
}

// Version derives a stable identifier from the medal content. The YAML
// encoding keeps non-finite waits and years distinct.
func Version(medals []model.Medal) string {
	data, err := yaml.Marshal(medals)
	if err != nil {
		return uuid.Nil.String()
	}
	return uuid.NewSHA1(versionNamespace, data).String()
}

// New builds a catalog snapshot from medals.
func New(source string, medals []model.Medal) *Catalog {
	return &Catalog{
		Version:  Version(medals),
		Source:   source,
		LoadedAt: time.Now(),
		Medals:   medals,
	}
}

// StaticStore serves a fixed catalog.
type StaticStore struct {
	catalog *Catalog
}

// NewStaticStore validates medals and wraps them in a Store.
func NewStaticStore(medals []model.Medal) (*StaticStore, error) {
	if err := Validate(medals); err != nil {
		return nil, err
	}
	return &StaticStore{catalog: New("static", medals)}, nil
}

// Snapshot returns the fixed catalog.
func (s *StaticStore) Snapshot(_ context.Context) (*Catalog, error) {
	return s.catalog, nil
}

// Reload is a no-op for a static catalog.
func (s *StaticStore) Reload(_ context.Context) (*Catalog, error) {
	return s.catalog, nil
}
