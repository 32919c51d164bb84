package layout

import (
	"fmt"
	"strings"
	"sync"

	"github.com/okian/medals/internal/domain/model"
	"github.com/okian/medals/internal/domain/types"
)

// Built-in preset identifiers.
const (
	PresetTimeline        = "timeline"
	PresetTimelineCompact = "timeline-compact"
)

// Preset is a named, registered layout algorithm.
type Preset struct {
	ID             string
	Label          string
	Description    string
	Generator      Generator
	DefaultOptions Options
}

// PresetInfo is the public description of a preset.
type PresetInfo struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Info returns the public description of p.
func (p *Preset) Info() PresetInfo {
	return PresetInfo{ID: p.ID, Label: p.Label, Description: p.Description}
}

// Generate runs the preset's generator with opts completed from the preset
// defaults.
func (p *Preset) Generate(medals []model.Medal, opts Options) types.Result {
	return p.Generator.Generate(medals, p.Resolve(opts))
}

// Resolve fills unspecified options from the preset defaults.
func (p *Preset) Resolve(opts Options) Options {
	return opts.WithDefaults(p.DefaultOptions)
}

// Registry maintains known layout presets. Presets are registered during
// startup and never change afterwards.
type Registry struct {
	mu        sync.RWMutex
	presets   map[string]*Preset
	order     []string
	defaultID string
}

// NewRegistry returns an empty registry whose fallback preset is defaultID.
func NewRegistry(defaultID string) *Registry {
	return &Registry{presets: map[string]*Preset{}, defaultID: defaultID}
}

// Register installs a preset. It fails when the id is blank, the generator is
// missing, or the id is already taken. The stored preset is a copy; missing
// default options are filled from DefaultOptions.
func (r *Registry) Register(p Preset) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidPreset)
	}
	if !invokable(p.Generator) {
		return fmt.Errorf("%w: generator is required for %s", ErrInvalidPreset, p.ID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.presets[p.ID]; exists {
		return fmt.Errorf("%w: %s already registered", ErrDuplicatePreset, p.ID)
	}
	p.DefaultOptions = p.DefaultOptions.WithDefaults(DefaultOptions())
	if p.Label == "" {
		p.Label = p.ID
	}
	r.presets[p.ID] = &p
	r.order = append(r.order, p.ID)
	return nil
}

// invokable reports whether g can be called, including the typed nil
// function case a plain nil check misses.
func invokable(g Generator) bool {
	switch fn := g.(type) {
	case nil:
		return false
	case GeneratorFunc:
		return fn != nil
	default:
		return true
	}
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(p Preset) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// Get returns the preset for id, else the default preset, else nil.
func (r *Registry) Get(id string) *Preset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.presets[id]; ok {
		return p
	}
	return r.presets[r.defaultID]
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.presets[id]
	return ok
}

// DefaultID returns the fallback preset id.
func (r *Registry) DefaultID() string { return r.defaultID }

// List returns all presets in registration order.
func (r *Registry) List() []PresetInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]PresetInfo, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.presets[id].Info())
	}
	return out
}

// NewDefaultRegistry returns a registry holding the built-in presets, with
// the timeline preset as fallback.
func NewDefaultRegistry() *Registry {
	r, err := NewBuiltinRegistry(PresetTimeline)
	if err != nil {
		panic(err)
	}
	return r
}

// NewBuiltinRegistry returns a registry holding the built-in presets with
// defaultID as fallback. defaultID must name one of them.
func NewBuiltinRegistry(defaultID string) (*Registry, error) {
	r := NewRegistry(defaultID)
	r.MustRegister(Preset{
		ID:             PresetTimeline,
		Label:          "Timeline",
		Description:    "Medals placed by earliest attainable year, one lane per type.",
		Generator:      Timeline{},
		DefaultOptions: DefaultOptions(),
	})
	r.MustRegister(Preset{
		ID:          PresetTimelineCompact,
		Label:       "Compact timeline",
		Description: "Timeline layout with tighter year spacing and lanes.",
		Generator:   Timeline{},
		DefaultOptions: Options{
			YearWidth:  60,
			LaneHeight: 140,
			RowHeight:  36,
			Radius:     12,
		},
	})
	if !r.Has(defaultID) {
		return nil, fmt.Errorf("%w: unknown default preset %q", ErrInvalidPreset, defaultID)
	}
	return r, nil
}
