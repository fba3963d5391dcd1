package theory

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dock108/theoryline/internal/models"
)

// ErrTheoryNotFound is returned when instantiating a theory name that was
// never registered.
var ErrTheoryNotFound = errors.New("theory not registered")

// Factory constructs a micro-model instance from free-form parameters.
type Factory func(params map[string]any) (MicroModel, error)

// Entry is one registered theory with its versioning and A/B metadata.
type Entry struct {
	Name        string   `json:"name"`
	Factory     Factory  `json:"-"`
	Version     string   `json:"version"`
	Enabled     bool     `json:"enabled"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Registry is the process-wide name → theory index. It is safe for
// concurrent use; registration is last-writer-wins.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry returns an empty, ready-to-use Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds an entry under its name, replacing any previous entry with
// the same name.
func (r *Registry) Register(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.Name] = e
}

// Get returns the entry for a name.
func (r *Registry) Get(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

// List returns entries sorted by name, optionally filtered to enabled ones.
func (r *Registry) List(enabledOnly bool) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if enabledOnly && !e.Enabled {
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// SetEnabled toggles an entry. Unknown names are a no-op.
func (r *Registry) SetEnabled(name string, enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[name]
	if !ok {
		return
	}
	e.Enabled = enabled
	r.entries[name] = e
}

// Instantiate constructs a micro-model from a registered factory. The
// registry does not validate that a variant fits a given sport or league;
// that binding is the caller's responsibility.
func (r *Registry) Instantiate(name string, params map[string]any) (MicroModel, error) {
	e, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("theory %q: %w", name, ErrTheoryNotFound)
	}
	return e.Factory(params)
}

// Bootstrap registers the built-in variants. Called once at process start;
// re-running overwrites the same names.
func Bootstrap(r *Registry) {
	r.Register(Entry{
		Name:        "closing_moneyline",
		Version:     "1.2.0",
		Enabled:     true,
		Tags:        []string{"core", "moneyline"},
		Description: "Closing moneyline value on a fixed side.",
		Factory: func(params map[string]any) (MicroModel, error) {
			return NewMoneylineModel(strParam(params, "side", "home"))
		},
	})
	r.Register(Entry{
		Name:        "closing_spread",
		Version:     "1.1.0",
		Enabled:     true,
		Tags:        []string{"core", "spread"},
		Description: "Closing spread cover value on a fixed side.",
		Factory: func(params map[string]any) (MicroModel, error) {
			return NewSpreadModel(strParam(params, "side", "home"))
		},
	})
	r.Register(Entry{
		Name:        "closing_total",
		Version:     "1.1.0",
		Enabled:     true,
		Tags:        []string{"core", "total"},
		Description: "Closing total value in a fixed direction.",
		Factory: func(params map[string]any) (MicroModel, error) {
			return NewTotalModel(strParam(params, "direction", "over"))
		},
	})
	r.Register(Entry{
		Name:        "underdog_value",
		Version:     "0.9.0",
		Enabled:     false,
		Tags:        []string{"experimental", "moneyline"},
		Description: "Price-gated underdog angle for A/B comparison.",
		Factory: func(params map[string]any) (MicroModel, error) {
			return NewUnderdogModel(
				strParam(params, "side", "away"),
				floatParam(params, "min_price", DefaultUnderdogMinPrice),
			)
		},
	})
}

func strParam(params map[string]any, key, fallback string) string {
	if s := models.Str(params, key); s != nil {
		return *s
	}
	return fallback
}

func floatParam(params map[string]any, key string, fallback float64) float64 {
	if f := models.Float(params, key); f != nil {
		return *f
	}
	return fallback
}
