// Package features assembles flat feature mappings from raw event records.
// Builders are layered by data-availability tier and composed with per-layer
// fault isolation: one broken tier never poisons the composite mapping.
package features

import (
	"fmt"

	"github.com/dock108/theoryline/internal/models"
)

// Map is a flat mapping of named features. Values are numeric (float64) or
// categorical (string/bool); absent features are simply not present.
type Map = map[string]any

// Mode selects which extraction method a builder runs.
type Mode string

const (
	ModeMinimal Mode = "minimal"
	ModeFull    Mode = "full"
)

// ParseMode validates a mode string. Anything outside {minimal, full} is a
// configuration error.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeMinimal, ModeFull:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("features: invalid mode %q (want %q or %q)", s, ModeMinimal, ModeFull)
	}
}

// Builder extracts a feature mapping from an event record. The builder's mode
// is fixed at construction; Build dispatches to the matching extraction.
type Builder interface {
	RequiredFields() []string
	BuildMinimal(ev models.Event) (Map, error)
	BuildFull(ev models.Event) (Map, error)
	Build(ev models.Event) (Map, error)
}

// merge copies src into dst, dropping absent values so a lower-priority layer
// can never overwrite a present value with an absent one.
func merge(dst, src Map) {
	for k, v := range src {
		if v == nil {
			continue
		}
		dst[k] = v
	}
}

// putFloat copies a numeric sub-map value into the feature map when present.
func putFloat(feats Map, m map[string]any, key string) {
	if v := models.Float(m, key); v != nil {
		feats[key] = *v
	}
}

// putStr copies a string sub-map value into the feature map when present.
func putStr(feats Map, m map[string]any, key string) {
	if v := models.Str(m, key); v != nil {
		feats[key] = *v
	}
}

// putBool copies a boolean sub-map value into the feature map when present.
func putBool(feats Map, m map[string]any, key string) {
	if v := models.Bool(m, key); v != nil {
		feats[key] = *v
	}
}
