package features

import "github.com/dock108/theoryline/internal/models"

// CombinedBuilder runs an ordered list of child builders and merges their
// outputs left-to-right, later non-absent values winning per key. A child
// that fails is skipped entirely; its failure never aborts the composite.
type CombinedBuilder struct {
	children []Builder
	mode     Mode
}

// NewCombined builds a CombinedBuilder over children, rejecting invalid modes.
func NewCombined(mode string, children ...Builder) (*CombinedBuilder, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	return &CombinedBuilder{children: children, mode: m}, nil
}

func (b *CombinedBuilder) RequiredFields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, child := range b.children {
		for _, f := range child.RequiredFields() {
			if !seen[f] {
				seen[f] = true
				fields = append(fields, f)
			}
		}
	}
	return fields
}

func (b *CombinedBuilder) BuildMinimal(ev models.Event) (Map, error) {
	return b.compose(ev, func(c Builder) (Map, error) { return c.BuildMinimal(ev) })
}

func (b *CombinedBuilder) BuildFull(ev models.Event) (Map, error) {
	return b.compose(ev, func(c Builder) (Map, error) { return c.BuildFull(ev) })
}

func (b *CombinedBuilder) Build(ev models.Event) (Map, error) {
	if b.mode == ModeFull {
		return b.BuildFull(ev)
	}
	return b.BuildMinimal(ev)
}

// compose merges child outputs, filtering out errored children before the
// merge rather than letting one child abort the whole mapping.
func (b *CombinedBuilder) compose(_ models.Event, build func(Builder) (Map, error)) (Map, error) {
	feats := make(Map)
	for _, child := range b.children {
		out, err := build(child)
		if err != nil {
			continue
		}
		merge(feats, out)
	}
	return feats, nil
}
