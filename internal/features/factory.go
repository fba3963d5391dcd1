package features

import "fmt"

// Admin mode wires only the always-available tier, a fast path for
// validation surfaces; every other mode gets the full layered stack.
const AdminMode = "admin"

// NewBuilderForMode selects a builder configuration by coarse mode name.
func NewBuilderForMode(mode string) (Builder, error) {
	if mode == AdminMode {
		return NewLevel0(string(ModeMinimal))
	}

	l0, err := NewLevel0(string(ModeFull))
	if err != nil {
		return nil, fmt.Errorf("features: level0: %w", err)
	}
	l1, err := NewLevel1(string(ModeFull))
	if err != nil {
		return nil, fmt.Errorf("features: level1: %w", err)
	}
	l2, err := NewLevel2(string(ModeFull))
	if err != nil {
		return nil, fmt.Errorf("features: level2: %w", err)
	}
	return NewCombined(string(ModeFull), l0, l1, l2)
}
