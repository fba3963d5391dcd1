package models

// Event is a single raw event/odds record as produced by the ingestion layer
// and consumed by the feature builders. Every sub-map is optional; builders
// must tolerate missing maps and missing keys.
type Event struct {
	Closing     map[string]any       `json:"closing,omitempty"`
	Lines       map[string]any       `json:"lines,omitempty"`
	Result      map[string]any       `json:"result,omitempty"`
	Metadata    map[string]any       `json:"metadata,omitempty"`
	Ratings     map[string]any       `json:"ratings,omitempty"`
	Projections map[string]any       `json:"projections,omitempty"`
	Pace        map[string]any       `json:"pace,omitempty"`
	History     map[string][]float64 `json:"history,omitempty"`
}

// ID returns the game identifier from the metadata sub-map, or "" if absent.
func (e Event) ID() string {
	if s := Str(e.Metadata, "game_id"); s != nil {
		return *s
	}
	return ""
}

// SettlementInput flattens the fields settlement needs (winner, margins,
// combined score, closing prices) out of the result/closing/lines sub-maps.
func (e Event) SettlementInput() map[string]any {
	in := make(map[string]any)
	for _, m := range []map[string]any{e.Closing, e.Lines, e.Result} {
		for k, v := range m {
			if v != nil {
				in[k] = v
			}
		}
	}
	return in
}

// Float reads a numeric value out of a sub-map. It returns nil when the map
// or key is missing, the value is nil, or the value is not numeric.
func Float(m map[string]any, key string) *float64 {
	if m == nil {
		return nil
	}
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case float32:
		f := float64(n)
		return &f
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case *float64:
		return n
	}
	return nil
}

// Str reads a string value out of a sub-map, nil when missing or non-string.
func Str(m map[string]any, key string) *string {
	if m == nil {
		return nil
	}
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

// Bool reads a boolean value out of a sub-map, nil when missing or non-bool.
func Bool(m map[string]any, key string) *bool {
	if m == nil {
		return nil
	}
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	if b, ok := v.(bool); ok {
		return &b
	}
	return nil
}
