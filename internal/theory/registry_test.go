package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bootstrapped() *Registry {
	r := NewRegistry()
	Bootstrap(r)
	return r
}

func TestRegistry_RegisterLastWriterWins(t *testing.T) {
	r := NewRegistry()
	r.Register(Entry{Name: "closing_moneyline", Version: "1.0.0", Enabled: true})
	r.Register(Entry{Name: "closing_moneyline", Version: "2.0.0", Enabled: false})

	e, ok := r.Get("closing_moneyline")
	require.True(t, ok)
	assert.Equal(t, "2.0.0", e.Version)
	assert.False(t, e.Enabled)
	assert.Len(t, r.List(false), 1)
}

func TestRegistry_ListSortedAndFiltered(t *testing.T) {
	r := bootstrapped()

	all := r.List(false)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Name, all[i].Name)
	}

	enabled := r.List(true)
	names := make([]string, 0, len(enabled))
	for _, e := range enabled {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"closing_moneyline", "closing_spread", "closing_total"}, names)
}

func TestRegistry_SetEnabled(t *testing.T) {
	r := bootstrapped()

	r.SetEnabled("underdog_value", true)
	e, ok := r.Get("underdog_value")
	require.True(t, ok)
	assert.True(t, e.Enabled)

	// Unknown names are a silent no-op.
	r.SetEnabled("no_such_theory", true)
	assert.Len(t, r.List(false), 4)
}

func TestRegistry_Instantiate(t *testing.T) {
	r := bootstrapped()

	m, err := r.Instantiate("closing_moneyline", map[string]any{"side": "away"})
	require.NoError(t, err)
	assert.Equal(t, "away", m.Side())
	assert.Equal(t, "moneyline", m.Market())

	m, err = r.Instantiate("closing_total", nil)
	require.NoError(t, err)
	assert.Equal(t, "over", m.Side(), "direction defaults to over")
}

func TestRegistry_InstantiateUnknownName(t *testing.T) {
	r := bootstrapped()

	_, err := r.Instantiate("martingale", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTheoryNotFound)
}

func TestRegistry_InstantiateInvalidParams(t *testing.T) {
	r := bootstrapped()

	_, err := r.Instantiate("closing_spread", map[string]any{"side": "sideways"})
	assert.Error(t, err)
}
