package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dock108/theoryline/internal/models"
)

func TestLevel2_MinimalEdges(t *testing.T) {
	b, err := NewLevel2("minimal")
	require.NoError(t, err)

	feats, err := b.Build(sampleEvent())
	require.NoError(t, err)

	// implied(150) = 0.4, implied(-170) = 170/270.
	assert.InDelta(t, 0.4-170.0/270.0, feats["implied_prob_edge"].(float64), 1e-9)
	assert.Equal(t, -3.5, feats["spread_edge"])
	assert.InDelta(t, 214.0-215.5, feats["total_gap"].(float64), 1e-9)
}

func TestLevel2_MinimalSkipsDerivedWhenInputsAbsent(t *testing.T) {
	b, err := NewLevel2("minimal")
	require.NoError(t, err)

	feats, err := b.Build(models.Event{})
	require.NoError(t, err)
	assert.Empty(t, feats)
}

func TestLevel2_FullSeriesStats(t *testing.T) {
	b, err := NewLevel2("full")
	require.NoError(t, err)

	ev := models.Event{
		History: map[string][]float64{
			"spread_moves": {2.0, 4.0, 6.0},
		},
	}
	feats, err := b.Build(ev)
	require.NoError(t, err)

	// Population stddev of {2,4,6} is sqrt(8/3); latest z = (6-4)/std.
	std := math.Sqrt(8.0 / 3.0)
	assert.InDelta(t, std, feats["spread_moves_volatility"].(float64), 1e-9)
	assert.InDelta(t, 2.0/std, feats["spread_moves_zscore"].(float64), 1e-9)
}

func TestLevel2_SeriesTooShortOmitsStats(t *testing.T) {
	b, err := NewLevel2("full")
	require.NoError(t, err)

	feats, err := b.Build(models.Event{
		History: map[string][]float64{"ml_moves": {1.0}},
	})
	require.NoError(t, err)

	assert.NotContains(t, feats, "ml_moves_volatility")
	assert.NotContains(t, feats, "ml_moves_zscore")
}

func TestLevel2_ZeroVarianceSeriesOmitsZScore(t *testing.T) {
	b, err := NewLevel2("full")
	require.NoError(t, err)

	feats, err := b.Build(models.Event{
		History: map[string][]float64{"flat": {5.0, 5.0, 5.0}},
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, feats["flat_volatility"])
	assert.NotContains(t, feats, "flat_zscore")
}

func TestLevel2_FullProbGapsAndRatios(t *testing.T) {
	b, err := NewLevel2("full")
	require.NoError(t, err)

	ev := sampleEvent()
	ev.Projections = map[string]any{
		"home_true_prob": 0.45,
		"away_true_prob": 0.55,
	}
	ev.Ratings = map[string]any{
		"home_rating": 110.0,
		"away_rating": 100.0,
	}

	feats, err := b.Build(ev)
	require.NoError(t, err)

	assert.InDelta(t, 0.45-0.4, feats["home_prob_gap"].(float64), 1e-9)
	assert.InDelta(t, 0.55-170.0/270.0, feats["away_prob_gap"].(float64), 1e-9)
	assert.InDelta(t, 6.0-3.5, feats["cover_margin"].(float64), 1e-9)
	assert.InDelta(t, 1.1, feats["rating_ratio"].(float64), 1e-9)
}

func TestLevel2_RatingRatioAbsentOnZeroDenominator(t *testing.T) {
	b, err := NewLevel2("full")
	require.NoError(t, err)

	feats, err := b.Build(models.Event{
		Ratings: map[string]any{"home_rating": 110.0, "away_rating": 0.0},
	})
	require.NoError(t, err)
	assert.NotContains(t, feats, "rating_ratio")

	feats, err = b.Build(models.Event{
		Ratings: map[string]any{"home_rating": 110.0},
	})
	require.NoError(t, err)
	assert.NotContains(t, feats, "rating_ratio")
}
