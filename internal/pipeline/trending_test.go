package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dock108/theoryline/internal/models"
)

func trendingContext() models.PipelineContext {
	return models.PipelineContext{LeagueID: "nba", FeatureMode: "full"}
}

func TestTrendingPipeline_TrueProbabilityOverridesModelEV(t *testing.T) {
	// home_true_prob 0.45 against +150 gives +0.125; the scripted model EV of
	// -0.9 must lose to it.
	row := settledEvent("g1")
	model := &fakeModel{ev: floatPtr(-0.9)}

	p := NewTrendingPipeline(&stubHistory{rows: []models.Event{row}}, mustBuilder("full"), "7d", 5, testLogger())
	indicators, err := p.Run(context.Background(), trendingContext(), model)
	require.NoError(t, err)
	require.Len(t, indicators, 1)

	ind := indicators[0]
	assert.Equal(t, "up", ind.TrendDirection)
	assert.InDelta(t, 0.125, ind.TrendStrength, 1e-9)
	assert.Equal(t, "7d", ind.Window)
	assert.Equal(t, "g1", ind.EventID)

	// The base record carries the priced evaluation alongside the trend.
	assert.Equal(t, "fake_theory", ind.Theory)
	assert.Equal(t, "moneyline", ind.Market)
	assert.Equal(t, "home", ind.Side)
	assert.True(t, ind.Stake.Equal(decimal.NewFromInt(1)))
	require.NotNil(t, ind.Odds)
	assert.Equal(t, 150.0, *ind.Odds)
	require.NotNil(t, ind.ImpliedProbability)
	assert.InDelta(t, 0.4, *ind.ImpliedProbability, 1e-9)
	require.NotNil(t, ind.EV)
	assert.InDelta(t, 0.125, *ind.EV, 1e-9)
	assert.NotEmpty(t, ind.Features)
}

func TestTrendingPipeline_ModelEVWhenNoTrueProbability(t *testing.T) {
	row := settledEvent("g1")
	delete(row.Projections, "home_true_prob")

	p := NewTrendingPipeline(&stubHistory{rows: []models.Event{row}}, mustBuilder("full"), "7d", 5, testLogger())
	indicators, err := p.Run(context.Background(), trendingContext(), &fakeModel{ev: floatPtr(-0.08)})
	require.NoError(t, err)
	require.Len(t, indicators, 1)

	assert.Equal(t, "down", indicators[0].TrendDirection)
	assert.InDelta(t, 0.08, indicators[0].TrendStrength, 1e-9)
}

func TestTrendingPipeline_NeutralWhenNoEdge(t *testing.T) {
	row := settledEvent("g1")
	delete(row.Projections, "home_true_prob")

	p := NewTrendingPipeline(&stubHistory{rows: []models.Event{row}}, mustBuilder("full"), "7d", 5, testLogger())
	indicators, err := p.Run(context.Background(), trendingContext(), &fakeModel{})
	require.NoError(t, err)
	require.Len(t, indicators, 1)

	assert.Equal(t, "neutral", indicators[0].TrendDirection)
	assert.Zero(t, indicators[0].TrendStrength)
	assert.Nil(t, indicators[0].Momentum)
}

func TestTrendingPipeline_MomentumFromPriceHistory(t *testing.T) {
	row := settledEvent("g1")
	row.History = map[string][]float64{
		"closing_ml_home": {150, 152, 154, 156, 158},
	}

	p := NewTrendingPipeline(&stubHistory{rows: []models.Event{row}}, mustBuilder("full"), "7d", 5, testLogger())
	indicators, err := p.Run(context.Background(), trendingContext(), &fakeModel{})
	require.NoError(t, err)
	require.Len(t, indicators, 1)

	require.NotNil(t, indicators[0].Momentum)
	assert.InDelta(t, 154.0, *indicators[0].Momentum, 1e-9)
}

func TestTrendingPipeline_ShortSeriesHasNoMomentum(t *testing.T) {
	row := settledEvent("g1")
	row.History = map[string][]float64{"closing_ml_home": {150, 152}}

	p := NewTrendingPipeline(&stubHistory{rows: []models.Event{row}}, mustBuilder("full"), "7d", 5, testLogger())
	indicators, err := p.Run(context.Background(), trendingContext(), &fakeModel{})
	require.NoError(t, err)
	require.Len(t, indicators, 1)
	assert.Nil(t, indicators[0].Momentum)
}

func TestTrendingPipeline_HistoryErrorPropagates(t *testing.T) {
	boom := errors.New("history unavailable")
	p := NewTrendingPipeline(&stubHistory{err: boom}, mustBuilder("full"), "7d", 5, testLogger())

	_, err := p.Run(context.Background(), trendingContext(), &fakeModel{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
