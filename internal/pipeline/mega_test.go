package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dock108/theoryline/internal/models"
)

func TestMegaPipeline_SingleRowUnionOfKeys(t *testing.T) {
	result := models.ResultRow{
		"event_id": "g1",
		"theory":   "closing_moneyline",
		"outcome":  "win",
		"pnl":      1.5,
	}
	closing := map[string]map[string]any{
		"g1": {"closing_ml_home": 150.0, "closing_ml_away": -170.0},
	}
	finals := map[string]map[string]any{
		"g1": {"winner": "home", "margin_of_victory": 6.0, "combined_score": 214.0},
	}

	p := NewMegaPipeline(mustBuilder("full"), testLogger())
	matrix, err := p.Run(context.Background(), []models.ResultRow{result}, closing, finals)
	require.NoError(t, err)
	require.Equal(t, 1, matrix.Rows)
	require.Len(t, matrix.Matrix, 1)

	row := matrix.Matrix[0]
	// Result fields survive.
	assert.Equal(t, "closing_moneyline", row["theory"])
	assert.Equal(t, "win", row["outcome"])
	assert.Equal(t, 1.5, row["pnl"])
	// Closing and final fields are folded in.
	assert.Equal(t, 150.0, row["closing_ml_home"])
	assert.Equal(t, "home", row["winner"])
	assert.Equal(t, 6.0, row["margin_of_victory"])
	// Rebuilt features land on top.
	assert.Contains(t, row, "implied_prob_edge")
	assert.Contains(t, row, "game_id")
}

func TestMegaPipeline_LaterLayersWin(t *testing.T) {
	result := models.ResultRow{"event_id": "g1", "winner": "away"}
	finals := map[string]map[string]any{"g1": {"winner": "home"}}

	p := NewMegaPipeline(mustBuilder("full"), testLogger())
	matrix, err := p.Run(context.Background(), []models.ResultRow{result}, nil, finals)
	require.NoError(t, err)
	require.Equal(t, 1, matrix.Rows)

	assert.Equal(t, "home", matrix.Matrix[0]["winner"])
}

func TestMegaPipeline_UnmatchedRowPassesThrough(t *testing.T) {
	result := models.ResultRow{"event_id": "orphan", "theory": "closing_total", "pnl": -1.0}

	p := NewMegaPipeline(mustBuilder("full"), testLogger())
	matrix, err := p.Run(context.Background(), []models.ResultRow{result}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 1, matrix.Rows)

	assert.Equal(t, result, matrix.Matrix[0])
}

func TestMegaPipeline_EmptyInputs(t *testing.T) {
	p := NewMegaPipeline(mustBuilder("full"), testLogger())
	matrix, err := p.Run(context.Background(), nil, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, matrix.Rows)
	assert.Empty(t, matrix.Matrix)
}
