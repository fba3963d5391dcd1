// Package pipeline contains the four drivers that orchestrate micro-model
// evaluation over different data cadences: historical batch, live snapshot,
// time-series trend, and cross-model training-matrix aggregation.
package pipeline

import (
	"context"

	"github.com/dock108/theoryline/internal/models"
)

// GameLoader supplies settled historical games for a league and season set.
type GameLoader interface {
	LoadGames(ctx context.Context, leagueID string, seasons []string) ([]models.Event, error)
}

// LiveOddsProvider supplies the current odds board for a league.
type LiveOddsProvider interface {
	CurrentOdds(ctx context.Context, leagueID string) ([]models.Event, error)
}

// OddsHistoryProvider supplies historical odds-movement rows for a league.
type OddsHistoryProvider interface {
	OddsHistory(ctx context.Context, leagueID string) ([]models.Event, error)
}

// ResultsRepository persists backtest rows. Implementations own retry and
// durability policy; pipelines propagate failures unchanged.
type ResultsRepository interface {
	SaveBacktest(ctx context.Context, rows []models.BacktestResult) error
}
