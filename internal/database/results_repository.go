package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dock108/theoryline/internal/models"
)

// ResultsRepository persists settled backtest rows. Rows are written in one
// batched round trip per pipeline flush.
type ResultsRepository struct {
	pool DatabasePool
}

// NewResultsRepository creates a new results repository.
func NewResultsRepository(pool DatabasePool) *ResultsRepository {
	return &ResultsRepository{pool: pool}
}

const insertBacktestRow = `
	INSERT INTO backtest_results
		(event_id, theory, market, side, stake, odds, implied_probability, ev, outcome, pnl, features, settled_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

// SaveBacktest writes a flush batch. The whole batch fails on the first
// failing insert; retry policy belongs to the caller's boundary.
func (r *ResultsRepository) SaveBacktest(ctx context.Context, rows []models.BacktestResult) error {
	if len(rows) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		features, err := json.Marshal(row.Features)
		if err != nil {
			return fmt.Errorf("failed to encode features for %s: %w", row.EventID, err)
		}
		batch.Queue(insertBacktestRow,
			row.EventID,
			row.Theory,
			row.Market,
			row.Side,
			row.Stake,
			row.Odds,
			row.ImpliedProbability,
			row.EV,
			row.Outcome,
			row.PnL,
			features,
			row.SettledAt,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save backtest rows: %w", err)
		}
	}

	return nil
}
