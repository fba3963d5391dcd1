package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/dock108/theoryline/internal/features"
	"github.com/dock108/theoryline/internal/models"
	"github.com/dock108/theoryline/internal/odds"
	"github.com/dock108/theoryline/internal/telemetry"
	"github.com/dock108/theoryline/internal/theory"
)

// BacktestPipeline replays a model over settled historical games. Batching
// only bounds memory for very large season loads: the returned slice always
// carries every row regardless of batch size.
type BacktestPipeline struct {
	loader    GameLoader
	results   ResultsRepository // optional; batches flush here when set
	builder   features.Builder
	batchSize int
	logger    *logrus.Logger
}

// NewBacktestPipeline wires a backtest driver. results may be nil when rows
// are only consumed in memory; batchSize <= 0 disables batching.
func NewBacktestPipeline(loader GameLoader, results ResultsRepository, builder features.Builder, batchSize int, logger *logrus.Logger) *BacktestPipeline {
	return &BacktestPipeline{
		loader:    loader,
		results:   results,
		builder:   builder,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Run evaluates one model against every game for the context's league and
// seasons. Collaborator failures propagate unchanged.
func (p *BacktestPipeline) Run(ctx context.Context, pctx models.PipelineContext, model theory.MicroModel) ([]models.BacktestResult, error) {
	games, err := p.loader.LoadGames(ctx, pctx.LeagueID, pctx.Seasons)
	if err != nil {
		return nil, fmt.Errorf("backtest: load games: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"league": pctx.LeagueID,
		"theory": model.Name(),
		"games":  len(games),
	}).Info("backtest started")

	all := make([]models.BacktestResult, 0, len(games))
	var pending []models.BacktestResult

	for _, game := range games {
		feats, err := p.builder.Build(game)
		if err != nil {
			// Composite builders isolate child failures internally; a builder
			// that still errors produced nothing usable for this game.
			p.logger.WithError(err).WithField("event_id", game.ID()).Warn("feature build failed, skipping game")
			continue
		}
		if !model.ShouldTrigger(game, feats) {
			continue
		}

		evValue := model.ComputeEV(game, feats)
		settlement := model.ComputeOutcome(game.SettlementInput())
		row := model.OutputRow(game, feats, evValue, settlement)

		result := p.toResult(game, model, feats, evValue, settlement, row)
		all = append(all, result)

		if p.batchSize > 0 && p.results != nil {
			pending = append(pending, result)
			if len(pending) >= p.batchSize {
				if err := p.flush(ctx, pending); err != nil {
					return nil, err
				}
				pending = pending[:0]
				telemetry.LogResourceStats(ctx, p.logger, "backtest_flush")
			}
		}
	}

	if len(pending) > 0 {
		if err := p.flush(ctx, pending); err != nil {
			return nil, err
		}
	}

	p.logger.WithFields(logrus.Fields{
		"theory": model.Name(),
		"rows":   len(all),
	}).Info("backtest finished")

	return all, nil
}

func (p *BacktestPipeline) flush(ctx context.Context, rows []models.BacktestResult) error {
	batch := make([]models.BacktestResult, len(rows))
	copy(batch, rows)
	if err := p.results.SaveBacktest(ctx, batch); err != nil {
		return fmt.Errorf("backtest: save batch: %w", err)
	}
	return nil
}

func (p *BacktestPipeline) toResult(game models.Event, model theory.MicroModel, feats features.Map, evValue *float64, settlement odds.Settlement, row models.ResultRow) models.BacktestResult {
	price := models.Float(row, "odds")
	return models.BacktestResult{
		BaseResult: models.BaseResult{
			EventID:            game.ID(),
			Theory:             model.Name(),
			Market:             model.Market(),
			Side:               model.Side(),
			Stake:              decimal.NewFromInt(1),
			Odds:               price,
			ImpliedProbability: odds.ImpliedProbability(price),
			EV:                 evValue,
			Features:           feats,
		},
		Outcome:   string(settlement.Outcome),
		PnL:       settlement.PnL,
		SettledAt: time.Now().UTC(),
	}
}
