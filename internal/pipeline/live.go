package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/dock108/theoryline/internal/features"
	"github.com/dock108/theoryline/internal/models"
	"github.com/dock108/theoryline/internal/odds"
	"github.com/dock108/theoryline/internal/theory"
)

// LivePipeline evaluates a model against the current odds board and emits
// actionable signals. A row qualifies when the model triggers or its
// expected value is positive.
type LivePipeline struct {
	provider  LiveOddsProvider
	builder   features.Builder
	signalTTL time.Duration
	logger    *logrus.Logger
}

// NewLivePipeline wires a live snapshot driver. signalTTL bounds how long an
// emitted signal stays actionable.
func NewLivePipeline(provider LiveOddsProvider, builder features.Builder, signalTTL time.Duration, logger *logrus.Logger) *LivePipeline {
	return &LivePipeline{
		provider:  provider,
		builder:   builder,
		signalTTL: signalTTL,
		logger:    logger,
	}
}

// Run fetches the current board and returns the qualifying signals.
func (p *LivePipeline) Run(ctx context.Context, pctx models.PipelineContext, model theory.MicroModel) ([]models.LiveSignal, error) {
	rows, err := p.provider.CurrentOdds(ctx, pctx.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("live: current odds: %w", err)
	}

	now := time.Now().UTC()
	signals := make([]models.LiveSignal, 0, len(rows))

	for _, row := range rows {
		feats, err := p.builder.Build(row)
		if err != nil {
			p.logger.WithError(err).WithField("event_id", row.ID()).Warn("feature build failed, skipping row")
			continue
		}

		triggered := model.ShouldTrigger(row, feats)
		evValue := model.ComputeEV(row, feats)
		positiveEV := evValue != nil && *evValue > 0

		if !triggered && !positiveEV {
			continue
		}

		recommendation := "HOLD"
		if positiveEV {
			recommendation = "BUY"
		}

		price := models.Float(row.Closing, "closing_ml_"+model.Side())
		signals = append(signals, models.LiveSignal{
			BaseResult: models.BaseResult{
				EventID:            row.ID(),
				Theory:             model.Name(),
				Market:             model.Market(),
				Side:               model.Side(),
				Stake:              decimal.NewFromInt(1),
				Odds:               price,
				ImpliedProbability: odds.ImpliedProbability(price),
				EV:                 evValue,
				Features:           feats,
			},
			ID:             uuid.New().String(),
			Recommendation: recommendation,
			Confidence:     p.confidence(model, feats, price),
			TriggeredAt:    now,
			ExpiresAt:      now.Add(p.signalTTL),
		})
	}

	p.logger.WithFields(logrus.Fields{
		"league":  pctx.LeagueID,
		"theory":  model.Name(),
		"rows":    len(rows),
		"signals": len(signals),
	}).Info("live snapshot evaluated")

	return signals, nil
}

// confidence prefers the model-estimated true probability and falls back to
// the price-implied probability when no estimate is present.
func (p *LivePipeline) confidence(model theory.MicroModel, feats features.Map, price *float64) float64 {
	if trueProb := models.Float(feats, model.Side()+"_true_prob"); trueProb != nil {
		return *trueProb
	}
	if implied := odds.ImpliedProbability(price); implied != nil {
		return *implied
	}
	return 0
}
