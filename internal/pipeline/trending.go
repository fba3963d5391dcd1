package pipeline

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/dock108/theoryline/internal/features"
	"github.com/dock108/theoryline/internal/models"
	"github.com/dock108/theoryline/internal/odds"
	"github.com/dock108/theoryline/internal/theory"
)

// TrendingPipeline evaluates a model over historical odds movement and
// reduces each row to a directional indicator. When the built features carry
// a model-estimated true probability, the probability-vs-price expected
// value takes precedence over the model's own EV for setting strength; the
// two uses are intentionally not unified with the live pipeline.
type TrendingPipeline struct {
	history   OddsHistoryProvider
	builder   features.Builder
	window    string
	smaPeriod int
	logger    *logrus.Logger
}

// NewTrendingPipeline wires a trend driver. window labels the indicator's
// sampling window; smaPeriod sizes the momentum smoothing.
func NewTrendingPipeline(history OddsHistoryProvider, builder features.Builder, window string, smaPeriod int, logger *logrus.Logger) *TrendingPipeline {
	if smaPeriod <= 0 {
		smaPeriod = 5
	}
	return &TrendingPipeline{
		history:   history,
		builder:   builder,
		window:    window,
		smaPeriod: smaPeriod,
		logger:    logger,
	}
}

// Run fetches odds-movement rows and returns one indicator per row.
func (p *TrendingPipeline) Run(ctx context.Context, pctx models.PipelineContext, model theory.MicroModel) ([]models.TrendingIndicator, error) {
	rows, err := p.history.OddsHistory(ctx, pctx.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("trending: odds history: %w", err)
	}

	now := time.Now().UTC()
	indicators := make([]models.TrendingIndicator, 0, len(rows))

	for _, row := range rows {
		feats, err := p.builder.Build(row)
		if err != nil {
			p.logger.WithError(err).WithField("event_id", row.ID()).Warn("feature build failed, skipping row")
			continue
		}

		price := models.Float(row.Closing, "closing_ml_"+model.Side())
		evValue := p.effectiveEV(model, row, feats, price)
		strength := 0.0
		if evValue != nil {
			strength = *evValue
		}
		direction := "neutral"
		switch {
		case strength > 0:
			direction = "up"
		case strength < 0:
			direction = "down"
		}

		indicators = append(indicators, models.TrendingIndicator{
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
			Window:         p.window,
			TrendDirection: direction,
			TrendStrength:  math.Abs(strength),
			Momentum:       p.momentum(model, row),
			CapturedAt:     now,
		})
	}

	p.logger.WithFields(logrus.Fields{
		"league":     pctx.LeagueID,
		"theory":     model.Name(),
		"indicators": len(indicators),
	}).Info("trend window evaluated")

	return indicators, nil
}

// effectiveEV picks the probability-vs-price EV estimate when a true
// probability is present, else the model's own EV, else absent.
func (p *TrendingPipeline) effectiveEV(model theory.MicroModel, row models.Event, feats features.Map, price *float64) *float64 {
	if trueProb := models.Float(feats, model.Side()+"_true_prob"); trueProb != nil {
		if probEV := odds.EVFromPrice(trueProb, price); probEV != nil {
			return probEV
		}
	}
	return model.ComputeEV(row, feats)
}

// momentum smooths the row's price history with a simple moving average and
// reports the latest smoothed value, absent when no usable series exists.
func (p *TrendingPipeline) momentum(model theory.MicroModel, row models.Event) *float64 {
	series, ok := row.History["closing_ml_"+model.Side()]
	if !ok {
		series, ok = row.History["price"]
	}
	if !ok || len(series) < p.smaPeriod {
		return nil
	}

	sma := trend.NewSmaWithPeriod[float64](p.smaPeriod)
	smoothed := helper.ChanToSlice(sma.Compute(helper.SliceToChan(series)))
	if len(smoothed) == 0 {
		return nil
	}
	latest := smoothed[len(smoothed)-1]
	return &latest
}
