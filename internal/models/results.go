package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ResultRow is the flat row a micro-model renders for one evaluation. Rows
// feed downstream persistence and the Mega training-matrix aggregation.
type ResultRow = map[string]any

// PipelineContext is the read-only configuration for a single pipeline run.
type PipelineContext struct {
	LeagueID    string   `json:"league_id"`
	Seasons     []string `json:"seasons,omitempty"`
	FeatureMode string   `json:"feature_mode"`
}

// BaseResult carries the fields common to every per-(event, model) evaluation.
// Monetary fields use decimal so push/zero comparisons stay exact.
type BaseResult struct {
	EventID            string          `json:"event_id"`
	Theory             string          `json:"theory"`
	Market             string          `json:"market"`
	Side               string          `json:"side,omitempty"`
	Stake              decimal.Decimal `json:"stake"`
	Odds               *float64        `json:"odds,omitempty"`
	ImpliedProbability *float64        `json:"implied_probability,omitempty"`
	EV                 *float64        `json:"ev,omitempty"`
	Features           map[string]any  `json:"features,omitempty"`
}

// BacktestResult is one settled evaluation from the backtest pipeline.
type BacktestResult struct {
	BaseResult
	Outcome   string          `json:"outcome"`
	PnL       decimal.Decimal `json:"pnl"`
	SettledAt time.Time       `json:"settled_at"`
}

// Flat renders the result as a single flat row for training-matrix assembly.
func (r BacktestResult) Flat() ResultRow {
	row := ResultRow{
		"event_id": r.EventID,
		"theory":   r.Theory,
		"market":   r.Market,
		"outcome":  r.Outcome,
	}
	if r.Side != "" {
		row["side"] = r.Side
	}
	stake, _ := r.Stake.Float64()
	row["stake"] = stake
	pnl, _ := r.PnL.Float64()
	row["pnl"] = pnl
	if r.Odds != nil {
		row["odds"] = *r.Odds
	}
	if r.ImpliedProbability != nil {
		row["implied_probability"] = *r.ImpliedProbability
	}
	if r.EV != nil {
		row["ev"] = *r.EV
	}
	return row
}

// LiveSignal is an actionable signal emitted by the live pipeline.
type LiveSignal struct {
	BaseResult
	ID             string    `json:"id"`
	Recommendation string    `json:"recommendation"`
	Confidence     float64   `json:"confidence"`
	TriggeredAt    time.Time `json:"triggered_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// TrendingIndicator summarizes directional edge over a historical window.
type TrendingIndicator struct {
	BaseResult
	Window         string    `json:"window"`
	TrendDirection string    `json:"trend_direction"`
	TrendStrength  float64   `json:"trend_strength"`
	Momentum       *float64  `json:"momentum,omitempty"`
	CapturedAt     time.Time `json:"captured_at"`
}

// TrainingMatrix is the Mega pipeline's output payload.
type TrainingMatrix struct {
	Matrix []ResultRow `json:"matrix"`
	Rows   int         `json:"rows"`
}
