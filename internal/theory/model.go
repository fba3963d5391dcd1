// Package theory defines the micro-model contract wagering strategies
// implement, the concrete built-in variants, and the process-wide registry
// that names them.
package theory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dock108/theoryline/internal/features"
	"github.com/dock108/theoryline/internal/models"
	"github.com/dock108/theoryline/internal/odds"
)

// SettlementInput is the flattened metrics mapping settlement reads from:
// winner, margin_of_victory, combined_score, and the relevant closing fields.
type SettlementInput = map[string]any

// MicroModel is the capability set every strategy evaluator satisfies.
// Implementations are stateless and side-effect free; the wagered side is
// fixed at construction.
type MicroModel interface {
	Name() string
	Market() string
	Side() string
	ShouldTrigger(ev models.Event, feats features.Map) bool
	ComputeEV(ev models.Event, feats features.Map) *float64
	ComputeOutcome(in SettlementInput) odds.Settlement
	OutputRow(ev models.Event, feats features.Map, ev2 *float64, settlement odds.Settlement) models.ResultRow
}

// unitStake is the per-wager stake all built-in variants risk.
var unitStake = decimal.NewFromInt(1)

// buildRow renders the standard flat result row shared by all variants.
func buildRow(m MicroModel, ev models.Event, price, evValue *float64, settlement odds.Settlement) models.ResultRow {
	row := models.ResultRow{
		"event_id": ev.ID(),
		"theory":   m.Name(),
		"market":   m.Market(),
		"side":     m.Side(),
		"outcome":  string(settlement.Outcome),
	}
	stake, _ := unitStake.Float64()
	row["stake"] = stake
	pnl, _ := settlement.PnL.Float64()
	row["pnl"] = pnl
	if price != nil {
		row["odds"] = *price
	}
	if implied := odds.ImpliedProbability(price); implied != nil {
		row["implied_probability"] = *implied
	}
	if evValue != nil {
		row["ev"] = *evValue
	}
	row["settled_at"] = time.Now().UTC().Format(time.RFC3339)
	return row
}
