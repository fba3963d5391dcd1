package theory

import (
	"fmt"

	"github.com/dock108/theoryline/internal/features"
	"github.com/dock108/theoryline/internal/models"
	"github.com/dock108/theoryline/internal/odds"
)

// MoneylineModel wagers the closing moneyline on a fixed side, triggering
// when both the price and a model-estimated true probability are available.
type MoneylineModel struct {
	side string
}

// NewMoneylineModel builds a moneyline variant for "home" or "away".
func NewMoneylineModel(side string) (*MoneylineModel, error) {
	if side != "home" && side != "away" {
		return nil, fmt.Errorf("moneyline model: invalid side %q", side)
	}
	return &MoneylineModel{side: side}, nil
}

func (m *MoneylineModel) Name() string   { return "closing_moneyline" }
func (m *MoneylineModel) Market() string { return "moneyline" }
func (m *MoneylineModel) Side() string   { return m.side }

func (m *MoneylineModel) price(ev models.Event) *float64 {
	return models.Float(ev.Closing, "closing_ml_"+m.side)
}

func (m *MoneylineModel) trueProb(feats features.Map) *float64 {
	return models.Float(feats, m.side+"_true_prob")
}

func (m *MoneylineModel) ShouldTrigger(ev models.Event, feats features.Map) bool {
	return m.price(ev) != nil && m.trueProb(feats) != nil
}

func (m *MoneylineModel) ComputeEV(ev models.Event, feats features.Map) *float64 {
	return odds.EVFromPrice(m.trueProb(feats), m.price(ev))
}

func (m *MoneylineModel) ComputeOutcome(in SettlementInput) odds.Settlement {
	winner := models.Str(in, "winner")
	price := models.Float(in, "closing_ml_"+m.side)
	return odds.MoneylineOutcome(m.side, winner, price, unitStake)
}

func (m *MoneylineModel) OutputRow(ev models.Event, feats features.Map, evValue *float64, settlement odds.Settlement) models.ResultRow {
	return buildRow(m, ev, m.price(ev), evValue, settlement)
}
