package theory

import (
	"fmt"

	"github.com/dock108/theoryline/internal/features"
	"github.com/dock108/theoryline/internal/models"
	"github.com/dock108/theoryline/internal/odds"
)

// DefaultUnderdogMinPrice is the gate an underdog price must clear before
// the angle fires.
const DefaultUnderdogMinPrice = 150.0

// UnderdogModel is a threshold-gated moneyline angle: it only fires when the
// side's price is long enough, regardless of whether a probability estimate
// exists. EV is still reported when an estimate is available.
type UnderdogModel struct {
	side     string
	minPrice float64
}

// NewUnderdogModel builds the underdog angle for a side with a minimum
// American price gate.
func NewUnderdogModel(side string, minPrice float64) (*UnderdogModel, error) {
	if side != "home" && side != "away" {
		return nil, fmt.Errorf("underdog model: invalid side %q", side)
	}
	if minPrice <= 0 {
		return nil, fmt.Errorf("underdog model: min price must be a positive American price, got %v", minPrice)
	}
	return &UnderdogModel{side: side, minPrice: minPrice}, nil
}

func (m *UnderdogModel) Name() string   { return "underdog_value" }
func (m *UnderdogModel) Market() string { return "moneyline" }
func (m *UnderdogModel) Side() string   { return m.side }

func (m *UnderdogModel) price(ev models.Event) *float64 {
	return models.Float(ev.Closing, "closing_ml_"+m.side)
}

func (m *UnderdogModel) ShouldTrigger(ev models.Event, _ features.Map) bool {
	price := m.price(ev)
	return price != nil && *price >= m.minPrice
}

func (m *UnderdogModel) ComputeEV(ev models.Event, feats features.Map) *float64 {
	trueProb := models.Float(feats, m.side+"_true_prob")
	return odds.EVFromPrice(trueProb, m.price(ev))
}

func (m *UnderdogModel) ComputeOutcome(in SettlementInput) odds.Settlement {
	winner := models.Str(in, "winner")
	price := models.Float(in, "closing_ml_"+m.side)
	return odds.MoneylineOutcome(m.side, winner, price, unitStake)
}

func (m *UnderdogModel) OutputRow(ev models.Event, feats features.Map, evValue *float64, settlement odds.Settlement) models.ResultRow {
	row := buildRow(m, ev, m.price(ev), evValue, settlement)
	row["min_price"] = m.minPrice
	return row
}
