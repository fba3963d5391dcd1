package theory

import (
	"fmt"

	"github.com/dock108/theoryline/internal/features"
	"github.com/dock108/theoryline/internal/models"
	"github.com/dock108/theoryline/internal/odds"
)

// SpreadModel wagers the closing point spread on a fixed side. The posted
// line is stored home-signed; the away side takes its negation.
type SpreadModel struct {
	side string
}

// NewSpreadModel builds a spread variant for "home" or "away".
func NewSpreadModel(side string) (*SpreadModel, error) {
	if side != "home" && side != "away" {
		return nil, fmt.Errorf("spread model: invalid side %q", side)
	}
	return &SpreadModel{side: side}, nil
}

func (m *SpreadModel) Name() string   { return "closing_spread" }
func (m *SpreadModel) Market() string { return "spread" }
func (m *SpreadModel) Side() string   { return m.side }

// sideSpread converts the home-signed closing line to the model's side.
func (m *SpreadModel) sideSpread(src map[string]any) *float64 {
	spread := models.Float(src, "closing_spread_home")
	if spread == nil {
		return nil
	}
	if m.side == "away" {
		neg := -*spread
		return &neg
	}
	return spread
}

func (m *SpreadModel) price(ev models.Event) *float64 {
	return models.Float(ev.Lines, "closing_spread_home_price")
}

func (m *SpreadModel) coverProb(feats features.Map) *float64 {
	return models.Float(feats, m.side+"_cover_prob")
}

func (m *SpreadModel) ShouldTrigger(ev models.Event, feats features.Map) bool {
	return m.sideSpread(ev.Lines) != nil && m.price(ev) != nil && m.coverProb(feats) != nil
}

func (m *SpreadModel) ComputeEV(ev models.Event, feats features.Map) *float64 {
	return odds.EVFromPrice(m.coverProb(feats), m.price(ev))
}

func (m *SpreadModel) ComputeOutcome(in SettlementInput) odds.Settlement {
	margin := models.Float(in, "margin_of_victory")
	spread := m.sideSpread(in)
	price := models.Float(in, "closing_spread_home_price")
	return odds.SpreadOutcome(margin, spread, price, unitStake)
}

func (m *SpreadModel) OutputRow(ev models.Event, feats features.Map, evValue *float64, settlement odds.Settlement) models.ResultRow {
	row := buildRow(m, ev, m.price(ev), evValue, settlement)
	if spread := m.sideSpread(ev.Lines); spread != nil {
		row["line"] = *spread
	}
	return row
}
