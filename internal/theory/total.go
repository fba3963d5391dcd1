package theory

import (
	"fmt"

	"github.com/dock108/theoryline/internal/features"
	"github.com/dock108/theoryline/internal/models"
	"github.com/dock108/theoryline/internal/odds"
)

// TotalModel wagers the closing game total in a fixed direction.
type TotalModel struct {
	direction string
}

// NewTotalModel builds a totals variant for "over" or "under".
func NewTotalModel(direction string) (*TotalModel, error) {
	if direction != "over" && direction != "under" {
		return nil, fmt.Errorf("total model: invalid direction %q", direction)
	}
	return &TotalModel{direction: direction}, nil
}

func (m *TotalModel) Name() string   { return "closing_total" }
func (m *TotalModel) Market() string { return "total" }
func (m *TotalModel) Side() string   { return m.direction }

func (m *TotalModel) price(ev models.Event) *float64 {
	return models.Float(ev.Lines, "closing_total_price")
}

func (m *TotalModel) total(ev models.Event) *float64 {
	return models.Float(ev.Lines, "closing_total")
}

func (m *TotalModel) directionProb(feats features.Map) *float64 {
	return models.Float(feats, m.direction+"_prob")
}

func (m *TotalModel) ShouldTrigger(ev models.Event, feats features.Map) bool {
	return m.total(ev) != nil && m.price(ev) != nil && m.directionProb(feats) != nil
}

func (m *TotalModel) ComputeEV(ev models.Event, feats features.Map) *float64 {
	return odds.EVFromPrice(m.directionProb(feats), m.price(ev))
}

func (m *TotalModel) ComputeOutcome(in SettlementInput) odds.Settlement {
	combined := models.Float(in, "combined_score")
	total := models.Float(in, "closing_total")
	price := models.Float(in, "closing_total_price")
	return odds.TotalOutcome(m.direction, combined, total, price, unitStake)
}

func (m *TotalModel) OutputRow(ev models.Event, feats features.Map, evValue *float64, settlement odds.Settlement) models.ResultRow {
	row := buildRow(m, ev, m.price(ev), evValue, settlement)
	if total := m.total(ev); total != nil {
		row["line"] = *total
	}
	return row
}
