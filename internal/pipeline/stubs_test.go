package pipeline

import (
	"context"
	"io"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/dock108/theoryline/internal/features"
	"github.com/dock108/theoryline/internal/models"
	"github.com/dock108/theoryline/internal/odds"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// settledEvent is a finished game with a known home win at +150.
func settledEvent(id string) models.Event {
	return models.Event{
		Closing: map[string]any{
			"closing_ml_home": 150.0,
			"closing_ml_away": -170.0,
		},
		Lines: map[string]any{
			"closing_spread_home":       3.5,
			"closing_spread_home_price": -110.0,
			"closing_total":             215.5,
			"closing_total_price":       -110.0,
		},
		Result: map[string]any{
			"winner":            "home",
			"home_score":        110.0,
			"away_score":        104.0,
			"margin_of_victory": 6.0,
			"combined_score":    214.0,
		},
		Projections: map[string]any{
			"home_true_prob": 0.45,
			"away_true_prob": 0.55,
		},
		Metadata: map[string]any{"game_id": id},
	}
}

type stubLoader struct {
	games []models.Event
	err   error
}

func (s *stubLoader) LoadGames(_ context.Context, _ string, _ []string) ([]models.Event, error) {
	return s.games, s.err
}

type stubLiveOdds struct {
	rows []models.Event
	err  error
}

func (s *stubLiveOdds) CurrentOdds(_ context.Context, _ string) ([]models.Event, error) {
	return s.rows, s.err
}

type stubHistory struct {
	rows []models.Event
	err  error
}

func (s *stubHistory) OddsHistory(_ context.Context, _ string) ([]models.Event, error) {
	return s.rows, s.err
}

type stubResults struct {
	mu      sync.Mutex
	err     error
	batches [][]models.BacktestResult
}

func (s *stubResults) SaveBacktest(_ context.Context, rows []models.BacktestResult) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	batch := make([]models.BacktestResult, len(rows))
	copy(batch, rows)
	s.batches = append(s.batches, batch)
	return nil
}

func (s *stubResults) saved() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.batches {
		n += len(b)
	}
	return n
}

// fakeModel is a scriptable micro-model for driver tests.
type fakeModel struct {
	name      string
	side      string
	trigger   bool
	ev        *float64
	panicking bool
}

func (m *fakeModel) Name() string {
	if m.name == "" {
		return "fake_theory"
	}
	return m.name
}

func (m *fakeModel) Market() string { return "moneyline" }

func (m *fakeModel) Side() string {
	if m.side == "" {
		return "home"
	}
	return m.side
}

func (m *fakeModel) ShouldTrigger(_ models.Event, _ features.Map) bool {
	if m.panicking {
		panic("scripted failure")
	}
	return m.trigger
}

func (m *fakeModel) ComputeEV(_ models.Event, _ features.Map) *float64 { return m.ev }

func (m *fakeModel) ComputeOutcome(in map[string]any) odds.Settlement {
	winner := models.Str(in, "winner")
	price := models.Float(in, "closing_ml_"+m.Side())
	return odds.MoneylineOutcome(m.Side(), winner, price, decimal.NewFromInt(1))
}

func (m *fakeModel) OutputRow(ev models.Event, _ features.Map, evValue *float64, settlement odds.Settlement) models.ResultRow {
	row := models.ResultRow{
		"event_id": ev.ID(),
		"theory":   m.Name(),
		"market":   m.Market(),
		"side":     m.Side(),
		"outcome":  string(settlement.Outcome),
	}
	if price := models.Float(ev.Closing, "closing_ml_"+m.Side()); price != nil {
		row["odds"] = *price
	}
	if evValue != nil {
		row["ev"] = *evValue
	}
	return row
}

func floatPtr(v float64) *float64 { return &v }

func mustBuilder(mode string) features.Builder {
	b, err := features.NewBuilderForMode(mode)
	if err != nil {
		panic(err)
	}
	return b
}
