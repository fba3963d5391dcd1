// Package store provides in-memory repository stand-ins used in tests and
// single-process runs. Production persistence swaps in at the same
// interfaces; the engine never depends on which side it got.
package store

import (
	"context"
	"sync"

	"github.com/dock108/theoryline/internal/models"
)

// MemoryResultsStore accumulates backtest rows in memory. It satisfies the
// backtest pipeline's results collaborator.
type MemoryResultsStore struct {
	mu   sync.Mutex
	rows []models.BacktestResult
}

// NewMemoryResultsStore builds an empty results store.
func NewMemoryResultsStore() *MemoryResultsStore {
	return &MemoryResultsStore{}
}

// SaveBacktest appends a flush batch.
func (s *MemoryResultsStore) SaveBacktest(_ context.Context, rows []models.BacktestResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, rows...)
	return nil
}

// All returns a copy of every stored row.
func (s *MemoryResultsStore) All() []models.BacktestResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.BacktestResult, len(s.rows))
	copy(out, s.rows)
	return out
}

// MemoryMatrixStore keeps the latest training matrix per league,
// last-write-wins.
type MemoryMatrixStore struct {
	mu       sync.RWMutex
	matrices map[string]models.TrainingMatrix
}

// NewMemoryMatrixStore builds an empty matrix store.
func NewMemoryMatrixStore() *MemoryMatrixStore {
	return &MemoryMatrixStore{matrices: make(map[string]models.TrainingMatrix)}
}

// Save stores a matrix under a league key, replacing any previous one.
func (s *MemoryMatrixStore) Save(_ context.Context, leagueID string, matrix models.TrainingMatrix) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matrices[leagueID] = matrix
	return nil
}

// Get returns the stored matrix for a league and whether one exists.
func (s *MemoryMatrixStore) Get(_ context.Context, leagueID string) (models.TrainingMatrix, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matrix, ok := s.matrices[leagueID]
	return matrix, ok
}

// MemoryEventSource serves a fixed event set as the game-loader, live-odds,
// and odds-history collaborators at once.
type MemoryEventSource struct {
	mu     sync.RWMutex
	events []models.Event
}

// NewMemoryEventSource builds a source over a fixed event slice.
func NewMemoryEventSource(events []models.Event) *MemoryEventSource {
	return &MemoryEventSource{events: events}
}

// Replace swaps the backing event set.
func (s *MemoryEventSource) Replace(events []models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = events
}

// LoadGames returns the events whose metadata matches the league, filtered to
// the season set when one is given.
func (s *MemoryEventSource) LoadGames(_ context.Context, leagueID string, seasons []string) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]bool, len(seasons))
	for _, season := range seasons {
		wanted[season] = true
	}

	var out []models.Event
	for _, ev := range s.events {
		if league := models.Str(ev.Metadata, "league_id"); league == nil || *league != leagueID {
			continue
		}
		if len(wanted) > 0 {
			season := models.Str(ev.Metadata, "season")
			if season == nil || !wanted[*season] {
				continue
			}
		}
		out = append(out, ev)
	}
	return out, nil
}

// CurrentOdds returns the league's events as the current board.
func (s *MemoryEventSource) CurrentOdds(ctx context.Context, leagueID string) ([]models.Event, error) {
	return s.LoadGames(ctx, leagueID, nil)
}

// OddsHistory returns the league's events as movement rows.
func (s *MemoryEventSource) OddsHistory(ctx context.Context, leagueID string) ([]models.Event, error) {
	return s.LoadGames(ctx, leagueID, nil)
}
