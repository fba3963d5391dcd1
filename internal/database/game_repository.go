package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dock108/theoryline/internal/models"
)

// GameRepository loads settled historical games. Game payloads are stored as
// one JSONB document per game, matching the Event sub-map layout.
type GameRepository struct {
	pool   DatabasePool
	logger *logrus.Logger
}

// NewGameRepository creates a new game repository.
func NewGameRepository(pool DatabasePool, logger *logrus.Logger) *GameRepository {
	return &GameRepository{pool: pool, logger: logger}
}

// LoadGames fetches the settled games for a league, optionally filtered to a
// season set. A row whose payload cannot be decoded is logged and skipped so
// one corrupt document never aborts a season load.
func (r *GameRepository) LoadGames(ctx context.Context, leagueID string, seasons []string) ([]models.Event, error) {
	query := `
		SELECT payload
		FROM games
		WHERE league_id = $1
		  AND settled = true
		  AND (cardinality($2::text[]) = 0 OR season = ANY($2))
		ORDER BY game_date, game_id
	`

	rows, err := r.pool.Query(ctx, query, leagueID, seasons)
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}
	defer rows.Close()

	var games []models.Event
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			r.logger.WithError(err).Warn("skipping unreadable game row")
			continue
		}
		var ev models.Event
		if err := json.Unmarshal(payload, &ev); err != nil {
			r.logger.WithError(err).Warn("skipping undecodable game payload")
			continue
		}
		games = append(games, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}

	return games, nil
}
