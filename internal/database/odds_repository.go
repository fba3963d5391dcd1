package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/dock108/theoryline/internal/models"
)

// OddsRepository serves the current odds board and historical odds movement.
// Snapshot payloads share the Event JSONB layout used by game rows.
type OddsRepository struct {
	pool   DatabasePool
	logger *logrus.Logger
}

// NewOddsRepository creates a new odds repository.
func NewOddsRepository(pool DatabasePool, logger *logrus.Logger) *OddsRepository {
	return &OddsRepository{pool: pool, logger: logger}
}

// CurrentOdds fetches the latest snapshot per upcoming game for a league.
func (r *OddsRepository) CurrentOdds(ctx context.Context, leagueID string) ([]models.Event, error) {
	query := `
		SELECT DISTINCT ON (game_id) payload
		FROM odds_snapshots
		WHERE league_id = $1
		ORDER BY game_id, captured_at DESC
	`

	rows, err := r.pool.Query(ctx, query, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to load current odds: %w", err)
	}
	return r.decode(rows)
}

// OddsHistory fetches every stored snapshot for a league in capture order.
func (r *OddsRepository) OddsHistory(ctx context.Context, leagueID string) ([]models.Event, error) {
	query := `
		SELECT payload
		FROM odds_snapshots
		WHERE league_id = $1
		ORDER BY game_id, captured_at
	`

	rows, err := r.pool.Query(ctx, query, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to load odds history: %w", err)
	}
	return r.decode(rows)
}

func (r *OddsRepository) decode(rows pgx.Rows) ([]models.Event, error) {
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			r.logger.WithError(err).Warn("skipping unreadable odds row")
			continue
		}
		var ev models.Event
		if err := json.Unmarshal(payload, &ev); err != nil {
			r.logger.WithError(err).Warn("skipping undecodable odds payload")
			continue
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate odds rows: %w", err)
	}

	return events, nil
}
