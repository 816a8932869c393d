// Package repository contains the PostgreSQL persistence layer, one
// repository per entity.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/evetabi/betboard/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// GameRepository handles all database operations for Games.
type GameRepository struct {
	db *sqlx.DB
}

// NewGameRepository creates a new GameRepository.
func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

// UpsertByExternalID creates the game on first sighting or, when the external
// id already exists, updates only the scheduled time. Teams and identity are
// immutable after creation; scores are owned by UpdateScores.
func (r *GameRepository) UpsertByExternalID(ctx context.Context, g *domain.Game) (*domain.Game, error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	var out domain.Game
	err := r.db.GetContext(ctx, &out, `
		INSERT INTO games (id, external_id, sport, game_time, away_team, home_team, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		ON CONFLICT (external_id) DO UPDATE
		SET game_time  = EXCLUDED.game_time,
		    updated_at = now()
		RETURNING *`,
		g.ID, g.ExternalID, g.Sport, g.GameTime, g.AwayTeam, g.HomeTeam)
	if err != nil {
		return nil, fmt.Errorf("game_repo.UpsertByExternalID: %w", err)
	}
	return &out, nil
}

// GetByID fetches a game by its primary key.
func (r *GameRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error) {
	var g domain.Game
	err := r.db.GetContext(ctx, &g, `SELECT * FROM games WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGameNotFound
		}
		return nil, fmt.Errorf("game_repo.GetByID: %w", err)
	}
	return &g, nil
}

// GetByExternalID fetches a game by the provider-assigned identifier.
func (r *GameRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.Game, error) {
	var g domain.Game
	err := r.db.GetContext(ctx, &g, `SELECT * FROM games WHERE external_id = $1`, externalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGameNotFound
		}
		return nil, fmt.Errorf("game_repo.GetByExternalID: %w", err)
	}
	return &g, nil
}

// UpdateScores writes the current scores and completion flag. The completion
// flag is monotonic: once a game is completed a later payload can never revert
// it, which the OR below enforces at the row level.
func (r *GameRepository) UpdateScores(ctx context.Context, id uuid.UUID, away, home *int, completed bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE games
		SET away_score   = $1,
		    home_score   = $2,
		    is_completed = is_completed OR $3,
		    updated_at   = now()
		WHERE id = $4`,
		away, home, completed, id)
	if err != nil {
		return fmt.Errorf("game_repo.UpdateScores: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

// ListUpcoming returns games that have not started yet, soonest first.
func (r *GameRepository) ListUpcoming(ctx context.Context, now time.Time, limit int) ([]*domain.Game, error) {
	var games []*domain.Game
	err := r.db.SelectContext(ctx, &games,
		`SELECT * FROM games WHERE game_time > $1 AND is_completed = FALSE ORDER BY game_time ASC LIMIT $2`,
		now, limit)
	if err != nil {
		return nil, fmt.Errorf("game_repo.ListUpcoming: %w", err)
	}
	return games, nil
}

// CountByCompletion returns the total number of games and how many of them are
// completed, for the dashboard summary.
func (r *GameRepository) CountByCompletion(ctx context.Context) (total, completed int, err error) {
	row := struct {
		Total     int `db:"total"`
		Completed int `db:"completed"`
	}{}
	err = r.db.GetContext(ctx, &row, `
		SELECT COUNT(*)                                   AS total,
		       COUNT(*) FILTER (WHERE is_completed)       AS completed
		FROM games`)
	if err != nil {
		return 0, 0, fmt.Errorf("game_repo.CountByCompletion: %w", err)
	}
	return row.Total, row.Completed, nil
}
