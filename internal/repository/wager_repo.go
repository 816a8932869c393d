package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evetabi/betboard/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// WagerRepository handles all database operations for Wagers.
type WagerRepository struct {
	db *sqlx.DB
}

// NewWagerRepository creates a new WagerRepository.
func NewWagerRepository(db *sqlx.DB) *WagerRepository {
	return &WagerRepository{db: db}
}

// Create inserts a new wager in PENDING status.
func (r *WagerRepository) Create(ctx context.Context, w *domain.Wager) error {
	query := `
		INSERT INTO wagers
			(id, user_id, game_id, category, team, line, price, stake, status, placed_at)
		VALUES
			(:id, :user_id, :game_id, :category, :team, :line, :price, :stake, :status, :placed_at)`
	if _, err := r.db.NamedExecContext(ctx, query, w); err != nil {
		return fmt.Errorf("wager_repo.Create: %w", err)
	}
	return nil
}

// GetByID fetches a wager by its primary key.
func (r *WagerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wager, error) {
	var w domain.Wager
	err := r.db.GetContext(ctx, &w, `SELECT * FROM wagers WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWagerNotFound
		}
		return nil, fmt.Errorf("wager_repo.GetByID: %w", err)
	}
	return &w, nil
}

// GetByUser returns a bettor's wager history, newest first.
func (r *WagerRepository) GetByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Wager, error) {
	var wagers []*domain.Wager
	err := r.db.SelectContext(ctx, &wagers,
		`SELECT * FROM wagers WHERE user_id = $1 ORDER BY placed_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("wager_repo.GetByUser: %w", err)
	}
	return wagers, nil
}

// GetPendingByGame returns every wager still awaiting settlement for a game.
// The status filter here is the exclusivity mechanism that keeps settlement
// idempotent: already-terminal wagers never re-enter a grading batch.
func (r *WagerRepository) GetPendingByGame(ctx context.Context, gameID uuid.UUID) ([]*domain.Wager, error) {
	var wagers []*domain.Wager
	err := r.db.SelectContext(ctx, &wagers,
		`SELECT * FROM wagers WHERE game_id = $1 AND status = 'PENDING' ORDER BY placed_at ASC`,
		gameID)
	if err != nil {
		return nil, fmt.Errorf("wager_repo.GetPendingByGame: %w", err)
	}
	return wagers, nil
}

// UpdateResult writes a wager's terminal status and profit. Only PENDING rows
// are touched, so a concurrent or repeated settlement run cannot re-grade:
// a zero rows-affected result surfaces as ErrWagerAlreadySettled.
func (r *WagerRepository) UpdateResult(ctx context.Context, id uuid.UUID, status domain.WagerStatus, profit decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE wagers
		SET status     = $1,
		    profit     = $2,
		    settled_at = now()
		WHERE id = $3 AND status = 'PENDING'`,
		string(status), profit, id)
	if err != nil {
		return fmt.Errorf("wager_repo.UpdateResult: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrWagerAlreadySettled
	}
	return nil
}

// Leaderboard aggregates every bettor's record, ordered by total profit.
func (r *WagerRepository) Leaderboard(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	var entries []*domain.LeaderboardEntry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT user_id,
		       COUNT(*)                                   AS total_wagers,
		       COUNT(*) FILTER (WHERE status = 'WON')     AS won,
		       COUNT(*) FILTER (WHERE status = 'LOST')    AS lost,
		       COUNT(*) FILTER (WHERE status = 'PUSH')    AS push,
		       COALESCE(SUM(stake), 0)                    AS total_staked,
		       COALESCE(SUM(profit), 0)                   AS total_profit
		FROM wagers
		GROUP BY user_id
		ORDER BY total_profit DESC
		LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("wager_repo.Leaderboard: %w", err)
	}
	for _, e := range entries {
		e.Derive()
	}
	return entries, nil
}

// CountByStatus returns how many wagers are pending vs settled, for the
// dashboard summary.
func (r *WagerRepository) CountByStatus(ctx context.Context) (pending, settled int, err error) {
	row := struct {
		Pending int `db:"pending"`
		Settled int `db:"settled"`
	}{}
	err = r.db.GetContext(ctx, &row, `
		SELECT COUNT(*) FILTER (WHERE status = 'PENDING')  AS pending,
		       COUNT(*) FILTER (WHERE status <> 'PENDING') AS settled
		FROM wagers`)
	if err != nil {
		return 0, 0, fmt.Errorf("wager_repo.CountByStatus: %w", err)
	}
	return row.Pending, row.Settled, nil
}
