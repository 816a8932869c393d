package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evetabi/betboard/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// QuoteRepository handles the append-only quote history. Quotes are never
// updated or deleted; every ingestion run appends a fresh snapshot.
type QuoteRepository struct {
	db *sqlx.DB
}

// NewQuoteRepository creates a new QuoteRepository.
func NewQuoteRepository(db *sqlx.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// Append inserts one quote snapshot.
func (r *QuoteRepository) Append(ctx context.Context, q *domain.Quote) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	query := `
		INSERT INTO quotes
			(id, game_id, bookmaker, away_ml, home_ml, away_spread, home_spread,
			 spread_price, total_line, over_price, under_price, fetched_at, created_at)
		VALUES
			(:id, :game_id, :bookmaker, :away_ml, :home_ml, :away_spread, :home_spread,
			 :spread_price, :total_line, :over_price, :under_price, :fetched_at, now())`
	if _, err := r.db.NamedExecContext(ctx, query, q); err != nil {
		return fmt.Errorf("quote_repo.Append: %w", err)
	}
	return nil
}

// LatestForGame returns the most recent quote for a game — the authoritative
// lines for new wagers.
func (r *QuoteRepository) LatestForGame(ctx context.Context, gameID uuid.UUID) (*domain.Quote, error) {
	var q domain.Quote
	err := r.db.GetContext(ctx, &q,
		`SELECT * FROM quotes WHERE game_id = $1 ORDER BY fetched_at DESC LIMIT 1`,
		gameID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("quote_repo.LatestForGame: %w", err)
	}
	return &q, nil
}

// HistoryForGame returns all quote snapshots for a game, newest first.
func (r *QuoteRepository) HistoryForGame(ctx context.Context, gameID uuid.UUID, limit int) ([]*domain.Quote, error) {
	var quotes []*domain.Quote
	err := r.db.SelectContext(ctx, &quotes,
		`SELECT * FROM quotes WHERE game_id = $1 ORDER BY fetched_at DESC LIMIT $2`,
		gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("quote_repo.HistoryForGame: %w", err)
	}
	return quotes, nil
}
