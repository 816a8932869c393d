package service

import (
	"context"
	"errors"
	"time"

	"github.com/evetabi/betboard/internal/cache"
	"github.com/evetabi/betboard/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// GameGetter fetches games by primary key.
type GameGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error)
}

// WagerStore provides the wager operations placement and lookup need.
type WagerStore interface {
	Create(ctx context.Context, w *domain.Wager) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wager, error)
	GetByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Wager, error)
}

// QuoteReader fetches the latest quote for a game.
type QuoteReader interface {
	LatestForGame(ctx context.Context, gameID uuid.UUID) (*domain.Quote, error)
}

// PlaceWagerInput carries everything needed to place one wager.
type PlaceWagerInput struct {
	UserID   uuid.UUID
	GameID   uuid.UUID
	Category domain.BetCategory
	Team     *string
	Line     *decimal.Decimal
	Price    int
	Stake    decimal.Decimal
}

// WagerService validates and persists wagers.
type WagerService struct {
	games      GameGetter
	wagers     WagerStore
	quotes     QuoteReader
	quoteCache *cache.QuoteCache // nil-safe, optional
	logger     *zap.Logger
}

// NewWagerService creates a WagerService. quoteCache may be nil.
func NewWagerService(games GameGetter, wagers WagerStore, quotes QuoteReader, quoteCache *cache.QuoteCache, logger *zap.Logger) *WagerService {
	return &WagerService{
		games:      games,
		wagers:     wagers,
		quotes:     quotes,
		quoteCache: quoteCache,
		logger:     logger,
	}
}

// PlaceWager validates input against the game and creates a PENDING wager.
// Wagers on completed games are rejected: they would race the settlement run.
func (s *WagerService) PlaceWager(ctx context.Context, in PlaceWagerInput) (*domain.Wager, error) {
	if !in.Category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}
	if !domain.ValidAmericanPrice(in.Price) {
		return nil, domain.ErrInvalidPrice
	}
	if !in.Stake.IsPositive() {
		return nil, domain.ErrInvalidStake
	}
	if in.Category.NeedsLine() && in.Line == nil {
		return nil, domain.ErrMissingLine
	}

	game, err := s.games.GetByID(ctx, in.GameID)
	if err != nil {
		return nil, err
	}
	if game.Completed {
		return nil, domain.ErrGameCompleted
	}
	if in.Category.NeedsTeam() {
		if in.Team == nil || !game.HasTeam(*in.Team) {
			return nil, domain.ErrMissingTeam
		}
	}

	w := &domain.Wager{
		ID:       uuid.New(),
		UserID:   in.UserID,
		GameID:   in.GameID,
		Category: in.Category,
		Team:     in.Team,
		Line:     in.Line,
		Price:    in.Price,
		Stake:    in.Stake,
		Status:   domain.WagerStatusPending,
		PlacedAt: time.Now().UTC(),
	}
	if err := s.wagers.Create(ctx, w); err != nil {
		return nil, err
	}

	s.logger.Info("wager placed",
		zap.String("wager_id", w.ID.String()),
		zap.String("game_id", w.GameID.String()),
		zap.String("category", string(w.Category)),
		zap.String("stake", w.Stake.String()))
	return w, nil
}

// GetWager fetches one wager by id.
func (s *WagerService) GetWager(ctx context.Context, id uuid.UUID) (*domain.Wager, error) {
	return s.wagers.GetByID(ctx, id)
}

// ListUserWagers returns a bettor's wager history, newest first.
func (s *WagerService) ListUserWagers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Wager, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.wagers.GetByUser(ctx, userID, limit, offset)
}

// LatestQuote returns the freshest quote for a game, trying the cache first
// and falling through to the database on a miss.
func (s *WagerService) LatestQuote(ctx context.Context, gameID uuid.UUID) (*domain.Quote, error) {
	if q, err := s.quoteCache.GetLatest(ctx, gameID); err == nil {
		return q, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("quote cache read failed", zap.Error(err))
	}

	q, err := s.quotes.LatestForGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if err := s.quoteCache.SetLatest(ctx, q); err != nil {
		s.logger.Warn("quote cache write failed", zap.Error(err))
	}
	return q, nil
}
