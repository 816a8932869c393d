package service

import (
	"context"

	"github.com/evetabi/betboard/internal/domain"
)

// LeaderboardReader aggregates bettor records.
type LeaderboardReader interface {
	Leaderboard(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error)
}

// GameCounter summarizes the game table.
type GameCounter interface {
	CountByCompletion(ctx context.Context) (total, completed int, err error)
}

// WagerCounter summarizes the wager table.
type WagerCounter interface {
	CountByStatus(ctx context.Context) (pending, settled int, err error)
}

// StatsService assembles read-only aggregates for the dashboard endpoints.
type StatsService struct {
	leaderboard LeaderboardReader
	games       GameCounter
	wagers      WagerCounter
}

// NewStatsService creates a StatsService.
func NewStatsService(leaderboard LeaderboardReader, games GameCounter, wagers WagerCounter) *StatsService {
	return &StatsService{leaderboard: leaderboard, games: games, wagers: wagers}
}

// Leaderboard returns up to limit bettors ranked by total profit.
func (s *StatsService) Leaderboard(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.leaderboard.Leaderboard(ctx, limit)
}

// Dashboard returns the system-wide summary counts.
func (s *StatsService) Dashboard(ctx context.Context) (*domain.DashboardSummary, error) {
	total, completed, err := s.games.CountByCompletion(ctx)
	if err != nil {
		return nil, err
	}
	pending, settled, err := s.wagers.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.DashboardSummary{
		Games:          total,
		CompletedGames: completed,
		PendingWagers:  pending,
		SettledWagers:  settled,
	}, nil
}
