package service

// In-memory fakes shared by the service tests. Each implements exactly the
// interfaces its consuming service declares.

import (
	"context"
	"time"

	"github.com/evetabi/betboard/internal/domain"
	"github.com/evetabi/betboard/internal/oddsapi"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── provider fakes ────────────────────────────────────────────────────────────

type stubOddsFetcher struct {
	payloads []oddsapi.GamePayload
	err      error
}

func (f *stubOddsFetcher) FetchOdds(_ context.Context, _ string) ([]oddsapi.GamePayload, error) {
	return f.payloads, f.err
}

type stubScoresFetcher struct {
	payloads []oddsapi.ScorePayload
	err      error

	gotDaysFrom int
}

func (f *stubScoresFetcher) FetchScores(_ context.Context, _ string, daysFrom int) ([]oddsapi.ScorePayload, error) {
	f.gotDaysFrom = daysFrom
	return f.payloads, f.err
}

type stubSettler struct {
	graded int
	err    error

	calls []*domain.Game
}

func (s *stubSettler) SettleGame(_ context.Context, g *domain.Game) (int, error) {
	s.calls = append(s.calls, g)
	return s.graded, s.err
}

// ── store fakes ───────────────────────────────────────────────────────────────

type memGameStore struct {
	byExternal map[string]*domain.Game
	byID       map[uuid.UUID]*domain.Game

	scoreWrites int
}

func newMemGameStore(games ...*domain.Game) *memGameStore {
	s := &memGameStore{
		byExternal: make(map[string]*domain.Game),
		byID:       make(map[uuid.UUID]*domain.Game),
	}
	for _, g := range games {
		s.byExternal[g.ExternalID] = g
		s.byID[g.ID] = g
	}
	return s
}

func (s *memGameStore) UpsertByExternalID(_ context.Context, g *domain.Game) (*domain.Game, error) {
	if existing, ok := s.byExternal[g.ExternalID]; ok {
		existing.GameTime = g.GameTime
		return existing, nil
	}
	stored := *g
	stored.ID = uuid.New()
	s.byExternal[stored.ExternalID] = &stored
	s.byID[stored.ID] = &stored
	return &stored, nil
}

func (s *memGameStore) GetByExternalID(_ context.Context, externalID string) (*domain.Game, error) {
	g, ok := s.byExternal[externalID]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return g, nil
}

func (s *memGameStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Game, error) {
	g, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return g, nil
}

func (s *memGameStore) UpdateScores(_ context.Context, id uuid.UUID, away, home *int, completed bool) error {
	g, ok := s.byID[id]
	if !ok {
		return domain.ErrGameNotFound
	}
	g.AwayScore = away
	g.HomeScore = home
	g.Completed = g.Completed || completed
	s.scoreWrites++
	return nil
}

type memQuoteStore struct {
	appended []*domain.Quote
}

func (s *memQuoteStore) Append(_ context.Context, q *domain.Quote) error {
	s.appended = append(s.appended, q)
	return nil
}

func (s *memQuoteStore) LatestForGame(_ context.Context, gameID uuid.UUID) (*domain.Quote, error) {
	for i := len(s.appended) - 1; i >= 0; i-- {
		if s.appended[i].GameID == gameID {
			return s.appended[i], nil
		}
	}
	return nil, domain.ErrQuoteNotFound
}

type memWagerStore struct {
	wagers map[uuid.UUID]*domain.Wager

	// failOn injects a write error for specific wager ids.
	failOn map[uuid.UUID]error
}

func newMemWagerStore(wagers ...*domain.Wager) *memWagerStore {
	s := &memWagerStore{
		wagers: make(map[uuid.UUID]*domain.Wager),
		failOn: make(map[uuid.UUID]error),
	}
	for _, w := range wagers {
		s.wagers[w.ID] = w
	}
	return s
}

func (s *memWagerStore) Create(_ context.Context, w *domain.Wager) error {
	s.wagers[w.ID] = w
	return nil
}

func (s *memWagerStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Wager, error) {
	w, ok := s.wagers[id]
	if !ok {
		return nil, domain.ErrWagerNotFound
	}
	return w, nil
}

func (s *memWagerStore) GetByUser(_ context.Context, userID uuid.UUID, limit, _ int) ([]*domain.Wager, error) {
	var out []*domain.Wager
	for _, w := range s.wagers {
		if w.UserID == userID && len(out) < limit {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *memWagerStore) GetPendingByGame(_ context.Context, gameID uuid.UUID) ([]*domain.Wager, error) {
	var out []*domain.Wager
	for _, w := range s.wagers {
		if w.GameID == gameID && w.Status == domain.WagerStatusPending {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *memWagerStore) UpdateResult(_ context.Context, id uuid.UUID, status domain.WagerStatus, profit decimal.Decimal) error {
	if err, ok := s.failOn[id]; ok {
		return err
	}
	w, ok := s.wagers[id]
	if !ok || w.Status != domain.WagerStatusPending {
		return domain.ErrWagerAlreadySettled
	}
	now := time.Now()
	w.Status = status
	w.Profit = &profit
	w.SettledAt = &now
	return nil
}
