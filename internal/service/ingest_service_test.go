package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/evetabi/betboard/internal/config"
	"github.com/evetabi/betboard/internal/domain"
	"github.com/evetabi/betboard/internal/oddsapi"
	"go.uber.org/zap"
)

func oddsCfg() *config.OddsAPIConfig {
	return &config.OddsAPIConfig{
		PreferredBookmaker: "draftkings",
		ScoresDaysFrom:     1,
	}
}

func mlPayload(extID, away, home string) oddsapi.GamePayload {
	return oddsapi.GamePayload{
		ID:           extID,
		AwayTeam:     away,
		HomeTeam:     home,
		CommenceTime: time.Now().Add(time.Hour),
		Bookmakers: []oddsapi.BookmakerPayload{{
			Key: "draftkings",
			Markets: []oddsapi.MarketPayload{{
				Key: oddsapi.MarketMoneyline,
				Outcomes: []oddsapi.OutcomePayload{
					{Name: away, Price: 120},
					{Name: home, Price: -140},
				},
			}},
		}},
	}
}

func TestIngestOddsMissingSport(t *testing.T) {
	svc := NewIngestService(&stubOddsFetcher{}, newMemGameStore(), &memQuoteStore{}, nil, oddsCfg(), zap.NewNop())
	_, err := svc.IngestOdds(context.Background(), "")
	if !errors.Is(err, domain.ErrMissingSport) {
		t.Fatalf("err = %v, want ErrMissingSport", err)
	}
}

func TestIngestOddsHappyPath(t *testing.T) {
	games := newMemGameStore()
	quotes := &memQuoteStore{}
	fetcher := &stubOddsFetcher{payloads: []oddsapi.GamePayload{
		mlPayload("ext-1", "Duke Blue Devils", "North Carolina Tar Heels"),
		mlPayload("ext-2", "Kansas Jayhawks", "Kentucky Wildcats"),
	}}
	svc := NewIngestService(fetcher, games, quotes, nil, oddsCfg(), zap.NewNop())

	report, err := svc.IngestOdds(context.Background(), "basketball_ncaab")
	if err != nil {
		t.Fatalf("IngestOdds: %v", err)
	}
	if report.ItemsProcessed != 2 || report.ItemsTotal != 2 {
		t.Errorf("processed/total = %d/%d, want 2/2", report.ItemsProcessed, report.ItemsTotal)
	}
	if !report.Clean() {
		t.Errorf("unexpected errors: %v", report.Errors)
	}
	if len(games.byExternal) != 2 {
		t.Errorf("games stored = %d, want 2", len(games.byExternal))
	}
	if len(quotes.appended) != 2 {
		t.Errorf("quotes appended = %d, want 2", len(quotes.appended))
	}
	for _, q := range quotes.appended {
		if q.AwayML == nil || q.HomeML == nil {
			t.Errorf("quote %s missing moneyline", q.ID)
		}
	}
}

func TestIngestOddsRepeatedExternalIDDoesNotDuplicate(t *testing.T) {
	games := newMemGameStore()
	quotes := &memQuoteStore{}
	fetcher := &stubOddsFetcher{payloads: []oddsapi.GamePayload{
		mlPayload("ext-1", "Duke Blue Devils", "North Carolina Tar Heels"),
	}}
	svc := NewIngestService(fetcher, games, quotes, nil, oddsCfg(), zap.NewNop())

	for i := 0; i < 2; i++ {
		if _, err := svc.IngestOdds(context.Background(), "basketball_ncaab"); err != nil {
			t.Fatalf("IngestOdds: %v", err)
		}
	}
	if len(games.byExternal) != 1 {
		t.Errorf("games stored = %d, want 1 after repeated ingestion", len(games.byExternal))
	}
	// The quote history grows on every run.
	if len(quotes.appended) != 2 {
		t.Errorf("quotes appended = %d, want 2", len(quotes.appended))
	}
	if quotes.appended[0].GameID != quotes.appended[1].GameID {
		t.Error("both snapshots should reference the same game")
	}
}

func TestIngestOddsFetchFailureDegradesToAdvisory(t *testing.T) {
	fetcher := &stubOddsFetcher{err: errors.New("502 from provider")}
	svc := NewIngestService(fetcher, newMemGameStore(), &memQuoteStore{}, nil, oddsCfg(), zap.NewNop())

	report, err := svc.IngestOdds(context.Background(), "basketball_ncaab")
	if err != nil {
		t.Fatalf("fetch failure must not surface as an error, got %v", err)
	}
	if report.Advisory == "" {
		t.Error("report should carry an advisory")
	}
	if report.ItemsProcessed != 0 || report.ItemsTotal != 0 {
		t.Errorf("processed/total = %d/%d, want 0/0", report.ItemsProcessed, report.ItemsTotal)
	}
}

func TestIngestOddsEmptyBatch(t *testing.T) {
	svc := NewIngestService(&stubOddsFetcher{}, newMemGameStore(), &memQuoteStore{}, nil, oddsCfg(), zap.NewNop())

	report, err := svc.IngestOdds(context.Background(), "basketball_ncaab")
	if err != nil {
		t.Fatalf("IngestOdds: %v", err)
	}
	if report.Advisory == "" {
		t.Error("empty batch should carry an advisory")
	}
}

func TestIngestOddsIsolatesPerGameFailures(t *testing.T) {
	noBooks := oddsapi.GamePayload{ID: "ext-bad", AwayTeam: "A", HomeTeam: "B"}
	games := newMemGameStore()
	quotes := &memQuoteStore{}
	fetcher := &stubOddsFetcher{payloads: []oddsapi.GamePayload{
		noBooks,
		mlPayload("ext-ok", "Kansas Jayhawks", "Kentucky Wildcats"),
	}}
	svc := NewIngestService(fetcher, games, quotes, nil, oddsCfg(), zap.NewNop())

	report, err := svc.IngestOdds(context.Background(), "basketball_ncaab")
	if err != nil {
		t.Fatalf("IngestOdds: %v", err)
	}
	if report.ItemsProcessed != 1 {
		t.Errorf("processed = %d, want 1", report.ItemsProcessed)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", report.Errors)
	}
	if len(quotes.appended) != 1 {
		t.Errorf("quotes appended = %d, want 1", len(quotes.appended))
	}
}

func TestIngestOddsSkipsEmptyQuotes(t *testing.T) {
	// A bookmaker exists but offers no recognizable market: the game is still
	// tracked, the empty snapshot is not persisted.
	empty := oddsapi.GamePayload{
		ID:       "ext-empty",
		AwayTeam: "A",
		HomeTeam: "B",
		Bookmakers: []oddsapi.BookmakerPayload{{
			Key: "draftkings",
		}},
	}
	games := newMemGameStore()
	quotes := &memQuoteStore{}
	svc := NewIngestService(&stubOddsFetcher{payloads: []oddsapi.GamePayload{empty}}, games, quotes, nil, oddsCfg(), zap.NewNop())

	report, err := svc.IngestOdds(context.Background(), "basketball_ncaab")
	if err != nil {
		t.Fatalf("IngestOdds: %v", err)
	}
	if report.ItemsProcessed != 1 {
		t.Errorf("processed = %d, want 1", report.ItemsProcessed)
	}
	if len(games.byExternal) != 1 {
		t.Errorf("games stored = %d, want 1", len(games.byExternal))
	}
	if len(quotes.appended) != 0 {
		t.Errorf("quotes appended = %d, want 0", len(quotes.appended))
	}
}
