package service

import (
	"context"
	"time"

	"github.com/evetabi/betboard/internal/cache"
	"github.com/evetabi/betboard/internal/config"
	"github.com/evetabi/betboard/internal/domain"
	"github.com/evetabi/betboard/internal/metrics"
	"github.com/evetabi/betboard/internal/oddsapi"
	"go.uber.org/zap"
)

// OddsFetcher pulls raw odds payloads from the provider.
type OddsFetcher interface {
	FetchOdds(ctx context.Context, sport string) ([]oddsapi.GamePayload, error)
}

// GameUpserter persists games keyed by their provider id.
type GameUpserter interface {
	UpsertByExternalID(ctx context.Context, g *domain.Game) (*domain.Game, error)
}

// QuoteAppender appends quote snapshots to the history.
type QuoteAppender interface {
	Append(ctx context.Context, q *domain.Quote) error
}

// IngestService runs the odds ingestion pipeline: fetch the provider's odds
// for a sport, upsert each game and append one normalized quote snapshot.
type IngestService struct {
	fetcher    OddsFetcher
	games      GameUpserter
	quotes     QuoteAppender
	quoteCache *cache.QuoteCache // nil-safe, optional
	cfg        *config.OddsAPIConfig
	logger     *zap.Logger
}

// NewIngestService creates an IngestService. quoteCache may be nil.
func NewIngestService(fetcher OddsFetcher, games GameUpserter, quotes QuoteAppender, quoteCache *cache.QuoteCache, cfg *config.OddsAPIConfig, logger *zap.Logger) *IngestService {
	return &IngestService{
		fetcher:    fetcher,
		games:      games,
		quotes:     quotes,
		quoteCache: quoteCache,
		cfg:        cfg,
		logger:     logger,
	}
}

// IngestOdds executes one ingestion run for a sport and always returns a
// report. Failures of individual games are recorded in the report and do not
// abort the run; a provider fetch failure degrades to an empty batch with an
// advisory rather than an error.
func (s *IngestService) IngestOdds(ctx context.Context, sport string) (*domain.RunReport, error) {
	if sport == "" {
		return nil, domain.ErrMissingSport
	}

	report := &domain.RunReport{}

	payloads, err := s.fetcher.FetchOdds(ctx, sport)
	if err != nil {
		metrics.ProviderFailures.WithLabelValues("odds").Inc()
		s.logger.Warn("odds fetch failed, treating as empty batch",
			zap.String("sport", sport), zap.Error(err))
		report.Advisory = "provider odds fetch failed; no games processed"
		return report, nil
	}

	report.ItemsTotal = len(payloads)
	if len(payloads) == 0 {
		report.Advisory = "provider returned no games for sport"
		return report, nil
	}

	for i := range payloads {
		p := &payloads[i]
		if err := s.processGame(ctx, sport, p); err != nil {
			metrics.ItemErrors.WithLabelValues("odds").Inc()
			report.AddError("game %s (%s @ %s): %v", p.ID, p.AwayTeam, p.HomeTeam, err)
			continue
		}
		report.ItemsProcessed++
		metrics.GamesProcessed.WithLabelValues(sport).Inc()
	}

	s.logger.Info("odds ingestion run finished",
		zap.String("sport", sport),
		zap.Int("processed", report.ItemsProcessed),
		zap.Int("total", report.ItemsTotal),
		zap.Int("errors", len(report.Errors)))
	return report, nil
}

// processGame handles one payload end to end: upsert the game, normalize the
// quote, persist it and refresh the cache.
func (s *IngestService) processGame(ctx context.Context, sport string, p *oddsapi.GamePayload) error {
	game, err := s.games.UpsertByExternalID(ctx, &domain.Game{
		ExternalID: p.ID,
		Sport:      sport,
		GameTime:   p.CommenceTime,
		AwayTeam:   p.AwayTeam,
		HomeTeam:   p.HomeTeam,
	})
	if err != nil {
		return err
	}

	quote, err := BuildQuote(p, game.ID, s.cfg.PreferredBookmaker, time.Now().UTC())
	if err != nil {
		return err
	}
	if quote.IsEmpty() {
		s.logger.Debug("skipping quote with no resolvable markets",
			zap.String("game_id", game.ID.String()),
			zap.String("bookmaker", quote.Bookmaker))
		return nil
	}

	if err := s.quotes.Append(ctx, quote); err != nil {
		return err
	}
	metrics.QuotesWritten.Inc()

	if err := s.quoteCache.SetLatest(ctx, quote); err != nil {
		// Cache writes are best-effort: the database row is already committed.
		s.logger.Warn("quote cache write failed", zap.Error(err))
	}
	return nil
}
