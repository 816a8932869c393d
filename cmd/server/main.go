// Package main is the entry point for the evetabi betboard server. It wires
// together the odds/score ingestion pipelines, the settlement engine and the
// HTTP API, and runs them until interrupted.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/evetabi/betboard/internal/api"
	"github.com/evetabi/betboard/internal/cache"
	"github.com/evetabi/betboard/internal/config"
	"github.com/evetabi/betboard/internal/logger"
	"github.com/evetabi/betboard/internal/metrics"
	"github.com/evetabi/betboard/internal/oddsapi"
	"github.com/evetabi/betboard/internal/repository"
	"github.com/evetabi/betboard/internal/scheduler"
	"github.com/evetabi/betboard/internal/service"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"go.uber.org/zap"
)

func main() {
	// ── 1. Config + logger ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	log, err := logger.New("betboard", cfg.Server.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting betboard server",
		zap.String("port", cfg.Server.Port),
		zap.Strings("sports", cfg.OddsAPI.Sports))

	// ── 2. Database ───────────────────────────────────────────────────────────
	db, err := sqlx.Connect("postgres", cfg.DB.DSN)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	log.Info("database connected")

	// ── 3. Migrations ─────────────────────────────────────────────────────────
	if err = runMigrations(db, "migrations", log); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}
	log.Info("migrations applied")

	// ── 4. Redis quote cache (optional) ───────────────────────────────────────
	var quoteCache *cache.QuoteCache
	if cfg.Redis.Addr != "" {
		rdb, err := cache.ConnectRedis(cfg.Redis.Addr)
		if err != nil {
			log.Fatal("redis connection failed", zap.Error(err))
		}
		defer rdb.Close()
		quoteCache = cache.NewQuoteCache(rdb, cfg.Redis.QuoteTTL)
		log.Info("redis quote cache enabled", zap.String("addr", cfg.Redis.Addr))
	} else {
		log.Info("redis quote cache disabled")
	}

	// ── 5. Repositories ───────────────────────────────────────────────────────
	gameRepo := repository.NewGameRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	wagerRepo := repository.NewWagerRepository(db)

	// ── 6. Provider client + services ─────────────────────────────────────────
	oddsClient := oddsapi.NewClient(&cfg.OddsAPI)

	settlementSvc := service.NewSettlementService(wagerRepo, log)
	ingestSvc := service.NewIngestService(oddsClient, gameRepo, quoteRepo, quoteCache, &cfg.OddsAPI, log)
	scoreSvc := service.NewScoreService(oddsClient, gameRepo, settlementSvc, &cfg.OddsAPI, log)
	wagerSvc := service.NewWagerService(gameRepo, wagerRepo, quoteRepo, quoteCache, log)
	statsSvc := service.NewStatsService(wagerRepo, gameRepo, wagerRepo)

	// ── 7. Root context + signal handling ─────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 8. Scheduler ──────────────────────────────────────────────────────────
	if cfg.Poll.Enabled {
		sched := scheduler.NewScheduler(ingestSvc, scoreSvc, cfg, log)
		sched.Start(ctx)
	} else {
		log.Info("polling disabled, ingestion runs only via the API")
	}

	// ── 9. Metrics server ─────────────────────────────────────────────────────
	var metricsSrv *http.Server
	if cfg.Server.MetricsPort != "" {
		metricsSrv = metrics.StartServer(cfg.Server.MetricsPort, func(ctx context.Context) error {
			return db.PingContext(ctx)
		})
		log.Info("metrics server listening", zap.String("port", cfg.Server.MetricsPort))
	}

	// ── 10. HTTP Router ───────────────────────────────────────────────────────
	router := api.SetupRouter(api.RouterDeps{
		IngestSvc: ingestSvc,
		ScoreSvc:  scoreSvc,
		WagerSvc:  wagerSvc,
		StatsSvc:  statsSvc,
		GameRepo:  gameRepo,
		QuoteRepo: quoteRepo,
		Cfg:       cfg,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// ── 11. Start server ──────────────────────────────────────────────────────
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	// ── 12. Graceful shutdown ─────────────────────────────────────────────────
	<-ctx.Done()
	log.Info("shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", zap.Error(err))
	}
	if metricsSrv != nil {
		if err = metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("metrics shutdown error", zap.Error(err))
		}
	}

	db.Close()
	log.Info("server stopped cleanly")
}

// runMigrations reads all *.sql files from dir, sorted by name, and executes
// them sequentially. Idempotent: SQL files should use IF NOT EXISTS / ON CONFLICT.
func runMigrations(db *sqlx.DB, dir string, log *zap.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("runMigrations: read dir %q: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("runMigrations: read %q: %w", f, err)
		}
		if _, err = db.Exec(string(data)); err != nil {
			return fmt.Errorf("runMigrations: exec %q: %w", f, err)
		}
		log.Info("migration applied", zap.String("file", filepath.Base(f)))
	}
	return nil
}
