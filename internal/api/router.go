// Package api assembles the gin router from handlers and middleware.
package api

import (
	"net/http"

	"github.com/evetabi/betboard/internal/api/handler"
	"github.com/evetabi/betboard/internal/api/middleware"
	"github.com/evetabi/betboard/internal/config"
	"github.com/evetabi/betboard/internal/repository"
	"github.com/evetabi/betboard/internal/service"
	"github.com/gin-gonic/gin"
)

// RouterDeps bundles every dependency needed to build the router.
// Populated once in main() and passed to SetupRouter.
type RouterDeps struct {
	IngestSvc *service.IngestService
	ScoreSvc  *service.ScoreService
	WagerSvc  *service.WagerService
	StatsSvc  *service.StatsService
	GameRepo  *repository.GameRepository
	QuoteRepo *repository.QuoteRepository
	Cfg       *config.Config
}

// SetupRouter creates and configures the main Gin engine with all routes,
// middleware, CORS, and rate limiting rules.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// ── CORS ─────────────────────────────────────────────────────────────────
	r.Use(corsMiddleware(deps.Cfg))

	// ── Health check ─────────────────────────────────────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── Handlers ─────────────────────────────────────────────────────────────
	ingestH := handler.NewIngestHandler(deps.IngestSvc, deps.ScoreSvc)
	gameH := handler.NewGameHandler(deps.GameRepo, deps.QuoteRepo, deps.WagerSvc)
	wagerH := handler.NewWagerHandler(deps.WagerSvc)
	statsH := handler.NewStatsHandler(deps.StatsSvc)

	// ── Identity middleware (gateway-forwarded user id) ──────────────────────
	identityMW := middleware.IdentityMiddleware()

	// ── Rate limiters ─────────────────────────────────────────────────────────
	ingestRL := middleware.RateLimitMiddleware(2)  // ingestion triggers are heavy
	wagerRL := middleware.RateLimitMiddleware(30)  // 30 req/s per IP for wagers
	readRL := middleware.RateLimitMiddleware(100)  // generous limit on reads

	api := r.Group("/api")
	{
		// ── Ingestion triggers (operators, backfills) ────────────────────────
		ingest := api.Group("/ingest")
		ingest.Use(ingestRL)
		{
			ingest.POST("/odds", ingestH.RunOdds)
			ingest.POST("/scores", ingestH.RunScores)
		}

		// ── Games & quotes (public reads) ────────────────────────────────────
		games := api.Group("/games")
		games.Use(readRL)
		{
			games.GET("", gameH.ListUpcoming)
			games.GET("/:id", gameH.GetByID)
			games.GET("/:id/quote", gameH.LatestQuote)
			games.GET("/:id/quotes", gameH.QuoteHistory)
		}

		// ── Stats (public reads) ─────────────────────────────────────────────
		stats := api.Group("")
		stats.Use(readRL)
		{
			stats.GET("/leaderboard", statsH.Leaderboard)
			stats.GET("/dashboard", statsH.Dashboard)
		}

		// ── Wagers (identified caller) ───────────────────────────────────────
		wagers := api.Group("/wagers")
		wagers.Use(identityMW, wagerRL)
		{
			wagers.POST("", wagerH.Place)
			wagers.GET("/my", wagerH.GetMyWagers)
			wagers.GET("/:id", wagerH.GetByID)
		}
	}

	return r
}

// ── CORS helper ───────────────────────────────────────────────────────────────

// corsMiddleware returns a gin middleware that sets appropriate CORS headers.
// Outside production all origins are allowed; in production only configured
// origins.
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.Server.AllowedOrigins))
	for _, o := range cfg.Server.AllowedOrigins {
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if !cfg.IsProd() {
			c.Header("Access-Control-Allow-Origin", "*")
		} else if origin != "" && allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-User-ID, X-Request-ID")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
