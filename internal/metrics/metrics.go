// Package metrics exposes the service's Prometheus counters and the sidecar
// /metrics + /healthz server.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counters incremented by the ingestion and settlement pipelines.
var (
	GamesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "betboard_games_processed_total",
		Help: "Games successfully processed by odds ingestion, per sport.",
	}, []string{"sport"})

	QuotesWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betboard_quotes_written_total",
		Help: "Quote snapshots appended to the history.",
	})

	GamesScored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "betboard_games_scored_total",
		Help: "Games whose scores were updated by score ingestion, per sport.",
	}, []string{"sport"})

	WagersGraded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "betboard_wagers_graded_total",
		Help: "Wagers settled, by terminal result.",
	}, []string{"result"})

	ProviderFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "betboard_provider_failures_total",
		Help: "Provider fetch failures, per endpoint.",
	}, []string{"endpoint"})

	ItemErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "betboard_item_errors_total",
		Help: "Per-item (non-fatal) errors recorded in run reports, per pipeline.",
	}, []string{"pipeline"})
)

// HealthFunc probes a dependency (usually the database) for /healthz.
type HealthFunc func(ctx context.Context) error

// StartServer runs a lightweight HTTP server for /metrics and /healthz on its
// own port, detached from the public API. Returns the server so main can shut
// it down gracefully.
func StartServer(port string, healthFn HealthFunc) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()

		if err := healthFn(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = fmt.Fprintf(w, "unhealthy: %v", err)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: ":" + port, Handler: mux}
	go func() {
		_ = srv.ListenAndServe()
	}()
	return srv
}
