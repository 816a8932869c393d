// Package api_test runs HTTP-level smoke tests using net/http/httptest.
// These tests do NOT require a PostgreSQL database — they verify:
//   - Gin router routing and middleware wiring
//   - Request validation error responses (400)
//   - Identity middleware (401 without X-User-ID, 401 with a malformed one)
//   - Response format consistency (success/error envelope)
//   - CORS preflight handling
package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evetabi/betboard/internal/api"
	"github.com/evetabi/betboard/internal/config"
	"github.com/evetabi/betboard/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ── Test helpers ──────────────────────────────────────────────────────────────

func testCfg() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Env:  "development",
			Port: "8080",
		},
		OddsAPI: config.OddsAPIConfig{
			PreferredBookmaker: "draftkings",
			ScoresDaysFrom:     1,
		},
	}
}

// buildTestRouter creates a Gin engine with nil repositories behind the
// services. Routes that never reach a repository (validation failures,
// missing identity, malformed ids) behave exactly as in production.
func buildTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := testCfg()
	wagerSvc := service.NewWagerService(nil, nil, nil, nil, zap.NewNop())

	return api.SetupRouter(api.RouterDeps{
		IngestSvc: nil,
		ScoreSvc:  nil,
		WagerSvc:  wagerSvc,
		StatsSvc:  nil,
		GameRepo:  nil,
		QuoteRepo: nil,
		Cfg:       cfg,
	})
}

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&m); err != nil {
		t.Fatalf("response is not valid JSON: %v — body: %s", err, rr.Body.String())
	}
	return m
}

func identityHeader() map[string]string {
	return map[string]string{"X-User-ID": uuid.NewString()}
}

// ── /health ───────────────────────────────────────────────────────────────────

func TestHealthEndpoint(t *testing.T) {
	h := buildTestRouter(t)
	rr := do(t, h, http.MethodGet, "/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("GET /health = %d, want 200", rr.Code)
	}
}

// ── Identity middleware ───────────────────────────────────────────────────────

func TestPlaceWager_NoIdentity_Returns401(t *testing.T) {
	h := buildTestRouter(t)
	payload := `{"game_id":"11111111-1111-1111-1111-111111111111","category":"MONEYLINE","team":"Duke","price":120,"stake":"50"}`
	rr := do(t, h, http.MethodPost, "/api/wagers", payload, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("POST /api/wagers without identity = %d, want 401", rr.Code)
	}
}

func TestPlaceWager_MalformedIdentity_Returns401(t *testing.T) {
	h := buildTestRouter(t)
	rr := do(t, h, http.MethodPost, "/api/wagers", `{}`, map[string]string{
		"X-User-ID": "not-a-uuid",
	})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("POST /api/wagers with malformed identity = %d, want 401", rr.Code)
	}
}

func TestMyWagers_NoIdentity_Returns401(t *testing.T) {
	h := buildTestRouter(t)
	rr := do(t, h, http.MethodGet, "/api/wagers/my", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("GET /api/wagers/my without identity = %d, want 401", rr.Code)
	}
}

// ── Validation layer ──────────────────────────────────────────────────────────

func TestPlaceWager_MissingFields(t *testing.T) {
	h := buildTestRouter(t)
	rr := do(t, h, http.MethodPost, "/api/wagers", `{}`, identityHeader())
	if rr.Code != http.StatusBadRequest {
		t.Errorf("POST /api/wagers empty body = %d, want 400", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["success"] != false {
		t.Errorf("response.success should be false on error, got %v", body["success"])
	}
	if body["code"] == nil {
		t.Errorf("error envelope missing 'code', got: %v", body)
	}
}

func TestPlaceWager_InvalidGameID(t *testing.T) {
	h := buildTestRouter(t)
	payload := `{"game_id":"nope","category":"MONEYLINE","team":"Duke","price":120,"stake":"50"}`
	rr := do(t, h, http.MethodPost, "/api/wagers", payload, identityHeader())
	if rr.Code != http.StatusBadRequest {
		t.Errorf("place with bad game_id = %d, want 400", rr.Code)
	}
}

func TestPlaceWager_InvalidStake(t *testing.T) {
	h := buildTestRouter(t)
	payload := `{"game_id":"11111111-1111-1111-1111-111111111111","category":"MONEYLINE","team":"Duke","price":120,"stake":"fifty"}`
	rr := do(t, h, http.MethodPost, "/api/wagers", payload, identityHeader())
	if rr.Code != http.StatusBadRequest {
		t.Errorf("place with non-decimal stake = %d, want 400", rr.Code)
	}
}

func TestPlaceWager_InvalidCategory(t *testing.T) {
	h := buildTestRouter(t)
	payload := `{"game_id":"11111111-1111-1111-1111-111111111111","category":"PARLAY","team":"Duke","price":120,"stake":"50"}`
	rr := do(t, h, http.MethodPost, "/api/wagers", payload, identityHeader())
	if rr.Code != http.StatusBadRequest {
		t.Errorf("place with unknown category = %d, want 400", rr.Code)
	}
}

func TestGameByID_InvalidUUID(t *testing.T) {
	h := buildTestRouter(t)
	rr := do(t, h, http.MethodGet, "/api/games/not-a-uuid", "", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("GET /api/games/not-a-uuid = %d, want 400", rr.Code)
	}
}

func TestIngestOdds_MissingSport(t *testing.T) {
	h := buildTestRouter(t)
	// The sport check happens before any I/O, so even this harness's nil
	// fetcher is never reached.
	rr := do(t, h, http.MethodPost, "/api/ingest/odds", "", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("POST /api/ingest/odds without sport = %d, want 400", rr.Code)
	}
}

// ── Public routes ─────────────────────────────────────────────────────────────

func TestGames_IsPublic(t *testing.T) {
	h := buildTestRouter(t)
	rr := do(t, h, http.MethodGet, "/api/games", "", nil)
	if rr.Code == http.StatusUnauthorized {
		t.Error("GET /api/games should be a public endpoint (no 401)")
	}
}

func TestLeaderboard_IsPublic(t *testing.T) {
	h := buildTestRouter(t)
	rr := do(t, h, http.MethodGet, "/api/leaderboard", "", nil)
	if rr.Code == http.StatusUnauthorized {
		t.Error("GET /api/leaderboard should be public (no 401)")
	}
}

// ── Error envelope format ─────────────────────────────────────────────────────

func TestErrorEnvelope_HasRequiredFields(t *testing.T) {
	h := buildTestRouter(t)
	rr := do(t, h, http.MethodPost, "/api/wagers", `{}`, identityHeader())
	body := decodeBody(t, rr)

	for _, field := range []string{"success", "error", "code"} {
		if _, ok := body[field]; !ok {
			t.Errorf("error envelope missing field %q, got: %v", field, body)
		}
	}
	if body["success"] != false {
		t.Errorf("error envelope.success = %v, want false", body["success"])
	}
}

// ── CORS headers ──────────────────────────────────────────────────────────────

func TestCORSOptionsRequest(t *testing.T) {
	h := buildTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/games", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent && rr.Code != http.StatusOK {
		t.Errorf("OPTIONS /api/games = %d, want 204 or 200", rr.Code)
	}
	allow := rr.Header().Get("Access-Control-Allow-Methods")
	if !strings.Contains(allow, "POST") {
		t.Errorf("Access-Control-Allow-Methods missing POST, got %q", allow)
	}
}

func TestCORSAllowOrigin_Dev(t *testing.T) {
	h := buildTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	origin := rr.Header().Get("Access-Control-Allow-Origin")
	if origin != "*" {
		t.Errorf("Dev CORS origin = %q, want *", origin)
	}
}
