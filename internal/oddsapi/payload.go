// Package oddsapi implements the client for The Odds API, the external
// provider of betting lines and final scores.
package oddsapi

import "time"

// Market keys used by the provider.
const (
	MarketMoneyline = "h2h"
	MarketSpreads   = "spreads"
	MarketTotals    = "totals"
)

// Outcome names used by the provider for totals markets.
const (
	OutcomeOver  = "Over"
	OutcomeUnder = "Under"
)

// ──────────────────────────────────────────────────────────────────────────────
// Odds payloads — GET /sports/{sport}/odds
// ──────────────────────────────────────────────────────────────────────────────

// GamePayload is one game's raw market data as delivered by the provider.
type GamePayload struct {
	ID           string             `json:"id"`
	SportKey     string             `json:"sport_key"`
	CommenceTime time.Time          `json:"commence_time"`
	AwayTeam     string             `json:"away_team"`
	HomeTeam     string             `json:"home_team"`
	Bookmakers   []BookmakerPayload `json:"bookmakers"`
}

// BookmakerPayload is one bookmaker's set of markets for a game.
type BookmakerPayload struct {
	Key        string          `json:"key"`
	Title      string          `json:"title"`
	LastUpdate time.Time       `json:"last_update"`
	Markets    []MarketPayload `json:"markets"`
}

// MarketPayload is one market (h2h, spreads, totals) with its outcomes.
type MarketPayload struct {
	Key      string           `json:"key"`
	Outcomes []OutcomePayload `json:"outcomes"`
}

// OutcomePayload is one side of a market. Point is present only for spreads
// and totals.
type OutcomePayload struct {
	Name  string   `json:"name"`
	Price int      `json:"price"` // American odds
	Point *float64 `json:"point,omitempty"`
}

// ──────────────────────────────────────────────────────────────────────────────
// Score payloads — GET /sports/{sport}/scores
// ──────────────────────────────────────────────────────────────────────────────

// ScorePayload is one game's score entry. Scores may be nil for games that
// have not started, and carries live values for in-progress games.
type ScorePayload struct {
	ID           string       `json:"id"`
	SportKey     string       `json:"sport_key"`
	CommenceTime time.Time    `json:"commence_time"`
	Completed    bool         `json:"completed"`
	AwayTeam     string       `json:"away_team"`
	HomeTeam     string       `json:"home_team"`
	Scores       []ScoreEntry `json:"scores"`
}

// ScoreEntry is one team's score. The provider delivers scores as strings and
// does NOT guarantee away-then-home ordering: entries must be matched by name.
type ScoreEntry struct {
	Name  string `json:"name"`
	Score string `json:"score"`
}
