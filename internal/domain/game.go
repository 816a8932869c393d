// Package domain defines the core business entities and types for the
// betboard wager tracking and settlement system.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ──────────────────────────────────────────────────────────────────────────────
// Game
// ──────────────────────────────────────────────────────────────────────────────

// Game represents a single scheduled matchup tracked from the odds provider.
// Games are created on first odds sighting and never deleted; scores and the
// completion flag are refined on every scores poll.
type Game struct {
	ID         uuid.UUID `json:"id"           db:"id"`
	ExternalID string    `json:"external_id"  db:"external_id"`
	Sport      string    `json:"sport"        db:"sport"`
	GameTime   time.Time `json:"game_time"    db:"game_time"`
	AwayTeam   string    `json:"away_team"    db:"away_team"`
	HomeTeam   string    `json:"home_team"    db:"home_team"`
	AwayScore  *int      `json:"away_score"   db:"away_score"`
	HomeScore  *int      `json:"home_score"   db:"home_score"`
	Completed  bool      `json:"is_completed" db:"is_completed"`
	CreatedAt  time.Time `json:"created_at"   db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"   db:"updated_at"`
}

// HasFinalScore returns true when the game is completed and both scores are
// known. Settlement requires this; a completed game with a missing score is a
// data inconsistency that must be skipped, not graded.
func (g *Game) HasFinalScore() bool {
	return g.Completed && g.AwayScore != nil && g.HomeScore != nil
}

// HasTeam reports whether name matches either side of the matchup.
func (g *Game) HasTeam(name string) bool {
	return name == g.AwayTeam || name == g.HomeTeam
}
