package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Read models for the stats endpoints
// ──────────────────────────────────────────────────────────────────────────────

// LeaderboardEntry is one bettor's aggregate record. The SQL aggregation fills
// the counting fields; WinRate and ROI are derived afterwards.
type LeaderboardEntry struct {
	UserID      uuid.UUID       `json:"user_id"      db:"user_id"`
	TotalWagers int             `json:"total_wagers" db:"total_wagers"`
	Won         int             `json:"won"          db:"won"`
	Lost        int             `json:"lost"         db:"lost"`
	Push        int             `json:"push"         db:"push"`
	TotalStaked decimal.Decimal `json:"total_staked" db:"total_staked"`
	TotalProfit decimal.Decimal `json:"total_profit" db:"total_profit"`
	WinRate     decimal.Decimal `json:"win_rate"     db:"-"` // percent of settled W/L
	ROI         decimal.Decimal `json:"roi"          db:"-"` // percent of total staked
}

// Derive computes WinRate and ROI from the aggregate fields. Pushes are
// excluded from the win-rate denominator: a push is neither a win nor a loss.
func (e *LeaderboardEntry) Derive() {
	hundred := decimal.NewFromInt(100)
	if settled := e.Won + e.Lost; settled > 0 {
		e.WinRate = decimal.NewFromInt(int64(e.Won)).
			Div(decimal.NewFromInt(int64(settled))).Mul(hundred).Round(2)
	}
	if e.TotalStaked.IsPositive() {
		e.ROI = e.TotalProfit.Div(e.TotalStaked).Mul(hundred).Round(2)
	}
}

// DashboardSummary is the overall system snapshot served by /api/dashboard.
type DashboardSummary struct {
	Games          int `json:"games"           db:"games"`
	CompletedGames int `json:"completed_games" db:"completed_games"`
	PendingWagers  int `json:"pending_wagers"  db:"pending_wagers"`
	SettledWagers  int `json:"settled_wagers"  db:"settled_wagers"`
}
