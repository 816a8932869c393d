package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Types & constants
// ──────────────────────────────────────────────────────────────────────────────

// WagerStatus represents the lifecycle state of a wager. The transition is
// monotonic: PENDING moves to exactly one terminal status and never changes
// again.
type WagerStatus string

const (
	WagerStatusPending WagerStatus = "PENDING" // placed, game not yet graded
	WagerStatusWon     WagerStatus = "WON"     // graded in the bettor's favour
	WagerStatusLost    WagerStatus = "LOST"    // graded against the bettor
	WagerStatusPush    WagerStatus = "PUSH"    // tie against the line; stake returned
)

// IsTerminal returns true for any graded status.
func (s WagerStatus) IsTerminal() bool {
	return s == WagerStatusWon || s == WagerStatusLost || s == WagerStatusPush
}

// BetCategory is the kind of line a wager was placed against.
type BetCategory string

const (
	CategoryMoneyline  BetCategory = "MONEYLINE"
	CategorySpread     BetCategory = "SPREAD"
	CategoryTotalOver  BetCategory = "TOTAL_OVER"
	CategoryTotalUnder BetCategory = "TOTAL_UNDER"
)

// IsValid returns true if the category is one of the recognised bet kinds.
func (c BetCategory) IsValid() bool {
	switch c {
	case CategoryMoneyline, CategorySpread, CategoryTotalOver, CategoryTotalUnder:
		return true
	}
	return false
}

// NeedsTeam returns true for categories that require a selected team.
func (c BetCategory) NeedsTeam() bool {
	return c == CategoryMoneyline || c == CategorySpread
}

// NeedsLine returns true for categories that require a line value.
func (c BetCategory) NeedsLine() bool {
	return c == CategorySpread || c == CategoryTotalOver || c == CategoryTotalUnder
}

// ──────────────────────────────────────────────────────────────────────────────
// Wager
// ──────────────────────────────────────────────────────────────────────────────

// Wager represents a single bet against a line, with stake and price fixed at
// placement time. Team is nil for totals; Line is nil for moneylines; Profit
// is nil until the wager is graded.
type Wager struct {
	ID        uuid.UUID        `json:"id"         db:"id"`
	UserID    uuid.UUID        `json:"user_id"    db:"user_id"`
	GameID    uuid.UUID        `json:"game_id"    db:"game_id"`
	Category  BetCategory      `json:"category"   db:"category"`
	Team      *string          `json:"team"       db:"team"`
	Line      *decimal.Decimal `json:"line"       db:"line"`
	Price     int              `json:"price"      db:"price"` // American odds
	Stake     decimal.Decimal  `json:"stake"      db:"stake"`
	Status    WagerStatus      `json:"status"     db:"status"`
	Profit    *decimal.Decimal `json:"profit"     db:"profit"`
	PlacedAt  time.Time        `json:"placed_at"  db:"placed_at"`
	SettledAt *time.Time       `json:"settled_at" db:"settled_at"`
}

// IsPending returns true while the wager can still be graded.
func (w *Wager) IsPending() bool {
	return w.Status == WagerStatusPending
}

// ──────────────────────────────────────────────────────────────────────────────
// American odds
// ──────────────────────────────────────────────────────────────────────────────

// ValidAmericanPrice reports whether p is a legal American-odds price:
// at least +100 or at most -100. The open interval (-100, 100) has no meaning
// in this convention.
func ValidAmericanPrice(p int) bool {
	return p >= 100 || p <= -100
}

// WinProfit computes the profit of a WON wager from its American price.
//
//	price > 0:  profit = stake × price/100   (underdog)
//	price < 0:  profit = stake × 100/|price| (favourite)
//
// The result is floored to 4 decimal places (matching DB DECIMAL(18,4)).
func WinProfit(stake decimal.Decimal, price int) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	if price > 0 {
		return stake.Mul(decimal.NewFromInt(int64(price))).Div(hundred).RoundDown(4)
	}
	abs := decimal.NewFromInt(int64(-price))
	return stake.Mul(hundred).Div(abs).RoundDown(4)
}
