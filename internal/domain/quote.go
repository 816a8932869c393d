package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Quote
// ──────────────────────────────────────────────────────────────────────────────

// Quote is one bookmaker's snapshot of a game's lines at a point in time.
// Quotes are append-only: the latest row by FetchedAt is authoritative for new
// wagers, older rows form the line-movement history.
//
// Every market field is optional. A nil field means the bookmaker did not offer
// that market when the snapshot was taken — never "a line of 0".
type Quote struct {
	ID        uuid.UUID `json:"id"        db:"id"`
	GameID    uuid.UUID `json:"game_id"   db:"game_id"`
	Bookmaker string    `json:"bookmaker" db:"bookmaker"`

	AwayML *int `json:"away_ml" db:"away_ml"`
	HomeML *int `json:"home_ml" db:"home_ml"`

	AwaySpread  *decimal.Decimal `json:"away_spread"  db:"away_spread"`
	HomeSpread  *decimal.Decimal `json:"home_spread"  db:"home_spread"`
	SpreadPrice *int             `json:"spread_price" db:"spread_price"`

	TotalLine  *decimal.Decimal `json:"total_line"  db:"total_line"`
	OverPrice  *int             `json:"over_price"  db:"over_price"`
	UnderPrice *int             `json:"under_price" db:"under_price"`

	FetchedAt time.Time `json:"fetched_at" db:"fetched_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// HasMoneyline returns true when at least one moneyline price is present.
func (q *Quote) HasMoneyline() bool {
	return q.AwayML != nil || q.HomeML != nil
}

// HasSpread returns true when at least one spread line is present.
func (q *Quote) HasSpread() bool {
	return q.AwaySpread != nil || q.HomeSpread != nil
}

// HasTotal returns true when a total line is present.
func (q *Quote) HasTotal() bool {
	return q.TotalLine != nil
}

// IsEmpty returns true when no market at all was resolvable from the payload.
// Empty quotes are not worth persisting.
func (q *Quote) IsEmpty() bool {
	return !q.HasMoneyline() && !q.HasSpread() && !q.HasTotal()
}
