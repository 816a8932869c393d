package domain_test

import (
	"testing"

	"github.com/evetabi/betboard/internal/domain"
	"github.com/shopspring/decimal"
)

// ── Test helpers ──────────────────────────────────────────────────────────────

const (
	away = "Duke Blue Devils"
	home = "North Carolina Tar Heels"
)

func strPtr(s string) *string { return &s }

func decPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func wager(cat domain.BetCategory, team *string, line *decimal.Decimal, price int, stake int64) *domain.Wager {
	return &domain.Wager{
		Category: cat,
		Team:     team,
		Line:     line,
		Price:    price,
		Stake:    decimal.NewFromInt(stake),
		Status:   domain.WagerStatusPending,
	}
}

// ── Moneyline ─────────────────────────────────────────────────────────────────

func TestGrade_Moneyline(t *testing.T) {
	tests := []struct {
		name       string
		team       string
		awayScore  int
		homeScore  int
		wantStatus domain.WagerStatus
	}{
		{"away team wins", away, 80, 75, domain.WagerStatusWon},
		{"away team loses", away, 70, 75, domain.WagerStatusLost},
		{"home team wins", home, 70, 75, domain.WagerStatusWon},
		{"home team loses", home, 80, 75, domain.WagerStatusLost},
		{"tie pushes", away, 75, 75, domain.WagerStatusPush},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := wager(domain.CategoryMoneyline, strPtr(tt.team), nil, -110, 110)
			status, _ := domain.Grade(w, away, home, tt.awayScore, tt.homeScore)
			if status != tt.wantStatus {
				t.Errorf("Grade() status = %s, want %s", status, tt.wantStatus)
			}
		})
	}
}

// TestGrade_MoneylineProfit checks the American-odds profit round-trip:
// +150 at 100 stake pays 150; -110 at 110 stake pays exactly 100.
func TestGrade_MoneylineProfit(t *testing.T) {
	wUnderdog := wager(domain.CategoryMoneyline, strPtr(away), nil, 150, 100)
	status, profit := domain.Grade(wUnderdog, away, home, 80, 75)
	if status != domain.WagerStatusWon {
		t.Fatalf("status = %s, want WON", status)
	}
	if !profit.Equal(decimal.NewFromInt(150)) {
		t.Errorf("profit = %s, want 150", profit)
	}

	wFavourite := wager(domain.CategoryMoneyline, strPtr(away), nil, -110, 110)
	status, profit = domain.Grade(wFavourite, away, home, 80, 75)
	if status != domain.WagerStatusWon {
		t.Fatalf("status = %s, want WON", status)
	}
	if !profit.Equal(decimal.NewFromInt(100)) {
		t.Errorf("profit = %s, want exactly 100", profit)
	}
}

// ── Spread ────────────────────────────────────────────────────────────────────

// TestGrade_Spread covers the margin arithmetic: team 70, opponent 65,
// line -3 → margin 2 → WON; line -5 → margin 0 → PUSH; line -6 → LOST.
func TestGrade_Spread(t *testing.T) {
	tests := []struct {
		name       string
		line       float64
		wantStatus domain.WagerStatus
	}{
		{"covers", -3, domain.WagerStatusWon},
		{"lands on the number", -5, domain.WagerStatusPush},
		{"fails to cover", -6, domain.WagerStatusLost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := wager(domain.CategorySpread, strPtr(away), decPtr(tt.line), -110, 100)
			status, profit := domain.Grade(w, away, home, 70, 65)
			if status != tt.wantStatus {
				t.Errorf("Grade() status = %s, want %s", status, tt.wantStatus)
			}
			if tt.wantStatus == domain.WagerStatusPush && !profit.IsZero() {
				t.Errorf("push profit = %s, want exactly 0", profit)
			}
		})
	}
}

func TestGrade_SpreadHomeSide(t *testing.T) {
	// Home 65, away 70, home +5.5 → margin 0.5 → WON.
	w := wager(domain.CategorySpread, strPtr(home), decPtr(5.5), -110, 100)
	status, _ := domain.Grade(w, away, home, 70, 65)
	if status != domain.WagerStatusWon {
		t.Errorf("home +5.5 with a 5-point loss should win, got %s", status)
	}
}

// ── Totals ────────────────────────────────────────────────────────────────────

func TestGrade_Totals(t *testing.T) {
	// Final 60 + 55 = 115.
	tests := []struct {
		name       string
		cat        domain.BetCategory
		line       float64
		wantStatus domain.WagerStatus
	}{
		{"over clears", domain.CategoryTotalOver, 110, domain.WagerStatusWon},
		{"over misses", domain.CategoryTotalOver, 120, domain.WagerStatusLost},
		{"over lands exactly", domain.CategoryTotalOver, 115, domain.WagerStatusPush},
		{"under clears", domain.CategoryTotalUnder, 120, domain.WagerStatusWon},
		{"under misses", domain.CategoryTotalUnder, 110, domain.WagerStatusLost},
		{"under lands exactly", domain.CategoryTotalUnder, 115, domain.WagerStatusPush},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := wager(tt.cat, nil, decPtr(tt.line), -110, 100)
			status, profit := domain.Grade(w, away, home, 60, 55)
			if status != tt.wantStatus {
				t.Errorf("Grade() status = %s, want %s", status, tt.wantStatus)
			}
			if tt.wantStatus == domain.WagerStatusPush && !profit.IsZero() {
				t.Errorf("push profit = %s, want exactly 0", profit)
			}
		})
	}
}

// ── Profit invariants ─────────────────────────────────────────────────────────

func TestGrade_LostProfitIsNegativeStake(t *testing.T) {
	w := wager(domain.CategoryMoneyline, strPtr(away), nil, 140, 250)
	_, profit := domain.Grade(w, away, home, 60, 75)
	want := decimal.NewFromInt(-250)
	if !profit.Equal(want) {
		t.Errorf("lost profit = %s, want exactly %s", profit, want)
	}
}

// ── Fail-closed behaviour ─────────────────────────────────────────────────────

// Ungradeable wagers must not stay pending nor pay out: they grade LOST with
// profit -stake.
func TestGrade_FailClosed(t *testing.T) {
	tests := []struct {
		name string
		w    *domain.Wager
	}{
		{"unknown category", wager(domain.BetCategory("PARLAY"), strPtr(away), nil, -110, 100)},
		{"spread without line", wager(domain.CategorySpread, strPtr(away), nil, -110, 100)},
		{"total without line", wager(domain.CategoryTotalOver, nil, nil, -110, 100)},
		{"moneyline without team", wager(domain.CategoryMoneyline, nil, nil, -110, 100)},
		{"team from another game", wager(domain.CategoryMoneyline, strPtr("Gonzaga Bulldogs"), nil, -110, 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, profit := domain.Grade(tt.w, away, home, 80, 75)
			if status != domain.WagerStatusLost {
				t.Errorf("status = %s, want LOST (fail-closed)", status)
			}
			if !profit.Equal(tt.w.Stake.Neg()) {
				t.Errorf("profit = %s, want %s", profit, tt.w.Stake.Neg())
			}
		})
	}
}

// ── Purity ────────────────────────────────────────────────────────────────────

func TestGrade_IsPure(t *testing.T) {
	w := wager(domain.CategorySpread, strPtr(home), decPtr(-2.5), 105, 75)
	s1, p1 := domain.Grade(w, away, home, 68, 71)
	s2, p2 := domain.Grade(w, away, home, 68, 71)
	if s1 != s2 || !p1.Equal(p2) {
		t.Errorf("Grade() is not deterministic: (%s,%s) vs (%s,%s)", s1, p1, s2, p2)
	}
	if w.Status != domain.WagerStatusPending {
		t.Error("Grade() must not mutate the wager")
	}
}
