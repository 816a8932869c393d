package domain

import "github.com/shopspring/decimal"

// ──────────────────────────────────────────────────────────────────────────────
// Grading — the pure settlement function
// ──────────────────────────────────────────────────────────────────────────────

// Grade maps a wager and a final score to its terminal status and profit.
// It is a pure function: no I/O, same inputs always produce the same pair.
//
// Decision table (line and price come from the wager):
//
//	MONEYLINE    win when the selected team's score is strictly greater;
//	             push when scores are exactly equal.
//	SPREAD       win when (team score + line) − opponent score > 0;
//	             push when that quantity is exactly 0.
//	TOTAL_OVER   win when awayScore+homeScore > line; push on exact equality.
//	TOTAL_UNDER  win when awayScore+homeScore < line; push on exact equality.
//
// Profit is WinProfit(stake, price) on WON, exactly −stake on LOST and exactly
// zero on PUSH — exact so aggregate ROI stays stable.
//
// Fail-closed: an unrecognised category, a missing required team/line, or a
// team matching neither side grades LOST with profit −stake. An ungradeable
// wager must not silently stay pending nor accidentally pay out.
func Grade(w *Wager, awayTeam, homeTeam string, awayScore, homeScore int) (WagerStatus, decimal.Decimal) {
	lost := w.Stake.Neg()

	switch w.Category {
	case CategoryMoneyline:
		teamScore, oppScore, ok := sideScores(w, awayTeam, homeTeam, awayScore, homeScore)
		if !ok {
			return WagerStatusLost, lost
		}
		switch {
		case teamScore > oppScore:
			return WagerStatusWon, WinProfit(w.Stake, w.Price)
		case teamScore == oppScore:
			return WagerStatusPush, decimal.Zero
		default:
			return WagerStatusLost, lost
		}

	case CategorySpread:
		if w.Line == nil {
			return WagerStatusLost, lost
		}
		teamScore, oppScore, ok := sideScores(w, awayTeam, homeTeam, awayScore, homeScore)
		if !ok {
			return WagerStatusLost, lost
		}
		margin := decimal.NewFromInt(int64(teamScore)).Add(*w.Line).Sub(decimal.NewFromInt(int64(oppScore)))
		switch {
		case margin.IsPositive():
			return WagerStatusWon, WinProfit(w.Stake, w.Price)
		case margin.IsZero():
			return WagerStatusPush, decimal.Zero
		default:
			return WagerStatusLost, lost
		}

	case CategoryTotalOver, CategoryTotalUnder:
		if w.Line == nil {
			return WagerStatusLost, lost
		}
		total := decimal.NewFromInt(int64(awayScore + homeScore))
		if total.Equal(*w.Line) {
			return WagerStatusPush, decimal.Zero
		}
		over := total.GreaterThan(*w.Line)
		if (w.Category == CategoryTotalOver && over) || (w.Category == CategoryTotalUnder && !over) {
			return WagerStatusWon, WinProfit(w.Stake, w.Price)
		}
		return WagerStatusLost, lost
	}

	// Unknown category: fail-closed.
	return WagerStatusLost, lost
}

// sideScores resolves the wager's selected team to (its score, opponent score).
// ok is false when the wager has no team or the team matches neither side.
func sideScores(w *Wager, awayTeam, homeTeam string, awayScore, homeScore int) (int, int, bool) {
	if w.Team == nil {
		return 0, 0, false
	}
	switch *w.Team {
	case awayTeam:
		return awayScore, homeScore, true
	case homeTeam:
		return homeScore, awayScore, true
	}
	return 0, 0, false
}
