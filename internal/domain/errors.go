package domain

import "errors"

// ──────────────────────────────────────────────────────────────────────────────
// Sentinel errors — compare with errors.Is()
// ──────────────────────────────────────────────────────────────────────────────

// Game errors
var (
	// ErrGameNotFound is returned when no game matches the given identifier.
	ErrGameNotFound = errors.New("game not found")

	// ErrGameCompleted is returned when a wager is placed on a game already
	// flagged completed. Such wagers would race the settlement run and are
	// rejected at the placement boundary.
	ErrGameCompleted = errors.New("game is already completed")

	// ErrScoreIncomplete is returned when settlement is requested for a game
	// that is not completed or is missing a final score.
	ErrScoreIncomplete = errors.New("game has no complete final score")
)

// Quote errors
var (
	// ErrQuoteNotFound is returned when a game has no quote history yet.
	ErrQuoteNotFound = errors.New("no quote recorded for game")

	// ErrNoBookmakers is returned by the normalizer when the provider payload
	// carries zero bookmaker entries, so no quote is producible.
	ErrNoBookmakers = errors.New("payload contains no bookmaker data")
)

// Wager errors
var (
	// ErrWagerNotFound is returned when no wager matches the given identifier.
	ErrWagerNotFound = errors.New("wager not found")

	// ErrWagerAlreadySettled is returned when a result write targets a wager
	// that is no longer PENDING. Settlement treats this as a harmless race.
	ErrWagerAlreadySettled = errors.New("wager is already settled")

	// ErrInvalidCategory is returned when the bet category is not recognised.
	ErrInvalidCategory = errors.New("invalid bet category")

	// ErrInvalidPrice is returned when the price is not in American-odds
	// convention (at least +100 or at most -100).
	ErrInvalidPrice = errors.New("price must be >= +100 or <= -100")

	// ErrInvalidStake is returned when the stake is zero or negative.
	ErrInvalidStake = errors.New("stake must be positive")

	// ErrMissingTeam is returned when a moneyline or spread wager names no team,
	// or names a team playing in neither side of the game.
	ErrMissingTeam = errors.New("wager requires a team from this game")

	// ErrMissingLine is returned when a spread or total wager carries no line.
	ErrMissingLine = errors.New("wager requires a line value")
)

// Pipeline errors
var (
	// ErrMissingSport is returned when an ingestion run is requested without a
	// sport key. Rejected before any I/O.
	ErrMissingSport = errors.New("sport key is required")
)

// ──────────────────────────────────────────────────────────────────────────────
// Helper predicates
// ──────────────────────────────────────────────────────────────────────────────

// notFoundErrors collects all "entity not found" sentinel errors so that
// IsNotFound can stay in sync automatically.
var notFoundErrors = []error{
	ErrGameNotFound,
	ErrQuoteNotFound,
	ErrWagerNotFound,
}

// IsNotFound returns true when err (or any error in its chain) is one of the
// domain "not found" errors. Used to translate domain errors to HTTP 404s.
func IsNotFound(err error) bool {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsValidation returns true for errors caused by malformed wager input,
// translated to HTTP 400 responses.
func IsValidation(err error) bool {
	validationErrors := []error{
		ErrInvalidCategory,
		ErrInvalidPrice,
		ErrInvalidStake,
		ErrMissingTeam,
		ErrMissingLine,
		ErrMissingSport,
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
