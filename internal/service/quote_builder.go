// Package service contains the business logic for ingestion, settlement and
// wager placement.
package service

import (
	"time"

	"github.com/evetabi/betboard/internal/domain"
	"github.com/evetabi/betboard/internal/oddsapi"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BuildQuote normalizes one provider game payload into a canonical Quote for
// a single game. Exactly one bookmaker contributes: the preferred one when
// present, otherwise the first in the payload. A payload with no bookmakers
// yields ErrNoBookmakers.
//
// Markets are extracted independently; a malformed or missing market leaves
// its fields nil without affecting the others. Moneyline and spread outcomes
// are matched to sides by team name, never by position.
func BuildQuote(payload *oddsapi.GamePayload, gameID uuid.UUID, preferred string, fetchedAt time.Time) (*domain.Quote, error) {
	if len(payload.Bookmakers) == 0 {
		return nil, domain.ErrNoBookmakers
	}

	book := &payload.Bookmakers[0]
	for i := range payload.Bookmakers {
		if payload.Bookmakers[i].Key == preferred {
			book = &payload.Bookmakers[i]
			break
		}
	}

	q := &domain.Quote{
		ID:        uuid.New(),
		GameID:    gameID,
		Bookmaker: book.Key,
		FetchedAt: fetchedAt,
	}

	for i := range book.Markets {
		m := &book.Markets[i]
		switch m.Key {
		case oddsapi.MarketMoneyline:
			extractMoneyline(q, m, payload)
		case oddsapi.MarketSpreads:
			extractSpreads(q, m, payload)
		case oddsapi.MarketTotals:
			extractTotals(q, m)
		}
	}

	return q, nil
}

func extractMoneyline(q *domain.Quote, m *oddsapi.MarketPayload, payload *oddsapi.GamePayload) {
	for _, o := range m.Outcomes {
		switch o.Name {
		case payload.AwayTeam:
			price := o.Price
			q.AwayML = &price
		case payload.HomeTeam:
			price := o.Price
			q.HomeML = &price
		}
	}
}

// extractSpreads records both sides' handicaps. The away outcome's price is
// taken as the representative spread price; bookmakers quote both sides at or
// near the same juice.
func extractSpreads(q *domain.Quote, m *oddsapi.MarketPayload, payload *oddsapi.GamePayload) {
	for _, o := range m.Outcomes {
		if o.Point == nil {
			continue
		}
		line := decimal.NewFromFloat(*o.Point)
		switch o.Name {
		case payload.AwayTeam:
			price := o.Price
			q.AwaySpread = &line
			q.SpreadPrice = &price
		case payload.HomeTeam:
			q.HomeSpread = &line
		}
	}
}

func extractTotals(q *domain.Quote, m *oddsapi.MarketPayload) {
	for _, o := range m.Outcomes {
		if o.Point == nil {
			continue
		}
		switch o.Name {
		case oddsapi.OutcomeOver:
			line := decimal.NewFromFloat(*o.Point)
			price := o.Price
			q.TotalLine = &line
			q.OverPrice = &price
		case oddsapi.OutcomeUnder:
			price := o.Price
			q.UnderPrice = &price
			if q.TotalLine == nil {
				line := decimal.NewFromFloat(*o.Point)
				q.TotalLine = &line
			}
		}
	}
}
