package handler

import (
	"net/http"
	"time"

	"github.com/evetabi/betboard/internal/domain"
	"github.com/evetabi/betboard/internal/repository"
	"github.com/evetabi/betboard/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GameHandler serves game and quote read endpoints.
type GameHandler struct {
	gameRepo  *repository.GameRepository
	quoteRepo *repository.QuoteRepository
	wagerSvc  *service.WagerService
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(gameRepo *repository.GameRepository, quoteRepo *repository.QuoteRepository, wagerSvc *service.WagerService) *GameHandler {
	return &GameHandler{gameRepo: gameRepo, quoteRepo: quoteRepo, wagerSvc: wagerSvc}
}

// ListUpcoming godoc
// GET /api/games?page=1&limit=20
func (h *GameHandler) ListUpcoming(c *gin.Context) {
	page, limit := parsePagination(c)

	games, err := h.gameRepo.ListUpcoming(c.Request.Context(), time.Now(), limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not list games")
		return
	}
	respondList(c, games, len(games), page, limit)
}

// GetByID godoc
// GET /api/games/:id
func (h *GameHandler) GetByID(c *gin.Context) {
	gameID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_GAME_ID", "invalid game id")
		return
	}

	game, err := h.gameRepo.GetByID(c.Request.Context(), gameID)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "ERR_NOT_FOUND", "game not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch game")
		return
	}
	respondSuccess(c, http.StatusOK, game)
}

// LatestQuote godoc
// GET /api/games/:id/quote
func (h *GameHandler) LatestQuote(c *gin.Context) {
	gameID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_GAME_ID", "invalid game id")
		return
	}

	quote, err := h.wagerSvc.LatestQuote(c.Request.Context(), gameID)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "ERR_NOT_FOUND", "no quote recorded for game")
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch quote")
		return
	}
	respondSuccess(c, http.StatusOK, quote)
}

// QuoteHistory godoc
// GET /api/games/:id/quotes?page=1&limit=20
func (h *GameHandler) QuoteHistory(c *gin.Context) {
	gameID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_GAME_ID", "invalid game id")
		return
	}
	page, limit := parsePagination(c)

	quotes, err := h.quoteRepo.HistoryForGame(c.Request.Context(), gameID, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch quote history")
		return
	}
	respondList(c, quotes, len(quotes), page, limit)
}
