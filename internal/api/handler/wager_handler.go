package handler

import (
	"net/http"

	"github.com/evetabi/betboard/internal/api/middleware"
	"github.com/evetabi/betboard/internal/domain"
	"github.com/evetabi/betboard/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WagerHandler serves wager placement and lookup endpoints.
type WagerHandler struct {
	wagerSvc *service.WagerService
}

// NewWagerHandler creates a WagerHandler.
func NewWagerHandler(wagerSvc *service.WagerService) *WagerHandler {
	return &WagerHandler{wagerSvc: wagerSvc}
}

// Place godoc
// POST /api/wagers [identity]
// Body: {"game_id":"uuid","category":"SPREAD","team":"Duke Blue Devils",
//
//	"line":"-3.5","price":-110,"stake":"100.00"}
func (h *WagerHandler) Place(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var body struct {
		GameID   string  `json:"game_id"  binding:"required"`
		Category string  `json:"category" binding:"required"`
		Team     *string `json:"team"`
		Line     *string `json:"line"`
		Price    int     `json:"price"    binding:"required"`
		Stake    string  `json:"stake"    binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "ERR_VALIDATION", err.Error())
		return
	}

	gameID, err := uuid.Parse(body.GameID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_GAME_ID", "invalid game_id format")
		return
	}

	stake, err := decimal.NewFromString(body.Stake)
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_STAKE", "stake must be a decimal string")
		return
	}

	var line *decimal.Decimal
	if body.Line != nil {
		parsed, err := decimal.NewFromString(*body.Line)
		if err != nil {
			respondError(c, http.StatusBadRequest, "ERR_INVALID_LINE", "line must be a decimal string")
			return
		}
		line = &parsed
	}

	wager, err := h.wagerSvc.PlaceWager(c.Request.Context(), service.PlaceWagerInput{
		UserID:   userID,
		GameID:   gameID,
		Category: domain.BetCategory(body.Category),
		Team:     body.Team,
		Line:     line,
		Price:    body.Price,
		Stake:    stake,
	})
	if err != nil {
		switch {
		case domain.IsValidation(err):
			respondError(c, http.StatusBadRequest, "ERR_VALIDATION", err.Error())
		case domain.IsNotFound(err):
			respondError(c, http.StatusNotFound, "ERR_GAME_NOT_FOUND", err.Error())
		case err == domain.ErrGameCompleted:
			respondError(c, http.StatusConflict, "ERR_GAME_COMPLETED", err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not place wager")
		}
		return
	}
	respondSuccess(c, http.StatusCreated, wager)
}

// GetMyWagers godoc
// GET /api/wagers/my?page=1&limit=20 [identity]
func (h *WagerHandler) GetMyWagers(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, limit := parsePagination(c)
	offset := (page - 1) * limit

	wagers, err := h.wagerSvc.ListUserWagers(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch wagers")
		return
	}
	respondList(c, wagers, len(wagers), page, limit)
}

// GetByID godoc
// GET /api/wagers/:id [identity]
func (h *WagerHandler) GetByID(c *gin.Context) {
	userID := middleware.GetUserID(c)

	wagerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_WAGER_ID", "invalid wager id")
		return
	}

	wager, err := h.wagerSvc.GetWager(c.Request.Context(), wagerID)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "ERR_NOT_FOUND", "wager not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch wager")
		return
	}
	if wager.UserID != userID {
		respondError(c, http.StatusForbidden, "ERR_FORBIDDEN", "this wager does not belong to you")
		return
	}
	respondSuccess(c, http.StatusOK, wager)
}
