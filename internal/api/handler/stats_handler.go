package handler

import (
	"net/http"
	"strconv"

	"github.com/evetabi/betboard/internal/service"
	"github.com/gin-gonic/gin"
)

// StatsHandler serves the leaderboard and dashboard read endpoints.
type StatsHandler struct {
	statsSvc *service.StatsService
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(statsSvc *service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// Leaderboard godoc
// GET /api/leaderboard?limit=20
func (h *StatsHandler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, err := h.statsSvc.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not build leaderboard")
		return
	}
	respondSuccess(c, http.StatusOK, entries)
}

// Dashboard godoc
// GET /api/dashboard
func (h *StatsHandler) Dashboard(c *gin.Context) {
	summary, err := h.statsSvc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not build dashboard")
		return
	}
	respondSuccess(c, http.StatusOK, summary)
}
