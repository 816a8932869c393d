// Package handler contains the gin HTTP handlers, one file per resource.
package handler

import (
	"errors"
	"net/http"

	"github.com/evetabi/betboard/internal/domain"
	"github.com/evetabi/betboard/internal/service"
	"github.com/gin-gonic/gin"
)

// IngestHandler serves the manual ingestion trigger endpoints. The scheduler
// drives the same services on a timer; these routes exist for operators and
// backfills.
type IngestHandler struct {
	ingestSvc *service.IngestService
	scoreSvc  *service.ScoreService
}

// NewIngestHandler creates an IngestHandler.
func NewIngestHandler(ingestSvc *service.IngestService, scoreSvc *service.ScoreService) *IngestHandler {
	return &IngestHandler{ingestSvc: ingestSvc, scoreSvc: scoreSvc}
}

// RunOdds godoc
// POST /api/ingest/odds?sport=basketball_ncaab
func (h *IngestHandler) RunOdds(c *gin.Context) {
	report, err := h.ingestSvc.IngestOdds(c.Request.Context(), c.Query("sport"))
	if err != nil {
		if errors.Is(err, domain.ErrMissingSport) {
			respondError(c, http.StatusBadRequest, "ERR_MISSING_SPORT", err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "odds ingestion failed")
		return
	}
	respondSuccess(c, http.StatusOK, report)
}

// RunScores godoc
// POST /api/ingest/scores?sport=basketball_ncaab
func (h *IngestHandler) RunScores(c *gin.Context) {
	report, err := h.scoreSvc.IngestScores(c.Request.Context(), c.Query("sport"))
	if err != nil {
		if errors.Is(err, domain.ErrMissingSport) {
			respondError(c, http.StatusBadRequest, "ERR_MISSING_SPORT", err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "score ingestion failed")
		return
	}
	respondSuccess(c, http.StatusOK, report)
}
