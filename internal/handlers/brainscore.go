package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/requestdata"
	"github.com/fvstudio/fvs-backend/internal/services"
)

type BrainScoreHandler struct {
	log      *logger.Logger
	scoreSvc services.BrainScoreService
}

func NewBrainScoreHandler(log *logger.Logger, scoreSvc services.BrainScoreService) *BrainScoreHandler {
	return &BrainScoreHandler{
		log:      log.With("handler", "BrainScoreHandler"),
		scoreSvc: scoreSvc,
	}
}

// GET /api/brain/scores
func (h *BrainScoreHandler) GetBrainScores(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())

	summary, err := h.scoreSvc.GetBrainScores(c.Request.Context(), clientID)
	if err != nil {
		RespondServiceError(c, "brain_scores_failed", err)
		return
	}
	RespondOK(c, gin.H{"scores": summary})
}

// GET /api/brain/trend?weeks=8
func (h *BrainScoreHandler) GetAccuracyTrend(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())
	weeks := parseLimit(c.Query("weeks"), 8)

	points, err := h.scoreSvc.GetAccuracyTrend(c.Request.Context(), clientID, weeks)
	if err != nil {
		RespondServiceError(c, "accuracy_trend_failed", err)
		return
	}
	RespondOK(c, gin.H{"trend": points})
}

// GET /api/brain/leaderboard?limit=10
func (h *BrainScoreHandler) GetLeaderboard(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 10)

	entries, err := h.scoreSvc.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		RespondServiceError(c, "leaderboard_failed", err)
		return
	}
	RespondOK(c, gin.H{"leaderboard": entries})
}

// GET /api/brain/challenges
func (h *BrainScoreHandler) GetActiveChallenges(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())

	challenges, err := h.scoreSvc.GetActiveChallenges(c.Request.Context(), clientID)
	if err != nil {
		RespondServiceError(c, "challenges_failed", err)
		return
	}
	RespondOK(c, gin.H{"challenges": challenges})
}

// POST /api/brain/reconcile
// Normally driven by analytics ingestion; exposed for manual runs.
func (h *BrainScoreHandler) Reconcile(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())

	settled, err := h.scoreSvc.Reconcile(c.Request.Context(), clientID)
	if err != nil {
		RespondServiceError(c, "reconcile_failed", err)
		return
	}
	RespondOK(c, gin.H{"settled": settled})
}
