package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/requestdata"
	"github.com/fvstudio/fvs-backend/internal/services"
	"github.com/fvstudio/fvs-backend/internal/types"
)

type PipelineHandler struct {
	log         *logger.Logger
	pipelineSvc services.PipelineService
}

func NewPipelineHandler(log *logger.Logger, pipelineSvc services.PipelineService) *PipelineHandler {
	return &PipelineHandler{
		log:         log.With("handler", "PipelineHandler"),
		pipelineSvc: pipelineSvc,
	}
}

// POST /api/submissions/script
func (h *PipelineHandler) ScriptToSubmission(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())

	var req struct {
		Title             string     `json:"title"`
		Kind              string     `json:"kind"`
		Script            string     `json:"script"`
		IdeaID            *uuid.UUID `json:"idea_id"`
		StrategySessionID *uuid.UUID `json:"strategy_session_id"`
		RecommendationID  *uuid.UUID `json:"recommendation_id"`
		ReleaseDate       *time.Time `json:"release_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	sub, err := h.pipelineSvc.ScriptToSubmission(c.Request.Context(), clientID, services.ScriptToSubmissionRequest{
		Title:             req.Title,
		Kind:              req.Kind,
		Script:            req.Script,
		IdeaID:            req.IdeaID,
		StrategySessionID: req.StrategySessionID,
		RecommendationID:  req.RecommendationID,
		ReleaseDate:       req.ReleaseDate,
	})
	if err != nil {
		RespondServiceError(c, "create_submission_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"submission": sub})
}

// POST /api/submissions/:id/video
func (h *PipelineHandler) SubmissionToVideo(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())
	submissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_submission_id", err)
		return
	}

	var req struct {
		StorageKey string `json:"storage_key"`
		URL        string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	asset, err := h.pipelineSvc.SubmissionToVideo(c.Request.Context(), clientID, submissionID, services.VideoLinkRequest{
		StorageKey: req.StorageKey,
		URL:        req.URL,
	})
	if err != nil {
		RespondServiceError(c, "link_video_failed", err)
		return
	}
	RespondOK(c, gin.H{"asset": asset})
}

// POST /api/submissions/:id/produce
func (h *PipelineHandler) ProduceEpisode(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())
	submissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_submission_id", err)
		return
	}

	report, err := h.pipelineSvc.ProduceEpisode(c.Request.Context(), clientID, submissionID)
	if err != nil {
		RespondServiceError(c, "produce_episode_failed", err)
		return
	}
	RespondOK(c, gin.H{"pipeline": report})
}

// PATCH /api/submissions/:id/status
func (h *PipelineHandler) UpdateStatus(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())
	submissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_submission_id", err)
		return
	}

	var req struct {
		Status types.SubmissionStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	sub, err := h.pipelineSvc.UpdateStatus(c.Request.Context(), clientID, submissionID, req.Status)
	if err != nil {
		RespondServiceError(c, "update_status_failed", err)
		return
	}
	RespondOK(c, gin.H{"submission": sub})
}

// GET /api/submissions/:id/pipeline
func (h *PipelineHandler) GetPipelineStatus(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())
	submissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_submission_id", err)
		return
	}

	report, err := h.pipelineSvc.GetPipelineStatus(c.Request.Context(), clientID, submissionID)
	if err != nil {
		RespondServiceError(c, "pipeline_status_failed", err)
		return
	}
	RespondOK(c, gin.H{"pipeline": report})
}

// GET /api/pipeline/health
func (h *PipelineHandler) GetPipelineHealth(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())

	report, err := h.pipelineSvc.GetPipelineHealth(c.Request.Context(), clientID)
	if err != nil {
		RespondServiceError(c, "pipeline_health_failed", err)
		return
	}
	RespondOK(c, gin.H{"health": report})
}
