package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/requestdata"
	"github.com/fvstudio/fvs-backend/internal/services"
)

type PublishingHandler struct {
	log           *logger.Logger
	dispatcherSvc services.DispatcherService
}

func NewPublishingHandler(log *logger.Logger, dispatcherSvc services.DispatcherService) *PublishingHandler {
	return &PublishingHandler{
		log:           log.With("handler", "PublishingHandler"),
		dispatcherSvc: dispatcherSvc,
	}
}

// POST /api/publishing
func (h *PublishingHandler) ScheduleTask(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())

	var req struct {
		SubmissionID uuid.UUID `json:"submission_id"`
		Platform     string    `json:"platform"`
		ScheduledAt  time.Time `json:"scheduled_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	task, err := h.dispatcherSvc.ScheduleTask(c.Request.Context(), clientID, req.SubmissionID, req.Platform, req.ScheduledAt)
	if err != nil {
		RespondServiceError(c, "schedule_task_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// GET /api/publishing?limit=50
func (h *PublishingHandler) ListTasks(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())
	limit := parseLimit(c.Query("limit"), 50)

	tasks, err := h.dispatcherSvc.ListTasks(c.Request.Context(), clientID, limit)
	if err != nil {
		RespondServiceError(c, "list_tasks_failed", err)
		return
	}
	RespondOK(c, gin.H{"tasks": tasks})
}

// PATCH /api/publishing/:id
func (h *PublishingHandler) RescheduleTask(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_task_id", err)
		return
	}

	var req struct {
		ScheduledAt time.Time `json:"scheduled_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	task, err := h.dispatcherSvc.RescheduleTask(c.Request.Context(), clientID, taskID, req.ScheduledAt)
	if err != nil {
		RespondServiceError(c, "reschedule_task_failed", err)
		return
	}
	RespondOK(c, gin.H{"task": task})
}

// DELETE /api/publishing/:id
func (h *PublishingHandler) CancelTask(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_task_id", err)
		return
	}

	if err := h.dispatcherSvc.CancelTask(c.Request.Context(), clientID, taskID); err != nil {
		RespondServiceError(c, "cancel_task_failed", err)
		return
	}
	RespondOK(c, gin.H{"message": "cancelled"})
}
