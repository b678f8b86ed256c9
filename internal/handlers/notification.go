package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/requestdata"
	"github.com/fvstudio/fvs-backend/internal/services"
)

type NotificationHandler struct {
	log      *logger.Logger
	notifSvc services.NotificationService
}

func NewNotificationHandler(log *logger.Logger, notifSvc services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		log:      log.With("handler", "NotificationHandler"),
		notifSvc: notifSvc,
	}
}

// GET /api/notifications?unread=true&limit=50
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())
	unreadOnly := c.Query("unread") == "true"
	limit := parseLimit(c.Query("limit"), 50)

	notifs, err := h.notifSvc.GetNotifications(c.Request.Context(), clientID, unreadOnly, limit)
	if err != nil {
		RespondServiceError(c, "notifications_failed", err)
		return
	}
	RespondOK(c, gin.H{"notifications": notifs})
}

// POST /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())
	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_notification_id", err)
		return
	}

	if err := h.notifSvc.MarkRead(c.Request.Context(), clientID, notificationID); err != nil {
		RespondServiceError(c, "mark_read_failed", err)
		return
	}
	RespondOK(c, gin.H{"message": "read"})
}
