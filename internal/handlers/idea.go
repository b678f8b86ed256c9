package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/requestdata"
	"github.com/fvstudio/fvs-backend/internal/services"
	"github.com/fvstudio/fvs-backend/internal/types"
)

type IdeaHandler struct {
	log     *logger.Logger
	ideaSvc services.IdeaService
}

func NewIdeaHandler(log *logger.Logger, ideaSvc services.IdeaService) *IdeaHandler {
	return &IdeaHandler{
		log:     log.With("handler", "IdeaHandler"),
		ideaSvc: ideaSvc,
	}
}

// POST /api/ideas/propose
func (h *IdeaHandler) ProposeIdeas(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())

	var req struct {
		Format string `json:"format"`
		Range  string `json:"range"`
	}
	// Body is optional; defaults cover the common case.
	_ = c.ShouldBindJSON(&req)

	ideas, err := h.ideaSvc.ProposeIdeas(c.Request.Context(), clientID, req.Format, req.Range)
	if err != nil {
		RespondServiceError(c, "propose_ideas_failed", err)
		return
	}
	RespondOK(c, gin.H{"ideas": ideas})
}

// GET /api/ideas?status=proposed&limit=20
func (h *IdeaHandler) GetIdeas(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())
	status := types.IdeaStatus(c.Query("status"))
	limit := parseLimit(c.Query("limit"), 50)

	ideas, err := h.ideaSvc.GetIdeas(c.Request.Context(), clientID, status, limit)
	if err != nil {
		RespondServiceError(c, "get_ideas_failed", err)
		return
	}
	RespondOK(c, gin.H{"ideas": ideas})
}

// PATCH /api/ideas/:id/status
func (h *IdeaHandler) UpdateIdeaStatus(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())
	ideaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_idea_id", err)
		return
	}

	var req struct {
		Status   types.IdeaStatus `json:"status"`
		Override bool             `json:"override"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	idea, err := h.ideaSvc.UpdateIdeaStatus(c.Request.Context(), clientID, ideaID, req.Status, req.Override)
	if err != nil {
		RespondServiceError(c, "update_idea_failed", err)
		return
	}
	RespondOK(c, gin.H{"idea": idea})
}
