package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/requestdata"
	"github.com/fvstudio/fvs-backend/internal/services"
)

type ConnectionHandler struct {
	log     *logger.Logger
	connSvc services.ConnectionService
}

func NewConnectionHandler(log *logger.Logger, connSvc services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{
		log:     log.With("handler", "ConnectionHandler"),
		connSvc: connSvc,
	}
}

// GET /api/connections/:platform
func (h *ConnectionHandler) GetConnection(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())

	conn, err := h.connSvc.GetConnection(c.Request.Context(), clientID, c.Param("platform"))
	if err != nil {
		RespondServiceError(c, "get_connection_failed", err)
		return
	}
	RespondOK(c, gin.H{"connection": conn})
}

// PUT /api/connections/:platform
func (h *ConnectionHandler) SetConnection(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())

	var req struct {
		Connected bool `json:"connected"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	conn, err := h.connSvc.SetConnection(c.Request.Context(), clientID, c.Param("platform"), req.Connected)
	if err != nil {
		RespondServiceError(c, "set_connection_failed", err)
		return
	}
	RespondOK(c, gin.H{"connection": conn})
}
