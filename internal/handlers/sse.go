package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/requestdata"
	"github.com/fvstudio/fvs-backend/internal/sse"
)

type SSEHandler struct {
	log *logger.Logger
	hub *sse.SSEHub

	mu sync.RWMutex
	// Each open stream gets its own connection and queue; a client with
	// several tabs has several entries here.
	conns map[uuid.UUID]map[*sse.SSEClient]struct{} // key: authenticated client id
}

func NewSSEHandler(log *logger.Logger, hub *sse.SSEHub) *SSEHandler {
	return &SSEHandler{
		log:   log.With("handler", "SSEHandler"),
		hub:   hub,
		conns: make(map[uuid.UUID]map[*sse.SSEClient]struct{}),
	}
}

// GET /sse/stream
func (h *SSEHandler) SSEStream(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())
	if clientID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	h.log.Info("SSEStream open", "client_id", clientID)

	conn := h.hub.NewSSEClient(clientID)
	h.mu.Lock()
	set, ok := h.conns[clientID]
	if !ok {
		set = make(map[*sse.SSEClient]struct{})
		h.conns[clientID] = set
	}
	set[conn] = struct{}{}
	h.mu.Unlock()

	// Every stream listens on the client's own channel.
	h.hub.AddChannel(conn, clientID.String())

	h.hub.ServeHTTP(c.Writer, c.Request, conn)

	// This handler owns conn; nothing else closes it.
	h.mu.Lock()
	delete(set, conn)
	if len(set) == 0 {
		delete(h.conns, clientID)
	}
	h.mu.Unlock()
	h.hub.CloseClient(conn)
}

// connsFor snapshots the client's live connections.
func (h *SSEHandler) connsFor(clientID uuid.UUID) []*sse.SSEClient {
	h.mu.RLock()
	defer h.mu.RUnlock()
	set := h.conns[clientID]
	out := make([]*sse.SSEClient, 0, len(set))
	for conn := range set {
		out = append(out, conn)
	}
	return out
}

// POST /sse/subscribe
func (h *SSEHandler) SSESubscribe(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())
	if clientID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req struct {
		Channel string `json:"channel"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Channel == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel"})
		return
	}

	conns := h.connsFor(clientID)
	if len(conns) == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "no active SSE connection"})
		return
	}

	for _, conn := range conns {
		h.hub.AddChannel(conn, req.Channel)
	}
	c.JSON(http.StatusOK, gin.H{"message": "subscribed", "channel": req.Channel})
}

// POST /sse/unsubscribe
func (h *SSEHandler) SSEUnsubscribe(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())
	if clientID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req struct {
		Channel string `json:"channel"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Channel == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel"})
		return
	}

	conns := h.connsFor(clientID)
	if len(conns) == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "no active SSE connection"})
		return
	}

	for _, conn := range conns {
		h.hub.RemoveChannel(conn, req.Channel)
	}
	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed", "channel": req.Channel})
}
