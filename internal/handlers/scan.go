package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/requestdata"
	"github.com/fvstudio/fvs-backend/internal/services"
)

type ScanHandler struct {
	log     *logger.Logger
	scanSvc services.ScanService
}

func NewScanHandler(log *logger.Logger, scanSvc services.ScanService) *ScanHandler {
	return &ScanHandler{
		log:     log.With("handler", "ScanHandler"),
		scanSvc: scanSvc,
	}
}

// POST /api/scan/trigger
func (h *ScanHandler) TriggerScan(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())

	if err := h.scanSvc.TriggerScan(c.Request.Context(), clientID); err != nil {
		RespondServiceError(c, "trigger_scan_failed", err)
		return
	}
	RespondOK(c, gin.H{"message": "scan started"})
}

// GET /api/scan/status
func (h *ScanHandler) GetScanStatus(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())

	status, err := h.scanSvc.GetScanStatus(c.Request.Context(), clientID)
	if err != nil {
		RespondServiceError(c, "scan_status_failed", err)
		return
	}
	RespondOK(c, gin.H{"scan": status})
}

// GET /api/recommendations?limit=20
func (h *ScanHandler) GetRecommendations(c *gin.Context) {
	clientID := requestdata.ClientID(c.Request.Context())
	limit := parseLimit(c.Query("limit"), 20)

	recs, err := h.scanSvc.GetRecommendations(c.Request.Context(), clientID, limit)
	if err != nil {
		RespondServiceError(c, "recommendations_failed", err)
		return
	}
	RespondOK(c, gin.H{"recommendations": recs})
}
