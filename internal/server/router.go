package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/fvstudio/fvs-backend/internal/handlers"
	"github.com/fvstudio/fvs-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware      *middleware.AuthMiddleware
	SSEHandler          *handlers.SSEHandler
	IdeaHandler         *handlers.IdeaHandler
	PipelineHandler     *handlers.PipelineHandler
	BrainScoreHandler   *handlers.BrainScoreHandler
	PublishingHandler   *handlers.PublishingHandler
	ScanHandler         *handlers.ScanHandler
	NotificationHandler *handlers.NotificationHandler
	ConnectionHandler   *handlers.ConnectionHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// SSE
	protected.GET("/sse/stream", cfg.SSEHandler.SSEStream)
	protected.POST("/sse/subscribe", cfg.SSEHandler.SSESubscribe)
	protected.POST("/sse/unsubscribe", cfg.SSEHandler.SSEUnsubscribe)

	api := protected.Group("/api")

	// Ideas
	api.POST("/ideas/propose", cfg.IdeaHandler.ProposeIdeas)
	api.GET("/ideas", cfg.IdeaHandler.GetIdeas)
	api.PATCH("/ideas/:id/status", cfg.IdeaHandler.UpdateIdeaStatus)

	// Submissions and pipeline
	api.POST("/submissions/script", cfg.PipelineHandler.ScriptToSubmission)
	api.POST("/submissions/:id/video", cfg.PipelineHandler.SubmissionToVideo)
	api.POST("/submissions/:id/produce", cfg.PipelineHandler.ProduceEpisode)
	api.PATCH("/submissions/:id/status", cfg.PipelineHandler.UpdateStatus)
	api.GET("/submissions/:id/pipeline", cfg.PipelineHandler.GetPipelineStatus)
	api.GET("/pipeline/health", cfg.PipelineHandler.GetPipelineHealth)

	// Brain feedback loop
	api.GET("/brain/scores", cfg.BrainScoreHandler.GetBrainScores)
	api.GET("/brain/trend", cfg.BrainScoreHandler.GetAccuracyTrend)
	api.GET("/brain/leaderboard", cfg.BrainScoreHandler.GetLeaderboard)
	api.GET("/brain/challenges", cfg.BrainScoreHandler.GetActiveChallenges)
	api.POST("/brain/reconcile", cfg.BrainScoreHandler.Reconcile)

	// Publishing
	api.POST("/publishing", cfg.PublishingHandler.ScheduleTask)
	api.GET("/publishing", cfg.PublishingHandler.ListTasks)
	api.PATCH("/publishing/:id", cfg.PublishingHandler.RescheduleTask)
	api.DELETE("/publishing/:id", cfg.PublishingHandler.CancelTask)

	// Trend scan
	api.POST("/scan/trigger", cfg.ScanHandler.TriggerScan)
	api.GET("/scan/status", cfg.ScanHandler.GetScanStatus)
	api.GET("/recommendations", cfg.ScanHandler.GetRecommendations)

	// Notifications
	api.GET("/notifications", cfg.NotificationHandler.GetNotifications)
	api.POST("/notifications/:id/read", cfg.NotificationHandler.MarkRead)

	// Platform connections
	api.GET("/connections/:platform", cfg.ConnectionHandler.GetConnection)
	api.PUT("/connections/:platform", cfg.ConnectionHandler.SetConnection)

	return router
}
