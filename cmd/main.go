package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fvstudio/fvs-backend/internal/config"
	"github.com/fvstudio/fvs-backend/internal/db"
	"github.com/fvstudio/fvs-backend/internal/handlers"
	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/middleware"
	"github.com/fvstudio/fvs-backend/internal/repos"
	"github.com/fvstudio/fvs-backend/internal/server"
	"github.com/fvstudio/fvs-backend/internal/services"
	"github.com/fvstudio/fvs-backend/internal/sse"
	"github.com/fvstudio/fvs-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	port := utils.GetEnv("PORT", "8080", log)

	// Policy
	policy, err := config.Load(log)
	if err != nil {
		log.Error("Policy load failed", "error", err)
		os.Exit(1)
	}

	// Database
	dbService, err := db.NewService(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err = dbService.AutoMigrateAll(); err != nil {
		log.Warn("Auto migration failed", "error", err)
	}
	theDB := dbService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	submissionRepo := repos.NewSubmissionRepo(theDB, log)
	assetRepo := repos.NewAssetRepo(theDB, log)
	ideaRepo := repos.NewIdeaRepo(theDB, log)
	scoreRepo := repos.NewBrainScoreRepo(theDB, log)
	snapshotRepo := repos.NewBrainSnapshotRepo(theDB, log)
	taskRepo := repos.NewPublishingTaskRepo(theDB, log)
	connRepo := repos.NewPlatformConnectionRepo(theDB, log)
	recRepo := repos.NewRecommendationRepo(theDB, log)
	signalRepo := repos.NewTrendSignalRepo(theDB, log)
	analyticsRepo := repos.NewAnalyticsRepo(theDB, log)
	notificationRepo := repos.NewNotificationRepo(theDB, log)
	activityRepo := repos.NewActivityLogRepo(theDB, log)

	// SSE
	log.Info("Setting up SSE hub now...")
	sseHub := sse.NewSSEHub(log, policy.SSEQueueSize)

	// With REDIS_ADDR set, events go through the redis bridge so every
	// replica's hub sees them and scan status survives restarts;
	// otherwise both stay in-process.
	var emitter services.SSEEmitter = &services.HubEmitter{Hub: sseHub}
	scanStatuses := services.NewMemoryScanStatusStore()
	if os.Getenv("REDIS_ADDR") != "" {
		bus, err := services.NewRedisSSEBus(log)
		if err != nil {
			log.Warn("Redis SSE bus init failed, falling back to in-process hub", "error", err)
		} else {
			emitter = &services.BusEmitter{Bus: bus}
			scanStatuses = services.NewRedisScanStatusStore(bus.Client())
			if err := bus.StartForwarder(context.Background(), sseHub.Broadcast); err != nil {
				log.Warn("Redis SSE forwarder failed to start", "error", err)
			}
		}
	}

	// Notifiers
	sink := services.NewNotificationSink(log, notificationRepo)
	pipelineNotifier := services.NewPipelineNotifier(emitter, sink)
	brainNotifier := services.NewBrainNotifier(emitter, sink)
	scanNotifier := services.NewScanNotifier(emitter, sink)

	// Services
	log.Info("Setting up Services from main...")
	generator := services.SelectIdeaGenerator(log)
	publisher := services.NewStubPublisher(log)
	trendSource := services.NewSeededTrendSource(log)

	ideaService := services.NewIdeaService(theDB, log, policy, ideaRepo, snapshotRepo, activityRepo, analyticsRepo, submissionRepo, generator, brainNotifier)
	pipelineService := services.NewPipelineService(theDB, log, policy, submissionRepo, assetRepo, recRepo, scoreRepo, pipelineNotifier, brainNotifier)
	brainScoreService := services.NewBrainScoreService(theDB, log, policy, scoreRepo, submissionRepo, analyticsRepo, brainNotifier)
	dispatcherService := services.NewDispatcherService(theDB, log, policy, taskRepo, connRepo, submissionRepo, publisher, pipelineNotifier)
	scanService := services.NewScanService(theDB, log, signalRepo, recRepo, trendSource, scanStatuses, sink, scanNotifier)
	notificationService := services.NewNotificationService(log, notificationRepo)
	connectionService := services.NewConnectionService(log, connRepo)

	dispatcherService.StartWorker(context.Background())

	// Handlers
	log.Info("Setting up Handlers from main...")
	routerCfg := server.RouterConfig{
		AuthMiddleware:      middleware.NewAuthMiddleware(log, jwtSecretKey),
		SSEHandler:          handlers.NewSSEHandler(log, sseHub),
		IdeaHandler:         handlers.NewIdeaHandler(log, ideaService),
		PipelineHandler:     handlers.NewPipelineHandler(log, pipelineService),
		BrainScoreHandler:   handlers.NewBrainScoreHandler(log, brainScoreService),
		PublishingHandler:   handlers.NewPublishingHandler(log, dispatcherService),
		ScanHandler:         handlers.NewScanHandler(log, scanService),
		NotificationHandler: handlers.NewNotificationHandler(log, notificationService),
		ConnectionHandler:   handlers.NewConnectionHandler(log, connectionService),
	}

	router := server.NewRouter(routerCfg)
	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
