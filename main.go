package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleetdesk/config"
	"fleetdesk/cron"
	"fleetdesk/database"
	driverRepoPkg "fleetdesk/database/repository/driver"
	planRepoPkg "fleetdesk/database/repository/plan"
	selectionRepoPkg "fleetdesk/database/repository/selection"
	"fleetdesk/handlers"
	"fleetdesk/middleware"
	"fleetdesk/routes"
	"fleetdesk/services/ledger"
	"fleetdesk/services/notification"
	"fleetdesk/services/selection"
	"fleetdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	selectionRepo := selectionRepoPkg.NewMongoSelectionRepo()
	driverRepo := driverRepoPkg.NewMongoDriverRepo()
	planRepo := planRepoPkg.NewMongoPlanRepo()

	// services.
	dispatcher, err := notification.NewDefaultDispatcher(driverRepo, utils.GetCacheClient(), logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize event dispatcher: %v", err)
	}

	ledgerService := ledger.NewDefaultLedgerService(selectionRepo, dispatcher, logger)

	selectionService := &selection.DefaultSelectionService{
		Selections: selectionRepo,
		Plans:      planRepo,
		Logger:     logger,
	}

	// Task queue client for post-ack webhook processing, plus the worker
	// that drains it.
	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLedgerQueueDB,
	})
	defer taskClient.Close()
	cron.InitLedgerWorker(ledgerService)

	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	selectionHandler := handlers.NewSelectionHandler(selectionService)
	webhookHandler := handlers.NewWebhookHandler(ledgerService, taskClient)
	authHandler := handlers.NewAuthHandler(driverRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		DriverRepo: driverRepo,

		// Ledger endpoints.
		GetObligationsHandler:       ledgerHandler.GetObligations,
		DriverConfirmPaymentHandler: ledgerHandler.DriverConfirmPayment,
		AdminRecordPaymentHandler:   ledgerHandler.AdminRecordPayment,
		SetStatusHandler:            ledgerHandler.SetStatus,
		AssignVehicleHandler:        ledgerHandler.AssignVehicle,

		// Selection endpoints.
		CreateSelectionHandler:      selectionHandler.CreateSelection,
		GetSelectionHandler:         selectionHandler.GetSelection,
		ListDriverSelectionsHandler: selectionHandler.ListDriverSelections,
		DeleteSelectionHandler:      selectionHandler.DeleteSelection,
		ListPlansHandler:            selectionHandler.ListPlans,

		// Gateway webhook endpoint.
		GatewayWebhookHandler: webhookHandler.GatewayPayment,

		// Driver auth endpoints.
		RegisterDriverHandler:   authHandler.RegisterDriver,
		LoginDriverHandler:      authHandler.LoginDriver,
		UpdateFCMTokenHandler:   authHandler.UpdateFCMToken,
		GetDriverProfileHandler: authHandler.GetDriverProfile,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient()}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
