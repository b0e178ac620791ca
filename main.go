package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flexispace/config"
	"flexispace/cron"
	"flexispace/database"
	"flexispace/database/kv"
	"flexispace/database/repository"
	recordsRepo "flexispace/database/repository/records"
	"flexispace/handlers"
	"flexispace/metrics"
	"flexispace/middleware"
	"flexispace/routes"
	"flexispace/services/booking"
	"flexispace/services/catalog"
	"flexispace/services/listing"
	"flexispace/services/tasks"
	"flexispace/services/transaction"
	"flexispace/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store, err := database.OpenStore(cfg)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to open %s store: %v", cfg.StoreBackend, err)
	}
	checks := map[string]utils.HealthCheck{}

	// repositories.
	bookingRepo := repository.NewKVRecordRepo(store)
	if cfg.StoreBackend == "mongo" {
		if err := database.InitDB(ctx); err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		db := database.MongoClient.Database(cfg.DatabaseName)
		if err := recordsRepo.EnsureIndexes(ctx, db); err != nil {
			logger.Warn("main: failed to ensure booking indexes", zap.Error(err))
		}
		bookingRepo = repository.NewMongoRecordRepo(db)
		checks["mongo"] = func(ctx context.Context) error {
			return database.MongoClient.Ping(ctx, nil)
		}
	}
	listingRepo := repository.NewKVListingRepo(store)
	checks["store"] = func(ctx context.Context) error {
		_, err := store.Get(ctx, recordsRepo.BookingsKey)
		if errors.Is(err, kv.ErrNotFound) {
			return nil
		}
		return err
	}

	// confirmation observers.
	observers := []transaction.Observer{metrics.ConfirmationObserver{}}
	var reminderClient *asynq.Client
	var reminderWorker *asynq.Server
	if cfg.RemindersEnabled {
		reminderClient = asynq.NewClient(cron.RedisOpt(cfg))
		observers = append(observers, tasks.NewReminderScheduler(reminderClient, cfg.ReminderLead, logger))
		reminderWorker = cron.InitReminderWorker(ctx, cfg, cron.LogNotifier{Logger: logger}, logger)
	}

	// services.
	cat := catalog.Default()
	bookingService := booking.NewBookingSessionService(cat, bookingRepo, booking.Options{
		Currency:   cfg.Currency,
		SessionTTL: cfg.SessionTTL,
		Transaction: transaction.Options{
			ConfirmationDelay: cfg.ConfirmationDelay,
			RedirectDelay:     cfg.RedirectDelay,
			AuthorizeTimeout:  10 * time.Second,
			Scheduler:         transaction.WallClock{},
			Processor:         transaction.SimulatedEscrow{},
			Observers:         observers,
		},
		Logger: logger,
	})
	listingService := listing.NewListingSessionService(listingRepo, cfg.SessionTTL, logger)
	bookingService.RunJanitor(ctx, time.Minute)
	listingService.RunJanitor(ctx, time.Minute)
	utils.StartHealthMonitor(ctx, 30*time.Second, checks)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Booking: handlers.NewBookingHandler(bookingService, logger),
		Listing: handlers.NewListingHandler(listingService, logger),
		Spaces:  handlers.NewSpaceHandler(cat),
	}

	// Create the Gin router.
	router := gin.New()
	if err := middleware.TrustProxies(router, cfg.TrustedProxies); err != nil {
		logger.Sugar().Fatalf("main: invalid TRUSTED_PROXIES: %v", err)
	}
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	routes.RegisterRoutes(router, handlerBundle, cfg.MaxRequestsPerMin)

	// Start the HTTP server.
	port := cfg.AppPort
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	stop()

	bookingService.Close()
	if reminderWorker != nil {
		reminderWorker.Shutdown()
	}
	if reminderClient != nil {
		_ = reminderClient.Close()
	}
	if err := store.Close(); err != nil {
		logger.Warn("main: failed to close store", zap.Error(err))
	}
	if database.MongoClient != nil {
		_ = database.MongoClient.Disconnect(shutdownCtx)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
