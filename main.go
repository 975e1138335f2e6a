// File: bookify/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookify/config"
	"bookify/cron"
	"bookify/database"
	"bookify/database/adapter"
	"bookify/handlers"
	"bookify/middleware"
	"bookify/routes"
	"bookify/services/booking"
	"bookify/services/catalog"
	"bookify/services/notification"
	"bookify/services/payment"
	"bookify/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeSecretKey

	// persistence.
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	store := adapter.NewMongoAdapter(db)

	// booking rules from config.
	rules := booking.Rules{
		MinAdvanceTime:            config.AppConfig.BookingMinAdvanceMinutes,
		MaxAdvanceDays:            config.AppConfig.BookingMaxAdvanceDays,
		AllowCancellation:         config.AppConfig.BookingAllowCancellation,
		CancellationDeadlineHours: config.AppConfig.BookingCancelDeadlineHrs,
		RequireApproval:           config.AppConfig.BookingRequireApproval,
	}
	if tz := config.AppConfig.BookingTimeZone; tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			logger.Sugar().Fatalf("main: invalid booking timezone %q: %v", tz, err)
		}
		rules.TimeZone = loc
	}

	// services.
	catalogService := &catalog.DefaultCatalogService{
		Adapter: store,
		Cache:   utils.GetCacheClient(),
		Logger:  logger,
	}

	var gateway payment.Gateway
	paymentEnabled := config.AppConfig.PaymentEnabled && config.AppConfig.StripeSecretKey != ""
	if paymentEnabled {
		gateway = payment.NewStripeGateway(config.AppConfig.StripeWebhookSecret, logger)
	} else {
		logger.Info("Payment processing disabled")
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()

	notificationService, err := notification.NewDefaultNotificationService(
		asynqClient,
		config.AppConfig.BookingReminderHoursAhead,
		logger,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}
	cron.InitReminderWorker(notificationService)

	bookingService := &booking.DefaultBookingService{
		Adapter:        store,
		Catalog:        catalogService,
		Gateway:        gateway,
		Notifier:       notificationService,
		Rules:          rules,
		PaymentEnabled: paymentEnabled,
		Logger:         logger,
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Booking:  handlers.NewBookingHandler(bookingService, logger),
		Services: handlers.NewServicesHandler(catalogService, logger),
		Admin:    handlers.NewAdminHandler(catalogService, logger),
		Payment:  handlers.NewPaymentHandler(bookingService, gateway, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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
