package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"karigar/config"
	"karigar/cron"
	"karigar/database"
	"karigar/handlers"
	"karigar/middleware"
	"karigar/routes"
	"karigar/services/admin"
	"karigar/services/booking"
	"karigar/services/listing"
	"karigar/services/notification"
	"karigar/services/provider"
	"karigar/services/report"
	"karigar/services/review"
	"karigar/services/tasks"
	"karigar/services/user"
	"karigar/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if config.AppConfig.JWTSecret == "" {
		logger.Fatal("main: JWT_SECRET must be set")
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	store, err := database.OpenStore()
	if err != nil {
		logger.Fatal("main: failed to open store", zap.Error(err))
	}

	// Redis backs the slot lock and the task queue. Without it the server
	// still runs, with an in-process lock and no push or reminders.
	var (
		locker      utils.SlotLocker = utils.NewLocalSlotLock()
		queue       *asynq.Client
		redisChecks = map[string]*redis.Client{}
	)
	if err := utils.InitCache(); err != nil {
		logger.Warn("main: Redis unavailable, using in-process slot lock", zap.Error(err))
	} else {
		locker = utils.NewRedisSlotLock(utils.GetCacheClient(), utils.SlotLockTTL)
		redisChecks["cache"] = utils.GetCacheClient()
		queue = asynq.NewClient(tasks.RedisOpt())
		defer queue.Close()
	}

	var pusher notification.Pusher
	if path := config.AppConfig.FirebaseCredentialsFile; path != "" {
		if err := utils.FirebaseInit(rootCtx, path); err != nil {
			logger.Warn("main: push delivery disabled", zap.Error(err))
		} else {
			pusher = utils.FCMClient
		}
	}

	// services.
	var enqueuer tasks.Enqueuer
	var reminders booking.ReminderScheduler
	if queue != nil {
		enqueuer = queue
		reminders = tasks.NewReminderScheduler(queue, config.ReminderLead())
	}

	notificationService, err := notification.NewDefaultNotificationService(store.Notifications, store.Users, enqueuer, pusher)
	if err != nil {
		logger.Fatal("main: notification service", zap.Error(err))
	}
	bookingService, err := booking.NewDefaultBookingService(store, notificationService, locker, reminders)
	if err != nil {
		logger.Fatal("main: booking service", zap.Error(err))
	}
	reviewService, err := review.NewDefaultReviewService(store, notificationService)
	if err != nil {
		logger.Fatal("main: review service", zap.Error(err))
	}
	reportService, err := report.NewDefaultReportService(store, notificationService)
	if err != nil {
		logger.Fatal("main: report service", zap.Error(err))
	}
	providerService, err := provider.NewDefaultProviderService(store)
	if err != nil {
		logger.Fatal("main: provider service", zap.Error(err))
	}
	listingService, err := listing.NewDefaultListingService(store)
	if err != nil {
		logger.Fatal("main: listing service", zap.Error(err))
	}
	if client := utils.GetCacheClient(); client != nil {
		listingService.Cache = listing.NewRedisServiceCache(client, 10*time.Minute)
	}
	adminService, err := admin.NewDefaultAdminService(store)
	if err != nil {
		logger.Fatal("main: admin service", zap.Error(err))
	}
	userService := user.NewDefaultUserService(store.Users)

	var worker *cron.Worker
	if queue != nil {
		worker = cron.NewWorker(tasks.RedisOpt(), notificationService, bookingService)
		worker.Start()
	}

	utils.StartHealthMonitor(rootCtx, 60*time.Second, redisChecks, database.MongoClient)

	bookingHandler := handlers.NewBookingHandler(bookingService)
	serviceHandler := handlers.NewServiceHandler(listingService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	reportHandler := handlers.NewReportHandler(reportService)
	providerHandler := handlers.NewProviderHandler(providerService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	userHandler := handlers.NewUserHandler(userService)
	adminHandler := handlers.NewAdminHandler(adminService)

	handlerBundle := &handlers.HandlerBundle{
		ListServicesHandler:  serviceHandler.ListServicesHandler,
		GetServiceHandler:    serviceHandler.GetServiceHandler,
		CreateServiceHandler: serviceHandler.CreateServiceHandler,
		UpdateServiceHandler: serviceHandler.UpdateServiceHandler,
		DeleteServiceHandler: serviceHandler.DeleteServiceHandler,

		ListBookingsHandler:  bookingHandler.ListBookingsHandler,
		CreateBookingHandler: bookingHandler.CreateBookingHandler,
		GetBookingHandler:    bookingHandler.GetBookingHandler,
		UpdateBookingHandler: bookingHandler.UpdateBookingHandler,
		DeleteBookingHandler: bookingHandler.DeleteBookingHandler,

		ListReviewsHandler:  reviewHandler.ListReviewsHandler,
		CreateReviewHandler: reviewHandler.CreateReviewHandler,
		DeleteReviewHandler: reviewHandler.DeleteReviewHandler,

		ListReportsHandler:  reportHandler.ListReportsHandler,
		CreateReportHandler: reportHandler.CreateReportHandler,
		GetReportHandler:    reportHandler.GetReportHandler,
		UpdateReportHandler: reportHandler.UpdateReportHandler,
		DeleteReportHandler: reportHandler.DeleteReportHandler,

		ListProvidersHandler: providerHandler.ListProvidersHandler,
		GetProviderHandler:   providerHandler.GetProviderHandler,

		ListNotificationsHandler: notificationHandler.ListNotificationsHandler,
		MarkNotificationHandler:  notificationHandler.MarkNotificationHandler,

		GetMeHandler:          userHandler.GetMeHandler,
		UpdateFCMTokenHandler: userHandler.UpdateFCMTokenHandler,

		AdminStatsHandler:      adminHandler.StatsHandler,
		AdminBookingsHandler:   bookingHandler.AdminBookingsHandler,
		GetAllUsersHandler:     adminHandler.GetAllUsersHandler,
		GetAllProvidersHandler: adminHandler.GetAllProvidersHandler,
		UpdateUserHandler:      adminHandler.UpdateUserHandler,
		DeleteUserHandler:      adminHandler.DeleteUserHandler,

		HealthHandler: handlers.HealthHandler,
	}

	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("store", config.AppConfig.StoreDriver))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	stop()
	database.Disconnect(ctx)

	logger.Info("main: server stopped gracefully")
}
