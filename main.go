package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"consultly/config"
	cronjobs "consultly/cron"
	"consultly/database"
	bookingrepo "consultly/database/repository/booking"
	consultantrepo "consultly/database/repository/consultant"
	"consultly/handlers"
	"consultly/routes"
	bookingsvc "consultly/services/booking"
	"consultly/services/calendar"
	"consultly/services/civiltime"
	"consultly/services/conflict"
	consultantsvc "consultly/services/consultant"
	"consultly/services/notification"
	"consultly/services/payment"
	"consultly/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer utils.SyncLogger()

	if err := database.ConnectMongo(); err != nil {
		logger.Fatal("mongo connection failed", zap.Error(err))
	}

	consultantRepo := consultantrepo.NewMongoConsultantRepo(database.Collection("consultants"))
	bookingRepo := bookingrepo.NewMongoBookingRepo(database.Collection("bookings"))
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := bookingRepo.EnsureIndexes(ctx); err != nil {
			logger.Fatal("booking index creation failed", zap.Error(err))
		}
		cancel()
	}

	converter := civiltime.NewConverter(civiltime.NewIANARuleProvider())
	cal := calendar.New(converter)

	// The conflict index must see every active booking before traffic.
	index := conflict.NewIndex(config.AppConfig.ReserveGateTimeout)
	active, err := bookingRepo.ListActive()
	if err != nil {
		logger.Fatal("conflict index hydration failed", zap.Error(err))
	}
	index.Load(active)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	notifier := notification.NewAsynqNotifier(asynqClient)

	engine := bookingsvc.NewEngine(consultantRepo, bookingRepo, converter, cal, index, notifier)
	query := bookingsvc.NewQueryService(bookingRepo, converter)
	scheduleCache := consultantsvc.NewRedisScheduleCache(utils.GetScheduleCacheClient())
	consultantService := consultantsvc.NewService(consultantRepo, converter, scheduleCache)
	payments := payment.NewStripeService()

	bookingHandler := handlers.NewBookingHandler(engine, query, payments)
	consultantHandler := handlers.NewConsultantHandler(consultantService)

	go func() {
		if err := cronjobs.StartWorker(consultantRepo); err != nil {
			logger.Error("task worker stopped", zap.Error(err))
		}
	}()
	sweeper := cronjobs.StartPendingSweeper(engine, bookingRepo)

	if config.AppConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupRoutes(router, bookingHandler, consultantHandler)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("port", config.AppConfig.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	database.DisconnectMongo(ctx)
}
