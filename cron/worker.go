package cron

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"consultly/config"
	bookingrepo "consultly/database/repository/booking"
	consultantrepo "consultly/database/repository/consultant"
	bookingsvc "consultly/services/booking"
	"consultly/services/tasks"
	"consultly/utils"
)

// StartWorker runs the asynq server processing queued booking events.
// Blocks until the server stops.
func StartWorker(consultants consultantrepo.ConsultantRepository) error {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		},
		asynq.Config{
			Concurrency: 10,
			Logger:      asynqLogger{},
		},
	)

	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeBookingEvent, tasks.NewBookingEventHandler(consultants))

	utils.GetLogger().Info("starting task worker")
	return srv.Run(mux)
}

// StartPendingSweeper schedules the job that cancels pending bookings whose
// payment window has elapsed. Each stale booking goes through the engine's
// Cancel so its reservation is released and events fire as usual.
func StartPendingSweeper(engine bookingsvc.Engine, bookings bookingrepo.BookingRepository) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("*/5 * * * *", func() {
		sweepPending(engine, bookings)
	})
	if err != nil {
		utils.GetLogger().Fatal("failed to schedule pending sweeper", zap.Error(err))
	}
	c.Start()
	return c
}

func sweepPending(engine bookingsvc.Engine, bookings bookingrepo.BookingRepository) {
	cutoff := time.Now().UTC().Add(-config.AppConfig.PendingBookingTTL)
	stale, err := bookings.ListStalePending(cutoff)
	if err != nil {
		utils.GetLogger().Error("pending sweep query failed", zap.Error(err))
		return
	}

	for _, b := range stale {
		if _, err := engine.Cancel(context.Background(), b.ID, "payment window elapsed"); err != nil {
			// A concurrent confirm or cancel may have won; that is fine.
			utils.GetLogger().Warn("pending sweep skipped booking",
				zap.String("bookingId", b.ID), zap.Error(err))
			continue
		}
		utils.GetLogger().Info("stale pending booking cancelled", zap.String("bookingId", b.ID))
	}
}

// asynqLogger adapts zap to asynq's logging interface.
type asynqLogger struct{}

func (asynqLogger) Debug(args ...interface{}) { utils.GetLogger().Sugar().Debug(args...) }
func (asynqLogger) Info(args ...interface{})  { utils.GetLogger().Sugar().Info(args...) }
func (asynqLogger) Warn(args ...interface{})  { utils.GetLogger().Sugar().Warn(args...) }
func (asynqLogger) Error(args ...interface{}) { utils.GetLogger().Sugar().Error(args...) }
func (asynqLogger) Fatal(args ...interface{}) { utils.GetLogger().Sugar().Fatal(args...) }
