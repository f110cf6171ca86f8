package cron

import (
	"context"
	"fmt"
	"time"

	"karigar/services/booking"
	"karigar/services/notification"
	"karigar/services/tasks"
	"karigar/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Worker processes queued push deliveries and booking reminders.
type Worker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
}

// NewWorker builds the asynq server and registers the task handlers.
func NewWorker(redisOpt asynq.RedisConnOpt, notifSvc notification.NotificationService, bookingSvc booking.BookingService) *Worker {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: utils.GetLogger().Sugar(),
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				utils.GetLogger().Warn("Task failed", zap.String("type", task.Type()), zap.Error(err))
			}),
		},
	)
	return &Worker{srv: srv, mux: NewServeMux(notifSvc, bookingSvc)}
}

// NewServeMux routes task types to their handlers.
func NewServeMux(notifSvc notification.NotificationService, bookingSvc booking.BookingService) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypePushSend, HandlePushTask(notifSvc))
	mux.HandleFunc(tasks.TypeBookingReminder, HandleReminderTask(bookingSvc))
	return mux
}

// Start runs the worker in the background, retrying startup with backoff.
func (w *Worker) Start() {
	go func() {
		logger := utils.GetLogger()
		logger.Info("Starting task worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				return
			}
			logger.Error("Task worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			if attempts == maxAttempts {
				logger.Error("Task worker gave up; queued pushes and reminders will wait")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

// Shutdown stops fetching tasks and waits for in-flight handlers.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}

// HandlePushTask delivers a stored notification to the recipient's device.
func HandlePushTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParsePushPayload(task)
		if err != nil {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return notifSvc.DeliverPush(ctx, p)
	}
}

// HandleReminderTask sends the pre-visit reminder of a booking.
func HandleReminderTask(bookingSvc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseReminderPayload(task)
		if err != nil {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		utils.GetLogger().Info("Sending booking reminder", zap.String("bookingId", p.BookingID))
		return bookingSvc.SendReminder(ctx, p.BookingID, p.SlotStart)
	}
}
