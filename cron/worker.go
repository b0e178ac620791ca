package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flexispace/config"
	"flexispace/metrics"
	"flexispace/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderNotifier delivers a due reminder to whoever should receive it.
type ReminderNotifier interface {
	NotifyBooking(ctx context.Context, p tasks.ReminderPayload) error
}

// LogNotifier writes reminders to the log. There is no push channel without user accounts.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) NotifyBooking(ctx context.Context, p tasks.ReminderPayload) error {
	n.Logger.Info("Booking reminder",
		zap.String("bookingID", p.BookingID),
		zap.String("space", p.SpaceTitle),
		zap.String("date", p.Date),
		zap.String("time", p.Time))
	return nil
}

// RedisOpt is the asynq connection for the reminder queue.
func RedisOpt(cfg config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisReminderQueueDB,
	}
}

// InitReminderWorker runs the async worker in background. The returned server
// must be shut down by the caller.
func InitReminderWorker(ctx context.Context, cfg config.Config, notifier ReminderNotifier, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		RedisOpt(cfg),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingReminder, HandleReminderTask(notifier, logger))

	go monitorRedisConnection(ctx, cfg, logger)

	go func() {
		logger.Info("Starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Reminder worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Reminder worker gave up; reminders will not be delivered")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()
	return srv
}

func HandleReminderTask(notifier ReminderNotifier, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Warn("Invalid reminder payload", zap.Error(err))
			metrics.RemindersSent.WithLabelValues("invalid").Inc()
			return fmt.Errorf("decode reminder: %v: %w", err, asynq.SkipRetry)
		}

		if err := notifier.NotifyBooking(ctx, p); err != nil {
			logger.Error("Failed to deliver booking reminder", zap.String("bookingID", p.BookingID), zap.Error(err))
			metrics.RemindersSent.WithLabelValues("failed").Inc()
			return err
		}
		metrics.RemindersSent.WithLabelValues("delivered").Inc()
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context, cfg config.Config, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisReminderQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("Reminder queue redis connection lost", zap.Error(err))
			}
		}
	}
}
