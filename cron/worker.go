package cron

import (
	"context"
	"errors"
	"time"

	"dpiportal/config"
	"dpiportal/models"
	"dpiportal/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeAdminUsersRefresh = "admin:users:refresh"

// Refresher reloads the admin user list into the shared cache.
type Refresher interface {
	Refresh(ctx context.Context, token string) ([]models.AdminUser, error)
}

// Worker owns the scheduler enqueueing refresh tasks and the server running them.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
}

// NewRefreshTask builds the periodic refresh task. A run never retries; the
// next tick replaces it.
func NewRefreshTask(interval time.Duration) *asynq.Task {
	return asynq.NewTask(TypeAdminUsersRefresh, nil, asynq.MaxRetry(0), asynq.Timeout(interval))
}

// HandleRefreshTask refreshes the list using the portal's service token.
func HandleRefreshTask(r Refresher, token string, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		if token == "" {
			return errors.New("no backend service token configured")
		}
		users, err := r.Refresh(ctx, token)
		if err != nil {
			logger.Warn("[AdminRefresh] refresh failed", zap.Error(err))
			return err
		}
		logger.Debug("[AdminRefresh] user list refreshed", zap.Int("count", len(users)))
		return nil
	}
}

// StartAdminRefreshWorker polls the sandbox user list every AdminPollInterval so
// that open console screens read a warm cache. It is a no-op without a
// BACKEND_SERVICE_TOKEN.
func StartAdminRefreshWorker(r Refresher) *Worker {
	logger := utils.GetLogger()
	cfg := config.AppConfig
	if cfg.BackendServiceToken == "" {
		logger.Info("[AdminRefresh] BACKEND_SERVICE_TOKEN not set, background polling disabled")
		return nil
	}
	interval := cfg.AdminPollInterval
	if interval <= 0 {
		interval = 3 * time.Second
	}

	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAdminUsersRefresh, HandleRefreshTask(r, cfg.BackendServiceToken, logger))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register("@every "+interval.String(), NewRefreshTask(interval)); err != nil {
		logger.Error("[AdminRefresh] failed to register periodic task", zap.Error(err))
		return nil
	}

	w := &Worker{server: srv, scheduler: scheduler}
	go func() {
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				break
			}
			logger.Warn("[AdminRefresh] failed to start worker",
				zap.Int("attempt", attempts), zap.Int("max", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("[AdminRefresh] max retry attempts reached, polling disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
		if err := scheduler.Start(); err != nil {
			logger.Error("[AdminRefresh] failed to start scheduler", zap.Error(err))
			return
		}
		logger.Info("[AdminRefresh] polling sandbox user list", zap.Duration("interval", interval))
	}()
	return w
}

// Shutdown stops the scheduler then drains the server.
func (w *Worker) Shutdown() {
	if w == nil {
		return
	}
	w.scheduler.Shutdown()
	w.server.Shutdown()
}
