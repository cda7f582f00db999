package app

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/dentcare/dentcare_backend/config"
	"github.com/dentcare/dentcare_backend/internal/backup"
	"github.com/dentcare/dentcare_backend/internal/service/clinic"
	"github.com/dentcare/dentcare_backend/internal/storage/kv"
)

// WorkerModule provides and runs the backup scheduler.
var WorkerModule = fx.Module("workers",
	fx.Provide(ProvideBackupScheduler),
	fx.Invoke(RunBackupScheduler),
)

func ProvideBackupScheduler(store kv.Store, clinics clinic.Service, cfg *config.Config) *backup.Scheduler {
	return backup.New(
		store,
		clinics,
		time.Duration(cfg.Backup.CheckIntervalMinutes)*time.Minute,
		time.Duration(cfg.Backup.MaxAgeDays)*24*time.Hour,
		cfg.Backup.Retain,
	)
}

func RunBackupScheduler(lc fx.Lifecycle, sched *backup.Scheduler, cfg *config.Config) {
	if !cfg.Backup.Enabled {
		slog.Info("backup scheduler disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				sched.Run(ctx)
			}()
			slog.Info("backup scheduler started",
				"check_interval_minutes", cfg.Backup.CheckIntervalMinutes,
				"max_age_days", cfg.Backup.MaxAgeDays,
				"retain", cfg.Backup.Retain,
			)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
