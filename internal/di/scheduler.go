package di

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/streamlens-go/internal/cache"
	"github.com/jrjohn/streamlens-go/internal/config"
	"github.com/jrjohn/streamlens-go/internal/domain/repository"
	"github.com/jrjohn/streamlens-go/internal/domain/service"
	"github.com/jrjohn/streamlens-go/internal/scheduler"
)

// SchedulerModule provides the cron scheduler and its maintenance jobs
var SchedulerModule = fx.Module("scheduler",
	fx.Provide(provideScheduler),
	fx.Invoke(startScheduler),
)

func provideScheduler(store cache.Store, logger *zap.Logger) *scheduler.Scheduler {
	return scheduler.NewScheduler(store, logger)
}

func startScheduler(
	lc fx.Lifecycle,
	sched *scheduler.Scheduler,
	cfg *config.Config,
	refreshTokenRepo repository.RefreshTokenRepository,
	contentService service.ContentService,
	logger *zap.Logger,
) error {
	if err := sched.RegisterJob(scheduler.NewTokenPurgeJob(refreshTokenRepo, logger)); err != nil {
		return err
	}

	if job := scheduler.NewImportSweepJob(cfg, contentService, logger); job.Name != "" {
		if err := sched.RegisterJob(job); err != nil {
			return err
		}
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return sched.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return sched.Stop(ctx)
		},
	})

	return nil
}
