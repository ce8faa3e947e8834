package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jrjohn/streamlens-go/internal/config"
	"github.com/jrjohn/streamlens-go/internal/csvio"
	"github.com/jrjohn/streamlens-go/internal/domain/repository"
	"github.com/jrjohn/streamlens-go/internal/domain/service"
)

const (
	// JobTokenPurge removes expired refresh tokens.
	JobTokenPurge = "refresh-token-purge"
	// JobImportSweep imports CSV files the watcher missed.
	JobImportSweep = "import-sweep"
)

// NewTokenPurgeJob deletes refresh tokens that expired before now.
// Revoked-but-unexpired tokens are kept so replay attempts stay
// observable until they age out.
func NewTokenPurgeJob(tokens repository.RefreshTokenRepository, logger *zap.Logger) Job {
	return Job{
		Name:     JobTokenPurge,
		Schedule: DailyMidnight,
		Run: func(ctx context.Context) error {
			deleted, err := tokens.DeleteExpired(ctx, time.Now())
			if err != nil {
				return err
			}
			if deleted > 0 {
				logger.Info("Purged expired refresh tokens", zap.Int64("deleted", deleted))
			}
			return nil
		},
	}
}

// NewImportSweepJob sweeps the CSV watch dir for files that arrived
// while the fsnotify watcher was not running. Returns the zero Job when
// the watch dir is unconfigured.
func NewImportSweepJob(cfg *config.Config, contentService service.ContentService, logger *zap.Logger) Job {
	if !cfg.Import.WatchEnabled || cfg.Import.WatchDir == "" {
		return Job{}
	}

	schedule := cfg.Import.SweepSchedule
	if schedule == "" {
		schedule = EveryFiveMinutes
	}

	return Job{
		Name:     JobImportSweep,
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			processed, err := csvio.SweepDir(ctx, contentService, cfg.Import.SystemUserID, cfg.Import.WatchDir, logger)
			if err != nil {
				return err
			}
			if processed > 0 {
				logger.Info("Import sweep processed pending files", zap.Int("files", processed))
			}
			return nil
		},
	}
}
