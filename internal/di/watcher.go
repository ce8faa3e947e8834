package di

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/streamlens-go/internal/config"
	"github.com/jrjohn/streamlens-go/internal/csvio"
	"github.com/jrjohn/streamlens-go/internal/domain/service"
)

// WatcherModule provides the CSV drop-directory watcher
var WatcherModule = fx.Module("watcher",
	fx.Provide(provideWatcher),
	fx.Invoke(startWatcher),
)

func provideWatcher(cfg *config.Config, contentService service.ContentService, logger *zap.Logger) *csvio.Watcher {
	return csvio.NewWatcher(cfg, contentService, logger)
}

func startWatcher(lc fx.Lifecycle, watcher *csvio.Watcher) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return watcher.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			watcher.Stop()
			return nil
		},
	})
}
