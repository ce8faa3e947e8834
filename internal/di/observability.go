package di

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/streamlens-go/internal/config"
	"github.com/jrjohn/streamlens-go/internal/observability"
)

// ObservabilityModule provides metrics and tracing dependencies
var ObservabilityModule = fx.Module("observability",
	fx.Provide(
		provideMetricsProvider,
		provideTracingProvider,
	),
)

func provideMetricsProvider(
	lc fx.Lifecycle,
	appCfg *config.AppConfig,
	obsCfg *config.ObservabilityConfig,
	logger *zap.Logger,
) (*observability.MetricsProvider, error) {
	metricsCfg := observability.DefaultMetricsConfig()
	metricsCfg.Enabled = obsCfg.MetricsEnabled
	metricsCfg.ServiceName = appCfg.Name

	mp, err := observability.NewMetricsProvider(metricsCfg, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return mp.Shutdown(ctx)
		},
	})

	return mp, nil
}

func provideTracingProvider(
	lc fx.Lifecycle,
	appCfg *config.AppConfig,
	obsCfg *config.ObservabilityConfig,
	logger *zap.Logger,
) (*observability.TracingProvider, error) {
	tracingCfg := observability.DefaultTracingConfig()
	tracingCfg.Enabled = obsCfg.TracingEnabled
	tracingCfg.ServiceName = appCfg.Name
	tracingCfg.ServiceVersion = appCfg.Version
	tracingCfg.Environment = appCfg.Environment
	tracingCfg.ExporterType = obsCfg.ExporterType
	tracingCfg.OTLPEndpoint = obsCfg.OTLPEndpoint
	tracingCfg.OTLPInsecure = obsCfg.OTLPInsecure
	tracingCfg.SamplingRate = obsCfg.SamplingRate

	tp, err := observability.NewTracingProvider(tracingCfg, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})

	return tp, nil
}
