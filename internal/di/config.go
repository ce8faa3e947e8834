package di

import (
	"go.uber.org/fx"

	"github.com/jrjohn/streamlens-go/internal/config"
)

// ConfigModule provides configuration dependencies
var ConfigModule = fx.Module("config",
	fx.Provide(
		config.Load,
		provideAppConfig,
		provideServerConfig,
		provideDatabaseConfig,
		provideRedisConfig,
		provideJWTConfig,
		provideImportConfig,
		provideAnalyticsConfig,
		provideObservabilityConfig,
	),
)

func provideAppConfig(cfg *config.Config) *config.AppConfig {
	return &cfg.App
}

func provideServerConfig(cfg *config.Config) *config.ServerConfig {
	return &cfg.Server
}

func provideDatabaseConfig(cfg *config.Config) *config.DatabaseConfig {
	return &cfg.Database
}

func provideRedisConfig(cfg *config.Config) *config.RedisConfig {
	return &cfg.Redis
}

func provideJWTConfig(cfg *config.Config) *config.JWTConfig {
	return &cfg.JWT
}

func provideImportConfig(cfg *config.Config) *config.ImportConfig {
	return &cfg.Import
}

func provideAnalyticsConfig(cfg *config.Config) *config.AnalyticsConfig {
	return &cfg.Analytics
}

func provideObservabilityConfig(cfg *config.Config) *config.ObservabilityConfig {
	return &cfg.Observability
}
