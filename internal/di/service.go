package di

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/streamlens-go/internal/cache"
	"github.com/jrjohn/streamlens-go/internal/config"
	"github.com/jrjohn/streamlens-go/internal/domain/repository"
	"github.com/jrjohn/streamlens-go/internal/domain/service"
	serviceimpl "github.com/jrjohn/streamlens-go/internal/domain/service/impl"
	"github.com/jrjohn/streamlens-go/internal/observability"
	"github.com/jrjohn/streamlens-go/internal/security"
)

// ServiceModule provides service layer dependencies
var ServiceModule = fx.Module("service",
	fx.Provide(
		provideAuthService,
		provideUserService,
		provideContentService,
		provideAnalyticsService,
	),
)

func provideAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	activityRepo repository.ActivityRepository,
	jwtProvider *security.JWTProvider,
	passwordHasher *security.PasswordHasher,
	logger *zap.Logger,
) service.AuthService {
	return serviceimpl.NewAuthService(userRepo, refreshTokenRepo, activityRepo, jwtProvider, passwordHasher, logger)
}

func provideUserService(
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
	cfg *config.Config,
	logger *zap.Logger,
) service.UserService {
	return serviceimpl.NewUserService(userRepo, activityRepo, cfg, logger)
}

func provideContentService(
	contentRepo repository.ContentRepository,
	importErrorRepo repository.ImportErrorRepository,
	activityRepo repository.ActivityRepository,
	cfg *config.Config,
	metrics *observability.MetricsProvider,
	logger *zap.Logger,
) service.ContentService {
	return serviceimpl.NewContentService(contentRepo, importErrorRepo, activityRepo, cfg, metrics, logger)
}

func provideAnalyticsService(
	analyticsRepo repository.AnalyticsRepository,
	store cache.Store,
	cfg *config.Config,
	logger *zap.Logger,
) service.AnalyticsService {
	return serviceimpl.NewAnalyticsService(analyticsRepo, store, cfg, logger)
}
