package di

import (
	"go.uber.org/fx"

	"github.com/jrjohn/streamlens-go/internal/domain/dao"
	"github.com/jrjohn/streamlens-go/internal/domain/repository"
	"github.com/jrjohn/streamlens-go/internal/domain/repository/impl"
)

// RepositoryModule provides repository dependencies.
// Repositories delegate to the DAO layer for database operations.
var RepositoryModule = fx.Module("repository",
	fx.Provide(
		provideUserRepository,
		provideRefreshTokenRepository,
		provideContentRepository,
		provideImportErrorRepository,
		provideActivityRepository,
		provideAnalyticsRepository,
	),
)

func provideUserRepository(userDAO dao.UserDAO) repository.UserRepository {
	return impl.NewUserRepository(userDAO)
}

func provideRefreshTokenRepository(refreshTokenDAO dao.RefreshTokenDAO) repository.RefreshTokenRepository {
	return impl.NewRefreshTokenRepository(refreshTokenDAO)
}

func provideContentRepository(contentDAO dao.ContentDAO) repository.ContentRepository {
	return impl.NewContentRepository(contentDAO)
}

func provideImportErrorRepository(importErrorDAO dao.ImportErrorDAO) repository.ImportErrorRepository {
	return impl.NewImportErrorRepository(importErrorDAO)
}

func provideActivityRepository(activityDAO dao.ActivityDAO) repository.ActivityRepository {
	return impl.NewActivityRepository(activityDAO)
}

func provideAnalyticsRepository(analyticsDAO dao.AnalyticsDAO) repository.AnalyticsRepository {
	return impl.NewAnalyticsRepository(analyticsDAO)
}
