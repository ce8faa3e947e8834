package di

import (
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"

	"github.com/jrjohn/streamlens-go/internal/config"
	httpctrl "github.com/jrjohn/streamlens-go/internal/controller/http"
	"github.com/jrjohn/streamlens-go/internal/domain/service"
	"github.com/jrjohn/streamlens-go/internal/middleware"
	"github.com/jrjohn/streamlens-go/internal/security"
)

// ControllerModule provides HTTP controller dependencies
var ControllerModule = fx.Module("controller",
	fx.Provide(
		provideAuthController,
		provideUserController,
		provideContentController,
		provideAnalyticsController,
		provideHealthController,
	),
)

func provideAuthController(
	authService service.AuthService,
	securityService *security.SecurityService,
	authMiddleware *middleware.AuthMiddleware,
) *httpctrl.AuthController {
	return httpctrl.NewAuthController(authService, securityService, authMiddleware)
}

func provideUserController(
	userService service.UserService,
	securityService *security.SecurityService,
	authMiddleware *middleware.AuthMiddleware,
) *httpctrl.UserController {
	return httpctrl.NewUserController(userService, securityService, authMiddleware)
}

func provideContentController(
	contentService service.ContentService,
	securityService *security.SecurityService,
	authMiddleware *middleware.AuthMiddleware,
) *httpctrl.ContentController {
	return httpctrl.NewContentController(contentService, securityService, authMiddleware)
}

func provideAnalyticsController(
	analyticsService service.AnalyticsService,
	authMiddleware *middleware.AuthMiddleware,
) *httpctrl.AnalyticsController {
	return httpctrl.NewAnalyticsController(analyticsService, authMiddleware)
}

func provideHealthController(
	cfg *config.Config,
	mongoClient *mongo.Client,
	redisClient *redis.Client,
) *httpctrl.HealthController {
	return httpctrl.NewHealthController(cfg, mongoClient, redisClient)
}
