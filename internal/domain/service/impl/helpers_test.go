package impl

import (
	"time"

	"go.uber.org/zap"

	"github.com/jrjohn/streamlens-go/internal/config"
	"github.com/jrjohn/streamlens-go/internal/security"
)

func testConfig() *config.Config {
	return &config.Config{
		Analytics: config.AnalyticsConfig{
			DefaultLimit:   100,
			MaxLimit:       1000,
			PublicCacheTTL: 5 * time.Minute,
		},
	}
}

func testJWTProvider() *security.JWTProvider {
	return security.NewJWTProvider(&config.JWTConfig{
		Secret:               "test-secret-key-for-unit-tests-only",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 24 * time.Hour,
		Issuer:               "streamlens-test",
	})
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
