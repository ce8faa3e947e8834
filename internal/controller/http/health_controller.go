package http

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jrjohn/streamlens-go/internal/config"
	"github.com/jrjohn/streamlens-go/internal/dto/response"
)

// HealthController reports process and dependency health.
type HealthController struct {
	cfg         *config.Config
	mongoClient *mongo.Client
	redisClient *redis.Client
	startedAt   time.Time
}

// NewHealthController creates a new HealthController instance
func NewHealthController(cfg *config.Config, mongoClient *mongo.Client, redisClient *redis.Client) *HealthController {
	return &HealthController{
		cfg:         cfg,
		mongoClient: mongoClient,
		redisClient: redisClient,
		startedAt:   time.Now(),
	}
}

// RegisterRoutes registers the health routes on the engine root, not
// under the versioned API group.
func (c *HealthController) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", c.Health)
	router.GET("/health/live", c.Live)
	router.GET("/health/ready", c.Ready)
}

func ctxWithTimeout(ctx *gin.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request.Context(), d)
}

// HealthStatus is the full health report.
type HealthStatus struct {
	Status      string            `json:"status"`
	Version     string            `json:"version"`
	Uptime      string            `json:"uptime"`
	Goroutines  int               `json:"goroutines"`
	HeapAllocMB uint64            `json:"heapAllocMB"`
	Checks      map[string]string `json:"checks"`
}

// Health reports process statistics and dependency checks
// @Summary Full health report
// @Tags Health
// @Produce json
// @Success 200 {object} response.ApiResponse[HealthStatus]
// @Failure 503 {object} response.ApiResponse[HealthStatus]
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	checkCtx, cancel := ctxWithTimeout(ctx, 2*time.Second)
	defer cancel()

	checks := map[string]string{
		"mongodb": "ok",
		"redis":   "ok",
	}
	healthy := true

	if err := c.mongoClient.Ping(checkCtx, nil); err != nil {
		checks["mongodb"] = err.Error()
		healthy = false
	}
	if err := c.redisClient.Ping(checkCtx).Err(); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	status := HealthStatus{
		Status:      "up",
		Version:     c.cfg.App.Version,
		Uptime:      time.Since(c.startedAt).Round(time.Second).String(),
		Goroutines:  runtime.NumGoroutine(),
		HeapAllocMB: mem.HeapAlloc / 1024 / 1024,
		Checks:      checks,
	}

	if !healthy {
		status.Status = "degraded"
		ctx.JSON(http.StatusServiceUnavailable, response.NewSuccessWithData(status))
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(status))
}

// Live reports process liveness
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} response.ApiResponse[any]
// @Router /health/live [get]
func (c *HealthController) Live(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "alive"))
}

// Ready reports whether dependencies are reachable
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} response.ApiResponse[any]
// @Failure 503 {object} response.ApiResponse[any]
// @Router /health/ready [get]
func (c *HealthController) Ready(ctx *gin.Context) {
	checkCtx, cancel := ctxWithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := c.mongoClient.Ping(checkCtx, nil); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, response.NewError[any]("mongodb unavailable"))
		return
	}
	if err := c.redisClient.Ping(checkCtx).Err(); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, response.NewError[any]("redis unavailable"))
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "ready"))
}
