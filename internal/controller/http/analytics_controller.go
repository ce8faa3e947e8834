package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrjohn/streamlens-go/internal/domain/dao"
	"github.com/jrjohn/streamlens-go/internal/domain/service"
	"github.com/jrjohn/streamlens-go/internal/dto/request"
	"github.com/jrjohn/streamlens-go/internal/dto/response"
	"github.com/jrjohn/streamlens-go/internal/middleware"
)

// AnalyticsController handles the aggregation endpoints. Every
// endpoint accepts the shared filter query grammar.
type AnalyticsController struct {
	analyticsService service.AnalyticsService
	authMiddleware   *middleware.AuthMiddleware
}

// NewAnalyticsController creates a new AnalyticsController instance
func NewAnalyticsController(
	analyticsService service.AnalyticsService,
	authMiddleware *middleware.AuthMiddleware,
) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
		authMiddleware:   authMiddleware,
	}
}

// RegisterRoutes registers the authenticated analytics routes
func (c *AnalyticsController) RegisterRoutes(router *gin.RouterGroup) {
	analytics := router.Group("/analytics")
	analytics.Use(c.authMiddleware.Authenticate())
	{
		analytics.GET("/summary", c.Summary)
		analytics.GET("/platforms", c.PlatformDistribution)
		analytics.GET("/languages", c.LanguageStats)
		analytics.GET("/years", c.YearlyReleases)
		analytics.GET("/age-ratings", c.AgeRatingDistribution)
		analytics.GET("/monthly", c.MonthlyReleases)
		analytics.GET("/top-dubbed", c.TopDubbedLanguages)
		analytics.GET("/dubbing", c.DubbingAnalysis)
		analytics.GET("/platform-growth", c.PlatformGrowth)
		analytics.GET("/genre-platform-matrix", c.GenrePlatformMatrix)
		analytics.GET("/language-platform-matrix", c.LanguagePlatformMatrix)
		analytics.GET("/format-genre-duration", c.FormatGenreDuration)
		analytics.GET("/genre-trends", c.GenreTrends)
		analytics.GET("/grouped", c.GroupedCounts)
	}
}

// RegisterPublicRoutes registers the unauthenticated, cached subset
func (c *AnalyticsController) RegisterPublicRoutes(router *gin.RouterGroup) {
	public := router.Group("/analytics")
	{
		public.GET("/summary", c.PublicSummary)
		public.GET("/platforms", c.PublicPlatformDistribution)
		public.GET("/years", c.PublicYearlyReleases)
	}
}

// dimensionQuery binds the filter grammar, delegating to fn for the
// aggregation itself.
func (c *AnalyticsController) dimensionQuery(
	ctx *gin.Context,
	fn func(*request.AnalyticsQuery) ([]dao.DimensionCount, error),
) {
	var q request.AnalyticsQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	counts, err := fn(&q)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("analytics query failed"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(counts))
}

// crossTabQuery binds the filter grammar for two-dimensional counts.
func (c *AnalyticsController) crossTabQuery(
	ctx *gin.Context,
	fn func(*request.AnalyticsQuery) ([]dao.CrossTabCount, error),
) {
	var q request.AnalyticsQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	counts, err := fn(&q)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("analytics query failed"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(counts))
}

// Summary computes the dashboard header statistics
// @Summary Catalog summary statistics
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[response.SummaryResponse]
// @Router /api/v1/analytics/summary [get]
func (c *AnalyticsController) Summary(ctx *gin.Context) {
	summary, err := c.analyticsService.Summary(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("analytics query failed"))
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(summary))
}

// PlatformDistribution counts entries per platform
// @Summary Platform distribution
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]dao.DimensionCount]
// @Router /api/v1/analytics/platforms [get]
func (c *AnalyticsController) PlatformDistribution(ctx *gin.Context) {
	c.dimensionQuery(ctx, func(q *request.AnalyticsQuery) ([]dao.DimensionCount, error) {
		return c.analyticsService.PlatformDistribution(ctx.Request.Context(), q)
	})
}

// LanguageStats counts entries per primary language
// @Summary Primary language distribution
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]dao.DimensionCount]
// @Router /api/v1/analytics/languages [get]
func (c *AnalyticsController) LanguageStats(ctx *gin.Context) {
	c.dimensionQuery(ctx, func(q *request.AnalyticsQuery) ([]dao.DimensionCount, error) {
		return c.analyticsService.LanguageStats(ctx.Request.Context(), q)
	})
}

// YearlyReleases counts entries per release year
// @Summary Yearly release trend
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]dao.DimensionCount]
// @Router /api/v1/analytics/years [get]
func (c *AnalyticsController) YearlyReleases(ctx *gin.Context) {
	c.dimensionQuery(ctx, func(q *request.AnalyticsQuery) ([]dao.DimensionCount, error) {
		return c.analyticsService.YearlyReleases(ctx.Request.Context(), q)
	})
}

// AgeRatingDistribution counts entries per age rating
// @Summary Age rating distribution
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]dao.DimensionCount]
// @Router /api/v1/analytics/age-ratings [get]
func (c *AnalyticsController) AgeRatingDistribution(ctx *gin.Context) {
	c.dimensionQuery(ctx, func(q *request.AnalyticsQuery) ([]dao.DimensionCount, error) {
		return c.analyticsService.AgeRatingDistribution(ctx.Request.Context(), q)
	})
}

// MonthlyReleases counts entries per release month
// @Summary Monthly release trend
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]dao.DimensionCount]
// @Router /api/v1/analytics/monthly [get]
func (c *AnalyticsController) MonthlyReleases(ctx *gin.Context) {
	c.dimensionQuery(ctx, func(q *request.AnalyticsQuery) ([]dao.DimensionCount, error) {
		return c.analyticsService.MonthlyReleases(ctx.Request.Context(), q)
	})
}

// TopDubbedLanguages ranks dubbing languages by count
// @Summary Top dubbed languages
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Success 200 {object} response.ApiResponse[response.PagedResponse[dao.DimensionCount]]
// @Router /api/v1/analytics/top-dubbed [get]
func (c *AnalyticsController) TopDubbedLanguages(ctx *gin.Context) {
	var q request.AnalyticsQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	page, err := c.analyticsService.TopDubbedLanguages(ctx.Request.Context(), &q)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("analytics query failed"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(page))
}

// DubbingAnalysis counts entries per dubbing language
// @Summary Dubbing language analysis
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]dao.DimensionCount]
// @Router /api/v1/analytics/dubbing [get]
func (c *AnalyticsController) DubbingAnalysis(ctx *gin.Context) {
	c.dimensionQuery(ctx, func(q *request.AnalyticsQuery) ([]dao.DimensionCount, error) {
		return c.analyticsService.DubbingAnalysis(ctx.Request.Context(), q)
	})
}

// PlatformGrowth counts entries per year and platform
// @Summary Platform growth over time
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]dao.CrossTabCount]
// @Router /api/v1/analytics/platform-growth [get]
func (c *AnalyticsController) PlatformGrowth(ctx *gin.Context) {
	c.crossTabQuery(ctx, func(q *request.AnalyticsQuery) ([]dao.CrossTabCount, error) {
		return c.analyticsService.PlatformGrowth(ctx.Request.Context(), q)
	})
}

// GenrePlatformMatrix counts entries per genre and platform
// @Summary Genre by platform matrix
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]dao.CrossTabCount]
// @Router /api/v1/analytics/genre-platform-matrix [get]
func (c *AnalyticsController) GenrePlatformMatrix(ctx *gin.Context) {
	c.crossTabQuery(ctx, func(q *request.AnalyticsQuery) ([]dao.CrossTabCount, error) {
		return c.analyticsService.GenrePlatformMatrix(ctx.Request.Context(), q)
	})
}

// LanguagePlatformMatrix counts entries per language and platform
// @Summary Language by platform matrix
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]dao.CrossTabCount]
// @Router /api/v1/analytics/language-platform-matrix [get]
func (c *AnalyticsController) LanguagePlatformMatrix(ctx *gin.Context) {
	c.crossTabQuery(ctx, func(q *request.AnalyticsQuery) ([]dao.CrossTabCount, error) {
		return c.analyticsService.LanguagePlatformMatrix(ctx.Request.Context(), q)
	})
}

// FormatGenreDuration computes duration statistics per format and genre
// @Summary Duration statistics by format and genre
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]dao.DurationStat]
// @Router /api/v1/analytics/format-genre-duration [get]
func (c *AnalyticsController) FormatGenreDuration(ctx *gin.Context) {
	var q request.AnalyticsQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	stats, err := c.analyticsService.FormatGenreDuration(ctx.Request.Context(), &q)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("analytics query failed"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(stats))
}

// GenreTrends returns per-genre series of yearly counts
// @Summary Genre trends over time
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]response.GenreTrend]
// @Router /api/v1/analytics/genre-trends [get]
func (c *AnalyticsController) GenreTrends(ctx *gin.Context) {
	var q request.AnalyticsQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	trends, err := c.analyticsService.GenreTrends(ctx.Request.Context(), &q)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("analytics query failed"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(trends))
}

// GroupedCounts runs the groupBy/secondaryGroupBy breakdown
// @Summary Grouped counts by one or two dimensions
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param groupBy query string true "Primary dimension"
// @Param secondaryGroupBy query string false "Secondary dimension"
// @Success 200 {object} response.ApiResponse[[]dao.CrossTabCount]
// @Router /api/v1/analytics/grouped [get]
func (c *AnalyticsController) GroupedCounts(ctx *gin.Context) {
	c.crossTabQuery(ctx, func(q *request.AnalyticsQuery) ([]dao.CrossTabCount, error) {
		return c.analyticsService.GroupedCounts(ctx.Request.Context(), q)
	})
}

// PublicSummary is the cached unauthenticated dashboard preview
// @Summary Public catalog summary
// @Tags Public
// @Produce json
// @Success 200 {object} response.ApiResponse[response.SummaryResponse]
// @Router /public/analytics/summary [get]
func (c *AnalyticsController) PublicSummary(ctx *gin.Context) {
	summary, err := c.analyticsService.PublicSummary(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("analytics query failed"))
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(summary))
}

// PublicPlatformDistribution is the cached unauthenticated platform breakdown
// @Summary Public platform distribution
// @Tags Public
// @Produce json
// @Success 200 {object} response.ApiResponse[[]dao.DimensionCount]
// @Router /public/analytics/platforms [get]
func (c *AnalyticsController) PublicPlatformDistribution(ctx *gin.Context) {
	counts, err := c.analyticsService.PublicPlatformDistribution(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("analytics query failed"))
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(counts))
}

// PublicYearlyReleases is the cached unauthenticated yearly trend
// @Summary Public yearly release trend
// @Tags Public
// @Produce json
// @Success 200 {object} response.ApiResponse[[]dao.DimensionCount]
// @Router /public/analytics/years [get]
func (c *AnalyticsController) PublicYearlyReleases(ctx *gin.Context) {
	counts, err := c.analyticsService.PublicYearlyReleases(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("analytics query failed"))
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(counts))
}
