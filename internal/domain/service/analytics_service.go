package service

import (
	"context"

	"github.com/jrjohn/streamlens-go/internal/domain/dao"
	"github.com/jrjohn/streamlens-go/internal/dto/request"
	"github.com/jrjohn/streamlens-go/internal/dto/response"
)

// AnalyticsService translates the filter query grammar into
// aggregations over the catalog. Every method returns an empty slice
// for an empty matching set, never an error.
type AnalyticsService interface {
	// PlatformDistribution counts entries per platform
	PlatformDistribution(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DimensionCount, error)

	// LanguageStats counts entries per primary language
	LanguageStats(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DimensionCount, error)

	// YearlyReleases counts entries per release year
	YearlyReleases(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DimensionCount, error)

	// AgeRatingDistribution counts entries per age rating
	AgeRatingDistribution(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DimensionCount, error)

	// MonthlyReleases counts entries per YYYY-MM of release date
	MonthlyReleases(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DimensionCount, error)

	// TopDubbedLanguages counts entries per dubbing language, sorted
	// descending and paginated
	TopDubbedLanguages(ctx context.Context, q *request.AnalyticsQuery) (*response.PagedResponse[dao.DimensionCount], error)

	// DubbingAnalysis counts entries per dubbing language; the client
	// derives percentages from the raw counts
	DubbingAnalysis(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DimensionCount, error)

	// PlatformGrowth counts entries per year and platform
	PlatformGrowth(ctx context.Context, q *request.AnalyticsQuery) ([]dao.CrossTabCount, error)

	// GenrePlatformMatrix counts entries per genre and platform
	GenrePlatformMatrix(ctx context.Context, q *request.AnalyticsQuery) ([]dao.CrossTabCount, error)

	// LanguagePlatformMatrix counts entries per language and platform
	LanguagePlatformMatrix(ctx context.Context, q *request.AnalyticsQuery) ([]dao.CrossTabCount, error)

	// FormatGenreDuration computes duration statistics per format and
	// genre
	FormatGenreDuration(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DurationStat, error)

	// GenreTrends returns a per-genre series of yearly counts
	GenreTrends(ctx context.Context, q *request.AnalyticsQuery) ([]response.GenreTrend, error)

	// GroupedCounts runs a one- or two-dimensional breakdown chosen by
	// the query's groupBy/secondaryGroupBy keys
	GroupedCounts(ctx context.Context, q *request.AnalyticsQuery) ([]dao.CrossTabCount, error)

	// Summary computes the dashboard header statistics
	Summary(ctx context.Context) (*response.SummaryResponse, error)

	// PublicSummary is the cached, unauthenticated dashboard preview
	PublicSummary(ctx context.Context) (*response.SummaryResponse, error)

	// PublicPlatformDistribution is the cached, unauthenticated
	// platform breakdown
	PublicPlatformDistribution(ctx context.Context) ([]dao.DimensionCount, error)

	// PublicYearlyReleases is the cached, unauthenticated yearly
	// release trend
	PublicYearlyReleases(ctx context.Context) ([]dao.DimensionCount, error)
}
