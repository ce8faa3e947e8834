package impl

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jrjohn/streamlens-go/internal/cache"
	"github.com/jrjohn/streamlens-go/internal/config"
	"github.com/jrjohn/streamlens-go/internal/domain/dao"
	"github.com/jrjohn/streamlens-go/internal/domain/repository"
	"github.com/jrjohn/streamlens-go/internal/domain/service"
	"github.com/jrjohn/streamlens-go/internal/dto/request"
	"github.com/jrjohn/streamlens-go/internal/dto/response"
)

// analyticsService implements service.AnalyticsService
type analyticsService struct {
	repo         repository.AnalyticsRepository
	store        cache.Store
	logger       *zap.Logger
	defaultLimit int
	maxLimit     int
	publicTTL    time.Duration
}

// NewAnalyticsService creates a new AnalyticsService instance
func NewAnalyticsService(
	repo repository.AnalyticsRepository,
	store cache.Store,
	cfg *config.Config,
	logger *zap.Logger,
) service.AnalyticsService {
	return &analyticsService{
		repo:         repo,
		store:        store,
		logger:       logger,
		defaultLimit: cfg.Analytics.DefaultLimit,
		maxLimit:     cfg.Analytics.MaxLimit,
		publicTTL:    cfg.Analytics.PublicCacheTTL,
	}
}

func (s *analyticsService) filter(q *request.AnalyticsQuery) *dao.ContentFilter {
	return q.ToFilter(s.defaultLimit, s.maxLimit)
}

func (s *analyticsService) PlatformDistribution(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DimensionCount, error) {
	rows, err := s.repo.CountByDimension(ctx, s.filter(q), dao.DimensionPlatform)
	return response.DimensionCounts(rows), err
}

func (s *analyticsService) LanguageStats(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DimensionCount, error) {
	rows, err := s.repo.CountByDimension(ctx, s.filter(q), dao.DimensionLanguage)
	return response.DimensionCounts(rows), err
}

func (s *analyticsService) YearlyReleases(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DimensionCount, error) {
	rows, err := s.repo.CountByDimension(ctx, s.filter(q), dao.DimensionYear)
	if err != nil {
		return nil, err
	}
	sortByKey(rows)
	return response.DimensionCounts(rows), nil
}

func (s *analyticsService) AgeRatingDistribution(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DimensionCount, error) {
	rows, err := s.repo.CountByDimension(ctx, s.filter(q), dao.DimensionAgeRating)
	return response.DimensionCounts(rows), err
}

func (s *analyticsService) MonthlyReleases(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DimensionCount, error) {
	rows, err := s.repo.CountByDimension(ctx, s.filter(q), dao.DimensionMonth)
	if err != nil {
		return nil, err
	}
	sortByKey(rows)
	return response.DimensionCounts(rows), nil
}

func (s *analyticsService) TopDubbedLanguages(ctx context.Context, q *request.AnalyticsQuery) (*response.PagedResponse[dao.DimensionCount], error) {
	filter := s.filter(q)
	rows, err := s.repo.DubbingCounts(ctx, filter)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })

	total := int64(len(rows))
	start := (filter.Page - 1) * filter.Limit
	if start > len(rows) {
		start = len(rows)
	}
	end := start + filter.Limit
	if end > len(rows) {
		end = len(rows)
	}

	paged := response.NewPagedResponse(rows[start:end], filter.Page, filter.Limit, total)
	return &paged, nil
}

func (s *analyticsService) DubbingAnalysis(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DimensionCount, error) {
	rows, err := s.repo.DubbingCounts(ctx, s.filter(q))
	return response.DimensionCounts(rows), err
}

func (s *analyticsService) PlatformGrowth(ctx context.Context, q *request.AnalyticsQuery) ([]dao.CrossTabCount, error) {
	rows, err := s.repo.CountByDimensions(ctx, s.filter(q), dao.DimensionYear, dao.DimensionPlatform)
	return response.CrossTabCounts(rows), err
}

func (s *analyticsService) GenrePlatformMatrix(ctx context.Context, q *request.AnalyticsQuery) ([]dao.CrossTabCount, error) {
	rows, err := s.repo.CountByDimensions(ctx, s.filter(q), dao.DimensionGenre, dao.DimensionPlatform)
	return response.CrossTabCounts(rows), err
}

func (s *analyticsService) LanguagePlatformMatrix(ctx context.Context, q *request.AnalyticsQuery) ([]dao.CrossTabCount, error) {
	rows, err := s.repo.CountByDimensions(ctx, s.filter(q), dao.DimensionLanguage, dao.DimensionPlatform)
	return response.CrossTabCounts(rows), err
}

func (s *analyticsService) FormatGenreDuration(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DurationStat, error) {
	rows, err := s.repo.DurationStats(ctx, s.filter(q), dao.DimensionFormat, dao.DimensionGenre)
	return response.DurationStats(rows), err
}

func (s *analyticsService) GenreTrends(ctx context.Context, q *request.AnalyticsQuery) ([]response.GenreTrend, error) {
	rows, err := s.repo.CountByDimensions(ctx, s.filter(q), dao.DimensionGenre, dao.DimensionYear)
	if err != nil {
		return nil, err
	}

	// Rows arrive sorted by (genre, year); fold them into one series
	// per genre.
	trends := []response.GenreTrend{}
	for _, row := range rows {
		if len(trends) == 0 || trends[len(trends)-1].Genre != row.Row {
			trends = append(trends, response.GenreTrend{Genre: row.Row, Points: []response.YearCount{}})
		}
		last := &trends[len(trends)-1]
		last.Points = append(last.Points, response.YearCount{Year: row.Col, Count: row.Count})
	}
	return trends, nil
}

func (s *analyticsService) GroupedCounts(ctx context.Context, q *request.AnalyticsQuery) ([]dao.CrossTabCount, error) {
	filter := s.filter(q)

	row := filter.GroupBy
	if row == "" {
		row = dao.DimensionPlatform
	}

	if filter.SecondaryGroupBy == "" {
		counts, err := s.repo.CountByDimension(ctx, filter, row)
		if err != nil {
			return nil, err
		}
		rows := make([]dao.CrossTabCount, 0, len(counts))
		for _, c := range counts {
			rows = append(rows, dao.CrossTabCount{Row: c.Key, Count: c.Count})
		}
		return rows, nil
	}

	rows, err := s.repo.CountByDimensions(ctx, filter, row, filter.SecondaryGroupBy)
	return response.CrossTabCounts(rows), err
}

func (s *analyticsService) Summary(ctx context.Context) (*response.SummaryResponse, error) {
	stats, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	resp := response.NewSummaryResponse(stats)
	return &resp, nil
}

func (s *analyticsService) PublicSummary(ctx context.Context) (*response.SummaryResponse, error) {
	var cached response.SummaryResponse
	if ok := s.fromCache(ctx, cache.KeyPrefixAnalytics+"public:summary", &cached); ok {
		return &cached, nil
	}

	resp, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, cache.KeyPrefixAnalytics+"public:summary", resp)
	return resp, nil
}

func (s *analyticsService) PublicPlatformDistribution(ctx context.Context) ([]dao.DimensionCount, error) {
	var cached []dao.DimensionCount
	if ok := s.fromCache(ctx, cache.KeyPrefixAnalytics+"public:platforms", &cached); ok {
		return cached, nil
	}

	rows, err := s.PlatformDistribution(ctx, &request.AnalyticsQuery{})
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, cache.KeyPrefixAnalytics+"public:platforms", rows)
	return rows, nil
}

func (s *analyticsService) PublicYearlyReleases(ctx context.Context) ([]dao.DimensionCount, error) {
	var cached []dao.DimensionCount
	if ok := s.fromCache(ctx, cache.KeyPrefixAnalytics+"public:yearly", &cached); ok {
		return cached, nil
	}

	rows, err := s.YearlyReleases(ctx, &request.AnalyticsQuery{})
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, cache.KeyPrefixAnalytics+"public:yearly", rows)
	return rows, nil
}

// fromCache loads a snapshot; cache failures degrade to a live query.
func (s *analyticsService) fromCache(ctx context.Context, key string, dest any) bool {
	ok, err := s.store.GetJSON(ctx, key, dest)
	if err != nil {
		s.logger.Warn("analytics cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return ok
}

func (s *analyticsService) toCache(ctx context.Context, key string, value any) {
	if err := s.store.SetJSON(ctx, key, value, s.publicTTL); err != nil {
		s.logger.Warn("analytics cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// sortByKey orders dimension rows by key ascending, which reads
// naturally for year and month series.
func sortByKey(rows []dao.DimensionCount) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
}
