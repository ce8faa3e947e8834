package impl

import (
	"context"

	"github.com/jrjohn/streamlens-go/internal/domain/dao"
	"github.com/jrjohn/streamlens-go/internal/domain/repository"
)

// analyticsRepository implements repository.AnalyticsRepository by delegating to AnalyticsDAO.
type analyticsRepository struct {
	dao dao.AnalyticsDAO
}

// NewAnalyticsRepository creates a new AnalyticsRepository instance.
func NewAnalyticsRepository(analyticsDAO dao.AnalyticsDAO) repository.AnalyticsRepository {
	return &analyticsRepository{dao: analyticsDAO}
}

// CountByDimension groups matching entries by one dimension.
func (r *analyticsRepository) CountByDimension(ctx context.Context, filter *dao.ContentFilter, dim dao.Dimension) ([]dao.DimensionCount, error) {
	return r.dao.CountByDimension(ctx, filter, dim)
}

// CountByDimensions groups matching entries by two dimensions.
func (r *analyticsRepository) CountByDimensions(ctx context.Context, filter *dao.ContentFilter, row, col dao.Dimension) ([]dao.CrossTabCount, error) {
	return r.dao.CountByDimensions(ctx, filter, row, col)
}

// DubbingCounts counts matching entries per dubbing language.
func (r *analyticsRepository) DubbingCounts(ctx context.Context, filter *dao.ContentFilter) ([]dao.DimensionCount, error) {
	return r.dao.DubbingCounts(ctx, filter)
}

// DurationStats computes duration statistics per (row, col) cell.
func (r *analyticsRepository) DurationStats(ctx context.Context, filter *dao.ContentFilter, row, col dao.Dimension) ([]dao.DurationStat, error) {
	return r.dao.DurationStats(ctx, filter, row, col)
}

// Summary computes the dashboard header statistics.
func (r *analyticsRepository) Summary(ctx context.Context) (*dao.SummaryStats, error) {
	return r.dao.Summary(ctx)
}
