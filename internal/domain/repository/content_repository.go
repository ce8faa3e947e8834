package repository

import (
	"context"

	"github.com/jrjohn/streamlens-go/internal/domain/dao"
	"github.com/jrjohn/streamlens-go/internal/domain/entity"
)

// ContentRepository defines the interface for catalog data operations
type ContentRepository interface {
	// Create creates a new catalog entry
	Create(ctx context.Context, content *entity.Content) error

	// GetByID retrieves a catalog entry by ID
	GetByID(ctx context.Context, id uint) (*entity.Content, error)

	// Update updates an existing catalog entry
	Update(ctx context.Context, content *entity.Content) error

	// Delete removes a catalog entry by ID
	Delete(ctx context.Context, id uint) error

	// List retrieves catalog entries matching the filter with pagination
	List(ctx context.Context, filter *dao.ContentFilter) ([]*entity.Content, int64, error)

	// ExistsByNaturalKey checks whether an entry already exists for
	// (platform, title, year). Advisory only; races can still create
	// duplicates.
	ExistsByNaturalKey(ctx context.Context, platform, title string, year int) (bool, error)
}

// ImportErrorRepository records and queries per-row CSV import failures
type ImportErrorRepository interface {
	// Create records a single row failure
	Create(ctx context.Context, importError *entity.ImportError) error

	// ListSessions lists import sessions, most recent first
	ListSessions(ctx context.Context, page, limit int) ([]dao.ImportSession, int64, error)

	// List retrieves error rows, optionally scoped to one session
	List(ctx context.Context, filter *dao.ImportErrorFilter) ([]*entity.ImportError, int64, error)
}

// AnalyticsRepository runs aggregation queries over the catalog
type AnalyticsRepository interface {
	// CountByDimension groups matching entries by one dimension
	CountByDimension(ctx context.Context, filter *dao.ContentFilter, dim dao.Dimension) ([]dao.DimensionCount, error)

	// CountByDimensions groups matching entries by two dimensions
	CountByDimensions(ctx context.Context, filter *dao.ContentFilter, row, col dao.Dimension) ([]dao.CrossTabCount, error)

	// DubbingCounts counts matching entries per dubbing language
	DubbingCounts(ctx context.Context, filter *dao.ContentFilter) ([]dao.DimensionCount, error)

	// DurationStats computes duration statistics per (row, col) cell
	DurationStats(ctx context.Context, filter *dao.ContentFilter, row, col dao.Dimension) ([]dao.DurationStat, error)

	// Summary computes the dashboard header statistics
	Summary(ctx context.Context) (*dao.SummaryStats, error)
}
