package dao

import (
	"context"

	"github.com/jrjohn/streamlens-go/internal/domain/entity"
)

// ContentDAO extends BaseDAO with catalog-specific data access operations.
type ContentDAO interface {
	BaseDAO[entity.Content, uint]

	// FindWithFilter retrieves catalog entries matching the filter with
	// pagination. Returns the page of entries and the total match count.
	FindWithFilter(ctx context.Context, filter *ContentFilter) ([]*entity.Content, int64, error)

	// ExistsByNaturalKey checks whether an entry already exists for
	// (platform, title, year). Advisory only; no unique index backs it.
	ExistsByNaturalKey(ctx context.Context, platform, title string, year int) (bool, error)
}

// ActivityDAO persists and queries the append-only audit log.
type ActivityDAO interface {
	// Create appends an activity record.
	Create(ctx context.Context, activity *entity.UserActivity) error

	// FindWithFilter retrieves activity records matching the filter with
	// pagination. Returns the page of records and the total match count.
	FindWithFilter(ctx context.Context, filter *ActivityFilter) ([]*entity.UserActivity, int64, error)
}

// ImportErrorDAO persists and queries per-row CSV import failures.
type ImportErrorDAO interface {
	// Create records a single row failure.
	Create(ctx context.Context, importError *entity.ImportError) error

	// FindSessions lists import sessions, derived by grouping errors on
	// (session_started_at, file), most recent first.
	FindSessions(ctx context.Context, page, limit int) ([]ImportSession, int64, error)

	// FindWithFilter retrieves error rows, optionally scoped to one session.
	FindWithFilter(ctx context.Context, filter *ImportErrorFilter) ([]*entity.ImportError, int64, error)
}
