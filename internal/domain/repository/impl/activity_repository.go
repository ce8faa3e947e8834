package impl

import (
	"context"

	"github.com/jrjohn/streamlens-go/internal/domain/dao"
	"github.com/jrjohn/streamlens-go/internal/domain/entity"
	"github.com/jrjohn/streamlens-go/internal/domain/repository"
)

// activityRepository implements repository.ActivityRepository by delegating to ActivityDAO.
type activityRepository struct {
	dao dao.ActivityDAO
}

// NewActivityRepository creates a new ActivityRepository instance.
func NewActivityRepository(activityDAO dao.ActivityDAO) repository.ActivityRepository {
	return &activityRepository{dao: activityDAO}
}

// Create appends an activity record.
func (r *activityRepository) Create(ctx context.Context, activity *entity.UserActivity) error {
	return r.dao.Create(ctx, activity)
}

// List retrieves activity records matching the filter with pagination.
func (r *activityRepository) List(ctx context.Context, filter *dao.ActivityFilter) ([]*entity.UserActivity, int64, error) {
	return r.dao.FindWithFilter(ctx, filter)
}

// importErrorRepository implements repository.ImportErrorRepository by delegating to ImportErrorDAO.
type importErrorRepository struct {
	dao dao.ImportErrorDAO
}

// NewImportErrorRepository creates a new ImportErrorRepository instance.
func NewImportErrorRepository(importErrorDAO dao.ImportErrorDAO) repository.ImportErrorRepository {
	return &importErrorRepository{dao: importErrorDAO}
}

// Create records a single row failure.
func (r *importErrorRepository) Create(ctx context.Context, importError *entity.ImportError) error {
	return r.dao.Create(ctx, importError)
}

// ListSessions lists import sessions, most recent first.
func (r *importErrorRepository) ListSessions(ctx context.Context, page, limit int) ([]dao.ImportSession, int64, error) {
	return r.dao.FindSessions(ctx, page, limit)
}

// List retrieves error rows, optionally scoped to one session.
func (r *importErrorRepository) List(ctx context.Context, filter *dao.ImportErrorFilter) ([]*entity.ImportError, int64, error) {
	return r.dao.FindWithFilter(ctx, filter)
}
