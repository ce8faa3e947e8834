package impl

import (
	"context"

	"github.com/jrjohn/streamlens-go/internal/domain/dao"
	"github.com/jrjohn/streamlens-go/internal/domain/entity"
	"github.com/jrjohn/streamlens-go/internal/domain/repository"
)

// contentRepository implements repository.ContentRepository by delegating to ContentDAO.
type contentRepository struct {
	dao dao.ContentDAO
}

// NewContentRepository creates a new ContentRepository instance.
func NewContentRepository(contentDAO dao.ContentDAO) repository.ContentRepository {
	return &contentRepository{dao: contentDAO}
}

// Create inserts a new catalog entry.
func (r *contentRepository) Create(ctx context.Context, content *entity.Content) error {
	return r.dao.Create(ctx, content)
}

// GetByID retrieves a catalog entry by its ID.
func (r *contentRepository) GetByID(ctx context.Context, id uint) (*entity.Content, error) {
	return r.dao.FindByID(ctx, id)
}

// Update modifies an existing catalog entry.
func (r *contentRepository) Update(ctx context.Context, content *entity.Content) error {
	return r.dao.Update(ctx, content)
}

// Delete removes a catalog entry by ID.
func (r *contentRepository) Delete(ctx context.Context, id uint) error {
	return r.dao.Delete(ctx, id)
}

// List retrieves catalog entries matching the filter with pagination.
func (r *contentRepository) List(ctx context.Context, filter *dao.ContentFilter) ([]*entity.Content, int64, error) {
	return r.dao.FindWithFilter(ctx, filter)
}

// ExistsByNaturalKey checks whether an entry already exists for
// (platform, title, year).
func (r *contentRepository) ExistsByNaturalKey(ctx context.Context, platform, title string, year int) (bool, error) {
	return r.dao.ExistsByNaturalKey(ctx, platform, title, year)
}
