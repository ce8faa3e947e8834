package dao

import (
	"context"
	"time"

	"github.com/jrjohn/streamlens-go/internal/domain/entity"
)

// UserDAO extends BaseDAO with user-specific data access operations.
type UserDAO interface {
	BaseDAO[entity.User, uint]

	// FindByUsername retrieves a user by their unique username.
	// Returns nil, nil if the user is not found.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByEmail retrieves a user by their unique email address.
	// Returns nil, nil if the user is not found.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindWithFilter retrieves users matching the filter with pagination.
	// Returns the page of users and the total match count.
	FindWithFilter(ctx context.Context, filter *UserFilter) ([]*entity.User, int64, error)

	// ExistsByUsername checks if a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail checks if a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// UpdateLastLogin stamps the user's last successful login time.
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error

	// UpdateMany applies the same field updates to every listed user in
	// one call. IDs with no matching document are silently unmatched.
	// Returns matched and modified counts.
	UpdateMany(ctx context.Context, ids []uint, fields map[string]any) (matched, modified int64, err error)
}
