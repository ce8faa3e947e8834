// Package repository defines the data access interfaces used by the
// service layer. Implementations delegate to the DAO layer.
package repository

import (
	"context"
	"time"

	"github.com/jrjohn/streamlens-go/internal/domain/dao"
	"github.com/jrjohn/streamlens-go/internal/domain/entity"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entity.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uint) (*entity.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// Update updates an existing user
	Update(ctx context.Context, user *entity.User) error

	// Delete soft-deletes a user by ID
	Delete(ctx context.Context, id uint) error

	// List retrieves users matching the filter with pagination
	List(ctx context.Context, filter *dao.UserFilter) ([]*entity.User, int64, error)

	// ExistsByUsername checks if a username exists
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail checks if an email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// UpdateLastLogin stamps the user's last successful login time
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error

	// UpdateMany applies the same field updates to every listed user,
	// returning matched and modified counts
	UpdateMany(ctx context.Context, ids []uint, fields map[string]any) (matched, modified int64, err error)
}

// RefreshTokenRepository defines the interface for refresh token operations
type RefreshTokenRepository interface {
	// Create creates a new refresh token
	Create(ctx context.Context, token *entity.RefreshToken) error

	// GetByToken retrieves a refresh token by its value
	GetByToken(ctx context.Context, token string) (*entity.RefreshToken, error)

	// RevokeByToken revokes a specific refresh token
	RevokeByToken(ctx context.Context, token string) error

	// RevokeAllByUserID revokes all refresh tokens for a user
	RevokeAllByUserID(ctx context.Context, userID uint) error

	// DeleteExpired removes tokens that expired before the cutoff,
	// returning the number removed
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// ActivityRepository records and queries the append-only audit log
type ActivityRepository interface {
	// Create appends an activity record
	Create(ctx context.Context, activity *entity.UserActivity) error

	// List retrieves activity records matching the filter with pagination
	List(ctx context.Context, filter *dao.ActivityFilter) ([]*entity.UserActivity, int64, error)
}
