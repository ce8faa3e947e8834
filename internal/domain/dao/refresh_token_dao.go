package dao

import (
	"context"
	"time"

	"github.com/jrjohn/streamlens-go/internal/domain/entity"
)

// RefreshTokenDAO handles persistence of refresh tokens.
type RefreshTokenDAO interface {
	// Create inserts a new refresh token.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// FindByToken retrieves a refresh token by its token string.
	// Returns nil, nil if not found.
	FindByToken(ctx context.Context, token string) (*entity.RefreshToken, error)

	// RevokeByToken marks the token revoked.
	RevokeByToken(ctx context.Context, token string) error

	// RevokeAllByUserID revokes every token belonging to a user.
	RevokeAllByUserID(ctx context.Context, userID uint) error

	// DeleteExpired removes tokens that expired before the cutoff.
	// Returns the number of tokens removed.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
