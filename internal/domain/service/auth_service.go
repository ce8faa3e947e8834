package service

import (
	"context"
	"errors"

	"github.com/jrjohn/streamlens-go/internal/dto/request"
	"github.com/jrjohn/streamlens-go/internal/dto/response"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// ClientMeta carries request metadata recorded in the audit log.
type ClientMeta struct {
	IP        string
	UserAgent string
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Register creates a new user account and logs a register activity
	Register(ctx context.Context, req *request.RegisterRequest, meta ClientMeta) (*response.AuthResponse, error)

	// Login authenticates a user, stamps last_login and returns tokens
	Login(ctx context.Context, req *request.LoginRequest, meta ClientMeta) (*response.AuthResponse, error)

	// Verify validates an access token and returns the bearer's profile
	Verify(ctx context.Context, accessToken string) (*response.VerifyResponse, error)

	// RefreshToken rotates a refresh token and issues a new pair
	RefreshToken(ctx context.Context, req *request.RefreshTokenRequest) (*response.AuthResponse, error)

	// ChangePassword verifies the old password and sets a new one,
	// revoking every outstanding refresh token
	ChangePassword(ctx context.Context, userID uint, req *request.ChangePasswordRequest) error

	// Logout revokes the presented refresh token and logs the activity
	Logout(ctx context.Context, userID uint, refreshToken string, meta ClientMeta) error

	// LogoutAll revokes every refresh token for a user
	LogoutAll(ctx context.Context, userID uint) error
}
