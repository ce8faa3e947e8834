package impl

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jrjohn/streamlens-go/internal/domain/entity"
	"github.com/jrjohn/streamlens-go/internal/domain/repository"
	"github.com/jrjohn/streamlens-go/internal/domain/service"
	"github.com/jrjohn/streamlens-go/internal/dto/request"
	"github.com/jrjohn/streamlens-go/internal/dto/response"
	"github.com/jrjohn/streamlens-go/internal/security"
)

// authService implements service.AuthService
type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	jwtProvider      *security.JWTProvider
	passwordHasher   *security.PasswordHasher
	activities       *activityRecorder
}

// NewAuthService creates a new AuthService instance
func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	activityRepo repository.ActivityRepository,
	jwtProvider *security.JWTProvider,
	passwordHasher *security.PasswordHasher,
	logger *zap.Logger,
) service.AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtProvider:      jwtProvider,
		passwordHasher:   passwordHasher,
		activities:       newActivityRecorder(activityRepo, logger),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest, meta service.ClientMeta) (*response.AuthResponse, error) {
	// Check if username exists
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, service.ErrUserAlreadyExists
	}

	// Check if email exists
	exists, err = s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, service.ErrUserAlreadyExists
	}

	// Hash password
	hashedPassword, err := s.passwordHasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	role := entity.RoleUser
	if req.Role != "" {
		role = entity.UserRole(req.Role)
	}

	user := &entity.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     role,
		IsActive: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.activities.record(ctx, user.ID, entity.ActionRegister, meta, nil)

	return s.generateAuthResponse(ctx, user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, meta service.ClientMeta) (*response.AuthResponse, error) {
	user, err := s.findByUsernameOrEmail(ctx, req.UsernameOrEmail)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, service.ErrUserInactive
	}

	if !s.passwordHasher.Verify(req.Password, user.Password) {
		return nil, service.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	s.activities.record(ctx, user.ID, entity.ActionLogin, meta, nil)

	return s.generateAuthResponse(ctx, user)
}

func (s *authService) Verify(ctx context.Context, accessToken string) (*response.VerifyResponse, error) {
	claims, err := s.jwtProvider.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, service.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}
	if !user.IsActive {
		return nil, service.ErrUserInactive
	}

	return &response.VerifyResponse{
		Valid: true,
		User:  response.NewUserResponse(user),
	}, nil
}

func (s *authService) RefreshToken(ctx context.Context, req *request.RefreshTokenRequest) (*response.AuthResponse, error) {
	// Validate the refresh token JWT
	if _, err := s.jwtProvider.ValidateRefreshToken(req.RefreshToken); err != nil {
		return nil, service.ErrInvalidToken
	}

	// Get the refresh token from database
	refreshToken, err := s.refreshTokenRepo.GetByToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if refreshToken == nil || !refreshToken.IsValid() {
		return nil, service.ErrInvalidToken
	}

	// Rotate: revoke the old token before issuing a new pair
	if err := s.refreshTokenRepo.RevokeByToken(ctx, req.RefreshToken); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, refreshToken.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}
	if !user.IsActive {
		return nil, service.ErrUserInactive
	}

	return s.generateAuthResponse(ctx, user)
}

func (s *authService) ChangePassword(ctx context.Context, userID uint, req *request.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return service.ErrUserNotFound
	}

	if !s.passwordHasher.Verify(req.OldPassword, user.Password) {
		return service.ErrWrongPassword
	}

	hashed, err := s.passwordHasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashed

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	// A password change invalidates every outstanding session
	return s.refreshTokenRepo.RevokeAllByUserID(ctx, userID)
}

func (s *authService) Logout(ctx context.Context, userID uint, refreshToken string, meta service.ClientMeta) error {
	if err := s.refreshTokenRepo.RevokeByToken(ctx, refreshToken); err != nil {
		return err
	}
	s.activities.record(ctx, userID, entity.ActionLogout, meta, nil)
	return nil
}

func (s *authService) LogoutAll(ctx context.Context, userID uint) error {
	return s.refreshTokenRepo.RevokeAllByUserID(ctx, userID)
}

// findByUsernameOrEmail tries the username first, then the email.
func (s *authService) findByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*entity.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, usernameOrEmail)
	if err != nil || user != nil {
		return user, err
	}
	return s.userRepo.GetByEmail(ctx, usernameOrEmail)
}

func (s *authService) generateAuthResponse(ctx context.Context, user *entity.User) (*response.AuthResponse, error) {
	accessToken, err := s.jwtProvider.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshTokenString, expiresAt, err := s.jwtProvider.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken := &entity.RefreshToken{
		UserID:    user.ID,
		Token:     refreshTokenString,
		ExpiresAt: expiresAt,
	}
	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		return nil, err
	}

	return &response.AuthResponse{
		User: response.NewUserResponse(user),
		Tokens: response.TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshTokenString,
			TokenType:    "Bearer",
			ExpiresIn:    s.jwtProvider.GetAccessTokenDuration(),
		},
	}, nil
}
