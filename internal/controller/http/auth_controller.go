package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jrjohn/streamlens-go/internal/domain/service"
	"github.com/jrjohn/streamlens-go/internal/dto/request"
	"github.com/jrjohn/streamlens-go/internal/dto/response"
	"github.com/jrjohn/streamlens-go/internal/middleware"
	"github.com/jrjohn/streamlens-go/internal/security"
)

const msgValidationFailed = "validation failed"

// clientMeta extracts the request metadata recorded in the audit log.
func clientMeta(ctx *gin.Context) service.ClientMeta {
	return service.ClientMeta{
		IP:        ctx.ClientIP(),
		UserAgent: ctx.Request.UserAgent(),
	}
}

// AuthController handles authentication endpoints
type AuthController struct {
	authService     service.AuthService
	securityService *security.SecurityService
	authMiddleware  *middleware.AuthMiddleware
}

// NewAuthController creates a new AuthController instance
func NewAuthController(
	authService service.AuthService,
	securityService *security.SecurityService,
	authMiddleware *middleware.AuthMiddleware,
) *AuthController {
	return &AuthController{
		authService:     authService,
		securityService: securityService,
		authMiddleware:  authMiddleware,
	}
}

// RegisterRoutes registers the auth routes
func (c *AuthController) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", c.Register)
		auth.POST("/login", c.Login)
		auth.POST("/refresh", c.RefreshToken)
		auth.GET("/verify", c.Verify)
		auth.POST("/logout", c.authMiddleware.Authenticate(), c.Logout)
		auth.POST("/logout-all", c.authMiddleware.Authenticate(), c.LogoutAll)
		auth.PUT("/password", c.authMiddleware.Authenticate(), c.ChangePassword)
	}
}

// Register handles user registration
// @Summary Register a new user
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body request.RegisterRequest true "Registration request"
// @Success 201 {object} response.ApiResponse[response.AuthResponse]
// @Failure 400 {object} response.ApiResponse[any]
// @Failure 409 {object} response.ApiResponse[any]
// @Router /api/v1/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req request.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	authResp, err := c.authService.Register(ctx.Request.Context(), &req, clientMeta(ctx))
	if err != nil {
		switch err {
		case service.ErrUserAlreadyExists:
			ctx.JSON(http.StatusConflict, response.NewError[any]("user already exists"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("registration failed"))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.NewSuccess(authResp, "User registered successfully"))
}

// Login handles user login
// @Summary Login with username/email and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login request"
// @Success 200 {object} response.ApiResponse[response.AuthResponse]
// @Failure 400 {object} response.ApiResponse[any]
// @Failure 401 {object} response.ApiResponse[any]
// @Router /api/v1/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req request.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	authResp, err := c.authService.Login(ctx.Request.Context(), &req, clientMeta(ctx))
	if err != nil {
		switch err {
		// Inactive accounts get the same response as bad credentials so
		// the endpoint does not confirm an account exists.
		case service.ErrInvalidCredentials, service.ErrUserInactive:
			ctx.JSON(http.StatusUnauthorized, response.NewError[any]("invalid credentials"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("login failed"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(authResp, "Login successful"))
}

// RefreshToken handles token refresh
// @Summary Refresh access token using refresh token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body request.RefreshTokenRequest true "Refresh token request"
// @Success 200 {object} response.ApiResponse[response.AuthResponse]
// @Failure 400 {object} response.ApiResponse[any]
// @Failure 401 {object} response.ApiResponse[any]
// @Router /api/v1/auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req request.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	authResp, err := c.authService.RefreshToken(ctx.Request.Context(), &req)
	if err != nil {
		switch err {
		case service.ErrInvalidToken:
			ctx.JSON(http.StatusUnauthorized, response.NewError[any]("invalid or expired refresh token"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("token refresh failed"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(authResp, "Token refreshed successfully"))
}

// Verify validates the presented access token
// @Summary Verify an access token and return the bearer's profile
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[response.VerifyResponse]
// @Failure 401 {object} response.ApiResponse[any]
// @Router /api/v1/auth/verify [get]
func (c *AuthController) Verify(ctx *gin.Context) {
	bearerToken := ctx.GetHeader("Authorization")
	if !strings.HasPrefix(bearerToken, "Bearer ") {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any]("missing bearer token"))
		return
	}

	verifyResp, err := c.authService.Verify(ctx.Request.Context(), strings.TrimPrefix(bearerToken, "Bearer "))
	if err != nil {
		switch err {
		case service.ErrInvalidToken, service.ErrUserNotFound, service.ErrUserInactive:
			ctx.JSON(http.StatusUnauthorized, response.NewError[any]("invalid or expired token"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("token verification failed"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(verifyResp))
}

// ChangePassword changes the caller's password
// @Summary Change the current user's password
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.ChangePasswordRequest true "Password change request"
// @Success 200 {object} response.ApiResponse[any]
// @Failure 400 {object} response.ApiResponse[any]
// @Router /api/v1/auth/password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any]("not authenticated"))
		return
	}

	var req request.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	if err := c.authService.ChangePassword(ctx.Request.Context(), userID, &req); err != nil {
		switch err {
		case service.ErrUserNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("user not found"))
		case service.ErrWrongPassword:
			ctx.JSON(http.StatusBadRequest, response.NewError[any]("current password is incorrect"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to change password"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Password changed successfully"))
}

// Logout revokes the presented refresh token
// @Summary Logout current session
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.RefreshTokenRequest true "Refresh token to revoke"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)

	var req request.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err == nil && userID > 0 {
		_ = c.authService.Logout(ctx.Request.Context(), userID, req.RefreshToken, clientMeta(ctx))
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Logged out successfully"))
}

// LogoutAll revokes every session of the caller
// @Summary Logout all sessions
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/auth/logout-all [post]
func (c *AuthController) LogoutAll(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID > 0 {
		_ = c.authService.LogoutAll(ctx.Request.Context(), userID)
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "All sessions logged out successfully"))
}
