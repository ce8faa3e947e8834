package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jrjohn/streamlens-go/internal/domain/service"
	"github.com/jrjohn/streamlens-go/internal/dto/request"
	"github.com/jrjohn/streamlens-go/internal/dto/response"
	"github.com/jrjohn/streamlens-go/internal/middleware"
	"github.com/jrjohn/streamlens-go/internal/security"
)

const (
	msgNotAuthenticated = "not authenticated"
	msgUserNotFound     = "user not found"
	msgFailedFetchUser  = "failed to fetch user"
	msgInvalidUserID    = "invalid user ID"
)

// UserController handles user management endpoints
type UserController struct {
	userService     service.UserService
	securityService *security.SecurityService
	authMiddleware  *middleware.AuthMiddleware
}

// NewUserController creates a new UserController instance
func NewUserController(
	userService service.UserService,
	securityService *security.SecurityService,
	authMiddleware *middleware.AuthMiddleware,
) *UserController {
	return &UserController{
		userService:     userService,
		securityService: securityService,
		authMiddleware:  authMiddleware,
	}
}

// RegisterRoutes registers the user routes
func (c *UserController) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.Use(c.authMiddleware.Authenticate())
	{
		users.GET("/me", c.GetCurrentUser)
		users.PUT("/me", c.UpdateCurrentUser)
		users.GET("/me/activities", c.ListOwnActivities)

		admin := users.Group("", c.authMiddleware.RequireAdmin())
		{
			admin.GET("", c.List)
			admin.GET("/activities", c.ListAllActivities)
			admin.GET("/:id", c.GetByID)
			admin.DELETE("/:id", c.Delete)
			admin.PUT("/:id/role", c.UpdateRole)
			admin.PATCH("/:id/status", c.ToggleStatus)
			admin.GET("/:id/activities", c.ListActivities)
			admin.PUT("/bulk/role", c.BulkUpdateRoles)
			admin.PUT("/bulk/status", c.BulkUpdateStatus)
		}
	}
}

// userIDParam parses the :id path parameter.
func userIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewError[any](msgInvalidUserID))
		return 0, false
	}
	return uint(id), true
}

// List retrieves users with filtering and pagination
// @Summary List users
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param search query string false "Username or email substring"
// @Param role query string false "Role filter"
// @Param isActive query bool false "Active flag filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size"
// @Success 200 {object} response.ApiResponse[response.PagedResponse[response.UserResponse]]
// @Router /api/v1/users [get]
func (c *UserController) List(ctx *gin.Context) {
	var q request.UserListQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	users, err := c.userService.List(ctx.Request.Context(), &q)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to fetch users"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(users))
}

// GetCurrentUser retrieves the current authenticated user
// @Summary Get current user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[response.UserResponse]
// @Router /api/v1/users/me [get]
func (c *UserController) GetCurrentUser(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any](msgNotAuthenticated))
		return
	}

	user, err := c.userService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any](msgUserNotFound))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any](msgFailedFetchUser))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(user))
}

// UpdateCurrentUser updates the current user's profile
// @Summary Update current user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.UpdateProfileRequest true "Update request"
// @Success 200 {object} response.ApiResponse[response.UserResponse]
// @Router /api/v1/users/me [put]
func (c *UserController) UpdateCurrentUser(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any](msgNotAuthenticated))
		return
	}

	var req request.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	user, err := c.userService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any](msgUserNotFound))
		case service.ErrUserAlreadyExists:
			ctx.JSON(http.StatusConflict, response.NewError[any]("email already in use"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to update user"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(user, "Profile updated successfully"))
}

// GetByID retrieves a user by ID
// @Summary Get user by ID
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.ApiResponse[response.UserResponse]
// @Router /api/v1/users/{id} [get]
func (c *UserController) GetByID(ctx *gin.Context) {
	id, ok := userIDParam(ctx)
	if !ok {
		return
	}

	user, err := c.userService.Get(ctx.Request.Context(), id)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any](msgUserNotFound))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any](msgFailedFetchUser))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(user))
}

// Delete removes a user
// @Summary Delete user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/users/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	id, ok := userIDParam(ctx)
	if !ok {
		return
	}

	actorID := c.securityService.GetCurrentUserID(ctx)
	if err := c.userService.Delete(ctx.Request.Context(), actorID, id, clientMeta(ctx)); err != nil {
		switch err {
		case service.ErrUserNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any](msgUserNotFound))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to delete user"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "User deleted successfully"))
}

// UpdateRole changes one user's role
// @Summary Update user role
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body request.UpdateRoleRequest true "Role update request"
// @Success 200 {object} response.ApiResponse[response.UserResponse]
// @Router /api/v1/users/{id}/role [put]
func (c *UserController) UpdateRole(ctx *gin.Context) {
	id, ok := userIDParam(ctx)
	if !ok {
		return
	}

	var req request.UpdateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	actorID := c.securityService.GetCurrentUserID(ctx)
	user, err := c.userService.UpdateRole(ctx.Request.Context(), actorID, id, req.Role, clientMeta(ctx))
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any](msgUserNotFound))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to update role"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(user, "Role updated successfully"))
}

// ToggleStatus flips one user's active flag
// @Summary Toggle user active status
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.ApiResponse[response.UserResponse]
// @Router /api/v1/users/{id}/status [patch]
func (c *UserController) ToggleStatus(ctx *gin.Context) {
	id, ok := userIDParam(ctx)
	if !ok {
		return
	}

	actorID := c.securityService.GetCurrentUserID(ctx)
	user, err := c.userService.ToggleStatus(ctx.Request.Context(), actorID, id, clientMeta(ctx))
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any](msgUserNotFound))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to toggle status"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(user, "Status updated successfully"))
}

// BulkUpdateRoles applies one role to a set of users
// @Summary Bulk update user roles
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.BulkRoleRequest true "Bulk role request"
// @Success 200 {object} response.ApiResponse[response.BulkUpdateResponse]
// @Router /api/v1/users/bulk/role [put]
func (c *UserController) BulkUpdateRoles(ctx *gin.Context) {
	var req request.BulkRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	actorID := c.securityService.GetCurrentUserID(ctx)
	result, err := c.userService.BulkUpdateRoles(ctx.Request.Context(), actorID, &req, clientMeta(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to update roles"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(result, "Roles updated successfully"))
}

// BulkUpdateStatus applies one active flag to a set of users
// @Summary Bulk update user status
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.BulkStatusRequest true "Bulk status request"
// @Success 200 {object} response.ApiResponse[response.BulkUpdateResponse]
// @Router /api/v1/users/bulk/status [put]
func (c *UserController) BulkUpdateStatus(ctx *gin.Context) {
	var req request.BulkStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	actorID := c.securityService.GetCurrentUserID(ctx)
	result, err := c.userService.BulkUpdateStatus(ctx.Request.Context(), actorID, &req, clientMeta(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to update status"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(result, "Status updated successfully"))
}

// ListOwnActivities retrieves the caller's audit log
// @Summary List own activities
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param action query string false "Action filter"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} response.ApiResponse[response.PagedResponse[response.ActivityResponse]]
// @Router /api/v1/users/me/activities [get]
func (c *UserController) ListOwnActivities(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any](msgNotAuthenticated))
		return
	}
	c.listActivitiesFor(ctx, userID)
}

// ListActivities retrieves one user's audit log
// @Summary List a user's activities
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.ApiResponse[response.PagedResponse[response.ActivityResponse]]
// @Router /api/v1/users/{id}/activities [get]
func (c *UserController) ListActivities(ctx *gin.Context) {
	id, ok := userIDParam(ctx)
	if !ok {
		return
	}
	c.listActivitiesFor(ctx, id)
}

func (c *UserController) listActivitiesFor(ctx *gin.Context, userID uint) {
	var q request.ActivityListQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	activities, err := c.userService.ListActivities(ctx.Request.Context(), userID, &q)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to fetch activities"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(activities))
}

// ListAllActivities retrieves the audit log across all users
// @Summary List all activities
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param action query string false "Action filter"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} response.ApiResponse[response.PagedResponse[response.ActivityResponse]]
// @Router /api/v1/users/activities [get]
func (c *UserController) ListAllActivities(ctx *gin.Context) {
	var q request.ActivityListQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	activities, err := c.userService.ListAllActivities(ctx.Request.Context(), &q)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to fetch activities"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(activities))
}
