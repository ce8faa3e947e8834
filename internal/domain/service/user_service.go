package service

import (
	"context"

	"github.com/jrjohn/streamlens-go/internal/dto/request"
	"github.com/jrjohn/streamlens-go/internal/dto/response"
)

// UserService defines the interface for user management operations
type UserService interface {
	// GetProfile retrieves the caller's own profile
	GetProfile(ctx context.Context, userID uint) (*response.UserResponse, error)

	// UpdateProfile applies a self-service profile update
	UpdateProfile(ctx context.Context, userID uint, req *request.UpdateProfileRequest) (*response.UserResponse, error)

	// List retrieves users matching the query with pagination
	List(ctx context.Context, q *request.UserListQuery) (*response.PagedResponse[response.UserResponse], error)

	// Get retrieves a user by ID
	Get(ctx context.Context, id uint) (*response.UserResponse, error)

	// Delete removes a user and logs a delete activity for the actor
	Delete(ctx context.Context, actorID, id uint, meta ClientMeta) error

	// UpdateRole changes one user's role and logs a role_change activity
	UpdateRole(ctx context.Context, actorID, id uint, role string, meta ClientMeta) (*response.UserResponse, error)

	// ToggleStatus flips one user's active flag and logs a
	// status_change activity
	ToggleStatus(ctx context.Context, actorID, id uint, meta ClientMeta) (*response.UserResponse, error)

	// BulkUpdateRoles applies one role to a set of users, returning
	// matched and modified counts
	BulkUpdateRoles(ctx context.Context, actorID uint, req *request.BulkRoleRequest, meta ClientMeta) (*response.BulkUpdateResponse, error)

	// BulkUpdateStatus applies one active flag to a set of users
	BulkUpdateStatus(ctx context.Context, actorID uint, req *request.BulkStatusRequest, meta ClientMeta) (*response.BulkUpdateResponse, error)

	// ListActivities retrieves one user's audit log
	ListActivities(ctx context.Context, userID uint, q *request.ActivityListQuery) (*response.PagedResponse[response.ActivityResponse], error)

	// ListAllActivities retrieves the audit log across all users
	ListAllActivities(ctx context.Context, q *request.ActivityListQuery) (*response.PagedResponse[response.ActivityResponse], error)
}
