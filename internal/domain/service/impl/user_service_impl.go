package impl

import (
	"context"

	"go.uber.org/zap"

	"github.com/jrjohn/streamlens-go/internal/config"
	"github.com/jrjohn/streamlens-go/internal/domain/dao"
	"github.com/jrjohn/streamlens-go/internal/domain/entity"
	"github.com/jrjohn/streamlens-go/internal/domain/repository"
	"github.com/jrjohn/streamlens-go/internal/domain/service"
	"github.com/jrjohn/streamlens-go/internal/dto/request"
	"github.com/jrjohn/streamlens-go/internal/dto/response"
)

// userListDefaultLimit is the page size for user and activity listings
// when the query does not set one.
const userListDefaultLimit = 10

// userService implements service.UserService
type userService struct {
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
	activities   *activityRecorder
	maxLimit     int
}

// NewUserService creates a new UserService instance
func NewUserService(
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
	cfg *config.Config,
	logger *zap.Logger,
) service.UserService {
	return &userService{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		activities:   newActivityRecorder(activityRepo, logger),
		maxLimit:     cfg.Analytics.MaxLimit,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uint) (*response.UserResponse, error) {
	return s.Get(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}

	if req.Email != "" && req.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, service.ErrUserAlreadyExists
		}
		user.Email = req.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := response.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) List(ctx context.Context, q *request.UserListQuery) (*response.PagedResponse[response.UserResponse], error) {
	filter := q.ToFilter(userListDefaultLimit, s.maxLimit)

	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	paged := response.NewPagedResponse(response.NewUserResponses(users), filter.Page, filter.Limit, total)
	return &paged, nil
}

func (s *userService) Get(ctx context.Context, id uint) (*response.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}
	resp := response.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, actorID, id uint, meta service.ClientMeta) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return service.ErrUserNotFound
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.activities.record(ctx, actorID, entity.ActionDelete, meta, map[string]any{
		"target_user_id": id,
	})
	return nil
}

func (s *userService) UpdateRole(ctx context.Context, actorID, id uint, role string, meta service.ClientMeta) (*response.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}

	previous := user.Role
	user.Role = entity.UserRole(role)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.activities.record(ctx, actorID, entity.ActionRoleChange, meta, map[string]any{
		"target_user_id": id,
		"from":           string(previous),
		"to":             role,
	})

	resp := response.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) ToggleStatus(ctx context.Context, actorID, id uint, meta service.ClientMeta) (*response.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}

	user.IsActive = !user.IsActive
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.activities.record(ctx, actorID, entity.ActionStatusChange, meta, map[string]any{
		"target_user_id": id,
		"is_active":      user.IsActive,
	})

	resp := response.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) BulkUpdateRoles(ctx context.Context, actorID uint, req *request.BulkRoleRequest, meta service.ClientMeta) (*response.BulkUpdateResponse, error) {
	matched, modified, err := s.userRepo.UpdateMany(ctx, req.UserIDs, map[string]any{
		"role": req.Role,
	})
	if err != nil {
		return nil, err
	}

	s.activities.record(ctx, actorID, entity.ActionRoleChange, meta, map[string]any{
		"target_user_ids": req.UserIDs,
		"to":              req.Role,
		"matched":         matched,
	})

	return &response.BulkUpdateResponse{Matched: matched, Modified: modified}, nil
}

func (s *userService) BulkUpdateStatus(ctx context.Context, actorID uint, req *request.BulkStatusRequest, meta service.ClientMeta) (*response.BulkUpdateResponse, error) {
	matched, modified, err := s.userRepo.UpdateMany(ctx, req.UserIDs, map[string]any{
		"is_active": *req.IsActive,
	})
	if err != nil {
		return nil, err
	}

	s.activities.record(ctx, actorID, entity.ActionStatusChange, meta, map[string]any{
		"target_user_ids": req.UserIDs,
		"is_active":       *req.IsActive,
		"matched":         matched,
	})

	return &response.BulkUpdateResponse{Matched: matched, Modified: modified}, nil
}

func (s *userService) ListActivities(ctx context.Context, userID uint, q *request.ActivityListQuery) (*response.PagedResponse[response.ActivityResponse], error) {
	return s.listActivities(ctx, q.ToFilter(&userID, userListDefaultLimit, s.maxLimit))
}

func (s *userService) ListAllActivities(ctx context.Context, q *request.ActivityListQuery) (*response.PagedResponse[response.ActivityResponse], error) {
	return s.listActivities(ctx, q.ToFilter(nil, userListDefaultLimit, s.maxLimit))
}

func (s *userService) listActivities(ctx context.Context, filter *dao.ActivityFilter) (*response.PagedResponse[response.ActivityResponse], error) {
	activities, total, err := s.activityRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	paged := response.NewPagedResponse(response.NewActivityResponses(activities), filter.Page, filter.Limit, total)
	return &paged, nil
}
