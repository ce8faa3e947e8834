// Package impl provides the service layer implementations.
package impl

import (
	"context"

	"go.uber.org/zap"

	"github.com/jrjohn/streamlens-go/internal/domain/entity"
	"github.com/jrjohn/streamlens-go/internal/domain/repository"
	"github.com/jrjohn/streamlens-go/internal/domain/service"
)

// activityRecorder appends audit-log records as a side effect of
// state-changing operations. Recording failures are logged but never
// fail the operation that triggered them.
type activityRecorder struct {
	repo   repository.ActivityRepository
	logger *zap.Logger
}

func newActivityRecorder(repo repository.ActivityRepository, logger *zap.Logger) *activityRecorder {
	return &activityRecorder{repo: repo, logger: logger}
}

func (r *activityRecorder) record(ctx context.Context, userID uint, action entity.ActivityAction, meta service.ClientMeta, extra map[string]any) {
	activity := &entity.UserActivity{
		UserID: userID,
		Action: action,
		Details: entity.ActivityDetails{
			IP:        meta.IP,
			UserAgent: meta.UserAgent,
			Extra:     extra,
		},
	}
	if err := r.repo.Create(ctx, activity); err != nil {
		r.logger.Warn("failed to record user activity",
			zap.Uint("user_id", userID),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}
