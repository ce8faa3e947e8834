package request

import (
	"github.com/jrjohn/streamlens-go/internal/domain/dao"
	"github.com/jrjohn/streamlens-go/internal/domain/entity"
)

// UserListQuery is the raw query-string form of the user listing
// filter. Absent or malformed values add no constraint.
type UserListQuery struct {
	Search          string `form:"search"`
	Role            string `form:"role"`
	IsActive        string `form:"isActive"`
	CreatedAfter    string `form:"createdAfter"`
	CreatedBefore   string `form:"createdBefore"`
	LastLoginAfter  string `form:"lastLoginAfter"`
	LastLoginBefore string `form:"lastLoginBefore"`
	Sort            string `form:"sort"`
	Order           string `form:"order"`
	Page            string `form:"page"`
	Limit           string `form:"limit"`
}

// ToFilter normalizes the raw query into a DAO filter.
func (q *UserListQuery) ToFilter(defaultLimit, maxLimit int) *dao.UserFilter {
	f := &dao.UserFilter{
		Search:   q.Search,
		SortBy:   q.Sort,
		SortDesc: q.Order != "asc",
		Page:     parsePage(q.Page),
		Limit:    parseLimit(q.Limit, defaultLimit, maxLimit),
	}

	if role := entity.UserRole(q.Role); role.IsValid() {
		f.Role = &role
	}
	f.IsActive = parseBool(q.IsActive)
	f.CreatedAfter = parseDate(q.CreatedAfter)
	f.CreatedBefore = parseDate(q.CreatedBefore)
	f.LastLoginAfter = parseDate(q.LastLoginAfter)
	f.LastLoginBefore = parseDate(q.LastLoginBefore)

	return f
}

// UpdateRoleRequest changes one user's role.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

// BulkRoleRequest applies one role to a set of users.
type BulkRoleRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required,min=1"`
	Role    string `json:"role" binding:"required,oneof=user admin"`
}

// BulkStatusRequest applies one active flag to a set of users.
type BulkStatusRequest struct {
	UserIDs  []uint `json:"user_ids" binding:"required,min=1"`
	IsActive *bool  `json:"is_active" binding:"required"`
}

// ActivityListQuery is the raw query-string form of the audit-log
// listing filter.
type ActivityListQuery struct {
	Action string `form:"action"`
	After  string `form:"after"`
	Before string `form:"before"`
	Page   string `form:"page"`
	Limit  string `form:"limit"`
}

// ToFilter normalizes the raw query into a DAO filter. userID scopes
// the listing to one user; pass nil for the all-users view.
func (q *ActivityListQuery) ToFilter(userID *uint, defaultLimit, maxLimit int) *dao.ActivityFilter {
	f := &dao.ActivityFilter{
		UserID: userID,
		Page:   parsePage(q.Page),
		Limit:  parseLimit(q.Limit, defaultLimit, maxLimit),
	}

	if action := entity.ActivityAction(q.Action); action.IsValid() {
		f.Action = &action
	}
	f.After = parseDate(q.After)
	f.Before = parseDate(q.Before)

	return f
}
