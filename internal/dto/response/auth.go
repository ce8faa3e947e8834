package response

import (
	"time"

	"github.com/jrjohn/streamlens-go/internal/domain/entity"
)

// UserResponse is the public projection of a user. The password hash
// never leaves the service layer.
type UserResponse struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewUserResponse projects a user entity into its API shape.
func NewUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		LastLogin: user.LastLogin,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewUserResponses projects a slice of user entities.
func NewUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// TokenPair carries the access and refresh token issued at login or
// refresh, with the access token expiry in seconds.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	User   UserResponse `json:"user"`
	Tokens TokenPair    `json:"tokens"`
}

// VerifyResponse is returned by the token verification endpoint.
type VerifyResponse struct {
	Valid bool         `json:"valid"`
	User  UserResponse `json:"user"`
}

// BulkUpdateResponse reports how many users a bulk operation touched.
type BulkUpdateResponse struct {
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
}

// ActivityResponse is the API shape of one audit-log record.
type ActivityResponse struct {
	ID        uint           `json:"id"`
	UserID    uint           `json:"userId"`
	Action    string         `json:"action"`
	IP        string         `json:"ip,omitempty"`
	UserAgent string         `json:"userAgent,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// NewActivityResponse projects an activity entity into its API shape.
func NewActivityResponse(a *entity.UserActivity) ActivityResponse {
	return ActivityResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Action:    string(a.Action),
		IP:        a.Details.IP,
		UserAgent: a.Details.UserAgent,
		Extra:     a.Details.Extra,
		CreatedAt: a.CreatedAt,
	}
}

// NewActivityResponses projects a slice of activity entities.
func NewActivityResponses(activities []*entity.UserActivity) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, NewActivityResponse(a))
	}
	return out
}
