package entity

import (
	"time"
)

// ActivityAction enumerates the auditable actions.
type ActivityAction string

const (
	ActionLogin        ActivityAction = "login"
	ActionLogout       ActivityAction = "logout"
	ActionCreate       ActivityAction = "create"
	ActionUpdate       ActivityAction = "update"
	ActionDelete       ActivityAction = "delete"
	ActionImport       ActivityAction = "import"
	ActionExport       ActivityAction = "export"
	ActionRoleChange   ActivityAction = "role_change"
	ActionStatusChange ActivityAction = "status_change"
	ActionRegister     ActivityAction = "register"
)

// IsValid reports whether the action is a known audit action.
func (a ActivityAction) IsValid() bool {
	switch a {
	case ActionLogin, ActionLogout, ActionCreate, ActionUpdate, ActionDelete,
		ActionImport, ActionExport, ActionRoleChange, ActionStatusChange, ActionRegister:
		return true
	}
	return false
}

// ActivityDetails carries request metadata captured with each record.
type ActivityDetails struct {
	IP        string         `json:"ip,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// UserActivity is an append-only audit record. The application never
// mutates or deletes these; retention is an operational concern.
type UserActivity struct {
	ID        uint            `json:"id"`
	UserID    uint            `json:"user_id"`
	Action    ActivityAction  `json:"action"`
	Details   ActivityDetails `json:"details"`
	CreatedAt time.Time       `json:"created_at"`
}

// ImportError is a per-row failure captured during a CSV import run.
// Rows are grouped into sessions by (SessionStartedAt, File).
type ImportError struct {
	ID               uint              `json:"id"`
	SessionStartedAt time.Time         `json:"session_started_at"`
	File             string            `json:"file"`
	Row              int               `json:"row"`
	Error            string            `json:"error"`
	Data             map[string]string `json:"data,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}
