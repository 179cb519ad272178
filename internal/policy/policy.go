package policy

import "github.com/gsualumni/alumninet/internal/entity"

// Action is a named capability checked once at each service entry point.
type Action string

const (
	ActionSubmitJob            Action = "job:submit"
	ActionSubmitAccomplishment Action = "accomplishment:submit"
	ActionModerateContent      Action = "content:moderate"
	ActionManageSettings       Action = "settings:manage"
	ActionManageUsers          Action = "users:manage"
	ActionManageEvents         Action = "events:manage"
	ActionViewDirectory        Action = "directory:view"
	ActionRSVP                 Action = "events:rsvp"
	ActionViewAdminDashboard   Action = "dashboard:admin"
)

var grants = map[Action]map[string]bool{
	ActionSubmitJob: {
		entity.RoleAdmin:     true,
		entity.RoleModerator: true,
		entity.RoleMember:    true,
	},
	ActionSubmitAccomplishment: {
		entity.RoleAdmin:     true,
		entity.RoleModerator: true,
		entity.RoleMember:    true,
	},
	ActionModerateContent: {
		entity.RoleAdmin:     true,
		entity.RoleModerator: true,
	},
	ActionManageSettings: {
		entity.RoleAdmin: true,
	},
	ActionManageUsers: {
		entity.RoleAdmin: true,
	},
	ActionManageEvents: {
		entity.RoleAdmin: true,
	},
	ActionViewDirectory: {
		entity.RoleAdmin:     true,
		entity.RoleModerator: true,
		entity.RoleMember:    true,
	},
	ActionRSVP: {
		entity.RoleAdmin:     true,
		entity.RoleModerator: true,
		entity.RoleMember:    true,
	},
	ActionViewAdminDashboard: {
		entity.RoleAdmin: true,
	},
}

// Allowed reports whether the role may perform the action. Unknown roles
// and unknown actions are denied.
func Allowed(role string, action Action) bool {
	roles, ok := grants[action]
	if !ok {
		return false
	}
	return roles[role]
}
