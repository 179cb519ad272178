package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gsualumni/alumninet/internal/entity"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		action Action
		want   bool
	}{
		{"member can submit jobs", entity.RoleMember, ActionSubmitJob, true},
		{"member can submit accomplishments", entity.RoleMember, ActionSubmitAccomplishment, true},
		{"member cannot moderate", entity.RoleMember, ActionModerateContent, false},
		{"moderator can moderate", entity.RoleModerator, ActionModerateContent, true},
		{"moderator cannot manage settings", entity.RoleModerator, ActionManageSettings, false},
		{"admin can manage settings", entity.RoleAdmin, ActionManageSettings, true},
		{"admin can manage users", entity.RoleAdmin, ActionManageUsers, true},
		{"moderator cannot manage users", entity.RoleModerator, ActionManageUsers, false},
		{"member can rsvp", entity.RoleMember, ActionRSVP, true},
		{"unknown role denied", "SUPERUSER", ActionSubmitJob, false},
		{"empty role denied", "", ActionViewDirectory, false},
		{"unknown action denied", entity.RoleAdmin, Action("nonexistent"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.role, tt.action))
		})
	}
}
