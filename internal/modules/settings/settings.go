package settings

import "context"

// Key is the fixed singleton key the settings document is stored under.
const Key = "admin_system_settings"

type Settings struct {
	AllowPublicRegistration           bool `json:"allowPublicRegistration"`
	DefaultNewUserVerified            bool `json:"defaultNewUserVerified"`
	MaintenanceMode                   bool `json:"maintenanceMode"`
	RequireApprovalForJobs            bool `json:"requireApprovalForJobs"`
	RequireApprovalForAccomplishments bool `json:"requireApprovalForAccomplishments"`
	AdminAutoApproveOwnContent        bool `json:"adminAutoApproveOwnContent"`
}

// Patch carries a partial update; nil fields keep their current value.
type Patch struct {
	AllowPublicRegistration           *bool `json:"allowPublicRegistration"`
	DefaultNewUserVerified            *bool `json:"defaultNewUserVerified"`
	MaintenanceMode                   *bool `json:"maintenanceMode"`
	RequireApprovalForJobs            *bool `json:"requireApprovalForJobs"`
	RequireApprovalForAccomplishments *bool `json:"requireApprovalForAccomplishments"`
	AdminAutoApproveOwnContent        *bool `json:"adminAutoApproveOwnContent"`
}

func Defaults() Settings {
	return Settings{
		AllowPublicRegistration:           true,
		DefaultNewUserVerified:            false,
		MaintenanceMode:                   false,
		RequireApprovalForJobs:            true,
		RequireApprovalForAccomplishments: true,
		AdminAutoApproveOwnContent:        true,
	}
}

// Provider hands the current settings to policy decisions. Injected into
// services instead of being read through a process-wide global.
type Provider interface {
	Current(ctx context.Context) (Settings, error)
}

// Static is a fixed in-memory Provider, used in tests and as a fallback
// when no store is wired.
type Static struct {
	Settings Settings
}

func (s Static) Current(ctx context.Context) (Settings, error) {
	return s.Settings, nil
}

func (p Patch) ApplyTo(current Settings) Settings {
	if p.AllowPublicRegistration != nil {
		current.AllowPublicRegistration = *p.AllowPublicRegistration
	}
	if p.DefaultNewUserVerified != nil {
		current.DefaultNewUserVerified = *p.DefaultNewUserVerified
	}
	if p.MaintenanceMode != nil {
		current.MaintenanceMode = *p.MaintenanceMode
	}
	if p.RequireApprovalForJobs != nil {
		current.RequireApprovalForJobs = *p.RequireApprovalForJobs
	}
	if p.RequireApprovalForAccomplishments != nil {
		current.RequireApprovalForAccomplishments = *p.RequireApprovalForAccomplishments
	}
	if p.AdminAutoApproveOwnContent != nil {
		current.AdminAutoApproveOwnContent = *p.AdminAutoApproveOwnContent
	}
	return current
}

// PatchFromDoc builds a Patch from a loosely decoded document, keeping
// only fields that hold a proper boolean. Unknown keys and wrongly typed
// values are ignored rather than rejected.
func PatchFromDoc(doc map[string]interface{}) Patch {
	pick := func(key string) *bool {
		if v, ok := doc[key].(bool); ok {
			return &v
		}
		return nil
	}

	return Patch{
		AllowPublicRegistration:           pick("allowPublicRegistration"),
		DefaultNewUserVerified:            pick("defaultNewUserVerified"),
		MaintenanceMode:                   pick("maintenanceMode"),
		RequireApprovalForJobs:            pick("requireApprovalForJobs"),
		RequireApprovalForAccomplishments: pick("requireApprovalForAccomplishments"),
		AdminAutoApproveOwnContent:        pick("adminAutoApproveOwnContent"),
	}
}
