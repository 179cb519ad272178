package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gsualumni/alumninet/internal/modules/settings"
	repo "github.com/gsualumni/alumninet/internal/modules/settings/repository"
	"github.com/gsualumni/alumninet/internal/policy"
	"github.com/gsualumni/alumninet/pkg/apperror"
)

type Service interface {
	settings.Provider
	Get(ctx context.Context, role string) (settings.Settings, error)
	Update(ctx context.Context, role string, patch settings.Patch) (settings.Settings, error)
}

type service struct {
	repo repo.Repository
}

func NewService(repo repo.Repository) Service {
	return &service{repo: repo}
}

// Current returns the stored settings, falling back field-wise to the
// defaults when the row is absent or holds unexpected values.
func (s *service) Current(ctx context.Context) (settings.Settings, error) {
	raw, found, err := s.repo.Get(ctx, settings.Key)
	if err != nil {
		return settings.Defaults(), fmt.Errorf("failed to read settings: %w", err)
	}
	if !found {
		return settings.Defaults(), nil
	}
	return normalize([]byte(raw)), nil
}

func (s *service) Get(ctx context.Context, role string) (settings.Settings, error) {
	if !policy.Allowed(role, policy.ActionManageSettings) {
		return settings.Settings{}, apperror.ErrForbidden
	}
	return s.Current(ctx)
}

func (s *service) Update(ctx context.Context, role string, patch settings.Patch) (settings.Settings, error) {
	if !policy.Allowed(role, policy.ActionManageSettings) {
		return settings.Settings{}, apperror.ErrForbidden
	}

	current, err := s.Current(ctx)
	if err != nil {
		return settings.Settings{}, err
	}

	merged := patch.ApplyTo(current)

	payload, err := json.Marshal(merged)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := s.repo.Upsert(ctx, settings.Key, string(payload)); err != nil {
		return settings.Settings{}, fmt.Errorf("failed to persist settings: %w", err)
	}

	return merged, nil
}

// normalize tolerates malformed documents: each field falls back to its
// default unless the stored value is a proper boolean.
func normalize(raw []byte) settings.Settings {
	out := settings.Defaults()

	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return out
	}

	assign := func(key string, target *bool) {
		if v, ok := doc[key].(bool); ok {
			*target = v
		}
	}

	assign("allowPublicRegistration", &out.AllowPublicRegistration)
	assign("defaultNewUserVerified", &out.DefaultNewUserVerified)
	assign("maintenanceMode", &out.MaintenanceMode)
	assign("requireApprovalForJobs", &out.RequireApprovalForJobs)
	assign("requireApprovalForAccomplishments", &out.RequireApprovalForAccomplishments)
	assign("adminAutoApproveOwnContent", &out.AdminAutoApproveOwnContent)

	return out
}
