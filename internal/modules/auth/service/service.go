package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gsualumni/alumninet/internal/entity"
	authDto "github.com/gsualumni/alumninet/internal/modules/auth/dto"
	repo "github.com/gsualumni/alumninet/internal/modules/auth/repository"
	"github.com/gsualumni/alumninet/internal/modules/settings"
	"github.com/gsualumni/alumninet/internal/session"
	"github.com/gsualumni/alumninet/pkg/apperror"
)

type Service interface {
	Register(ctx context.Context, req authDto.RegisterRequest) (*authDto.AuthResponse, error)
	Login(ctx context.Context, req authDto.LoginRequest) (*authDto.AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*authDto.MeResponse, error)
}

type service struct {
	users    repo.UserRepository
	settings settings.Provider
	secret   string
	tokenTTL time.Duration
}

func NewService(users repo.UserRepository, provider settings.Provider, secret string, tokenTTL time.Duration) Service {
	return &service{
		users:    users,
		settings: provider,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (s *service) Register(ctx context.Context, req authDto.RegisterRequest) (*authDto.AuthResponse, error) {
	current, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	if current.MaintenanceMode {
		return nil, fmt.Errorf("registration is temporarily disabled: %w", apperror.ErrMaintenance)
	}
	if !current.AllowPublicRegistration {
		return nil, fmt.Errorf("public registration is closed: %w", apperror.ErrForbidden)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	matricNo := strings.ToUpper(strings.TrimSpace(req.MatricNo))

	if exists, err := s.users.EmailExists(ctx, email); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("an account with this email already exists: %w", apperror.ErrConflict)
	}
	if exists, err := s.users.MatricExists(ctx, matricNo); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("this matric number is already registered: %w", apperror.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         entity.RoleMember,
		IsVerified:   current.DefaultNewUserVerified,
	}
	profile := &entity.Alumni{
		MatricNo:       matricNo,
		Department:     strings.TrimSpace(req.Department),
		GraduationYear: req.GraduationYear,
		Status:         entity.AlumniStatusActive,
	}

	if err := s.users.CreateWithProfile(ctx, user, profile); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return s.buildAuthResponse(user)
}

func (s *service) Login(ctx context.Context, req authDto.LoginRequest) (*authDto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same error as a bad password, so callers cannot probe for
			// registered emails.
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.ErrUnauthorized
	}

	return s.buildAuthResponse(user)
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*authDto.MeResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}

	resp := &authDto.MeResponse{
		User: authDto.AuthUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}

	if user.Alumni != nil {
		resp.HasProfile = true
		resp.Profile = &authDto.ProfileDetail{
			MatricNo:       user.Alumni.MatricNo,
			Department:     user.Alumni.Department,
			GraduationYear: user.Alumni.GraduationYear,
			Status:         user.Alumni.Status,
			Employer:       user.Alumni.Employer,
			JobTitle:       user.Alumni.JobTitle,
			CurrentCity:    user.Alumni.CurrentCity,
			Skills:         user.Alumni.Skills,
		}
	}

	return resp, nil
}

func (s *service) buildAuthResponse(user *entity.User) (*authDto.AuthResponse, error) {
	token, expiresAt, err := session.Sign(s.secret, s.tokenTTL, user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &authDto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: authDto.AuthUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}
