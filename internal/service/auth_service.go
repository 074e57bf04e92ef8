package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"job_portal/internal/model"
	"job_portal/internal/repository"
	"job_portal/internal/utils"
)

var (
	ErrUserAlreadyExists  = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService provides authentication and account services
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	CurrentUser(ctx context.Context, id int64) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, name string) (*model.User, error)
}

type authService struct {
	store   repository.Store
	jwtUtil *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(store repository.Store, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		store:   store,
		jwtUtil: jwtUtil,
	}
}

// Register creates a new employer or jobseeker account. It does not log the user in.
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	if req.Role != model.RoleEmployer && req.Role != model.RoleJobseeker {
		return nil, fmt.Errorf("cannot register with role %q", req.Role)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hashedPassword,
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
		CreatedAt:    time.Now().UTC(),
	}
	if req.Role == model.RoleEmployer {
		user.Company = strings.TrimSpace(req.Company)
	}

	err = s.store.InTx(ctx, func(tx repository.Store) error {
		existing, err := tx.Users().FindByEmail(ctx, user.Email)
		if err != nil {
			return fmt.Errorf("failed to check existing user: %w", err)
		}
		if existing != nil {
			return ErrUserAlreadyExists
		}
		return tx.Users().Create(ctx, user)
	})
	if errors.Is(err, repository.ErrDuplicateEmail) {
		// Lost a race with a concurrent registration
		return nil, ErrUserAlreadyExists
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns the user with a signed session token
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.store.Users().FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// CurrentUser loads the user behind a session
func (s *authService) CurrentUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile changes the display name, the only mutable profile field
func (s *authService) UpdateProfile(ctx context.Context, id int64, name string) (*model.User, error) {
	var user *model.User
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		if err := tx.Users().UpdateName(ctx, id, strings.TrimSpace(name)); err != nil {
			return err
		}
		var err error
		user, err = tx.Users().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
