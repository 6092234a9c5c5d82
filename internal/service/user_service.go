package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/deskhub/helpdesk-service/internal/auth"
	"github.com/deskhub/helpdesk-service/internal/domain"
	"github.com/deskhub/helpdesk-service/internal/policy"
	"github.com/deskhub/helpdesk-service/internal/repository"
	apperrors "github.com/deskhub/helpdesk-service/pkg/util/errorutil"
)

// UserService manages accounts. All operations except agent listing are
// admin-gated.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// UserCreateInput describes an admin-created account.
type UserCreateInput struct {
	Username string
	Password string
	FullName string
	Email    string
	Role     domain.Role
}

// UserPatch is a sparse account update. Username is immutable; password
// changes go through ResetPassword.
type UserPatch struct {
	FullName *string
	Email    *string
	Role     *domain.Role
	IsActive *bool
}

// ListUsers returns all accounts, newest first.
func (s *UserService) ListUsers(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	if !policy.RoleGate(actor, policy.OpManageUsers) {
		return nil, apperrors.NewForbidden("access denied")
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// ListAgents returns active staff accounts for assignment pickers.
func (s *UserService) ListAgents(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	if !policy.RoleGate(actor, policy.OpListAgents) {
		return nil, apperrors.NewForbidden("access denied")
	}
	agents, err := s.users.ListAgents(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return agents, nil
}

// CreateUser adds an account with an admin-chosen role.
func (s *UserService) CreateUser(ctx context.Context, actor domain.Actor, input UserCreateInput) (*domain.User, error) {
	if !policy.RoleGate(actor, policy.OpManageUsers) {
		return nil, apperrors.NewForbidden("access denied")
	}
	if strings.TrimSpace(input.Username) == "" || input.Password == "" ||
		strings.TrimSpace(input.FullName) == "" || strings.TrimSpace(input.Email) == "" || input.Role == "" {
		return nil, apperrors.NewValidationError("username, password, full_name, email and role are required", nil)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	user := &domain.User{
		Username:     strings.TrimSpace(input.Username),
		FullName:     strings.TrimSpace(input.FullName),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		Role:         input.Role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("username or email already exists", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// UpdateUser applies a sparse update to profile fields, role and is_active.
func (s *UserService) UpdateUser(ctx context.Context, actor domain.Actor, id string, patch UserPatch) (*domain.User, error) {
	if !policy.RoleGate(actor, policy.OpManageUsers) {
		return nil, apperrors.NewForbidden("access denied")
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if patch.FullName != nil {
		user.FullName = strings.TrimSpace(*patch.FullName)
	}
	if patch.Email != nil {
		user.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already exists", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ResetPassword sets a new password for an account.
func (s *UserService) ResetPassword(ctx context.Context, actor domain.Actor, id, password string) error {
	if !policy.RoleGate(actor, policy.OpManageUsers) {
		return apperrors.NewForbidden("access denied")
	}
	if password == "" {
		return apperrors.NewValidationError("password is required", nil)
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}
