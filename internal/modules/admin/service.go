package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carrental/internal/domain"
	"carrental/internal/modules/auth"
	"carrental/internal/pkg/validator"
	"carrental/internal/repository"
)

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

// -------------------- Users --------------------

func (s *Service) ListUsers(ctx context.Context, req ListUsersRequest) ([]domain.User, int64, error) {
	role := domain.UserRole(req.Role)
	if role != "" && !role.Valid() {
		return nil, 0, ErrInvalidRole
	}
	return s.users.List(ctx, repository.UserFilter{
		Role:   role,
		Active: req.Active,
		Query:  req.Q,
		Offset: req.Offset(),
		Limit:  req.Normalize().Limit,
	})
}

func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Email:        strings.TrimSpace(req.Email),
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return u, nil
}

// UpdateUser applies a partial update. actorID is the admin making the change;
// they may not demote or deactivate themselves.
func (s *Service) UpdateUser(ctx context.Context, actorID, id int64, req UpdateUserRequest) (*domain.User, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if actorID == u.ID {
		if req.IsActive != nil && !*req.IsActive {
			return nil, ErrSelfLockout
		}
		if req.Role != nil && *req.Role != domain.RoleAdmin {
			return nil, ErrSelfLockout
		}
	}

	if req.FullName != nil {
		u.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		u.Email = strings.TrimSpace(*req.Email)
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
