package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"carrental/internal/domain"
	"carrental/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// Service authenticates back-office users and issues session tokens.
type Service struct {
	users    UserRepository
	tokens   tokenIssuer
	tokenTTL time.Duration
}

func NewService(users UserRepository, tokens tokenIssuer, tokenTTL time.Duration) *Service {
	return &Service{users: users, tokens: tokens, tokenTTL: tokenTTL}
}

// Login checks the password and returns a signed token. Unknown users,
// inactive users and wrong passwords all fail the same way.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		slog.WarnContext(ctx, "login rejected", "username", user.Username, "reason", "bad_password")
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		slog.WarnContext(ctx, "login rejected", "username", user.Username, "reason", "inactive")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
		User:      user,
	}, nil
}

// Me returns the caller's account. A deactivated account is treated as gone.
func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// HashPassword hashes a new password with bcrypt.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
