package auth

import (
	"context"

	"carrental/internal/domain"
)

// UserRepository is the slice of the user store the auth service reads.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type tokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
