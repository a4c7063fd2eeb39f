package admin

import (
	"context"

	"carrental/internal/domain"
	"carrental/internal/repository"
)

// UserRepository is what user management needs from the store.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	List(ctx context.Context, f repository.UserFilter) ([]domain.User, int64, error)
}
