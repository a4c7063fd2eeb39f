package admin

import (
	"carrental/internal/domain"
	"carrental/internal/pkg/pagination"
)

type ListUsersRequest struct {
	pagination.Params
	Role   string `form:"role"`
	Active *bool  `form:"active"`
	Q      string `form:"q"`
}

type CreateUserRequest struct {
	Username string          `json:"username" validate:"required,min=3,max=64,alphanum"`
	Password string          `json:"password" validate:"required,min=8,max=72"`
	FullName string          `json:"full_name" validate:"required,notblank,max=128"`
	Email    string          `json:"email" validate:"omitempty,email,max=255"`
	Role     domain.UserRole `json:"role" validate:"required,oneof=Admin Staff"`
}

type UpdateUserRequest struct {
	FullName *string          `json:"full_name" validate:"omitempty,notblank,max=128"`
	Email    *string          `json:"email" validate:"omitempty,email,max=255"`
	Role     *domain.UserRole `json:"role" validate:"omitempty,oneof=Admin Staff"`
	IsActive *bool            `json:"is_active"`
	Password *string          `json:"password" validate:"omitempty,min=8,max=72"`
}
