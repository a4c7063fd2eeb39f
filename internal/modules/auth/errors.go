package auth

import "carrental/internal/pkg/apperr"

var (
	ErrInvalidCredentials = apperr.Unauthorized("INVALID_CREDENTIALS", "Username or password is incorrect")
	ErrUserNotFound       = apperr.NotFound("USER_NOT_FOUND", "User not found")
)
