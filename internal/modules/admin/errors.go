package admin

import "carrental/internal/pkg/apperr"

var (
	ErrUserNotFound      = apperr.NotFound("USER_NOT_FOUND", "User not found")
	ErrDuplicateUsername = apperr.Conflict("DUPLICATE_USERNAME", "Username is already taken")
	ErrInvalidRole       = apperr.Validation("INVALID_ROLE", "Role must be Admin or Staff")
	ErrSelfLockout       = apperr.InvalidState("SELF_LOCKOUT", "You cannot deactivate or demote your own account")
)
