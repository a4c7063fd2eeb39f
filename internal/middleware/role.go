package middleware

import (
	"net/http"

	"carrental/internal/domain"
	"carrental/internal/pkg/apperr"
	"carrental/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

var errForbidden = apperr.Forbidden("FORBIDDEN", "Access denied: insufficient permissions")

// RequireRole lets the request through when the caller holds any of roles.
// It must run after JWTAuth.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ctxRole)
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		for _, r := range roles {
			if string(r) == role {
				c.Next()
				return
			}
		}

		response.FromError(c, errForbidden)
		c.Abort()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}

// StaffOrAdmin guards the back-office routes shared by both roles.
func StaffOrAdmin() gin.HandlerFunc {
	return RequireRole(domain.RoleStaff, domain.RoleAdmin)
}
