package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"carrental/internal/domain"
	"carrental/internal/pkg/apperr"
	"carrental/internal/pkg/jwt"
	"carrental/internal/pkg/response"
	"carrental/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

var errAccountDisabled = apperr.Unauthorized("ACCOUNT_DISABLED", "Account is disabled or no longer exists")

// UserLookup resolves the account a token was issued to.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// JWTAuth rejects requests without a valid bearer token or whose account is
// no longer active. The caller's id and current role are stored on the
// context, so a role change applies before the token expires.
func JWTAuth(tokens *jwt.Service, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Missing Authorization header")
			c.Abort()
			return
		}

		tokenStr, ok := bearerToken(h)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		u, err := activeUser(c.Request.Context(), users, claims.UserID)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		c.Set(ctxUserID, u.ID)
		c.Set(ctxRole, string(u.Role))
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(tokens *jwt.Service, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if claims, err := tokens.ValidateToken(tokenStr); err == nil {
				if u, err := activeUser(c.Request.Context(), users, claims.UserID); err == nil {
					c.Set(ctxUserID, u.ID)
					c.Set(ctxRole, string(u.Role))
				}
			}
		}
		c.Next()
	}
}

func activeUser(ctx context.Context, users UserLookup, id int64) (*domain.User, error) {
	u, err := users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errAccountDisabled
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, errAccountDisabled
	}
	return u, nil
}

func bearerToken(h string) (string, bool) {
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return tokenStr, tokenStr != ""
}

// ActorID returns the authenticated user id, or nil for anonymous requests.
func ActorID(c *gin.Context) *int64 {
	id := c.GetInt64(ctxUserID)
	if id == 0 {
		return nil
	}
	return &id
}
