package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carrental/internal/domain"
	"carrental/internal/pkg/jwt"
	"carrental/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockUserLookup struct {
	mock.Mock
}

func (m *mockUserLookup) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func activeStaff(id int64) *domain.User {
	return &domain.User{ID: id, Username: "desk", Role: domain.RoleStaff, IsActive: true}
}

func protectedRouter(t *testing.T, tokens *jwt.Service, users UserLookup) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuth(tokens, users))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetInt64("user_id"),
			"role":    c.GetString("role"),
		})
	})
	return router
}

func get(router http.Handler, path, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := jwt.New("test-secret-123", time.Hour)
	validToken, _ := jwtService.GenerateToken(42, string(domain.RoleStaff))

	users := new(mockUserLookup)
	users.On("GetByID", mock.Anything, int64(42)).Return(activeStaff(42), nil)

	w := get(protectedRouter(t, jwtService, users), "/protected", "Bearer "+validToken)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":42,"role":"Staff"}`, w.Body.String())
	users.AssertExpectations(t)
}

func TestJWTAuth_RoleComesFromStoredAccount(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	token, _ := jwtService.GenerateToken(5, string(domain.RoleAdmin))

	users := new(mockUserLookup)
	users.On("GetByID", mock.Anything, int64(5)).Return(activeStaff(5), nil)

	w := get(protectedRouter(t, jwtService, users), "/protected", "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"Staff"`)
}

func TestJWTAuth_InactiveOrMissingAccount(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	token, _ := jwtService.GenerateToken(9, string(domain.RoleAdmin))

	tests := []struct {
		name string
		user *domain.User
		err  error
	}{
		{"deactivated", &domain.User{ID: 9, Role: domain.RoleAdmin, IsActive: false}, nil},
		{"deleted", nil, repository.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUserLookup)
			users.On("GetByID", mock.Anything, int64(9)).Return(tt.user, tt.err)

			w := get(protectedRouter(t, jwtService, users), "/protected", "Bearer "+token)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "ACCOUNT_DISABLED")
		})
	}
}

func TestJWTAuth_LookupFailure(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	token, _ := jwtService.GenerateToken(3, string(domain.RoleStaff))

	users := new(mockUserLookup)
	users.On("GetByID", mock.Anything, int64(3)).Return(nil, errors.New("connection reset"))

	w := get(protectedRouter(t, jwtService, users), "/protected", "Bearer "+token)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestJWTAuth_Rejections(t *testing.T) {
	foreign, _ := jwt.New("other-secret", time.Hour).GenerateToken(1, string(domain.RoleAdmin))

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"no header", "", "AUTH_HEADER_MISSING"},
		{"wrong scheme", "Basic dGVzdA==", "INVALID_AUTH_FORMAT"},
		{"garbage token", "Bearer invalid-jwt-here", "INVALID_TOKEN"},
		{"other secret", "Bearer " + foreign, "INVALID_TOKEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUserLookup)
			router := gin.New()
			router.Use(JWTAuth(jwt.New("secret", time.Hour), users))
			router.GET("/protected", func(c *gin.Context) {
				t.Fatal("This handler should not be reached")
			})

			w := get(router, "/protected", tt.header)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
			users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	token, _ := jwtService.GenerateToken(7, string(domain.RoleStaff))
	disabled, _ := jwtService.GenerateToken(8, string(domain.RoleStaff))

	users := new(mockUserLookup)
	users.On("GetByID", mock.Anything, int64(7)).Return(activeStaff(7), nil)
	users.On("GetByID", mock.Anything, int64(8)).Return(&domain.User{ID: 8, Role: domain.RoleStaff}, nil)

	router := gin.New()
	router.Use(OptionalAuth(jwtService, users))
	router.GET("/public", func(c *gin.Context) {
		if id := ActorID(c); id != nil {
			c.JSON(http.StatusOK, gin.H{"actor": *id})
			return
		}
		c.JSON(http.StatusOK, gin.H{"actor": nil})
	})

	w := get(router, "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"actor":null}`, w.Body.String())

	w = get(router, "/public", "Bearer "+token)
	assert.JSONEq(t, `{"actor":7}`, w.Body.String())

	w = get(router, "/public", "Bearer garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"actor":null}`, w.Body.String())

	w = get(router, "/public", "Bearer "+disabled)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"actor":null}`, w.Body.String())
}
