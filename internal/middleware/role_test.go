package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"carrental/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func roleRouter(role string, guard gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if role != "" {
			c.Set("role", role)
		}
		c.Next()
	}, guard)
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name  string
		role  string
		guard gin.HandlerFunc
		want  int
	}{
		{"admin on admin route", "Admin", AdminOnly(), http.StatusOK},
		{"staff on admin route", "Staff", AdminOnly(), http.StatusForbidden},
		{"staff on back-office", "Staff", StaffOrAdmin(), http.StatusOK},
		{"admin on back-office", "Admin", StaffOrAdmin(), http.StatusOK},
		{"no role", "", RequireRole(domain.RoleStaff), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			roleRouter(tt.role, tt.guard).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
