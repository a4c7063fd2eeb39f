package response

import (
	"log/slog"
	"net/http"

	"carrental/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// Paged wraps a list payload with its paging info.
func Paged(c *gin.Context, items any, total int64, page, limit int) {
	Success(c, http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// StatusFor maps an error kind to its HTTP status.
// Conflict and InvalidState are client errors reported as 400.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindConflict, apperr.KindInvalidState:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes the error envelope for err. Unclassified errors are logged
// and reported with a generic message.
func FromError(c *gin.Context, err error) {
	if e, ok := apperr.As(err); ok && e.Kind != apperr.KindInternal {
		if len(e.Details) > 0 {
			ErrorWithDetails(c, StatusFor(e.Kind), e.Code, e.Message, e.Details)
			return
		}
		Error(c, StatusFor(e.Kind), e.Code, e.Message)
		return
	}

	_ = c.Error(err)
	slog.ErrorContext(c.Request.Context(), "request failed",
		"request_id", c.GetString("request_id"),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)
	Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}

// BadRequest is the common reply for unparsable bodies and query strings.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, "VALIDATION_ERROR", message)
}
