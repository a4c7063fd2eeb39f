package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamID parses a positive integer path parameter. On failure it writes a
// 400 envelope and returns false.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
		return 0, false
	}
	return id, true
}
