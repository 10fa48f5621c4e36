package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "painel/internal/errors"
)

// APIKeyHeader carries the shared key on mutating requests.
const APIKeyHeader = "X-API-Key"

// APIKeyMiddleware creates a Gin middleware that validates the X-API-Key
// header against apiKey. An empty apiKey disables the check, which is the
// default for a dashboard running on a single trusted machine.
func APIKeyMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}
		key := c.GetHeader(APIKeyHeader)
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			AbortWithError(c, apperrors.ErrUnauthorized)
			return
		}
		c.Next()
	}
}
