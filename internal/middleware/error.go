package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "painel/internal/errors"
	"painel/internal/logger"
)

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into JSON error responses, using the last error recorded.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		AbortWithError(c, c.Errors.Last().Err)
	}
}

// AbortWithError writes err as `{"error":{"code","message"}}` and aborts the
// chain. AppErrors keep their status, code, and message; anything else is
// logged and reported as a generic internal error. Storage write failures
// are logged at warn level since the request can be retried.
func AbortWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"request_id", RequestID(c),
		)
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil {
		log := logger.Get().With(
			"code", appErr.Code,
			"internal", appErr.Internal.Error(),
			"path", c.Request.URL.Path,
			"request_id", RequestID(c),
		)
		if appErr.StatusCode == http.StatusServiceUnavailable {
			log.Warnw("storage unavailable")
		} else {
			log.Errorw("app error")
		}
	}

	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
