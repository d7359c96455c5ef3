package middleware

import (
	"errors"
	"go-portfolio/internal/delivery/http/response"
	"go-portfolio/pkg/apperror"
	"go-portfolio/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Log.Error("Request failed",
					"error", appErr.Err,
					"status", appErr.Code,
					"path", c.FullPath(),
					"request_id", c.GetString(response.RequestIDKey),
				)
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		// Never expose internal error details to clients
		logger.Log.Error("Internal server error", "error", err, "request_id", c.GetString(response.RequestIDKey))
		response.Error(c, http.StatusInternalServerError, apperror.Internal(err).Message)
	}
}
