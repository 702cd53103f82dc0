package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "user-rest-service/pkg/errors"
	"user-rest-service/pkg/response"
)

// Recovery returns a Gin middleware that converts panics into a 500 error
// envelope. Panic details are logged, never sent to the client.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					response.Error("Something went wrong!", apperrors.CodeInternal, nil))
			}
		}()
		c.Next()
	}
}
