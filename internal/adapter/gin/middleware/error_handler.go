package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "user-rest-service/pkg/errors"
	"user-rest-service/pkg/logger"
	"user-rest-service/pkg/response"
)

// ErrorHandler returns the centralized error-to-response mapper. Handlers
// attach service errors via c.Error and return; this middleware translates
// the typed application errors into status codes and envelopes. Anything
// untyped is an internal error: full detail in development, a generic
// message otherwise.
func ErrorHandler(log *zap.Logger, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		l := logger.WithContext(c.Request.Context(), log)

		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, response.Fail(validationErr.Message, validationErr.Details))
			return
		}

		var statuser apperrors.HTTPStatuser
		if errors.As(err, &statuser) && statuser.HTTPStatus() != http.StatusInternalServerError {
			c.JSON(statuser.HTTPStatus(), response.Error(err.Error(), statuser.ErrorCode(), nil))
			return
		}

		l.Error("unhandled error", zap.Error(err), zap.String("path", c.Request.URL.Path))

		message := "Something went wrong!"
		if env == "development" {
			message = err.Error()
		}
		c.JSON(http.StatusInternalServerError, response.Error(message, apperrors.CodeInternal, nil))
	}
}
