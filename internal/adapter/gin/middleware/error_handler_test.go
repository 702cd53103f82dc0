package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	apperrors "user-rest-service/pkg/errors"
)

func serveWithError(t *testing.T, env string, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ErrorHandler(zaptest.NewLogger(t), env))
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(err)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))
	return w
}

func TestErrorHandler(t *testing.T) {
	t.Run("validation error renders fail envelope", func(t *testing.T) {
		err := apperrors.NewValidationError("Validation failed", map[string][]string{
			"email": {"Invalid email format"},
		})
		w := serveWithError(t, "production", err)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body struct {
			Status string `json:"status"`
			Error  struct {
				Details map[string][]string `json:"details"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "fail", body.Status)
		assert.Equal(t, []string{"Invalid email format"}, body.Error.Details["email"])
	})

	t.Run("typed errors map to their status", func(t *testing.T) {
		cases := []struct {
			name string
			err  error
			code int
		}{
			{"not found", apperrors.ErrUserNotFound, http.StatusNotFound},
			{"conflict", apperrors.ErrEmailConflict, http.StatusConflict},
			{"bad input", apperrors.NewBadInputError("Name and email are required"), http.StatusBadRequest},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				w := serveWithError(t, "production", tc.err)
				assert.Equal(t, tc.code, w.Code)

				var body struct {
					Status string `json:"status"`
					Error  struct {
						Message string `json:"message"`
					} `json:"error"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, "error", body.Status)
				assert.Equal(t, tc.err.Error(), body.Error.Message)
			})
		}
	})

	t.Run("unknown error is generic in production", func(t *testing.T) {
		w := serveWithError(t, "production", errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Something went wrong!")
		assert.NotContains(t, w.Body.String(), "connection refused")
	})

	t.Run("unknown error is verbatim in development", func(t *testing.T) {
		w := serveWithError(t, "development", errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "connection refused")
	})

	t.Run("no error leaves the response alone", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.Use(ErrorHandler(zaptest.NewLogger(t), "production"))
		r.GET("/ok", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/ok", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	})
}
