package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"user-rest-service/internal/adapter/db/postgres"
	"user-rest-service/internal/adapter/gin/handler"
	"user-rest-service/internal/adapter/gin/router"
	"user-rest-service/internal/config"
	usecase "user-rest-service/internal/usecase/user"
)

// setupAPI wires the full stack against an in-memory database.
func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&postgres.UserSchema{}))

	log := zaptest.NewLogger(t)
	repo := postgres.NewUserRepoPG(db, log)
	uc := usecase.New(repo, log)
	h := handler.NewUserHandler(uc, log, config.PaginationConfig{DefaultLimit: 10, MaxLimit: 100})

	gin.SetMode(gin.TestMode)
	return router.SetupRouter(h, log, "production")
}

type apiEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Details map[string][]string `json:"details"`
	} `json:"error"`
}

func request(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Host = "api.test"

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestUserLifecycle(t *testing.T) {
	r := setupAPI(t)

	// create
	w, env := request(t, r, "POST", "/users", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "User created successfully", env.Message)

	var created struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotZero(t, created.ID)
	assert.NotContains(t, string(env.Data), "password")

	// duplicate email is rejected by the store constraint
	w, env = request(t, r, "POST", "/users", gin.H{
		"name":     "Alice Again",
		"email":    "alice@example.com",
		"password": "secret2",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "error", env.Status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "User with this email already exists", env.Error.Message)

	// read back
	w, env = request(t, r, "GET", fmt.Sprintf("/users/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// unknown id
	w, env = request(t, r, "GET", "/users/99999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "User not found", env.Error.Message)

	// empty update payload
	w, env = request(t, r, "PUT", fmt.Sprintf("/users/%d", created.ID), gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "fail", env.Status)
	require.NotNil(t, env.Error)
	assert.Equal(t, []string{"At least one field must be provided for update"}, env.Error.Details[""])

	// partial update
	w, env = request(t, r, "PUT", fmt.Sprintf("/users/%d", created.ID), gin.H{"name": "Alicia"})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	// delete, then the record is gone
	w, _ = request(t, r, "DELETE", fmt.Sprintf("/users/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = request(t, r, "DELETE", fmt.Sprintf("/users/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaginationEndpoints(t *testing.T) {
	r := setupAPI(t)

	for i := 1; i <= 25; i++ {
		w, _ := request(t, r, "POST", "/users", gin.H{
			"name":     fmt.Sprintf("User %02d", i),
			"email":    fmt.Sprintf("user%02d@example.com", i),
			"password": "secret1",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	t.Run("query style", func(t *testing.T) {
		w, env := request(t, r, "GET", "/users/paginated?page=2&limit=10", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var data struct {
			Items []json.RawMessage `json:"items"`
			Meta  struct {
				CurrentPage int   `json:"currentPage"`
				TotalItems  int64 `json:"totalItems"`
				TotalPages  int   `json:"totalPages"`
				HasNextPage bool  `json:"hasNextPage"`
				HasPrevPage bool  `json:"hasPrevPage"`
			} `json:"meta"`
			Links struct {
				First string  `json:"first"`
				Last  string  `json:"last"`
				Next  *string `json:"next"`
				Prev  *string `json:"prev"`
			} `json:"links"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))

		assert.Len(t, data.Items, 10)
		assert.Equal(t, 2, data.Meta.CurrentPage)
		assert.Equal(t, int64(25), data.Meta.TotalItems)
		assert.Equal(t, 3, data.Meta.TotalPages)
		assert.True(t, data.Meta.HasNextPage)
		assert.True(t, data.Meta.HasPrevPage)

		assert.Equal(t, "http://api.test/users/paginated?limit=10&page=1", data.Links.First)
		assert.Equal(t, "http://api.test/users/paginated?limit=10&page=3", data.Links.Last)
		require.NotNil(t, data.Links.Next)
		require.NotNil(t, data.Links.Prev)
	})

	t.Run("path style", func(t *testing.T) {
		w, env := request(t, r, "GET", "/users/page/3/limit/10", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var data struct {
			Items []json.RawMessage `json:"items"`
			Links struct {
				First string  `json:"first"`
				Last  string  `json:"last"`
				Next  *string `json:"next"`
			} `json:"links"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))

		assert.Len(t, data.Items, 5)
		assert.Equal(t, "http://api.test/users/page/1/limit/10", data.Links.First)
		assert.Equal(t, "http://api.test/users/page/3/limit/10", data.Links.Last)
		assert.Nil(t, data.Links.Next)
	})

	t.Run("malformed params fall back to defaults", func(t *testing.T) {
		w, env := request(t, r, "GET", "/users/paginated?page=abc&limit=xyz", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var data struct {
			Meta struct {
				CurrentPage  int `json:"currentPage"`
				ItemsPerPage int `json:"itemsPerPage"`
			} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, 1, data.Meta.CurrentPage)
		assert.Equal(t, 10, data.Meta.ItemsPerPage)
	})
}

func TestHealthEndpoint(t *testing.T) {
	r := setupAPI(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
