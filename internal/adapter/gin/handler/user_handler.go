package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-rest-service/internal/config"
	"user-rest-service/internal/usecase/user"
	"user-rest-service/pkg/pagination"
	"user-rest-service/pkg/response"
)

// UserHandler handles HTTP requests for user operations. Validation failures
// are rejected at this boundary with a fail envelope; service errors are
// attached to the context for the centralized error middleware.
type UserHandler struct {
	uc     user.Usecase
	log    *zap.Logger
	paging config.PaginationConfig
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger, paging config.PaginationConfig) *UserHandler {
	return &UserHandler{
		uc:     uc,
		log:    log,
		paging: paging,
	}
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.Success(toResponses(users), "Users retrieved successfully"))
}

// ListUsersPaginated handles GET /users/paginated
func (h *UserHandler) ListUsersPaginated(c *gin.Context) {
	params := pagination.ComputeParams(
		c.Query("page"), c.Query("limit"),
		h.paging.DefaultLimit, h.paging.MaxLimit,
	)

	users, total, err := h.uc.ListUsersPage(c.Request.Context(), params)
	if err != nil {
		_ = c.Error(err)
		return
	}

	meta := pagination.BuildMeta(params.Page, params.Limit, total)
	links := pagination.BuildLinks(
		baseURL(c)+"/users", "/paginated", c.Request.URL.Query(),
		params.Page, params.Limit, total, false,
	)

	c.JSON(http.StatusOK, response.Paginated(toResponses(users), meta, links, "Users retrieved successfully"))
}

// ListUsersPathPaginated handles GET /users/page/:page/limit/:limit, the
// path-segment flavor of pagination. Links are emitted in the same style.
func (h *UserHandler) ListUsersPathPaginated(c *gin.Context) {
	params := pagination.ComputeParams(
		c.Param("page"), c.Param("limit"),
		h.paging.DefaultLimit, h.paging.MaxLimit,
	)

	users, total, err := h.uc.ListUsersPage(c.Request.Context(), params)
	if err != nil {
		_ = c.Error(err)
		return
	}

	meta := pagination.BuildMeta(params.Page, params.Limit, total)
	links := pagination.BuildLinks(
		baseURL(c)+"/users", "", nil,
		params.Page, params.Limit, total, true,
	)

	c.JSON(http.StatusOK, response.Paginated(toResponses(users), meta, links, "Users retrieved successfully"))
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	u, err := h.uc.GetUser(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.Success(toResponse(u), "User retrieved successfully"))
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	payload, ok := h.bindPayload(c)
	if !ok {
		return
	}

	if errs := createUserSchema.Validate(payload); errs != nil {
		h.log.Warn("create user validation failed", zap.Int("violations", len(errs)))
		c.JSON(http.StatusBadRequest, response.Fail("Validation failed", errs))
		return
	}

	in := user.CreateUserInput{
		Name:     stringField(payload, "name"),
		Email:    stringField(payload, "email"),
		Password: stringField(payload, "password"),
	}

	created, err := h.uc.CreateUser(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(toResponse(created), "User created successfully"))
}

// UpdateUser handles PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	payload, ok := h.bindPayload(c)
	if !ok {
		return
	}

	if errs := updateUserSchema.Validate(payload); errs != nil {
		h.log.Warn("update user validation failed", zap.Int64("id", id), zap.Int("violations", len(errs)))
		c.JSON(http.StatusBadRequest, response.Fail("Validation failed", errs))
		return
	}

	in := user.UpdateUserInput{
		Name:     optionalStringField(payload, "name"),
		Email:    optionalStringField(payload, "email"),
		Password: optionalStringField(payload, "password"),
	}

	updated, err := h.uc.UpdateUser(c.Request.Context(), id, in)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.Success(toResponse(updated), "User updated successfully"))
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	if err := h.uc.DeleteUser(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}, "User deleted successfully"))
}

// userID validates the :id path parameter and rejects malformed values with
// a fail envelope before the service is reached.
func (h *UserHandler) userID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")

	if errs := userParamsSchema.Validate(map[string]any{"id": raw}); errs != nil {
		h.log.Warn("invalid user id", zap.String("id", raw))
		c.JSON(http.StatusBadRequest, response.Fail("Validation failed", errs))
		return 0, false
	}

	id, _ := strconv.ParseInt(raw, 10, 64)
	return id, true
}

// bindPayload decodes the request body into a raw map so schema validation
// can see which fields were actually provided.
func (h *UserHandler) bindPayload(c *gin.Context) (map[string]any, bool) {
	payload := map[string]any{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.log.Warn("malformed request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, response.Fail("Invalid JSON payload", nil))
		return nil, false
	}
	return payload, true
}

// baseURL reconstructs the requesting URL's origin for pagination links.
func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

func stringField(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

func optionalStringField(payload map[string]any, key string) *string {
	if v, ok := payload[key].(string); ok {
		return &v
	}
	return nil
}

func toResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

func toResponses(users []user.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = toResponse(&users[i])
	}
	return out
}
