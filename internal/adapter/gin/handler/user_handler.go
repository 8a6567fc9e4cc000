package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "user-service/internal/domain/user"
	"user-service/internal/usecase/user"
	pkgerrors "user-service/pkg/errors"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// SaveUserRequest represents the HTTP request body for the upsert endpoint.
// All fields are optional: a missing id means create, missing data fields
// are persisted as null.
type SaveUserRequest struct {
	ID       int64   `json:"id"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Priority *int    `json:"priority"`
}

// UserResponse represents the HTTP response for user data.
// Nullable fields render as JSON null when absent.
type UserResponse struct {
	ID       int64   `json:"id"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Priority *int    `json:"priority"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func toResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Priority: u.Priority,
	}
}

// ListUsers handles GET /user
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context(), user.ListUsersRequest{})
	if err != nil {
		h.log.Error("ListUsers failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i := range resp.Users {
		users[i] = toResponse(&resp.Users[i])
	}

	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /user/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id})
	if err != nil {
		h.log.Error("GetUser failed", zap.Int64("id", id), zap.Error(err))
		h.handleError(c, err)
		return
	}

	if resp.User == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "user not found: id=" + strconv.FormatInt(id, 10),
		})
		return
	}

	c.JSON(http.StatusOK, toResponse(resp.User))
}

// GetUsersByPriority handles GET /user/query?priority=N
func (h *UserHandler) GetUsersByPriority(c *gin.Context) {
	priorityStr := c.Query("priority")
	priority, err := strconv.Atoi(priorityStr)
	if err != nil {
		h.log.Warn("Invalid priority", zap.String("priority", priorityStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_priority",
			Message: "priority must be a valid number",
		})
		return
	}

	resp, err := h.uc.ListUsersByPriority(c.Request.Context(), user.ListUsersByPriorityRequest{Priority: priority})
	if err != nil {
		h.log.Error("GetUsersByPriority failed", zap.Int("priority", priority), zap.Error(err))
		h.handleError(c, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i := range resp.Users {
		users[i] = toResponse(&resp.Users[i])
	}

	c.JSON(http.StatusOK, users)
}

// SaveUser handles POST /user. It responds 201 when a new row was created
// (id assigned by the store or inserted under the caller's id) and 200 when
// an existing row was fully overwritten.
func (h *UserHandler) SaveUser(c *gin.Context) {
	var req SaveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid save user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_body",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.uc.SaveUser(c.Request.Context(), user.SaveUserRequest{
		ID:       req.ID,
		Name:     req.Name,
		Email:    req.Email,
		Priority: req.Priority,
	})
	if err != nil {
		h.log.Error("SaveUser failed", zap.Int64("id", req.ID), zap.Error(err))
		h.handleError(c, err)
		return
	}

	status := http.StatusOK
	if resp.Outcome == domain.SaveOutcomeCreated {
		status = http.StatusCreated
	}
	c.JSON(status, toResponse(&resp.User))
}

// DeleteUser handles DELETE /user/:id. The confirmation is plain text
// embedding the id; removed, missing, and failed deletes get distinct
// status codes.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: id})
	if err != nil {
		h.log.Error("DeleteUser failed", zap.Int64("id", id), zap.Error(err))
		var statuser pkgerrors.HTTPStatuser
		if errors.As(err, &statuser) {
			c.String(statuser.HTTPStatus(), "User by id: %d request to delete failed", id)
			return
		}
		c.String(http.StatusInternalServerError, "User by id: %d request to delete failed", id)
		return
	}

	if resp.Outcome == domain.DeleteOutcomeNotFound {
		c.String(http.StatusNotFound, "User by id: %d was not found", id)
		return
	}

	c.String(http.StatusOK, "User by id: %d was deleted", id)
}

// parseID reads the :id path parameter, responding 400 on anything non-numeric.
func (h *UserHandler) parseID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.log.Warn("Invalid user ID", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "User ID must be a valid number",
		})
		return 0, false
	}
	return id, true
}

// handleError converts usecase errors to appropriate HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var statuser pkgerrors.HTTPStatuser
	if errors.As(err, &statuser) {
		status := statuser.HTTPStatus()
		errCode := "internal_error"
		switch status {
		case http.StatusNotFound:
			errCode = "not_found"
		case http.StatusBadRequest:
			errCode = "invalid_input"
		}
		c.JSON(status, ErrorResponse{
			Error:   errCode,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
