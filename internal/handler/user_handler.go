package handler

import (
	"net/http"

	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/internal/service"
	"github.com/beout/beout-admin/pkg/middleware"
	"github.com/beout/beout-admin/pkg/response"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user administration HTTP requests
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles listing users
// GET /api/admin/users
func (h *UserHandler) List(c *gin.Context) {
	var query dto.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	users, total, err := h.userService.List(c.Request.Context(), &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(users, query.Page, query.Limit, total))
}

// GetByID returns a user
// GET /api/admin/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(user))
}

// UpdateRole handles role changes
// PATCH /api/admin/users/:id/role
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req dto.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeInvalidRole, msg))
		return
	}

	user, err := h.userService.UpdateRole(c.Request.Context(), actorFrom(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SkipAudit(c)
	c.JSON(http.StatusOK, response.Success(gin.H{
		"message": "User role updated successfully",
		"user":    user,
	}))
}

// Update handles profile edits
// PATCH /api/admin/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error("INVALID_UPDATE", msg))
		return
	}

	user, err := h.userService.Update(c.Request.Context(), actorFrom(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SkipAudit(c)
	c.JSON(http.StatusOK, response.Success(user))
}

// Delete handles user deletion
// DELETE /api/admin/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	middleware.SkipAudit(c)
	c.JSON(http.StatusOK, response.Success(gin.H{"message": "User deleted successfully"}))
}
