package handler

import (
	"net/http"

	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/internal/service"
	"github.com/beout/beout-admin/pkg/middleware"
	"github.com/beout/beout-admin/pkg/response"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles console sign-in HTTP requests
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles admin sign-in
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Profile returns the signed-in admin
// GET /user/profile, GET /api/admin/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	result, err := h.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}
