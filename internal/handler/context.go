package handler

import (
	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// actorFrom builds the acting admin from the JWT claims stored on the context
func actorFrom(c *gin.Context) domain.Actor {
	userID, _ := middleware.GetUserID(c)
	email, _ := middleware.GetEmail(c)
	role, _ := middleware.GetRole(c)
	return domain.Actor{
		UserID:    userID,
		Email:     email,
		Role:      role,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
