package check

import (
	"github.com/juanesscobar/taskok/internal/auth"
	"github.com/juanesscobar/taskok/internal/middleware"
	"github.com/juanesscobar/taskok/internal/token"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, issuer *token.Issuer, authService auth.Service) {
	checks := r.Group("/check")
	checks.Use(middleware.AuthMiddleware(issuer))
	{
		checks.POST("/in", h.CheckIn)
		checks.POST("/out", h.CheckOut)
		checks.GET("/history", h.History)
		checks.GET("/all", auth.RequireRole(authService, auth.RoleAdmin), h.GetAll)
	}
}
