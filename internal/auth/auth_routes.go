package auth

import (
	"github.com/juanesscobar/taskok/internal/middleware"
	"github.com/juanesscobar/taskok/internal/token"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, issuer *token.Issuer) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", middleware.RateLimitByIP(0.5, 5), handler.Register)
		auth.POST("/login", middleware.RateLimitByIP(0.5, 5), handler.Login)
		auth.GET("/me", middleware.AuthMiddleware(issuer), middleware.RateLimitByUser(2, 5), handler.Me)
		auth.POST("/logout", middleware.AuthMiddleware(issuer), handler.Logout)
	}
}
