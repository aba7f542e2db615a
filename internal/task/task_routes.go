package task

import (
	"github.com/juanesscobar/taskok/internal/middleware"
	"github.com/juanesscobar/taskok/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, issuer *token.Issuer, rdb *redis.Client) {
	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware(issuer))
	{
		tasks.GET("", h.List)
		tasks.GET("/summary", h.Summary)
		tasks.GET("/:id", h.GetByID)
		tasks.POST("", middleware.Idempotency(rdb), h.Create)
		tasks.PUT("/:id", h.Update)
		tasks.PATCH("/:id", h.Update)
		tasks.PATCH("/:id/status", h.UpdateStatus)
		tasks.DELETE("/:id", h.Delete)
	}
}
