package app

import (
	"database/sql"
	"net/http"

	"github.com/juanesscobar/taskok/internal/auth"
	"github.com/juanesscobar/taskok/internal/check"
	"github.com/juanesscobar/taskok/internal/config"
	"github.com/juanesscobar/taskok/internal/messaging/kafka"
	"github.com/juanesscobar/taskok/internal/middleware"
	"github.com/juanesscobar/taskok/internal/shared/response"
	"github.com/juanesscobar/taskok/internal/task"
	"github.com/juanesscobar/taskok/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	checkRepo := check.NewRepository(gormDB)
	taskRepo := task.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(authRepo, issuer)
	checkService := check.NewService(db, checkRepo)
	taskService := task.NewServiceWithOutbox(db, taskRepo, outboxRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.IsProduction())
	checkHandler := check.NewHandler(checkService)
	taskHandler := task.NewHandlerWithRedis(taskService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api")
	api.Use(middleware.RequestID(), middleware.ContextLogger(zap.L()))
	{
		api.GET("/health", func(c *gin.Context) {
			response.Success(c, http.StatusOK, gin.H{"status": "ok"})
		})

		auth.RegisterRoutes(api, authHandler, issuer)
		check.RegisterRoutes(api, checkHandler, issuer, authService)
		task.RegisterRoutes(api, taskHandler, issuer, rdb)
	}

	return nil
}
