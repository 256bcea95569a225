package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"userapp/internal/adapter/http/handler"
	"userapp/internal/core/telemetry"
	"userapp/pkg/config"
	"userapp/pkg/logging"
	"userapp/pkg/middlewares"
)

type HandlersConfig struct {
	UserHandler *handler.UserHandler
}

func SetupRouter(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *logging.LokiLogger) *gin.Engine {
	return SetupRouterWithConfig(handlers, metrics, logger, config.GetDefaultConfig())
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *logging.LokiLogger, cfg *config.AppConfig) *gin.Engine {
	router := gin.New()

	middlewares.SetupGinMiddleware(router, "userapp", metrics, logger, cfg)

	router.Use(gin.Recovery())
	router.Use(cors.Default())

	if handlers.UserHandler != nil {
		setupUserRoutes(router, handlers.UserHandler)
	}

	return router
}

func setupUserRoutes(router *gin.Engine, userHandler *handler.UserHandler) {
	users := router.Group("/users")
	{
		users.GET("", userHandler.ListUsers)
		users.POST("", userHandler.CreateUser)
		users.GET("/:id", userHandler.ShowUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}
}
