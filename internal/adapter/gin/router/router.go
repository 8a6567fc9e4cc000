package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-service/internal/adapter/gin/handler"
	"user-service/internal/adapter/gin/middleware"
)

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	rateLimiter *middleware.RateLimiter,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.RateLimit(rateLimiter))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "user-service",
		})
	})

	// User resource, rooted at /user as the API contract fixes it.
	// The static /user/query segment takes precedence over /user/:id.
	users := router.Group("/user")
	{
		users.GET("", userHandler.ListUsers)
		users.GET("/query", userHandler.GetUsersByPriority)
		users.GET("/:id", userHandler.GetUser)
		users.POST("", userHandler.SaveUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	return router
}
