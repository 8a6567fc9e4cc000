package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	ginhandler "user-service/internal/adapter/gin/handler"
	"user-service/internal/adapter/gin/middleware"
	ginrouter "user-service/internal/adapter/gin/router"
)

// SetupHTTPServer creates and configures the Gin REST API server
func SetupHTTPServer(
	handler *ginhandler.UserHandler,
	rateLimiter *middleware.RateLimiter,
	addr string,
	l *zap.Logger,
) *http.Server {
	router := ginrouter.SetupRouter(handler, rateLimiter, l)

	l.Info("REST API configured", zap.String("address", addr))

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
