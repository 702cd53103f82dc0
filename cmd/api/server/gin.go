package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	ginhandler "user-rest-service/internal/adapter/gin/handler"
	ginrouter "user-rest-service/internal/adapter/gin/router"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(handler *ginhandler.UserHandler, addr, env string, l *zap.Logger) *http.Server {
	router := ginrouter.SetupRouter(handler, l, env)

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
