package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/goalpath/internal/features/goals"
	"github.com/xyz-asif/goalpath/internal/features/users"
	"github.com/xyz-asif/goalpath/internal/pkg/filestore"
	"github.com/xyz-asif/goalpath/internal/pkg/logger"
	"github.com/xyz-asif/goalpath/internal/pkg/ratelimit"
	"github.com/xyz-asif/goalpath/internal/pkg/response"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	Goals          goals.Repository
	Users          users.Repository
	Files          filestore.Store
	Logger         *logger.Logger
	MaxUploadBytes int64
	// Ping reports storage health for /health. Nil means always healthy.
	Ping func(ctx context.Context) error
	// LoginLimiter throttles POST /users/login per client IP. Nil disables it.
	LoginLimiter *ratelimit.RateLimiter
}

// Setup registers /health and the feature routes.
func Setup(router gin.IRouter, deps Deps) {
	router.GET("/health", healthHandler(deps.Ping))

	goals.RegisterRoutes(router, goals.NewService(deps.Goals, deps.Logger))
	var loginGuards []gin.HandlerFunc
	if deps.LoginLimiter != nil {
		loginGuards = append(loginGuards, ratelimit.Middleware(deps.LoginLimiter))
	}
	users.RegisterRoutes(router, users.NewService(deps.Users, deps.Files, deps.Logger), deps.MaxUploadBytes, loginGuards...)
}

func healthHandler(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		storage := "up"
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				_ = c.Error(err)
				response.ServiceUnavailable(c, "Storage unavailable", "STORAGE_DOWN")
				return
			}
		}

		response.Success(c, gin.H{
			"status":  "ok",
			"storage": storage,
			"time":    time.Now().Unix(),
		})
	}
}
