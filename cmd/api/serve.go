package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	docs "github.com/xyz-asif/goalpath/docs"
	"github.com/xyz-asif/goalpath/internal/config"
	"github.com/xyz-asif/goalpath/internal/middleware"
	"github.com/xyz-asif/goalpath/internal/pkg/logger"
	"github.com/xyz-asif/goalpath/internal/pkg/ratelimit"
	"github.com/xyz-asif/goalpath/internal/routes"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := openStorage(ctx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer store.close(context.Background())

	files, err := openFileStore(cfg)
	if err != nil {
		return err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	log := logger.Default()

	router, err := newRouter(cfg, log)
	if err != nil {
		return err
	}

	router.GET(
		"/swagger/*any",
		ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("/swagger/doc.json"),
			ginSwagger.DeepLinking(true),
			ginSwagger.DefaultModelsExpandDepth(-1),
			ginSwagger.DocExpansion("none"),
		),
	)

	var loginLimiter *ratelimit.RateLimiter
	if cfg.LoginRateLimit > 0 {
		loginLimiter = ratelimit.New(cfg.LoginRateLimit, time.Minute)
		cleanupCtx, stopCleanup := context.WithCancel(context.Background())
		defer stopCleanup()
		loginLimiter.StartCleanup(cleanupCtx, 5*time.Minute)
	}

	routes.Setup(router, routes.Deps{
		Goals:          store.goals,
		Users:          store.users,
		Files:          files,
		Logger:         log,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		Ping:           store.ping,
		LoginLimiter:   loginLimiter,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting on port %s (storage=%s, files=%s)", cfg.Port, cfg.StorageDriver, cfg.FileStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("Server exited")
	return nil
}

// newRouter builds the engine with the global middleware chain. Client IPs
// come from X-Forwarded-For only when the peer is a configured proxy.
func newRouter(cfg *config.Config, log *logger.Logger) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS(cfg.FrontendURL))
	return router, nil
}
