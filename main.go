package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/bisweshmaharana/blizz-share/internal/config"
	"github.com/bisweshmaharana/blizz-share/internal/features/shares"
	shares_cleanup "github.com/bisweshmaharana/blizz-share/internal/features/shares/cleanup"
	shares_download "github.com/bisweshmaharana/blizz-share/internal/features/shares/download"
	system_healthcheck "github.com/bisweshmaharana/blizz-share/internal/features/system/healthcheck"
	"github.com/bisweshmaharana/blizz-share/internal/storage"
	cache_utils "github.com/bisweshmaharana/blizz-share/internal/util/cache"
	"github.com/bisweshmaharana/blizz-share/internal/util/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	env := config.GetEnv()
	log := logger.GetLogger()

	if !env.GinIsDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	storage.Migrate(
		&shares.Share{},
		&shares.ShareFile{},
		&shares_download.DownloadTracking{},
		&shares_download.AccessRecord{},
	)

	cache_utils.TestCacheConnection()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go shares_cleanup.GetExpiredShareCleanupBackgroundService().Run(ctx)

	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api/v1")
	shares.GetShareController().RegisterRoutes(api)
	shares_download.GetDownloadTrackingController().RegisterRoutes(api)
	system_healthcheck.GetHealthcheckController().RegisterRoutes(api)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", env.Port),
		Handler: router,
	}

	go func() {
		log.Info("Starting server", "port", env.Port)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", "error", err)
	}
}
