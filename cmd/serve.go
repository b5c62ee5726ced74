package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	config "field-service.com/field-service/internal/configs"
	httpapi "field-service.com/field-service/internal/http"
	middleware "field-service.com/field-service/internal/http/middlewares"
	repository "field-service.com/field-service/internal/repositories"
	"field-service.com/field-service/internal/services"
	"field-service.com/field-service/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the field-service HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logrus.New()
		log.SetFormatter(&logrus.JSONFormatter{})

		if err := godotenv.Load(); err != nil {
			log.Info(".env file not found, using environment variables")
		}

		cfg := config.Load()

		database := config.NewDatabaseClient(cfg.DatabaseDSN)
		storageClient := config.NewStorageClient(cfg)

		taskRepo := repository.NewTaskRepository(database)
		geoRepo := repository.NewGeoLocationRepository(database)
		activityRepo := repository.NewActivityRepository(database)
		paymentRepo := repository.NewPaymentRepository(database)
		attachmentRepo := repository.NewAttachmentRepository(database)
		userRepo := repository.NewUserRepository(database)

		uploader := storage.NewUploader(
			storageClient,
			attachmentRepo,
			cfg.StorageProvider,
			cfg.MaxUploadFiles,
			cfg.MaxUploadSizeBytes,
			cfg.AllowedMimeTypes,
			log,
		)

		eventService := services.NewTaskEventService(
			database,
			taskRepo,
			geoRepo,
			activityRepo,
			paymentRepo,
			userRepo,
			uploader,
			cfg.GPSWarnDistanceMeters,
			log,
		)
		activityService := services.NewActivityService(taskRepo, activityRepo, userRepo, uploader, log)
		taskService := services.NewTaskService(database, taskRepo, geoRepo)

		rateLimiter := middleware.RateLimiter(cfg.RateLimit, time.Minute)
		if cfg.RedisAddr != "" {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
			rateLimiter = middleware.RedisRateLimiter(redisClient, cfg.RateLimit, time.Minute)
		}

		e := echo.New()
		e.HideBanner = true

		handler := httpapi.NewHandler(eventService, activityService, taskService)
		httpapi.Register(e, handler, rateLimiter)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			log.WithField("addr", cfg.AppURL).Info("HTTP server listening")
			if err := e.Start(cfg.AppURL); err != nil {
				log.WithError(err).Info("server stopped")
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		log.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
