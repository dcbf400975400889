package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/sirupsen/logrus"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/cluster"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/config"
	v1 "github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/handler/http/v1"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/hub"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/repository"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/service"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/webhook"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/pkg/logger"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/pkg/postgres"
	redisclient "github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/pkg/redis"

	_ "github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title SOS Dispatch API
// @version 1.0
// @description Real-time SOS dispatch and crime hotspot alerting service.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Webhook queue: publisher on the service side, worker draining it.
	events := webhook.NewRedisEventPublisher(redisClient)
	webhookWorker := webhook.NewWorker(redisClient, log, cfg)
	webhookWorker.Start(ctx)

	// Repositories
	incidentRepo := repository.NewIncidentRepository(dbpool)
	reportRepo := repository.NewReportRepository(dbpool)
	hotspotRepo := repository.NewHotspotRepository(dbpool, redisClient)
	locationCheckRepo := repository.NewLocationCheckRepository(dbpool)

	// Realtime session hub
	sessions := hub.New(log)

	// Services
	runner := cluster.NewRunner(cfg.HotspotModelCmd, cfg.HotspotModelTimeout, log)
	hotspotService := service.NewHotspotService(hotspotRepo, reportRepo, runner, log, cfg)
	dispatchService := service.NewDispatchService(incidentRepo, reportRepo, sessions, events, log, cfg)
	geofenceService := service.NewGeofenceService(hotspotService, locationCheckRepo, sessions, events, log, cfg)

	// A responder dropping mid-incident returns their incidents to the pool.
	sessions.SetDisconnectHook(func(role hub.Role, subjectID string) {
		if role == hub.RoleResponder {
			dispatchService.HandleResponderDisconnect(subjectID)
		}
	})

	handler := v1.NewHandler(dispatchService, hotspotService, geofenceService, sessions, log, cfg)

	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterPublicRoutes(api)

	authed := api.Group("")
	authed.Use(v1.APIKeyAuthMiddleware(cfg, log))
	handler.RegisterRoutes(authed)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
