package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/agence-judiciaire/aje-backend/api/controllers"
	"github.com/agence-judiciaire/aje-backend/api/routes"
	"github.com/agence-judiciaire/aje-backend/internal/analytics"
	"github.com/agence-judiciaire/aje-backend/internal/audit"
	"github.com/agence-judiciaire/aje-backend/internal/auth"
	"github.com/agence-judiciaire/aje-backend/internal/content"
	"github.com/agence-judiciaire/aje-backend/internal/emplois"
	"github.com/agence-judiciaire/aje-backend/internal/forms"
	"github.com/agence-judiciaire/aje-backend/internal/media"
	"github.com/agence-judiciaire/aje-backend/internal/settings"
	"github.com/agence-judiciaire/aje-backend/internal/users"
	"github.com/agence-judiciaire/aje-backend/pkg/auth/session"
	"github.com/agence-judiciaire/aje-backend/pkg/config"
	"github.com/agence-judiciaire/aje-backend/pkg/db"
	"github.com/agence-judiciaire/aje-backend/pkg/logger"
	"github.com/agence-judiciaire/aje-backend/pkg/metrics"
	"github.com/agence-judiciaire/aje-backend/pkg/migrate"
	"github.com/agence-judiciaire/aje-backend/pkg/pubsub"
	"github.com/agence-judiciaire/aje-backend/pkg/redis"
	"github.com/agence-judiciaire/aje-backend/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	pubsubClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap pubsub", err)
		os.Exit(1)
	}
	defer func() {
		if err := pubsubClient.Close(); err != nil {
			logg.Error(ctx, "error closing pubsub client", err)
		}
	}()

	gcsClient, err := gcs.NewClient(ctx, cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap gcs", err)
		os.Exit(1)
	}
	defer func() {
		if err := gcsClient.Close(); err != nil {
			logg.Error(ctx, "error closing gcs client", err)
		}
	}()

	auditService, err := audit.NewService(audit.NewRepository(dbClient.DB()), pubsubClient.AuditPublisher(), logg)
	if err != nil {
		logg.Error(ctx, "failed to create audit service", err)
		os.Exit(1)
	}

	contentServices, err := content.NewServices(dbClient, auditService)
	if err != nil {
		logg.Error(ctx, "failed to create content services", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		RateLimiter:    redisClient,
		Audit:          auditService,
		JWTConfig:      cfg.JWT,
		RateLimits:     cfg.AuthRateLimit,
	})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	formsService, err := forms.NewService(forms.NewRepository(dbClient.DB()), redisClient, auditService)
	if err != nil {
		logg.Error(ctx, "failed to create forms service", err)
		os.Exit(1)
	}

	emploisService, err := emplois.NewService(emplois.NewRepository(dbClient.DB()), contentServices.OffresEmploi, auditService)
	if err != nil {
		logg.Error(ctx, "failed to create emplois service", err)
		os.Exit(1)
	}

	mediaService, err := media.NewService(media.NewRepository(dbClient.DB()), gcsClient, cfg.GCS, cfg.Media, cfg.FeatureFlags.GCSAccessMode)
	if err != nil {
		logg.Error(ctx, "failed to create media service", err)
		os.Exit(1)
	}

	settingsService, err := settings.NewService(settings.NewRepository(dbClient.DB()), auditService)
	if err != nil {
		logg.Error(ctx, "failed to create settings service", err)
		os.Exit(1)
	}

	analyticsService, err := analytics.NewService(dbClient.DB())
	if err != nil {
		logg.Error(ctx, "failed to create analytics service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Params{
		Config:      cfg,
		Logger:      logg,
		HTTPMetrics: metrics.NewHTTPMetrics(prometheus.DefaultRegisterer),
		DB:          dbClient,
		Redis:       redisClient,
		Sessions:    sessionManager,
		Content:     controllers.NewContentControllers(contentServices, logg),
		Auth:        authService,
		Forms:       formsService,
		Emplois:     emploisService,
		Media:       mediaService,
		Settings:    settingsService,
		Analytics:   analyticsService,
		Audit:       auditService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	runCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(runCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(runCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(runCtx, "shutting down api server")
		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(runCtx, "graceful shutdown failed", err)
		}
	}
}
