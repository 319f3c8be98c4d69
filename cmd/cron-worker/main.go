package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/agence-judiciaire/aje-backend/internal/audit"
	"github.com/agence-judiciaire/aje-backend/internal/content"
	"github.com/agence-judiciaire/aje-backend/internal/cron"
	"github.com/agence-judiciaire/aje-backend/internal/emplois"
	"github.com/agence-judiciaire/aje-backend/internal/forms"
	"github.com/agence-judiciaire/aje-backend/pkg/config"
	"github.com/agence-judiciaire/aje-backend/pkg/db"
	"github.com/agence-judiciaire/aje-backend/pkg/instance"
	"github.com/agence-judiciaire/aje-backend/pkg/logger"
	"github.com/agence-judiciaire/aje-backend/pkg/metrics"
	"github.com/agence-judiciaire/aje-backend/pkg/migrate"
	"github.com/agence-judiciaire/aje-backend/pkg/pubsub"
	"github.com/agence-judiciaire/aje-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap pubsub", err)
		os.Exit(1)
	}
	defer func() {
		if err := pubsubClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing pubsub client", err)
		}
	}()

	auditService, err := audit.NewService(audit.NewRepository(dbClient.DB()), pubsubClient.AuditPublisher(), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create audit service", err)
		os.Exit(1)
	}

	contentServices, err := content.NewServices(dbClient, auditService)
	if err != nil {
		logg.Error(context.Background(), "failed to create content services", err)
		os.Exit(1)
	}

	emploisService, err := emplois.NewService(emplois.NewRepository(dbClient.DB()), contentServices.OffresEmploi, auditService)
	if err != nil {
		logg.Error(context.Background(), "failed to create emplois service", err)
		os.Exit(1)
	}

	formsService, err := forms.NewService(forms.NewRepository(dbClient.DB()), redisClient, auditService)
	if err != nil {
		logg.Error(context.Background(), "failed to create forms service", err)
		os.Exit(1)
	}

	expiredOffres, err := cron.NewExpiredOffresJob(cron.ExpiredOffresJobParams{
		Logger:  logg,
		Emplois: emploisService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create expired offres job", err)
		os.Exit(1)
	}

	intakeRetention, err := cron.NewIntakeRetentionJob(cron.IntakeRetentionJobParams{
		Logger:    logg,
		Forms:     formsService,
		Retention: cfg.Retention.IntakeRetention,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create intake retention job", err)
		os.Exit(1)
	}

	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey("cron-worker"), cfg.Cron.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(expiredOffres, intakeRetention),
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
		"instance":    instance.GetID(),
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}
