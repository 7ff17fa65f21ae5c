package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"blog-api/internal/infra/adapter/persistence"
	"blog-api/internal/infra/db"
	workerPkg "blog-api/internal/infra/worker"
	"blog-api/internal/observability/logging"
	authSvc "blog-api/internal/service/auth"
	articleUC "blog-api/internal/usecase/article"
	"blog-api/pkg/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("worker exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load worker configuration (fail-open strategy)
	workerMetrics := workerPkg.NewWorkerMetrics(prometheus.DefaultRegisterer)
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		return fmt.Errorf("load worker configuration: %w", err)
	}
	logger.Info("worker configuration loaded",
		slog.String("purge_schedule", workerConfig.PurgeSchedule),
		slog.String("gauge_schedule", workerConfig.GaugeSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("job_timeout", workerConfig.JobTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	databaseURL, err := config.RequireEnv("DATABASE_URL")
	if err != nil {
		return err
	}
	database, dialect, err := db.Open(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	if err := db.MigrateUp(ctx, database, dialect); err != nil {
		return err
	}

	repos, err := persistence.New(dialect, database)
	if err != nil {
		return err
	}
	// the worker never issues tokens
	auth := authSvc.NewAuthService(repos.Users, repos.Sessions, nil)
	articles := &articleUC.Service{Repo: repos.Articles, Logger: logger}

	scheduler := workerPkg.NewScheduler(workerConfig.Location(), workerConfig.JobTimeout, workerMetrics, logger)
	jobs := []workerPkg.Job{
		workerPkg.PurgeSessionsJob(workerConfig.PurgeSchedule, auth, logger),
		workerPkg.RefreshArticleGaugesJob(workerConfig.GaugeSchedule, articles),
	}
	for _, job := range jobs {
		if err := scheduler.Add(job); err != nil {
			return err
		}
	}

	// gauges are meaningful from the first scrape
	_ = scheduler.RunOnce(ctx, jobs[1])

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger, pingCheck(database), prometheus.DefaultGatherer)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := healthServer.Start(gctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return scheduler.Run(gctx)
	})

	healthServer.SetReady(true)
	logger.Info("worker started", slog.Int("jobs", scheduler.Entries()), slog.String("timezone", workerConfig.Timezone))

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("worker stopped")
	return nil
}

func pingCheck(database *sql.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return database.PingContext(ctx)
	}
}
