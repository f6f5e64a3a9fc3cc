package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"userapi/docs"
	"userapi/internal/config"
	"userapi/internal/database"
	"userapi/internal/database/migration"
	handlers "userapi/internal/http/handler"
	"userapi/internal/http/middleware"
	"userapi/internal/logging"
	"userapi/internal/otel"
	"userapi/internal/repository"
)

// @title User API
// @version 1.0
// @BasePath /
func main() {
	boot := logging.Default()

	envFile := config.EnvFilePath()
	if err := config.LoadEnvFile(envFile); err != nil {
		boot.WithFields(logging.Fields{"error": err.Error(), "env_file": envFile}).Error("config_load_failed")
		os.Exit(1)
	}
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.WithError(err).Error("tracing_init_failed")
		os.Exit(1)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.WithFields(logging.Fields{"error": err.Error(), "driver": cfg.Database.Driver}).Error("db_connect_failed")
		os.Exit(1)
	}

	if err := migration.EnsureSchema(ctx, db, log); err != nil {
		_ = db.Close()
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.WithError(err).Error("metrics_init_failed")
		os.Exit(1)
	}

	// Swagger host for requests that carry no Host header.
	docs.SwaggerInfo.Host = cfg.AppHost

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	// RequestID first so every later middleware and handler can see it.
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(prom.Handler())
	app.Use(middleware.Logger(cfg.Location()))

	handlers.RegisterRoutes(app, handlers.Dependencies{
		Store:             database.NewSessions(db),
		NewUserRepository: repository.NewUserRepository,
		Metrics:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logging.Fields{"addr": addr, "db_driver": cfg.Database.Driver}).Info("server_started")
		errCh <- app.Listen(addr)
	}()

	exitCode := 0
	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Error("server_failed")
			exitCode = 1
		}
	case <-ctx.Done():
		log.WithFields(logging.Fields{"timeout_sec": cfg.ShutdownTimeoutSec}).Info("server_stopping")
		if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout()); err != nil {
			log.WithError(err).Error("server_shutdown_failed")
			exitCode = 1
		}
	}

	if err := db.Close(); err != nil {
		log.WithError(err).Error("db_close_failed")
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.WithError(err).Error("tracing_shutdown_failed")
	}

	log.Info("server_stopped")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
