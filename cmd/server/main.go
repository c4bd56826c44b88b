package main

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fonction-publique/sigrh/modules"
	"github.com/fonction-publique/sigrh/pkg/application"
	"github.com/fonction-publique/sigrh/pkg/configuration"
	"github.com/fonction-publique/sigrh/pkg/eventbus"
	"github.com/fonction-publique/sigrh/pkg/httpapi"
	"github.com/fonction-publique/sigrh/pkg/logging"
	"github.com/fonction-publique/sigrh/pkg/metrics"
	"github.com/fonction-publique/sigrh/pkg/middleware"
	"github.com/fonction-publique/sigrh/pkg/server"
)

func main() {
	conf := configuration.Use()
	defer conf.Unload()
	logger := conf.Logger()
	ctx := context.Background()

	if conf.OpenTelemetry.Enabled {
		shutdown := logging.SetupTracing(ctx, conf.OpenTelemetry.ServiceName, conf.OpenTelemetry.TempoURL)
		defer shutdown()
	}

	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		logger.WithError(err).Fatal("failed to create database pool")
	}
	defer pool.Close()

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
		Bundle:   application.LoadBundle(),
	})
	if err := modules.Load(app); err != nil {
		logger.WithError(err).Fatal("failed to load modules")
	}
	if err := app.Migrations().Run(ctx); err != nil {
		logger.WithError(err).Fatal("failed to run migrations")
	}

	app.RegisterMiddleware(
		middleware.WithLogger(logger),
		middleware.WithPool(pool),
		middleware.ProvideActor(),
		middleware.ProvideLocalizer(app.Bundle()),
	)
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found", nil)
	})
	notAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})

	srv := server.NewHTTPServer(app, notFound, notAllowed)
	logger.WithField("address", conf.SocketAddress).Info("listening")
	if err := srv.Start(conf.SocketAddress); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
