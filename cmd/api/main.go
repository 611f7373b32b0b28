package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"climate_station/internal/config"
	"climate_station/internal/edge"
	"climate_station/internal/handlers"
	"climate_station/internal/logger"
	"climate_station/internal/metrics"
	"climate_station/internal/repository"
	"climate_station/internal/repository/db"
	"climate_station/internal/server"
	"climate_station/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// load config.yml (+ .env, CLIMATE_* overrides)
	cfg, err := config.Load("configs", ".")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)

	// open DB
	sqlDB, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, service.AuthOptions{
		SigningKey: cfg.Auth.SigningKey,
		TokenTTL:   cfg.Auth.TokenTTL,
	})
	apiHandler := handlers.NewHandler(services, log, handlers.Options{AuthEnabled: cfg.Auth.Enabled})

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Edge.Enabled {
		startEdge(ctx, cfg, repos, log)
	}

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func openDB(cfg config.Config, log *logger.Logger) (*sql.DB, error) {
	if cfg.DBPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "climate.db")
		cfg.DBPath = "climate.db"
	}
	return db.InitDB(cfg.DBPath)
}

// startEdge opens the serial port (or simulator) and runs the edge loop in the background.
func startEdge(ctx context.Context, cfg config.Config, repos *repository.Repository, log *logger.Logger) {
	gauges, err := metrics.New(cfg.Metrics.StatsdAddr, cfg.Metrics.Namespace, cfg.Metrics.Tags, log)
	if err != nil {
		log.Warnw("failed to create statsd client; metrics disabled", "err", err)
		gauges = metrics.Nop{}
	}

	port, err := edge.Open(ctx, edge.PortConfig{
		Device:   cfg.Edge.Device,
		Baud:     cfg.Edge.Baud,
		Simulate: cfg.Edge.Simulate,
		SimTick:  cfg.Edge.SimulateTick,
		SimSeed:  uint64(time.Now().UnixNano()),
	})
	if err != nil {
		log.Errorw("edge disabled: cannot open port", "device", cfg.Edge.Device, "err", err)
		return
	}
	log.Infow("edge port opened", "device", cfg.Edge.Device, "baud", cfg.Edge.Baud, "simulate", cfg.Edge.Simulate)

	ctrl := edge.NewController(edge.Store{
		Settings: repos.Settings,
		Readings: repos.Readings,
		Events:   repos.Events,
	}, gauges, log, cfg.Edge.ThresholdRefresh)

	go func() {
		if err := ctrl.Run(ctx, port); err != nil && !errors.Is(err, context.Canceled) {
			log.Errorw("edge loop stopped", "err", err)
		}
	}()
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "5000"
		}
		log.Infow("device api listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
