package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"climate_station/internal/client"
	"climate_station/internal/config"
	"climate_station/internal/dashboard"
	"climate_station/internal/logger"
	"climate_station/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load("configs", ".")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)

	api := client.New(cfg.Dashboard.APIBaseURL,
		client.WithHTTPClient(&http.Client{Timeout: cfg.Dashboard.Timeout}),
		client.WithToken(cfg.Dashboard.APIToken),
	)
	router, err := dashboard.New(api, log).InitRoutes()
	if err != nil {
		log.Fatalw("failed to load templates", "err", err)
	}

	srv := &server.Server{}
	go func() {
		log.Infow("dashboard listening", "port", cfg.Dashboard.Port, "api", cfg.Dashboard.APIBaseURL)
		if err := srv.Run(cfg.Dashboard.Port, router); err != nil {
			log.Fatalw("error starting dashboard", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Infow("shutting down dashboard...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("dashboard forced to shutdown", "err", err)
	}
}
