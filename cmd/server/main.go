package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/xo101/internal/api"
	"github.com/vytor/xo101/internal/app"
	"github.com/vytor/xo101/internal/config"
	"github.com/vytor/xo101/internal/jobs"
	"github.com/vytor/xo101/internal/logger"
	"github.com/vytor/xo101/internal/services"
	"github.com/vytor/xo101/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("xo101 Server Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("puzzles_path=%s", cfg.PuzzlesPath)
	log.Debug("analytics_path=%s", cfg.AnalyticsPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("attempt_worker_count=%d", cfg.AttemptWorkerCount)
	log.Debug("attempt_queue_size=%d", cfg.AttemptQueueSize)

	ctx, cancel := context.WithCancel(logger.NewContext(context.Background(), log))
	defer cancel()

	a, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		log.Error("failed to start: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		a.Close()
	}()

	attemptPool := worker.NewPool(cfg.AttemptWorkerCount, cfg.AttemptQueueSize)
	attemptPool.Observe(a.Metrics.ObserveJob)
	attemptPool.Start(ctx)

	srv := &api.Server{
		QuizService:  services.NewQuizService(a.Engine, a.Attempts, jobs.NewWorkerQueue(attemptPool, a.Attempts), a.Metrics),
		StatsService: services.NewStatsService(a.Attempts),
		Metrics:      a.Metrics,
		ReadyCheck:   a.DB.Ping,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Drain queued attempts before the database closes.
	log.Debug("stopping attempt pool")
	attemptPool.Stop()

	log.Info("===========================================")
	log.Info("xo101 Server Stopped")
	log.Info("===========================================")
}
