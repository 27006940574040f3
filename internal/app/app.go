// Package app wires storage, content and the quiz engine for the server and
// the command line.
package app

import (
	"context"
	"fmt"

	"github.com/vytor/xo101/internal/config"
	"github.com/vytor/xo101/internal/content"
	"github.com/vytor/xo101/internal/db"
	"github.com/vytor/xo101/internal/logger"
	"github.com/vytor/xo101/internal/metrics"
	"github.com/vytor/xo101/internal/quiz"
	"github.com/vytor/xo101/internal/repository"
	"github.com/vytor/xo101/internal/repository/sqlite"
)

type App struct {
	Config   config.Config
	DB       *db.DB
	Settings repository.SettingsRepository
	Attempts repository.AttemptRepository
	Engine   *quiz.Engine
	Metrics  *metrics.Metrics
}

// Bootstrap opens the database, loads content and restores the learner's
// progress. Missing content is not an error; the session starts empty.
func Bootstrap(ctx context.Context, cfg config.Config, opts ...quiz.Option) (*App, error) {
	log := logger.FromContext(ctx).WithPrefix("app")

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	settings := sqlite.NewSettingsRepository(database.DB)
	attempts := sqlite.NewAttemptRepository(database.DB)

	c := content.NewLoader().LoadOrEmpty(ctx, cfg.PuzzlesPath, cfg.AnalyticsPath)
	state := quiz.LoadState(ctx, settings)
	engine := quiz.NewEngine(state, c, settings, opts...)

	log.Info("session ready: %d puzzles, %d analytics records, rating %d",
		engine.PuzzleCount(), engine.AnalyticsCount(), state.Rating)

	return &App{
		Config:   cfg,
		DB:       database,
		Settings: settings,
		Attempts: attempts,
		Engine:   engine,
		Metrics:  metrics.New(),
	}, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}
