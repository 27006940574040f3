package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/vytor/xo101/internal/app"
	"github.com/vytor/xo101/internal/config"
	"github.com/vytor/xo101/internal/jobs"
	"github.com/vytor/xo101/internal/logger"
	"github.com/vytor/xo101/internal/services"
)

var rootCmd = &cobra.Command{
	Use:          "xo101",
	Short:        "Adaptive football situation puzzles",
	Long:         "xo101 asks run-or-pass and coverage questions, adapts to your rating and shows how NFL teams actually played each situation.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DB_PATH)")
	rootCmd.PersistentFlags().String("puzzles", "", "Puzzle file, .json or .yaml (overrides PUZZLES_PATH)")
	rootCmd.PersistentFlags().String("analytics", "", "Analytics file, .json or .yaml (overrides ANALYTICS_PATH)")
	rootCmd.PersistentFlags().String("log-level", "", "DEBUG, INFO, WARN or ERROR (overrides LOG_LEVEL)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
}

// session is what every subcommand works with.
type session struct {
	app   *app.App
	quiz  services.QuizService
	stats services.StatsService
}

func (s *session) Close() error {
	return s.app.Close()
}

// resolveConfig layers command line flags over the environment.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Load()
	if os.Getenv("LOG_LEVEL") == "" {
		cfg.LogLevel = "WARN"
	}
	flags := map[string]*string{
		"db":        &cfg.DBPath,
		"puzzles":   &cfg.PuzzlesPath,
		"analytics": &cfg.AnalyticsPath,
		"log-level": &cfg.LogLevel,
	}
	for name, target := range flags {
		if v, _ := cmd.Flags().GetString(name); v != "" {
			*target = v
		}
	}
	return cfg, cfg.Validate()
}

func openSession(cmd *cobra.Command) (*session, context.Context, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	log := logger.New(
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
	)
	logger.SetDefault(log)
	ctx := logger.NewContext(cmd.Context(), log)

	a, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return &session{
		app:   a,
		quiz:  services.NewQuizService(a.Engine, a.Attempts, jobs.NewInlineQueue(ctx, a.Attempts), a.Metrics),
		stats: services.NewStatsService(a.Attempts),
	}, ctx, nil
}
