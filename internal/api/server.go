package api

import (
	"context"

	"github.com/vytor/xo101/internal/metrics"
	"github.com/vytor/xo101/internal/services"
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	QuizService  services.QuizService
	StatsService services.StatsService
	Metrics      *metrics.Metrics
	// ReadyCheck reports whether backing storage is reachable. Optional.
	ReadyCheck func(context.Context) error
}
