package services

import (
	"context"

	"github.com/vytor/xo101/internal/errors"
	"github.com/vytor/xo101/internal/logger"
	"github.com/vytor/xo101/internal/models"
	"github.com/vytor/xo101/internal/repository"
)

const (
	defaultAttemptLimit = 20
	maxAttemptLimit     = 200
)

// StatsService handles attempt history queries
type StatsService interface {
	GetAttemptStats(ctx context.Context) (*models.AttemptStats, error)
	GetRecentAttempts(ctx context.Context, limit int) ([]models.Attempt, error)
}

type statsService struct {
	attemptRepo repository.AttemptRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(attemptRepo repository.AttemptRepository) StatsService {
	return &statsService{attemptRepo: attemptRepo}
}

func (s *statsService) GetAttemptStats(ctx context.Context) (*models.AttemptStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting attempt stats")

	stats, err := s.attemptRepo.Stats(ctx)
	if err != nil {
		log.Error("failed to get attempt stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

// GetRecentAttempts returns the newest attempts first. A zero limit means
// the default page size.
func (s *statsService) GetRecentAttempts(ctx context.Context, limit int) ([]models.Attempt, error) {
	log := logger.FromContext(ctx)

	if limit == 0 {
		limit = defaultAttemptLimit
	}
	if limit < 0 || limit > maxAttemptLimit {
		return nil, errors.NewValidationError("limit", "must be between 1 and 200")
	}
	log.Debug("getting recent attempts: limit=%d", limit)

	attempts, err := s.attemptRepo.Recent(ctx, limit)
	if err != nil {
		log.Error("failed to get recent attempts: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if attempts == nil {
		attempts = []models.Attempt{}
	}
	return attempts, nil
}
