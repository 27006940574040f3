package repository

import (
	"context"

	"github.com/vytor/xo101/internal/models"
)

// SettingsRepository is durable storage for named string values: the learner's
// progress slots.
type SettingsRepository interface {
	// GetAll returns the stored values for keys; missing keys are absent
	// from the map.
	GetAll(ctx context.Context, keys []string) (map[string]string, error)
	// SetMany writes all values atomically.
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

// AttemptRepository handles the answered-puzzle history.
type AttemptRepository interface {
	Insert(ctx context.Context, attempt models.Attempt) error
	Recent(ctx context.Context, limit int) ([]models.Attempt, error)
	Stats(ctx context.Context) (*models.AttemptStats, error)
	DeleteAll(ctx context.Context) error
}
