package jobs

import (
	"context"

	"github.com/vytor/xo101/internal/models"
)

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueAttempt(attempt models.Attempt) error
	// ClearAttempts empties the attempt history. Attempts enqueued before the
	// call are not recorded afterwards.
	ClearAttempts(ctx context.Context) error
}
