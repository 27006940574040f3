package jobs

import (
	"context"

	"github.com/vytor/xo101/internal/models"
	"github.com/vytor/xo101/internal/repository"
	"github.com/vytor/xo101/internal/worker"
)

// WorkerQueue implements JobQueue on top of a worker pool.
type WorkerQueue struct {
	pool        *worker.Pool
	attemptRepo repository.AttemptRepository
	gate        worker.HistoryGate
}

func NewWorkerQueue(pool *worker.Pool, attemptRepo repository.AttemptRepository) JobQueue {
	return &WorkerQueue{pool: pool, attemptRepo: attemptRepo}
}

func (q *WorkerQueue) EnqueueAttempt(attempt models.Attempt) error {
	return q.pool.Submit(&worker.RecordAttemptJob{
		Repo:    q.attemptRepo,
		Attempt: attempt,
		Gate:    &q.gate,
		Epoch:   q.gate.Epoch(),
	})
}

func (q *WorkerQueue) ClearAttempts(ctx context.Context) error {
	return q.gate.Clear(func() error { return q.attemptRepo.DeleteAll(ctx) })
}

// InlineQueue runs jobs on the caller's goroutine. Used by the CLI, which
// exits right after each command.
type InlineQueue struct {
	ctx         context.Context
	attemptRepo repository.AttemptRepository
}

func NewInlineQueue(ctx context.Context, attemptRepo repository.AttemptRepository) JobQueue {
	return &InlineQueue{ctx: ctx, attemptRepo: attemptRepo}
}

func (q *InlineQueue) EnqueueAttempt(attempt models.Attempt) error {
	job := &worker.RecordAttemptJob{Repo: q.attemptRepo, Attempt: attempt}
	return job.Run(q.ctx)
}

func (q *InlineQueue) ClearAttempts(ctx context.Context) error {
	return q.attemptRepo.DeleteAll(ctx)
}
