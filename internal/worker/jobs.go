package worker

import (
	"context"
	"sync"

	"github.com/vytor/xo101/internal/logger"
	"github.com/vytor/xo101/internal/models"
	"github.com/vytor/xo101/internal/repository"
)

// HistoryGate orders attempt inserts against clears of the whole history.
// Each clear starts a new epoch; an attempt queued in an earlier epoch is
// dropped when it finally runs.
type HistoryGate struct {
	mu    sync.Mutex
	epoch uint64
}

func (g *HistoryGate) Epoch() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.epoch
}

// Clear starts a new epoch and runs clear while no insert is in flight.
func (g *HistoryGate) Clear(clear func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.epoch++
	return clear()
}

// Run calls fn unless the history was cleared after epoch. ran reports
// whether fn was called.
func (g *HistoryGate) Run(epoch uint64, fn func() error) (ran bool, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.epoch != epoch {
		return false, nil
	}
	return true, fn()
}

// RecordAttemptJob appends one answered puzzle to the attempt history.
// With a Gate set, the insert is skipped if the history was cleared after
// Epoch.
type RecordAttemptJob struct {
	Repo    repository.AttemptRepository
	Attempt models.Attempt
	Gate    *HistoryGate
	Epoch   uint64
}

func (j *RecordAttemptJob) Name() string { return "record_attempt" }

func (j *RecordAttemptJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"attempt_id": j.Attempt.ID,
		"puzzle_id":  j.Attempt.PuzzleID,
	})
	insert := func() error { return j.Repo.Insert(ctx, j.Attempt) }

	ran, err := true, error(nil)
	if j.Gate != nil {
		ran, err = j.Gate.Run(j.Epoch, insert)
	} else {
		err = insert()
	}
	if err != nil {
		log.Error("failed to record attempt: %v", err)
		return err
	}
	if !ran {
		log.Debug("attempt dropped: history cleared since it was queued")
		return nil
	}
	log.Debug("attempt recorded")
	return nil
}
