package quiz

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/vytor/xo101/internal/logger"
	"github.com/vytor/xo101/internal/models"
	"github.com/vytor/xo101/internal/repository"
)

// Storage slots for the learner's progress.
const (
	KeyRating          = "xo101_rating"
	KeyStreak          = "xo101_streak"
	KeyCorrect         = "xo101_correct"
	KeyTotal           = "xo101_total"
	KeyCoverageCorrect = "xo101_coverage_correct"
	KeyCoverageTotal   = "xo101_coverage_total"
	KeyCompleted       = "xo101_completed_puzzles"
)

// StateKeys lists every slot that makes up a LearnerState.
var StateKeys = []string{
	KeyRating, KeyStreak, KeyCorrect, KeyTotal,
	KeyCoverageCorrect, KeyCoverageTotal, KeyCompleted,
}

// LoadState reads the persisted learner state. A slot that is missing or
// cannot be parsed falls back to its default; a failing store yields the
// default state. It never returns an error.
func LoadState(ctx context.Context, repo repository.SettingsRepository) models.LearnerState {
	log := logger.FromContext(ctx).WithPrefix("quiz")
	state := models.DefaultLearnerState()
	if repo == nil {
		return state
	}

	values, err := repo.GetAll(ctx, StateKeys)
	if err != nil {
		log.Error("failed to read learner state, starting fresh: %v", err)
		return state
	}

	if r, ok := readInt(values, KeyRating); ok && r >= models.RatingFloor {
		state.Rating = r
	}
	state.Streak = readCounter(values, KeyStreak)
	state.CorrectCount = readCounter(values, KeyCorrect)
	state.TotalCount = readCounter(values, KeyTotal)
	state.CoverageCorrect = readCounter(values, KeyCoverageCorrect)
	state.CoverageTotal = readCounter(values, KeyCoverageTotal)

	if raw, ok := values[KeyCompleted]; ok {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			log.Warn("ignoring unreadable completed puzzle list: %v", err)
		} else if ids != nil {
			state.CompletedPuzzleIDs = ids
		}
	}

	log.Debug("loaded learner state: rating=%d, streak=%d, completed=%d", state.Rating, state.Streak, len(state.CompletedPuzzleIDs))
	return state
}

func readInt(values map[string]string, key string) (int, bool) {
	raw, ok := values[key]
	if !ok {
		return 0, false
	}
	return models.LeadingInt(raw)
}

func readCounter(values map[string]string, key string) int {
	n, ok := readInt(values, key)
	if !ok || n < 0 {
		return 0
	}
	return n
}

func encodeState(s models.LearnerState) map[string]string {
	ids := s.CompletedPuzzleIDs
	if ids == nil {
		ids = []string{}
	}
	completed, _ := json.Marshal(ids)

	return map[string]string{
		KeyRating:          strconv.Itoa(s.Rating),
		KeyStreak:          strconv.Itoa(s.Streak),
		KeyCorrect:         strconv.Itoa(s.CorrectCount),
		KeyTotal:           strconv.Itoa(s.TotalCount),
		KeyCoverageCorrect: strconv.Itoa(s.CoverageCorrect),
		KeyCoverageTotal:   strconv.Itoa(s.CoverageTotal),
		KeyCompleted:       string(completed),
	}
}
