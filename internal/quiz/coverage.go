package quiz

import (
	"context"

	"github.com/vytor/xo101/internal/models"
)

// Coverages are the defensive shells the learner is asked to identify.
var Coverages = []string{"Two-High Shell", "Cover 3", "Cover 1"}

// NextCoverage draws a coverage at random and makes it the active question.
func (e *Engine) NextCoverage() string {
	idx := int(e.random() * float64(len(Coverages)))
	idx = min(max(idx, 0), len(Coverages)-1)
	e.coverage = Coverages[idx]
	return e.coverage
}

// ActiveCoverage returns the coverage awaiting an answer, if any.
func (e *Engine) ActiveCoverage() (string, bool) {
	return e.coverage, e.coverage != ""
}

// RecordCoverageAnswer grades answer against the active coverage question.
// Coverage answers move the streak and the coverage counters but never the
// rating. The question is consumed; ok is false when none was active.
func (e *Engine) RecordCoverageAnswer(ctx context.Context, answer string) (result models.CoverageResult, ok bool) {
	if e.coverage == "" {
		return models.CoverageResult{}, false
	}
	expected := e.coverage
	e.coverage = ""

	correct := answer == expected
	e.state.CoverageTotal++
	if correct {
		e.state.CoverageCorrect++
		e.state.Streak++
	} else {
		e.state.Streak = 0
	}

	e.log.Debug("coverage answer recorded: expected=%s, correct=%t", expected, correct)
	e.persist(ctx)

	return models.CoverageResult{
		IsCorrect:       correct,
		CorrectCoverage: expected,
		NewStreak:       e.state.Streak,
		CoverageCorrect: e.state.CoverageCorrect,
		CoverageTotal:   e.state.CoverageTotal,
	}, true
}
