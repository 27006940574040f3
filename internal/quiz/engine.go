// Package quiz holds the learner session: answering puzzles, choosing the next
// one and looking up the historical tendencies for a situation.
package quiz

import (
	"context"
	"math/rand"

	"github.com/vytor/xo101/internal/analytics"
	"github.com/vytor/xo101/internal/content"
	"github.com/vytor/xo101/internal/logger"
	"github.com/vytor/xo101/internal/models"
	"github.com/vytor/xo101/internal/rating"
	"github.com/vytor/xo101/internal/repository"
	"github.com/vytor/xo101/internal/selection"
)

// Engine owns one learner's session. It is not safe for concurrent use.
type Engine struct {
	state   models.LearnerState
	content content.Content
	repo    repository.SettingsRepository
	random  func() float64
	log     *logger.Logger

	current  *models.Puzzle
	coverage string
}

type Option func(*Engine)

// WithRandom replaces the source of uniform draws in [0, 1).
func WithRandom(fn func() float64) Option {
	return func(e *Engine) { e.random = fn }
}

func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine starts a session from state. repo may be nil, in which case
// progress lives only in memory.
func NewEngine(state models.LearnerState, c content.Content, repo repository.SettingsRepository, opts ...Option) *Engine {
	e := &Engine{
		state:   state.Clone(),
		content: c,
		repo:    repo,
		random:  rand.Float64,
		log:     logger.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithPrefix("quiz")
	return e
}

// RecordAnswer grades selected against p, updates rating, streak and
// counters, and persists the new state before returning. Storage failures
// are logged and do not affect the result.
func (e *Engine) RecordAnswer(ctx context.Context, selected string, p models.Puzzle) models.AnswerResult {
	correct := p.Correct != "" && selected == p.Correct
	delta := rating.Delta(e.state.Rating, p.Difficulty, correct)

	e.state.TotalCount++
	if correct {
		e.state.CorrectCount++
		e.state.Streak++
		if !e.state.HasCompleted(p.ID) {
			e.state.CompletedPuzzleIDs = append(e.state.CompletedPuzzleIDs, p.ID)
		}
	} else {
		e.state.Streak = 0
	}
	e.state.Rating = rating.Apply(e.state.Rating, delta)

	e.log.Debug("answer recorded: puzzle=%s, correct=%t, delta=%d, rating=%d", p.ID, correct, delta, e.state.Rating)
	e.persist(ctx)

	return models.AnswerResult{
		IsCorrect:   correct,
		RatingDelta: delta,
		NewRating:   e.state.Rating,
		NewStreak:   e.state.Streak,
		Explanation: p.Explanation,
	}
}

// SelectNext picks the next puzzle and makes it current. Returns nil when no
// puzzles are loaded.
func (e *Engine) SelectNext() *models.Puzzle {
	p := selection.Next(e.content.Puzzles, e.state, e.random)
	e.current = p
	if p == nil {
		e.log.Warn("no puzzles available")
		return nil
	}
	e.log.Debug("selected puzzle %s (%s) for rating %d", p.ID, p.Difficulty, e.state.Rating)
	out := *p
	return &out
}

// LookupAnalytics returns the historical summary for p's situation, or nil.
func (e *Engine) LookupAnalytics(p models.Puzzle) *models.AnalyticsSummary {
	return analytics.Lookup(p, e.content.Analytics)
}

// Reset returns the learner to a fresh state and persists it. Loaded content
// is kept.
func (e *Engine) Reset(ctx context.Context) {
	e.state = models.DefaultLearnerState()
	e.current = nil
	e.coverage = ""
	e.log.Info("learner progress reset")
	if e.repo != nil {
		if err := e.repo.Delete(ctx, StateKeys...); err != nil {
			e.log.Error("failed to clear stored progress: %v", err)
		}
	}
	e.persist(ctx)
}

// State returns a copy of the learner state.
func (e *Engine) State() models.LearnerState {
	return e.state.Clone()
}

// Current returns the most recently selected puzzle, or nil.
func (e *Engine) Current() *models.Puzzle {
	if e.current == nil {
		return nil
	}
	out := *e.current
	return &out
}

// Puzzle finds a loaded puzzle by id.
func (e *Engine) Puzzle(id string) (*models.Puzzle, bool) {
	for i := range e.content.Puzzles {
		if e.content.Puzzles[i].ID == id {
			out := e.content.Puzzles[i]
			return &out, true
		}
	}
	return nil, false
}

func (e *Engine) PuzzleCount() int    { return len(e.content.Puzzles) }
func (e *Engine) AnalyticsCount() int { return len(e.content.Analytics) }

func (e *Engine) persist(ctx context.Context) {
	if e.repo == nil {
		return
	}
	if err := e.repo.SetMany(ctx, encodeState(e.state)); err != nil {
		e.log.Error("failed to persist learner state: %v", err)
	}
}
