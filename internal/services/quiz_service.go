package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/xo101/internal/errors"
	"github.com/vytor/xo101/internal/jobs"
	"github.com/vytor/xo101/internal/logger"
	"github.com/vytor/xo101/internal/metrics"
	"github.com/vytor/xo101/internal/models"
	"github.com/vytor/xo101/internal/quiz"
	"github.com/vytor/xo101/internal/rating"
	"github.com/vytor/xo101/internal/repository"
)

// SessionSummary is the learner state plus what the session has loaded.
type SessionSummary struct {
	models.LearnerState
	Accuracy        int    `json:"accuracy"`
	PuzzleCount     int    `json:"puzzle_count"`
	AnalyticsCount  int    `json:"analytics_count"`
	CurrentPuzzleID string `json:"current_puzzle_id,omitempty"`
}

// QuizService handles the learner's quiz session
type QuizService interface {
	GetSummary(ctx context.Context) SessionSummary
	NextPuzzle(ctx context.Context) (*models.Puzzle, error)
	CurrentPuzzle(ctx context.Context) (*models.Puzzle, error)
	SubmitAnswer(ctx context.Context, puzzleID, answer string) (*models.AnswerResult, error)
	GetAnalytics(ctx context.Context, puzzleID string) (*models.AnalyticsSummary, error)
	NextCoverage(ctx context.Context) string
	SubmitCoverage(ctx context.Context, answer string) (*models.CoverageResult, error)
	Reset(ctx context.Context) error
}

type quizService struct {
	mu          sync.Mutex
	engine      *quiz.Engine
	attemptRepo repository.AttemptRepository
	queue       jobs.JobQueue
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewQuizService wraps engine for concurrent callers. Answered puzzles are
// handed to queue for the attempt history.
func NewQuizService(engine *quiz.Engine, attemptRepo repository.AttemptRepository, queue jobs.JobQueue, m *metrics.Metrics) QuizService {
	s := &quizService{
		engine:      engine,
		attemptRepo: attemptRepo,
		queue:       queue,
		metrics:     m,
		now:         time.Now,
	}
	m.SetContent(engine.PuzzleCount(), engine.AnalyticsCount())
	m.SetLearner(engine.State())
	return s
}

func (s *quizService) GetSummary(ctx context.Context) SessionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.engine.State()
	summary := SessionSummary{
		LearnerState:   state,
		PuzzleCount:    s.engine.PuzzleCount(),
		AnalyticsCount: s.engine.AnalyticsCount(),
	}
	if state.TotalCount > 0 {
		summary.Accuracy = rating.Round(float64(state.CorrectCount) / float64(state.TotalCount) * 100)
	}
	if current := s.engine.Current(); current != nil {
		summary.CurrentPuzzleID = current.ID
	}
	return summary
}

func (s *quizService) NextPuzzle(ctx context.Context) (*models.Puzzle, error) {
	log := logger.FromContext(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.engine.SelectNext()
	if p == nil {
		log.Warn("next puzzle requested but no puzzles are loaded")
		return nil, errors.NewUnavailableError("no puzzles available")
	}
	log.Debug("next puzzle: id=%s, difficulty=%s", p.ID, p.Difficulty)
	return p, nil
}

func (s *quizService) CurrentPuzzle(ctx context.Context) (*models.Puzzle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.engine.Current()
	if p == nil {
		return nil, errors.NewNotFoundError("current puzzle", "none selected")
	}
	return p, nil
}

func (s *quizService) SubmitAnswer(ctx context.Context, puzzleID, answer string) (*models.AnswerResult, error) {
	log := logger.FromContext(ctx)
	if strings.TrimSpace(answer) == "" {
		return nil, errors.NewValidationError("answer", "cannot be empty")
	}

	s.mu.Lock()
	p, ok := s.engine.Puzzle(puzzleID)
	if !ok {
		s.mu.Unlock()
		return nil, errors.NewNotFoundError("puzzle", puzzleID)
	}
	before := s.engine.State().Rating
	result := s.engine.RecordAnswer(ctx, answer, *p)
	state := s.engine.State()
	// Enqueued under the lock to stay ordered with Reset.
	s.recordAttempt(ctx, models.Attempt{
		ID:           uuid.NewString(),
		PuzzleID:     p.ID,
		Difficulty:   p.Difficulty,
		Answer:       answer,
		WasCorrect:   result.IsCorrect,
		RatingBefore: before,
		RatingAfter:  result.NewRating,
		RatingDelta:  result.NewRating - before,
		Streak:       result.NewStreak,
		CreatedAt:    s.now().UTC(),
	})
	s.mu.Unlock()

	log.Info("answer submitted: puzzle_id=%s, correct=%t, rating=%d (%+d)", p.ID, result.IsCorrect, result.NewRating, result.RatingDelta)
	s.metrics.ObserveAnswer(p.Difficulty, result.IsCorrect)
	s.metrics.SetLearner(state)
	return &result, nil
}

// recordAttempt never fails the answer: history is best effort.
func (s *quizService) recordAttempt(ctx context.Context, attempt models.Attempt) {
	if s.queue == nil {
		return
	}
	if err := s.queue.EnqueueAttempt(attempt); err != nil {
		logger.FromContext(ctx).Warn("attempt %s not recorded: %v", attempt.ID, err)
	}
}

func (s *quizService) GetAnalytics(ctx context.Context, puzzleID string) (*models.AnalyticsSummary, error) {
	s.mu.Lock()
	p, ok := s.engine.Puzzle(puzzleID)
	var summary *models.AnalyticsSummary
	if ok {
		summary = s.engine.LookupAnalytics(*p)
	}
	s.mu.Unlock()

	if !ok {
		return nil, errors.NewNotFoundError("puzzle", puzzleID)
	}
	s.metrics.ObserveLookup(summary != nil)
	if summary == nil {
		logger.FromContext(ctx).Debug("no analytics for puzzle %s (down=%d, distance=%s)", p.ID, p.Down, p.Distance)
		return nil, errors.NewNotFoundError("analytics", puzzleID)
	}
	return summary, nil
}

func (s *quizService) NextCoverage(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.NextCoverage()
}

func (s *quizService) SubmitCoverage(ctx context.Context, answer string) (*models.CoverageResult, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, errors.NewValidationError("answer", "cannot be empty")
	}

	s.mu.Lock()
	result, ok := s.engine.RecordCoverageAnswer(ctx, answer)
	state := s.engine.State()
	s.mu.Unlock()

	if !ok {
		return nil, errors.NewBadRequestError("no coverage question is active")
	}
	logger.FromContext(ctx).Info("coverage answer submitted: correct=%t, streak=%d", result.IsCorrect, result.NewStreak)
	s.metrics.ObserveCoverageAnswer(result.IsCorrect)
	s.metrics.SetLearner(state)
	return &result, nil
}

// Reset clears learner progress and the attempt history.
func (s *quizService) Reset(ctx context.Context) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	s.engine.Reset(ctx)
	state := s.engine.State()
	err := s.clearHistory(ctx)
	s.mu.Unlock()
	s.metrics.SetLearner(state)

	if err != nil {
		log.Error("failed to clear attempt history: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("progress and attempt history cleared")
	return nil
}

// clearHistory goes through the queue when there is one, so attempts still
// waiting on it are discarded with the rest.
func (s *quizService) clearHistory(ctx context.Context) error {
	switch {
	case s.queue != nil:
		return s.queue.ClearAttempts(ctx)
	case s.attemptRepo != nil:
		return s.attemptRepo.DeleteAll(ctx)
	}
	return nil
}
