package services_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/xo101/internal/content"
	"github.com/vytor/xo101/internal/errors"
	"github.com/vytor/xo101/internal/jobs"
	"github.com/vytor/xo101/internal/logger"
	"github.com/vytor/xo101/internal/metrics"
	"github.com/vytor/xo101/internal/models"
	"github.com/vytor/xo101/internal/quiz"
	"github.com/vytor/xo101/internal/repository/sqlite"
	"github.com/vytor/xo101/internal/services"
	"github.com/vytor/xo101/internal/testutil"
	"github.com/vytor/xo101/internal/testutil/mocks"
	"github.com/vytor/xo101/internal/worker"
)

type QuizServiceSuite struct {
	suite.Suite
	ctx      context.Context
	settings *mocks.MockSettingsRepository
	attempts *mocks.MockAttemptRepository
	queue    *mocks.MockJobQueue
	svc      services.QuizService
}

func (s *QuizServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.settings = new(mocks.MockSettingsRepository)
	s.settings.On("SetMany", mock.Anything, mock.Anything).Return(nil)
	s.settings.On("Delete", mock.Anything, mock.Anything).Return(nil)
	s.attempts = new(mocks.MockAttemptRepository)
	s.queue = new(mocks.MockJobQueue)
	s.svc = s.newService(content.Content{Puzzles: testutil.Puzzles(), Analytics: testutil.AnalyticsRecords()})
}

func (s *QuizServiceSuite) newService(c content.Content) services.QuizService {
	engine := quiz.NewEngine(models.DefaultLearnerState(), c, s.settings,
		quiz.WithRandom(func() float64 { return 0 }),
		quiz.WithLogger(logger.Discard()))
	return services.NewQuizService(engine, s.attempts, s.queue, metrics.New())
}

func (s *QuizServiceSuite) TestNextAndCurrentPuzzle() {
	_, err := s.svc.CurrentPuzzle(s.ctx)
	s.Assert().True(errors.IsCode(err, errors.ErrCodeNotFound))

	p, err := s.svc.NextPuzzle(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal("p1", p.ID)

	current, err := s.svc.CurrentPuzzle(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal("p1", current.ID)
	s.Assert().Equal("p1", s.svc.GetSummary(s.ctx).CurrentPuzzleID)
}

func (s *QuizServiceSuite) TestNextPuzzle_NoContent() {
	svc := s.newService(content.Content{})

	_, err := svc.NextPuzzle(s.ctx)
	s.Require().Error(err)
	s.Assert().True(errors.IsCode(err, errors.ErrCodeUnavailable))
}

func (s *QuizServiceSuite) TestSubmitAnswer_RecordsAttempt() {
	s.queue.On("EnqueueAttempt", mock.MatchedBy(func(a models.Attempt) bool {
		return a.PuzzleID == "p2" && a.WasCorrect && a.RatingBefore == 1200 &&
			a.RatingAfter == 1216 && a.RatingDelta == 16 && a.Streak == 1 &&
			a.Difficulty == models.DifficultyIntermediate && a.Answer == "Pass" && a.ID != ""
	})).Return(nil).Once()

	result, err := s.svc.SubmitAnswer(s.ctx, "p2", "Pass")
	s.Require().NoError(err)
	s.Assert().True(result.IsCorrect)
	s.Assert().Equal(1216, result.NewRating)

	summary := s.svc.GetSummary(s.ctx)
	s.Assert().Equal(1216, summary.Rating)
	s.Assert().Equal(100, summary.Accuracy)
	s.Assert().Equal(6, summary.PuzzleCount)
	s.Assert().Equal(4, summary.AnalyticsCount)
	s.queue.AssertExpectations(s.T())
}

func (s *QuizServiceSuite) TestSubmitAnswer_QueueFailureIsIgnored() {
	s.queue.On("EnqueueAttempt", mock.Anything).Return(stderrors.New("queue full"))

	result, err := s.svc.SubmitAnswer(s.ctx, "p1", "Pass")
	s.Require().NoError(err)
	s.Assert().False(result.IsCorrect)
	s.Assert().Equal(-24, result.RatingDelta)
}

func (s *QuizServiceSuite) TestSubmitAnswer_Validation() {
	_, err := s.svc.SubmitAnswer(s.ctx, "p1", "  ")
	s.Assert().True(errors.IsCode(err, errors.ErrCodeValidation))

	_, err = s.svc.SubmitAnswer(s.ctx, "missing", "Run")
	s.Assert().True(errors.IsCode(err, errors.ErrCodeNotFound))

	s.queue.AssertNotCalled(s.T(), "EnqueueAttempt", mock.Anything)
}

func (s *QuizServiceSuite) TestGetAnalytics() {
	summary, err := s.svc.GetAnalytics(s.ctx, "p4")
	s.Require().NoError(err)
	s.Assert().Equal(31, summary.PassRate)
	s.Assert().Equal(69, summary.RunRate)
	s.Assert().Equal(models.Bucket1to2, summary.DistanceBucket)

	_, err = s.svc.GetAnalytics(s.ctx, "p5")
	s.Assert().True(errors.IsCode(err, errors.ErrCodeNotFound))

	_, err = s.svc.GetAnalytics(s.ctx, "nope")
	s.Assert().True(errors.IsCode(err, errors.ErrCodeNotFound))
}

func (s *QuizServiceSuite) TestCoverage() {
	_, err := s.svc.SubmitCoverage(s.ctx, "Cover 3")
	s.Assert().True(errors.IsCode(err, errors.ErrCodeBadRequest))

	s.Assert().Equal("Two-High Shell", s.svc.NextCoverage(s.ctx))
	result, err := s.svc.SubmitCoverage(s.ctx, "Two-High Shell")
	s.Require().NoError(err)
	s.Assert().True(result.IsCorrect)
	s.Assert().Equal(1, result.CoverageTotal)

	_, err = s.svc.SubmitCoverage(s.ctx, "")
	s.Assert().True(errors.IsCode(err, errors.ErrCodeValidation))
}

func (s *QuizServiceSuite) TestReset() {
	s.queue.On("EnqueueAttempt", mock.Anything).Return(nil)
	s.queue.On("ClearAttempts", mock.Anything).Return(nil).Once()

	_, err := s.svc.SubmitAnswer(s.ctx, "p2", "Pass")
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Reset(s.ctx))
	summary := s.svc.GetSummary(s.ctx)
	s.Assert().Equal(models.BaseRating, summary.Rating)
	s.Assert().Equal(0, summary.TotalCount)
	s.Assert().Equal(0, summary.Accuracy)
	s.Assert().Empty(summary.CompletedPuzzleIDs)
	s.queue.AssertExpectations(s.T())
	s.attempts.AssertNotCalled(s.T(), "DeleteAll", mock.Anything)
}

func (s *QuizServiceSuite) TestReset_WithoutQueue() {
	s.attempts.On("DeleteAll", mock.Anything).Return(nil).Once()
	engine := quiz.NewEngine(models.DefaultLearnerState(), content.Content{Puzzles: testutil.Puzzles()}, s.settings,
		quiz.WithLogger(logger.Discard()))
	svc := services.NewQuizService(engine, s.attempts, nil, metrics.New())

	s.Require().NoError(svc.Reset(s.ctx))
	s.attempts.AssertExpectations(s.T())
}

func (s *QuizServiceSuite) TestReset_HistoryError() {
	s.queue.On("ClearAttempts", mock.Anything).Return(stderrors.New("locked"))

	err := s.svc.Reset(s.ctx)
	s.Assert().True(errors.IsCode(err, errors.ErrCodeInternal))
	s.Assert().Equal(models.BaseRating, s.svc.GetSummary(s.ctx).Rating)
}

func TestReset_DiscardsQueuedAttempts(t *testing.T) {
	logger.SetDefault(logger.Discard())
	ctx := context.Background()

	db := testutil.NewTestDB(t)
	settings := sqlite.NewSettingsRepository(db)
	attempts := sqlite.NewAttemptRepository(db)

	pool := worker.NewPool(1, 8)
	pool.Start(ctx)
	defer pool.Stop()

	release := make(chan struct{})
	require.NoError(t, pool.Submit(blockingJob{release: release}))

	engine := quiz.NewEngine(models.DefaultLearnerState(),
		content.Content{Puzzles: testutil.Puzzles()}, settings,
		quiz.WithLogger(logger.Discard()))
	svc := services.NewQuizService(engine, attempts, jobs.NewWorkerQueue(pool, attempts), metrics.New())

	_, err := svc.SubmitAnswer(ctx, "p2", "Pass")
	require.NoError(t, err)
	require.NoError(t, svc.Reset(ctx))

	close(release)
	pool.Stop()

	recent, err := attempts.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
	assert.Equal(t, models.BaseRating, svc.GetSummary(ctx).Rating)
}

func TestSubmitAnswer_AfterResetIsRecorded(t *testing.T) {
	logger.SetDefault(logger.Discard())
	ctx := context.Background()

	db := testutil.NewTestDB(t)
	settings := sqlite.NewSettingsRepository(db)
	attempts := sqlite.NewAttemptRepository(db)

	pool := worker.NewPool(1, 8)
	pool.Start(ctx)

	engine := quiz.NewEngine(models.DefaultLearnerState(),
		content.Content{Puzzles: testutil.Puzzles()}, settings,
		quiz.WithLogger(logger.Discard()))
	svc := services.NewQuizService(engine, attempts, jobs.NewWorkerQueue(pool, attempts), metrics.New())

	_, err := svc.SubmitAnswer(ctx, "p2", "Pass")
	require.NoError(t, err)
	require.NoError(t, svc.Reset(ctx))
	_, err = svc.SubmitAnswer(ctx, "p1", "Run")
	require.NoError(t, err)
	pool.Stop()

	recent, err := attempts.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "p1", recent[0].PuzzleID)
}

type blockingJob struct {
	release chan struct{}
}

func (j blockingJob) Name() string { return "block" }

func (j blockingJob) Run(ctx context.Context) error {
	<-j.release
	return nil
}

func TestQuizServiceSuite(t *testing.T) {
	suite.Run(t, new(QuizServiceSuite))
}
