package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/xo101/internal/content"
	"github.com/vytor/xo101/internal/logger"
	"github.com/vytor/xo101/internal/metrics"
	"github.com/vytor/xo101/internal/models"
	"github.com/vytor/xo101/internal/quiz"
	"github.com/vytor/xo101/internal/services"
	"github.com/vytor/xo101/internal/testutil"
)

func newQuizService(puzzles []models.Puzzle) services.QuizService {
	engine := quiz.NewEngine(models.DefaultLearnerState(),
		content.Content{Puzzles: puzzles, Analytics: testutil.AnalyticsRecords()}, nil,
		quiz.WithRandom(func() float64 { return 0 }),
		quiz.WithLogger(logger.Discard()))
	return services.NewQuizService(engine, nil, nil, metrics.New())
}

func TestPlayPuzzles(t *testing.T) {
	svc := newQuizService(testutil.Puzzles()[1:2])
	var out bytes.Buffer

	err := playPuzzles(context.Background(), svc, strings.NewReader("7\nmaybe\n2\n"), &out, 1)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "[intermediate] 3rd & 3 at Own 45")
	assert.Contains(t, text, "Pick 1-2, or q to quit.")
	assert.Contains(t, text, "Correct! Rating 1216 (+16), streak 1.")
	assert.Contains(t, text, "Pass 65% / Run 35% over 8123 plays.")
	assert.Contains(t, text, "Rating 1216, streak 1, 1/1 correct.")
}

func TestPlayPuzzles_AnswerByName(t *testing.T) {
	svc := newQuizService(testutil.Puzzles()[1:2])
	var out bytes.Buffer

	require.NoError(t, playPuzzles(context.Background(), svc, strings.NewReader("run\n"), &out, 1))
	assert.Contains(t, out.String(), "Wrong! Rating 1184 (-16), streak 0.")
}

func TestPlayPuzzles_QuitAndEOF(t *testing.T) {
	svc := newQuizService(testutil.Puzzles())
	var out bytes.Buffer

	require.NoError(t, playPuzzles(context.Background(), svc, strings.NewReader("q\n"), &out, 0))
	assert.Contains(t, out.String(), "Rating 1200, streak 0, 0/0 correct.")

	out.Reset()
	require.NoError(t, playPuzzles(context.Background(), svc, strings.NewReader(""), &out, 0))
	assert.Contains(t, out.String(), "0/0 correct.")
}

func TestPlayPuzzles_NoContent(t *testing.T) {
	svc := newQuizService(nil)
	var out bytes.Buffer

	require.NoError(t, playPuzzles(context.Background(), svc, strings.NewReader("1\n"), &out, 1))
	assert.Contains(t, out.String(), "No puzzles available")
}

func TestPlayCoverage(t *testing.T) {
	svc := newQuizService(nil)
	var out bytes.Buffer

	require.NoError(t, playCoverage(context.Background(), svc, strings.NewReader("1\n3\n"), &out, 2))

	text := out.String()
	assert.Contains(t, text, "Correct! Streak 1.")
	assert.Contains(t, text, "Not quite, it was Two-High Shell.")
	assert.Contains(t, text, "Coverage 1/2 correct, streak 0.")
}

func TestOrdinal(t *testing.T) {
	assert.Equal(t, "1st", ordinal(1))
	assert.Equal(t, "2nd", ordinal(2))
	assert.Equal(t, "3rd", ordinal(3))
	assert.Equal(t, "4th", ordinal(4))
}
