package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/xo101/internal/app"
	"github.com/vytor/xo101/internal/config"
	"github.com/vytor/xo101/internal/models"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	puzzles := filepath.Join(dir, "puzzles.json")
	require.NoError(t, os.WriteFile(puzzles, []byte(`[
		{"id": "p1", "difficulty": "intermediate", "down": 3, "distance": "4", "answers": ["Run", "Pass"], "correct": "Pass"}
	]`), 0o644))

	return config.Config{
		Addr:               ":0",
		DBPath:             filepath.Join(dir, "xo101.db"),
		PuzzlesPath:        puzzles,
		AnalyticsPath:      filepath.Join(dir, "missing.json"),
		LogLevel:           "ERROR",
		AttemptWorkerCount: 1,
		AttemptQueueSize:   8,
	}
}

func TestBootstrap_RestoresProgress(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := app.Bootstrap(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Engine.PuzzleCount())
	assert.Equal(t, 0, a.Engine.AnalyticsCount())

	p, ok := a.Engine.Puzzle("p1")
	require.True(t, ok)
	a.Engine.RecordAnswer(ctx, "Pass", *p)
	require.NoError(t, a.Close())

	reopened, err := app.Bootstrap(ctx, cfg)
	require.NoError(t, err)
	defer reopened.Close()

	state := reopened.Engine.State()
	assert.Equal(t, 1216, state.Rating)
	assert.Equal(t, 1, state.Streak)
	assert.Equal(t, []string{"p1"}, state.CompletedPuzzleIDs)
}

func TestBootstrap_NoContent(t *testing.T) {
	cfg := testConfig(t)
	cfg.PuzzlesPath = filepath.Join(t.TempDir(), "none.json")

	a, err := app.Bootstrap(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.Engine.SelectNext())
	assert.Equal(t, models.DefaultLearnerState(), a.Engine.State())
}
