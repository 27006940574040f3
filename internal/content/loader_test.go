package content_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/xo101/internal/content"
	"github.com/vytor/xo101/internal/models"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadPuzzles_JSON(t *testing.T) {
	path := writeFile(t, "puzzles.json", `[
		{"id": "p1", "difficulty": "beginner", "down": 3, "distance": "2", "field_pos": "Own 30",
		 "answers": ["Run", "Pass"], "correct": "Run", "explanation": "Short yardage."},
		{"id": 7, "difficulty": "advanced", "down": "4", "distance": 11, "field_pos": "Opponent 35",
		 "answers": ["Run", "Pass"], "correct": "Pass"}
	]`)

	puzzles, err := content.NewLoader().LoadPuzzles(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, puzzles, 2)

	assert.Equal(t, "p1", puzzles[0].ID)
	assert.Equal(t, models.DifficultyBeginner, puzzles[0].Difficulty)
	assert.Equal(t, "Own 30", puzzles[0].FieldPosition)
	assert.Equal(t, []string{"Run", "Pass"}, puzzles[0].Answers)

	assert.Equal(t, "7", puzzles[1].ID)
	assert.Equal(t, 4, puzzles[1].Down)
	assert.Equal(t, "11", puzzles[1].Distance)
	assert.Empty(t, puzzles[1].Explanation)
}

func TestLoadPuzzles_YAML(t *testing.T) {
	path := writeFile(t, "puzzles.yaml", `
- id: y1
  difficulty: intermediate
  down: 2
  distance: Goal
  field_pos: Opponent 3
  answers: [Run, Pass]
  correct: Run
  explanation: Goal to go.
`)

	puzzles, err := content.NewLoader().LoadPuzzles(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, puzzles, 1)
	assert.Equal(t, "y1", puzzles[0].ID)
	assert.Equal(t, 2, puzzles[0].Down)
	assert.Equal(t, "Goal", puzzles[0].Distance)
	assert.Equal(t, "Goal to go.", puzzles[0].Explanation)
}

func TestLoadPuzzles_YAMLMixedScalars(t *testing.T) {
	path := writeFile(t, "puzzles.yml", `
- id: 101
  difficulty: beginner
  down: 1
  distance: 10
  field_pos: Own 20
  answers: [Run, Pass]
  correct: Run
- id: y2
  difficulty: advanced
  down: "3"
  distance: "8"
  field_pos: Midfield
  answers: [Run, Pass]
  correct: Pass
`)

	puzzles, err := content.NewLoader().LoadPuzzles(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, puzzles, 2)
	assert.Equal(t, "101", puzzles[0].ID)
	assert.Equal(t, "10", puzzles[0].Distance)
	assert.Equal(t, 3, puzzles[1].Down)
	assert.Equal(t, "8", puzzles[1].Distance)
}

func TestLoadPuzzles_SkipsInvalid(t *testing.T) {
	path := writeFile(t, "puzzles.json", `[
		{"id": "a", "correct": "Run"},
		{"correct": "Pass"},
		{"id": "a", "correct": "Pass"},
		{"id": "b", "correct": "Pass"}
	]`)

	puzzles, err := content.NewLoader().LoadPuzzles(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, puzzles, 2)
	assert.Equal(t, "a", puzzles[0].ID)
	assert.Equal(t, "Run", puzzles[0].Correct)
	assert.Equal(t, "b", puzzles[1].ID)
}

func TestLoadPuzzles_Errors(t *testing.T) {
	loader := content.NewLoader()

	_, err := loader.LoadPuzzles(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = loader.LoadPuzzles(context.Background(), writeFile(t, "bad.json", `{not json`))
	assert.Error(t, err)
}

func TestLoadAnalytics(t *testing.T) {
	path := writeFile(t, "analytics.json", `[
		{"down": 3, "distance_bucket": "3-4", "pass_rate": 0.653, "pass_epa_mean": 0.12, "run_epa_mean": 0.02,
		 "pass_success_rate": 0.47, "run_success_rate": 0.55, "sample_size": 8123},
		{"down": 5, "distance_bucket": "3-4", "pass_rate": 0.5},
		{"down": 1, "distance_bucket": "11-12", "pass_rate": 0.5},
		{"down": 2, "distance_bucket": "Goal", "pass_rate": 1.4}
	]`)

	records, err := content.NewLoader().LoadAnalytics(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].Down)
	assert.Equal(t, models.Bucket3to4, records[0].DistanceBucket)
	assert.InDelta(t, 0.653, records[0].PassRate, 1e-9)
	assert.Equal(t, 8123, records[0].SampleSize)
}

func TestLoadAnalytics_YAML(t *testing.T) {
	path := writeFile(t, "analytics.yml", `
- down: 1
  distance_bucket: "10+"
  pass_rate: 0.48
  pass_epa_mean: 0.05
  run_epa_mean: -0.07
  pass_success_rate: 0.46
  run_success_rate: 0.41
  sample_size: 91234
`)

	records, err := content.NewLoader().LoadAnalytics(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.Bucket10, records[0].DistanceBucket)
	assert.InDelta(t, -0.07, records[0].RunEPA, 1e-9)
}

func TestLoadOrEmpty(t *testing.T) {
	puzzles := writeFile(t, "puzzles.json", `[{"id": "p1", "correct": "Run"}]`)
	missing := filepath.Join(t.TempDir(), "analytics.json")

	c := content.NewLoader().LoadOrEmpty(context.Background(), puzzles, missing)
	assert.Len(t, c.Puzzles, 1)
	assert.NotNil(t, c.Analytics)
	assert.Empty(t, c.Analytics)

	c = content.NewLoader().LoadOrEmpty(context.Background(), missing, missing)
	assert.NotNil(t, c.Puzzles)
	assert.Empty(t, c.Puzzles)
}

func TestShippedContent(t *testing.T) {
	loader := content.NewLoader()

	puzzles, err := loader.LoadPuzzles(context.Background(), "../../data/puzzles.json")
	require.NoError(t, err)
	assert.Len(t, puzzles, 12)

	records, err := loader.LoadAnalytics(context.Background(), "../../data/analytics.json")
	require.NoError(t, err)
	assert.Len(t, records, 24)
}
