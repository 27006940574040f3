package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vytor/xo101/internal/db"
	"github.com/vytor/xo101/internal/models"
)

// NewTestDB opens an in-memory SQLite database with all migrations applied.
// It is closed automatically when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database.DB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// Puzzles returns a small fixed puzzle set covering every difficulty tier.
func Puzzles() []models.Puzzle {
	return []models.Puzzle{
		{ID: "p1", Difficulty: models.DifficultyBeginner, Down: 1, Distance: "10", FieldPosition: "Own 25", Answers: []string{"Run", "Pass"}, Correct: "Run", Explanation: "Early downs stay balanced."},
		{ID: "p2", Difficulty: models.DifficultyIntermediate, Down: 3, Distance: "3", FieldPosition: "Own 45", Answers: []string{"Run", "Pass"}, Correct: "Pass", Explanation: "Third and short still favors a quick pass."},
		{ID: "p3", Difficulty: models.DifficultyAdvanced, Down: 3, Distance: "12", FieldPosition: "Opponent 40", Answers: []string{"Cover 1", "Cover 3", "Two-High Shell"}, Correct: "Two-High Shell", Explanation: "Long yardage invites two deep safeties."},
		{ID: "p4", Difficulty: models.DifficultyIntermediate, Down: 4, Distance: "1", FieldPosition: "Opponent 2", Answers: []string{"Run", "Pass"}, Correct: "Run", Explanation: "Goal line power."},
		{ID: "p5", Difficulty: models.DifficultyBeginner, Down: 2, Distance: "6", FieldPosition: "Midfield", Answers: []string{"Run", "Pass"}, Correct: "Pass", Explanation: "Second and medium."},
		{ID: "p6", Difficulty: models.DifficultyAdvanced, Down: 1, Distance: "Goal", FieldPosition: "Opponent 4", Answers: []string{"Run", "Pass"}, Correct: "Run", Explanation: "Goal to go."},
	}
}

// AnalyticsRecords returns records matching several of the Puzzles situations.
func AnalyticsRecords() []models.AnalyticsRecord {
	return []models.AnalyticsRecord{
		{Down: 1, DistanceBucket: "10+", PassRate: 0.48, PassEPA: 0.05, RunEPA: -0.07, PassSuccessRate: 0.46, RunSuccessRate: 0.41, SampleSize: 91234},
		{Down: 3, DistanceBucket: "3-4", PassRate: 0.653, PassEPA: 0.12, RunEPA: 0.02, PassSuccessRate: 0.47, RunSuccessRate: 0.55, SampleSize: 8123},
		{Down: 3, DistanceBucket: "10+", PassRate: 0.94, PassEPA: -0.2, RunEPA: -0.35, PassSuccessRate: 0.28, RunSuccessRate: 0.14, SampleSize: 10211},
		{Down: 4, DistanceBucket: "1-2", PassRate: 0.31, PassEPA: 0.4, RunEPA: 0.52, PassSuccessRate: 0.52, RunSuccessRate: 0.66, SampleSize: 2311},
	}
}
