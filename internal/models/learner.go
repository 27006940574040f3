package models

const (
	BaseRating  = 1200
	RatingFloor = 100
)

// LearnerState is the persisted progress of the single learner.
type LearnerState struct {
	Rating             int      `json:"rating"`
	Streak             int      `json:"streak"`
	CorrectCount       int      `json:"correct"`
	TotalCount         int      `json:"total"`
	CoverageCorrect    int      `json:"coverage_correct"`
	CoverageTotal      int      `json:"coverage_total"`
	CompletedPuzzleIDs []string `json:"completed_puzzles"`
}

// DefaultLearnerState is the state of a brand new learner.
func DefaultLearnerState() LearnerState {
	return LearnerState{
		Rating:             BaseRating,
		CompletedPuzzleIDs: []string{},
	}
}

// Clone returns a copy that shares no memory with s.
func (s LearnerState) Clone() LearnerState {
	ids := make([]string, len(s.CompletedPuzzleIDs))
	copy(ids, s.CompletedPuzzleIDs)
	s.CompletedPuzzleIDs = ids
	return s
}

// HasCompleted reports whether id is anywhere in the completed list.
func (s LearnerState) HasCompleted(id string) bool {
	for _, done := range s.CompletedPuzzleIDs {
		if done == id {
			return true
		}
	}
	return false
}

// RecentlyCompleted returns at most the last n completed ids.
func (s LearnerState) RecentlyCompleted(n int) []string {
	if n <= 0 {
		return nil
	}
	if len(s.CompletedPuzzleIDs) <= n {
		return s.CompletedPuzzleIDs
	}
	return s.CompletedPuzzleIDs[len(s.CompletedPuzzleIDs)-n:]
}

// AnswerResult is what the learner sees after answering a puzzle.
type AnswerResult struct {
	IsCorrect   bool   `json:"is_correct"`
	RatingDelta int    `json:"rating_change"`
	NewRating   int    `json:"new_rating"`
	NewStreak   int    `json:"streak"`
	Explanation string `json:"explanation"`
}

// CoverageResult is the outcome of a coverage identification question.
type CoverageResult struct {
	IsCorrect       bool   `json:"is_correct"`
	CorrectCoverage string `json:"correct_coverage"`
	NewStreak       int    `json:"streak"`
	CoverageCorrect int    `json:"coverage_correct"`
	CoverageTotal   int    `json:"coverage_total"`
}
