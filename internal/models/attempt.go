package models

import "time"

type Attempt struct {
	ID           string     `json:"id"`
	PuzzleID     string     `json:"puzzle_id"`
	Difficulty   Difficulty `json:"difficulty"`
	Answer       string     `json:"answer"`
	WasCorrect   bool       `json:"was_correct"`
	RatingBefore int        `json:"rating_before"`
	RatingAfter  int        `json:"rating_after"`
	RatingDelta  int        `json:"rating_delta"`
	Streak       int        `json:"streak"`
	CreatedAt    time.Time  `json:"created_at"`
}

type DifficultyStat struct {
	Attempts int `json:"attempts"`
	Correct  int `json:"correct"`
}

type AttemptStats struct {
	TotalAttempts int                           `json:"total_attempts"`
	TotalCorrect  int                           `json:"total_correct"`
	Accuracy      float64                       `json:"accuracy"` // percentage
	BestStreak    int                           `json:"best_streak"`
	PeakRating    int                           `json:"peak_rating"`
	ByDifficulty  map[Difficulty]DifficultyStat `json:"by_difficulty"`
}
