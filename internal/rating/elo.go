package rating

import (
	"math"

	"github.com/vytor/xo101/internal/models"
)

const (
	KFactor = 32
	// DefaultReference is used for puzzles with a missing or unknown difficulty.
	DefaultReference = 1200
)

var referenceRatings = map[models.Difficulty]int{
	models.DifficultyBeginner:     1000,
	models.DifficultyIntermediate: 1200,
	models.DifficultyAdvanced:     1400,
}

// Reference maps a difficulty tier to the rating a puzzle "plays" at.
func Reference(d models.Difficulty) int {
	if r, ok := referenceRatings[d]; ok {
		return r
	}
	return DefaultReference
}

// Expected is the logistic Elo expectation of a learner at learnerRating
// beating a puzzle rated puzzleRating.
func Expected(learnerRating, puzzleRating int) float64 {
	return 1 / (1 + math.Pow(10, float64(puzzleRating-learnerRating)/400))
}

// Delta returns the rating change for one answer.
func Delta(learnerRating int, d models.Difficulty, correct bool) int {
	actual := 0.0
	if correct {
		actual = 1
	}
	return Round(KFactor * (actual - Expected(learnerRating, Reference(d))))
}

// Apply adds delta to current, clamping the result at the rating floor.
// The delta itself is never clamped.
func Apply(current, delta int) int {
	return max(models.RatingFloor, current+delta)
}

// Round rounds half up (toward +Inf), so -0.5 becomes 0 and 2.5 becomes 3.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}
