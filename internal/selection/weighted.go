// Package selection picks the next puzzle, biased toward the learner's rating.
package selection

import (
	"math"

	"github.com/vytor/xo101/internal/models"
	"github.com/vytor/xo101/internal/rating"
)

// RecentWindow is how many of the latest completed puzzles are held back.
const RecentWindow = 5

// Weight decays linearly with the distance between learner and puzzle rating,
// never dropping below 1 so every puzzle stays reachable.
func Weight(learnerRating, puzzleRating int) float64 {
	distance := math.Abs(float64(learnerRating - puzzleRating))
	return math.Max(1, 100-distance/10)
}

// Pick returns the index of the first weight whose running total exceeds draw.
// draw is expected in [0, sum(weights)). Returns -1 for no weights; if rounding
// leaves draw unmatched the first index is returned.
func Pick(weights []float64, draw float64) int {
	if len(weights) == 0 {
		return -1
	}
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if cumulative > draw {
			return i
		}
	}
	return 0
}

// Candidates drops puzzles among the learner's recent completions. When that
// leaves nothing, the full set is returned and repeats are allowed.
func Candidates(puzzles []models.Puzzle, state models.LearnerState) []models.Puzzle {
	recent := state.RecentlyCompleted(RecentWindow)
	if len(recent) == 0 {
		return puzzles
	}
	seen := make(map[string]struct{}, len(recent))
	for _, id := range recent {
		seen[id] = struct{}{}
	}

	available := make([]models.Puzzle, 0, len(puzzles))
	for _, p := range puzzles {
		if _, ok := seen[p.ID]; !ok {
			available = append(available, p)
		}
	}
	if len(available) == 0 {
		return puzzles
	}
	return available
}

// Next selects a puzzle for state. random must return values in [0, 1).
// Returns nil when puzzles is empty.
func Next(puzzles []models.Puzzle, state models.LearnerState, random func() float64) *models.Puzzle {
	if len(puzzles) == 0 {
		return nil
	}

	candidates := Candidates(puzzles, state)
	weights := make([]float64, len(candidates))
	total := 0.0
	for i, p := range candidates {
		weights[i] = Weight(state.Rating, rating.Reference(p.Difficulty))
		total += weights[i]
	}

	idx := Pick(weights, random()*total)
	chosen := candidates[idx]
	return &chosen
}
