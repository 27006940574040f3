package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"github.com/vytor/xo101/internal/models"
	"github.com/vytor/xo101/internal/services"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		recent, _ := cmd.Flags().GetInt("recent")

		s, ctx, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		return printStats(ctx, s.quiz, s.stats, cmd.OutOrStdout(), recent)
	},
}

func init() {
	statsCmd.Flags().Int("recent", 5, "Number of recent attempts to list")
}

func printStats(ctx context.Context, quizSvc services.QuizService, statsSvc services.StatsService, out io.Writer, recent int) error {
	summary := quizSvc.GetSummary(ctx)
	fmt.Fprintf(out, "Rating:    %d\n", summary.Rating)
	fmt.Fprintf(out, "Streak:    %d\n", summary.Streak)
	fmt.Fprintf(out, "Puzzles:   %d/%d correct (%d%%)\n", summary.CorrectCount, summary.TotalCount, summary.Accuracy)
	fmt.Fprintf(out, "Coverage:  %d/%d correct\n", summary.CoverageCorrect, summary.CoverageTotal)
	fmt.Fprintf(out, "Completed: %d unique puzzles of %d\n", len(summary.CompletedPuzzleIDs), summary.PuzzleCount)

	stats, err := statsSvc.GetAttemptStats(ctx)
	if err != nil {
		return err
	}
	if stats.TotalAttempts == 0 {
		return nil
	}
	fmt.Fprintf(out, "\nBest streak %d, peak rating %d\n", stats.BestStreak, stats.PeakRating)

	difficulties := make([]string, 0, len(stats.ByDifficulty))
	for d := range stats.ByDifficulty {
		difficulties = append(difficulties, string(d))
	}
	sort.Strings(difficulties)
	for _, d := range difficulties {
		stat := stats.ByDifficulty[models.Difficulty(d)]
		fmt.Fprintf(out, "  %-13s %d/%d\n", d, stat.Correct, stat.Attempts)
	}

	if recent <= 0 {
		return nil
	}
	attempts, err := statsSvc.GetRecentAttempts(ctx, recent)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\nRecent:")
	for _, a := range attempts {
		mark := "x"
		if a.WasCorrect {
			mark = "✓"
		}
		fmt.Fprintf(out, "  %s %-8s %-12s %+d -> %d\n", mark, a.PuzzleID, a.Difficulty, a.RatingDelta, a.RatingAfter)
	}
	return nil
}
