package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vytor/xo101/internal/errors"
	"github.com/vytor/xo101/internal/models"
	"github.com/vytor/xo101/internal/quiz"
	"github.com/vytor/xo101/internal/services"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Answer puzzles in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		coverage, _ := cmd.Flags().GetBool("coverage")

		s, ctx, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if coverage {
			return playCoverage(ctx, s.quiz, cmd.InOrStdin(), cmd.OutOrStdout(), count)
		}
		return playPuzzles(ctx, s.quiz, cmd.InOrStdin(), cmd.OutOrStdout(), count)
	},
}

func init() {
	playCmd.Flags().IntP("count", "n", 0, "Stop after this many questions (0 plays until you quit)")
	playCmd.Flags().Bool("coverage", false, "Identify defensive coverages instead of calling plays")
}

// playPuzzles runs the question loop until count answers, "q" or end of input.
func playPuzzles(ctx context.Context, svc services.QuizService, in io.Reader, out io.Writer, count int) error {
	scanner := bufio.NewScanner(in)

	for answered := 0; count <= 0 || answered < count; answered++ {
		p, err := svc.NextPuzzle(ctx)
		if errors.IsCode(err, errors.ErrCodeUnavailable) {
			fmt.Fprintln(out, "No puzzles available. Check PUZZLES_PATH.")
			return nil
		}
		if err != nil {
			return err
		}

		printPuzzle(out, p)
		choice, ok := readChoice(scanner, out, p.Answers)
		if !ok {
			break
		}

		result, err := svc.SubmitAnswer(ctx, p.ID, choice)
		if err != nil {
			return err
		}
		printResult(out, result)

		if summary, err := svc.GetAnalytics(ctx, p.ID); err == nil {
			printAnalytics(out, summary)
		}
		fmt.Fprintln(out)
	}

	summary := svc.GetSummary(ctx)
	fmt.Fprintf(out, "Rating %d, streak %d, %d/%d correct.\n", summary.Rating, summary.Streak, summary.CorrectCount, summary.TotalCount)
	return nil
}

func playCoverage(ctx context.Context, svc services.QuizService, in io.Reader, out io.Writer, count int) error {
	scanner := bufio.NewScanner(in)

	for answered := 0; count <= 0 || answered < count; answered++ {
		svc.NextCoverage(ctx)
		fmt.Fprintln(out, "Which coverage is the defense showing?")
		choice, ok := readChoice(scanner, out, quiz.Coverages)
		if !ok {
			break
		}

		result, err := svc.SubmitCoverage(ctx, choice)
		if err != nil {
			return err
		}
		if result.IsCorrect {
			fmt.Fprintf(out, "Correct! Streak %d.\n\n", result.NewStreak)
		} else {
			fmt.Fprintf(out, "Not quite, it was %s.\n\n", result.CorrectCoverage)
		}
	}

	summary := svc.GetSummary(ctx)
	fmt.Fprintf(out, "Coverage %d/%d correct, streak %d.\n", summary.CoverageCorrect, summary.CoverageTotal, summary.Streak)
	return nil
}

func printPuzzle(out io.Writer, p *models.Puzzle) {
	fmt.Fprintf(out, "[%s] %s\n", p.Difficulty, situation(p))
	if p.Clock != "" || p.Score != "" {
		fmt.Fprintf(out, "  %s %s\n", p.Clock, p.Score)
	}
	if p.Play != "" {
		fmt.Fprintf(out, "  %s\n", p.Play)
	}
}

func situation(p *models.Puzzle) string {
	down := p.Down
	if down == 0 {
		down = 1
	}
	return fmt.Sprintf("%s & %s at %s", ordinal(down), p.Distance, p.FieldPosition)
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return strconv.Itoa(n) + "th"
	}
}

// readChoice prompts until the learner picks a listed option by number or
// name. ok is false on "q" or end of input.
func readChoice(scanner *bufio.Scanner, out io.Writer, options []string) (string, bool) {
	for i, opt := range options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
	}
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return "", false
		}
		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, "q") {
			return "", false
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], true
		}
		for _, opt := range options {
			if strings.EqualFold(line, opt) {
				return opt, true
			}
		}
		fmt.Fprintf(out, "Pick 1-%d, or q to quit.\n", len(options))
	}
}

func printResult(out io.Writer, r *models.AnswerResult) {
	verdict := "Wrong"
	if r.IsCorrect {
		verdict = "Correct"
	}
	fmt.Fprintf(out, "%s! Rating %d (%+d), streak %d.\n", verdict, r.NewRating, r.RatingDelta, r.NewStreak)
	if r.Explanation != "" {
		fmt.Fprintf(out, "  %s\n", r.Explanation)
	}
}

func printAnalytics(out io.Writer, a *models.AnalyticsSummary) {
	fmt.Fprintf(out, "  Pass %d%% / Run %d%% over %d plays. %s\n", a.PassRate, a.RunRate, a.SampleSize, a.Insight)
}
