package analytics

import (
	"fmt"

	"github.com/vytor/xo101/internal/models"
	"github.com/vytor/xo101/internal/rating"
)

// defaultDistance stands in for distances that are not a positive number, e.g. "Goal".
const defaultDistance = 10

// DistanceBucket groups a yards-to-go value into an analytics key.
//
// The checks run in a fixed order: the numeric ranges first, then the literal
// "Goal", then "10+". A numeric distance above 9 therefore never reaches the
// Goal branch; only a non-numeric "Goal" does.
func DistanceBucket(distance string) string {
	yards, ok := models.LeadingInt(distance)
	if !ok || yards == 0 {
		yards = defaultDistance
	}

	switch {
	case yards <= 2:
		return models.Bucket1to2
	case yards <= 4:
		return models.Bucket3to4
	case yards <= 6:
		return models.Bucket5to6
	case yards <= 9:
		return models.Bucket7to9
	case distance == models.BucketGoal:
		return models.BucketGoal
	default:
		return models.Bucket10
	}
}

// NormalizeDown maps an unset down to first down.
func NormalizeDown(down int) int {
	if down == 0 {
		return 1
	}
	return down
}

// Lookup finds the first record for the puzzle's down and distance bucket and
// summarizes it. Returns nil when records is empty or nothing matches.
func Lookup(p models.Puzzle, records []models.AnalyticsRecord) *models.AnalyticsSummary {
	if len(records) == 0 {
		return nil
	}

	bucket := DistanceBucket(p.Distance)
	down := NormalizeDown(p.Down)

	for i := range records {
		rec := records[i]
		if rec.Down != down || rec.DistanceBucket != bucket {
			continue
		}
		return &models.AnalyticsSummary{
			PassRate:       percent(rec.PassRate),
			RunRate:        percent(1 - rec.PassRate),
			PassEPA:        rec.PassEPA,
			RunEPA:         rec.RunEPA,
			PassSuccess:    percent(rec.PassSuccessRate),
			RunSuccess:     percent(rec.RunSuccessRate),
			SampleSize:     rec.SampleSize,
			Insight:        Insight(percent(rec.PassRate)),
			DistanceBucket: bucket,
			FieldZone:      FieldZone(p.FieldPosition),
		}
	}
	return nil
}

// Insight renders a one-line tendency note for a pass rate percentage.
func Insight(passRate int) string {
	switch {
	case passRate > 80:
		return fmt.Sprintf("NFL teams pass %d%% of the time in this situation.", passRate)
	case passRate < 40:
		return fmt.Sprintf("This is a run-heavy situation - NFL teams run %d%% of the time.", 100-passRate)
	default:
		return fmt.Sprintf("Balanced situation - NFL pass rate is %d%%.", passRate)
	}
}

func percent(fraction float64) int {
	return rating.Round(fraction * 100)
}
