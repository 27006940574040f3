package analytics

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	ZoneOwnDeep      = "own_deep"
	ZoneOwnTerritory = "own_territory"
	ZoneRedZone      = "red_zone"
	ZoneGoalLine     = "goal_line"
	ZoneOppTerritory = "opp_territory"
	ZoneMidfield     = "midfield"
)

var yardLineRe = regexp.MustCompile(`\d+`)

// FieldZone classifies a field position such as "Own 15" or "Opponent 8".
// The result is descriptive only and is not an analytics key.
//
// ZoneGoalLine is never produced: anything inside the opponent 5 is already
// inside the opponent 20 and classified as ZoneRedZone first.
func FieldZone(fieldPos string) string {
	yardLine, hasYardLine := firstNumber(fieldPos)

	switch {
	case strings.Contains(fieldPos, "Own") && hasYardLine && yardLine <= 20:
		return ZoneOwnDeep
	case strings.Contains(fieldPos, "Own"):
		return ZoneOwnTerritory
	case strings.Contains(fieldPos, "Opponent") && hasYardLine && yardLine <= 20:
		return ZoneRedZone
	case strings.Contains(fieldPos, "Opponent") && hasYardLine && yardLine <= 5:
		return ZoneGoalLine
	case strings.Contains(fieldPos, "Opponent"):
		return ZoneOppTerritory
	default:
		return ZoneMidfield
	}
}

func firstNumber(s string) (int, bool) {
	m := yardLineRe.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}
