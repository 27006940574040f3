package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Puzzle is one situational decision question. Loaded once, never mutated.
type Puzzle struct {
	ID            string     `json:"id" yaml:"id" validate:"required"`
	Difficulty    Difficulty `json:"difficulty" yaml:"difficulty"`
	Down          int        `json:"down" yaml:"down"`
	Distance      string     `json:"distance" yaml:"distance"`
	FieldPosition string     `json:"field_pos" yaml:"field_pos"`
	Clock         string     `json:"clock,omitempty" yaml:"clock"`
	Score         string     `json:"score,omitempty" yaml:"score"`
	Play          string     `json:"play,omitempty" yaml:"play"`
	Coverage      string     `json:"coverage,omitempty" yaml:"coverage"`
	Answers       []string   `json:"answers" yaml:"answers"`
	Correct       string     `json:"correct" yaml:"correct"`
	Explanation   string     `json:"explanation" yaml:"explanation"`
}

// UnmarshalJSON accepts id, down and distance as either strings or numbers,
// since hand-edited content files mix both.
func (p *Puzzle) UnmarshalJSON(data []byte) error {
	type alias Puzzle
	aux := struct {
		*alias
		ID       any `json:"id"`
		Down     any `json:"down"`
		Distance any `json:"distance"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.ID = scalarString(aux.ID)
	p.Distance = scalarString(aux.Distance)
	p.Down, _ = LeadingInt(scalarString(aux.Down))
	return nil
}

// UnmarshalYAML gives YAML sources the same leniency as UnmarshalJSON.
func (p *Puzzle) UnmarshalYAML(value *yaml.Node) error {
	type alias Puzzle
	if value.Kind != yaml.MappingNode {
		return value.Decode((*alias)(p))
	}

	node := *value
	node.Content = make([]*yaml.Node, len(value.Content))
	copy(node.Content, value.Content)
	for i := 0; i+1 < len(node.Content); i += 2 {
		v := node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			continue
		}
		switch node.Content[i].Value {
		case "id", "distance":
			node.Content[i+1] = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Value, Line: v.Line, Column: v.Column}
		case "down":
			down, _ := LeadingInt(v.Value)
			node.Content[i+1] = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(down), Line: v.Line, Column: v.Column}
		}
	}
	return node.Decode((*alias)(p))
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

// LeadingInt parses the integer prefix of s the way a lenient form parser would:
// leading whitespace and an optional sign are allowed, trailing garbage is ignored.
// ok is false when s has no leading digits. Values too large for an int
// saturate at math.MaxInt (math.MinInt when negative).
func LeadingInt(s string) (n int, ok bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	start := i
	overflow := false
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		d := int(s[i] - '0')
		if !overflow && n > (math.MaxInt-d)/10 {
			overflow = true
		}
		if !overflow {
			n = n*10 + d
		}
		i++
	}
	if i == start {
		return 0, false
	}
	switch {
	case overflow && neg:
		return math.MinInt, true
	case overflow:
		return math.MaxInt, true
	case neg:
		return -n, true
	}
	return n, true
}
