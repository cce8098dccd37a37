package content

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Difficulty is the intensity level of a record. Levels are totally ordered
// from Basic to Extreme. The zero value means "not set" and is treated as
// Basic wherever a level is required.
type Difficulty int

const (
	Unset Difficulty = iota
	Basic
	Light
	Medium
	Deep
	Extreme
)

var difficultyNames = map[Difficulty]string{
	Basic:   "BASIC",
	Light:   "LIGHT",
	Medium:  "MEDIUM",
	Deep:    "DEEP",
	Extreme: "EXTREME",
}

// difficultyAliases maps lower-case spellings to canonical levels.
var difficultyAliases = map[string]Difficulty{
	"basic":        Basic,
	"easy":         Basic,
	"gentle":       Basic,
	"light":        Light,
	"mild":         Light,
	"medium":       Medium,
	"moderate":     Medium,
	"intermediate": Medium,
	"deep":         Deep,
	"intense":      Deep,
	"advanced":     Deep,
	"extreme":      Extreme,
	"max":          Extreme,
}

// ParseDifficulty reads a level name case-insensitively, accepting aliases.
// Missing or unknown names are Basic; this never fails.
func ParseDifficulty(s string) Difficulty {
	if d, ok := difficultyAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d
	}
	return Basic
}

// LookupDifficulty is like ParseDifficulty but reports whether s was recognised.
func LookupDifficulty(s string) (Difficulty, bool) {
	d, ok := difficultyAliases[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}

// Level returns d, or Basic when d is unset or out of range.
func (d Difficulty) Level() Difficulty {
	if d < Basic || d > Extreme {
		return Basic
	}
	return d
}

// String returns the canonical upper-case name, or "" when unset.
func (d Difficulty) String() string {
	if d == Unset {
		return ""
	}
	return difficultyNames[d.Level()]
}

// MarshalJSON writes the canonical name.
func (d Difficulty) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Level().String())
}

// UnmarshalJSON accepts any spelling ParseDifficulty accepts.
func (d *Difficulty) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*d = Basic
		return nil
	}
	*d = ParseDifficulty(s)
	return nil
}

// MarshalYAML writes the canonical name.
func (d Difficulty) MarshalYAML() (any, error) {
	return d.Level().String(), nil
}

// UnmarshalYAML accepts any spelling ParseDifficulty accepts.
func (d *Difficulty) UnmarshalYAML(node *yaml.Node) error {
	*d = ParseDifficulty(node.Value)
	return nil
}
