package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/mantra/internal/content"
)

// Scenario defines a session test.
// A scenario compiles a session, or an inline pattern, and asserts on the
// resulting timeline.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Session is the path of a YAML or CUE session file.
	// Relative paths are resolved against the scenario file's directory.
	Session string `yaml:"session,omitempty"`

	// Pattern is an inline pattern tree, used when Session is empty.
	Pattern any `yaml:"pattern,omitempty"`

	// Records is the path of a JSON record file imported before compiling.
	// Relative paths are resolved against the scenario file's directory.
	Records string `yaml:"records,omitempty"`

	// Options override the session's compile options.
	Options Overrides `yaml:"options,omitempty"`

	// Assertions validate the compiled timeline.
	Assertions []Assertion `yaml:"assertions"`
}

// Overrides replace individual compile options. Zero values leave the
// session's value in place.
type Overrides struct {
	Cycles  int     `yaml:"cycles,omitempty"`
	CycleMs float64 `yaml:"cycle_ms,omitempty"`
	EventMs float64 `yaml:"event_ms,omitempty"`
	Seed    *int64  `yaml:"seed,omitempty"`
}

// Assertion validates the compiled timeline.
type Assertion struct {
	// Type specifies the assertion type:
	// - "event_count": the timeline has exactly Count events
	// - "contains": some event has text Text
	// - "never_contains": no event has text Text
	// - "order": Texts appear in this relative order
	// - "starts_with": the first events have texts Texts
	// - "max_difficulty": no record event is harder than Difficulty
	// - "total_duration": the timeline lasts Ms milliseconds
	Type string `yaml:"type"`

	// Count is the expected number of events (used by event_count).
	Count *int `yaml:"count,omitempty"`

	// Text is the event text to look for (used by contains, never_contains).
	Text string `yaml:"text,omitempty"`

	// Texts is an expected text sequence (used by order, starts_with).
	Texts []string `yaml:"texts,omitempty"`

	// Difficulty is the hardest allowed level (used by max_difficulty).
	Difficulty string `yaml:"difficulty,omitempty"`

	// Ms is the expected total duration (used by total_duration).
	Ms *float64 `yaml:"ms,omitempty"`
}

// Assertion type constants.
const (
	AssertEventCount    = "event_count"
	AssertContains      = "contains"
	AssertNeverContains = "never_contains"
	AssertOrder         = "order"
	AssertStartsWith    = "starts_with"
	AssertMaxDifficulty = "max_difficulty"
	AssertTotalDuration = "total_duration"
)

// LoadScenario reads and parses a scenario YAML file, resolving session and
// record paths relative to the file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving session and record paths relative to the provided base path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	scenario.Session = resolve(basePath, scenario.Session)
	scenario.Records = resolve(basePath, scenario.Records)

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml and *.yml scenario in dir, sorted by
// file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob scenarios: %w", err)
		}
		paths = append(paths, matches...)
	}
	slices.Sort(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) || base == "" {
		return path
	}
	return filepath.Join(base, path)
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Session == "" && s.Pattern == nil:
		return fmt.Errorf("one of session or pattern is required")
	case s.Session != "" && s.Pattern != nil:
		return fmt.Errorf("session and pattern are mutually exclusive")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for _, p := range []string{s.Session, s.Records} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", p)
		}
	}

	if s.Options.Cycles < 0 || s.Options.CycleMs < 0 || s.Options.EventMs < 0 {
		return fmt.Errorf("options must be non-negative")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertEventCount:
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: non-negative count is required for event_count", index)
		}
	case AssertContains, AssertNeverContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
	case AssertOrder, AssertStartsWith:
		if len(a.Texts) == 0 {
			return fmt.Errorf("assertions[%d]: texts list is required for %s", index, a.Type)
		}
	case AssertMaxDifficulty:
		if _, ok := content.LookupDifficulty(a.Difficulty); !ok {
			return fmt.Errorf("assertions[%d]: unknown difficulty %q for max_difficulty", index, a.Difficulty)
		}
	case AssertTotalDuration:
		if a.Ms == nil {
			return fmt.Errorf("assertions[%d]: ms is required for total_duration", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
