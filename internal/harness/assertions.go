package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/mantra/internal/content"
	"github.com/roach88/mantra/internal/ir"
)

// maxListedEvents caps how much of the timeline an AssertionError prints.
const maxListedEvents = 20

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string             // Assertion type for categorization
	Expected string             // Human-readable expected outcome
	Actual   string             // Human-readable actual outcome
	Events   []ir.TimelineEvent // Timeline for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Events) > 0 {
		fmt.Fprintf(&buf, "\nTimeline:\n")
		for i, ev := range e.Events {
			if i == maxListedEvents {
				fmt.Fprintf(&buf, "  ... %d more\n", len(e.Events)-i)
				break
			}
			fmt.Fprintf(&buf, "  [%d] %8.1fms %s\n", i+1, ev.StartMs, ev.Text)
		}
	}

	return buf.String()
}

// EvaluateAssertions runs every assertion against tl and returns the failure
// messages in assertion order.
func EvaluateAssertions(tl ir.Timeline, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluate(tl, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluate(tl ir.Timeline, a Assertion) error {
	switch a.Type {
	case AssertEventCount:
		return assertEventCount(tl, a)
	case AssertContains:
		return assertContains(tl, a)
	case AssertNeverContains:
		return assertNeverContains(tl, a)
	case AssertOrder:
		return assertOrder(tl, a)
	case AssertStartsWith:
		return assertStartsWith(tl, a)
	case AssertMaxDifficulty:
		return assertMaxDifficulty(tl, a)
	case AssertTotalDuration:
		return assertTotalDuration(tl, a)
	}
	return fmt.Errorf("unknown assertion type %q", a.Type)
}

// assertEventCount checks the exact number of events.
func assertEventCount(tl ir.Timeline, a Assertion) error {
	want := 0
	if a.Count != nil {
		want = *a.Count
	}
	if len(tl.Events) != want {
		return &AssertionError{
			Type:     AssertEventCount,
			Expected: fmt.Sprintf("%d events", want),
			Actual:   fmt.Sprintf("%d events", len(tl.Events)),
			Events:   tl.Events,
		}
	}
	return nil
}

// assertContains checks that some event has the given text.
func assertContains(tl ir.Timeline, a Assertion) error {
	if indexOf(tl, a.Text, 0) >= 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertContains,
		Expected: fmt.Sprintf("an event with text %q", a.Text),
		Actual:   "not found in timeline",
		Events:   tl.Events,
	}
}

// assertNeverContains checks that no event has the given text.
func assertNeverContains(tl ir.Timeline, a Assertion) error {
	i := indexOf(tl, a.Text, 0)
	if i < 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertNeverContains,
		Expected: fmt.Sprintf("no event with text %q", a.Text),
		Actual:   fmt.Sprintf("found at %.1fms (event %d)", tl.Events[i].StartMs, i+1),
		Events:   tl.Events,
	}
}

// assertOrder checks that the texts appear in order. Texts don't need to be
// consecutive (intervening events are allowed); each one is searched for
// after the previous match.
func assertOrder(tl ir.Timeline, a Assertion) error {
	from := 0
	for _, text := range a.Texts {
		i := indexOf(tl, text, from)
		if i < 0 {
			return &AssertionError{
				Type:     AssertOrder,
				Expected: fmt.Sprintf("texts in order: %q", a.Texts),
				Actual:   fmt.Sprintf("%q not found after event %d", text, from),
				Events:   tl.Events,
			}
		}
		from = i + 1
	}
	return nil
}

// assertStartsWith checks the texts of the first events.
func assertStartsWith(tl ir.Timeline, a Assertion) error {
	texts := tl.Texts()
	if len(texts) >= len(a.Texts) {
		match := true
		for i, want := range a.Texts {
			if texts[i] != want {
				match = false
				break
			}
		}
		if match {
			return nil
		}
	}
	n := min(len(texts), len(a.Texts))
	return &AssertionError{
		Type:     AssertStartsWith,
		Expected: fmt.Sprintf("timeline starting %q", a.Texts),
		Actual:   fmt.Sprintf("timeline starting %q", texts[:n]),
		Events:   tl.Events,
	}
}

// assertMaxDifficulty checks that no record-backed event exceeds the level.
func assertMaxDifficulty(tl ir.Timeline, a Assertion) error {
	limit := content.ParseDifficulty(a.Difficulty)
	for i, ev := range tl.Events {
		if ev.Metadata == nil || ev.Metadata.Difficulty == "" {
			continue
		}
		if got := content.ParseDifficulty(ev.Metadata.Difficulty); got > limit {
			return &AssertionError{
				Type:     AssertMaxDifficulty,
				Expected: fmt.Sprintf("no event harder than %s", limit),
				Actual:   fmt.Sprintf("event %d %q is %s", i+1, ev.Text, got),
				Events:   tl.Events,
			}
		}
	}
	return nil
}

// assertTotalDuration checks the timeline length.
func assertTotalDuration(tl ir.Timeline, a Assertion) error {
	if a.Ms != nil && tl.TotalDurationMs == *a.Ms {
		return nil
	}
	want := "unset"
	if a.Ms != nil {
		want = fmt.Sprintf("%gms", *a.Ms)
	}
	return &AssertionError{
		Type:     AssertTotalDuration,
		Expected: want,
		Actual:   fmt.Sprintf("%gms", tl.TotalDurationMs),
	}
}

func indexOf(tl ir.Timeline, text string, from int) int {
	for i := from; i < len(tl.Events); i++ {
		if tl.Events[i].Text == text {
			return i
		}
	}
	return -1
}
