package compiler

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/roach88/mantra/internal/content"
	"github.com/roach88/mantra/internal/ir"
	"github.com/roach88/mantra/internal/pattern"
	"github.com/roach88/mantra/internal/span"
)

// Compile renders p over [0, opts.Cycles) into a timeline.
//
// Each event starts at its whole's onset and lasts for the whole's length,
// capped at EventDurationMs. An event whose onset lies before 0 is emitted
// once, starting at 0 with the part before 0 trimmed off; if its capped
// length ends by 0 it is dropped. Invalid options yield a timeline with no
// events; use Options.Validate to learn why.
//
// Compile panics if the pattern returns an event whose part is not inside
// its whole.
func Compile[T any](p pattern.Pattern[T], opts Options) ir.Timeline {
	opts = opts.withDefaults()
	tl := ir.Timeline{
		Events: []ir.TimelineEvent{},
		Metadata: ir.TimelineMetadata{
			Themes:          []string{},
			Cycles:          opts.Cycles,
			CycleDurationMs: opts.CycleDurationMs,
			EventDurationMs: opts.EventDurationMs,
			Seed:            opts.Seed,
		},
	}
	if len(opts.Validate()) > 0 {
		return tl
	}

	q := span.Span{Start: 0, End: float64(opts.Cycles)}
	themes := make(map[string]struct{})
	for _, ev := range p.Query(q) {
		if !ev.Valid() {
			panic(fmt.Sprintf("compiler: event part %s is not inside whole %s", ev.Part, ev.Whole))
		}
		if !isOnsetFragment(ev.Whole, ev.Part, q) {
			continue
		}

		startMs := ev.Whole.Start * opts.CycleDurationMs
		durationMs := math.Min(ev.Whole.Duration()*opts.CycleDurationMs, opts.EventDurationMs)
		if startMs < 0 {
			// Pre-roll: keep only what sounds after 0.
			durationMs += startMs
			startMs = 0
			if durationMs <= 0 {
				continue
			}
		}

		x := content.Extract(any(ev.Value))
		tl.Events = append(tl.Events, ir.TimelineEvent{
			Kind:       x.Kind,
			Text:       x.Text,
			StartMs:    startMs,
			DurationMs: durationMs,
			Metadata:   x.Meta,
		})
		if x.Meta != nil && x.Meta.Theme != "" {
			themes[x.Meta.Theme] = struct{}{}
		}
	}

	slices.SortStableFunc(tl.Events, func(a, b ir.TimelineEvent) int {
		return cmp.Compare(a.StartMs, b.StartMs)
	})
	for th := range themes {
		tl.Metadata.Themes = append(tl.Metadata.Themes, th)
	}
	slices.Sort(tl.Metadata.Themes)

	tl.Metadata.EventCount = len(tl.Events)
	tl.TotalDurationMs = float64(opts.Cycles) * opts.CycleDurationMs
	return tl
}

// isOnsetFragment reports whether part is the fragment of whole that should
// represent it. Combinators that split work per cycle can return one
// fragment per cycle a long event spans; only the one carrying the onset,
// or the first one inside the query when the onset is earlier, is kept.
func isOnsetFragment(whole, part, q span.Span) bool {
	if math.Abs(part.Start-whole.Start) < span.Epsilon {
		return true
	}
	return whole.Start < q.Start && math.Abs(part.Start-q.Start) < span.Epsilon
}
