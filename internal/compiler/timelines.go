package compiler

import (
	"cmp"
	"math"
	"slices"

	"github.com/roach88/mantra/internal/ir"
)

// SimpleTimeline lays out lines as text events every intervalMs. Each event
// lasts eventDurationMs, or the interval when eventDurationMs is not positive.
func SimpleTimeline(lines []string, intervalMs, eventDurationMs float64) ir.Timeline {
	if eventDurationMs <= 0 {
		eventDurationMs = intervalMs
	}
	tl := ir.Timeline{
		Events: make([]ir.TimelineEvent, 0, len(lines)),
		Metadata: ir.TimelineMetadata{
			Themes:          []string{},
			Cycles:          len(lines),
			CycleDurationMs: intervalMs,
			EventDurationMs: eventDurationMs,
		},
	}
	for i, line := range lines {
		tl.Events = append(tl.Events, ir.TimelineEvent{
			Kind:       ir.KindText,
			Text:       line,
			StartMs:    float64(i) * intervalMs,
			DurationMs: eventDurationMs,
		})
	}
	tl.Metadata.EventCount = len(tl.Events)
	tl.TotalDurationMs = float64(len(lines)) * intervalMs
	return tl
}

// MergeTimelines overlays timelines on a shared clock. Events are re-sorted
// by start, keeping argument order for ties. The total is the longest input
// and the themes are the union. Cycle metadata comes from the first input.
func MergeTimelines(ts ...ir.Timeline) ir.Timeline {
	out := emptyLike(ts)
	for _, t := range ts {
		out.Events = append(out.Events, t.Events...)
		out.TotalDurationMs = math.Max(out.TotalDurationMs, t.TotalDurationMs)
	}
	return finish(out, ts)
}

// ConcatTimelines plays timelines one after another, offsetting each by the
// running total of the ones before it.
func ConcatTimelines(ts ...ir.Timeline) ir.Timeline {
	out := emptyLike(ts)
	cycles := 0
	for _, t := range ts {
		for _, ev := range t.Events {
			ev.StartMs += out.TotalDurationMs
			out.Events = append(out.Events, ev)
		}
		out.TotalDurationMs += t.TotalDurationMs
		cycles += t.Metadata.Cycles
	}
	out = finish(out, ts)
	out.Metadata.Cycles = cycles
	return out
}

func emptyLike(ts []ir.Timeline) ir.Timeline {
	out := ir.Timeline{Events: []ir.TimelineEvent{}}
	if len(ts) > 0 {
		out.Metadata = ts[0].Metadata
	}
	out.Metadata.Themes = []string{}
	return out
}

func finish(out ir.Timeline, ts []ir.Timeline) ir.Timeline {
	slices.SortStableFunc(out.Events, func(a, b ir.TimelineEvent) int {
		return cmp.Compare(a.StartMs, b.StartMs)
	})
	for _, t := range ts {
		out.Metadata.Themes = append(out.Metadata.Themes, t.Metadata.Themes...)
	}
	slices.Sort(out.Metadata.Themes)
	out.Metadata.Themes = slices.Compact(out.Metadata.Themes)
	out.Metadata.EventCount = len(out.Events)
	return out
}
