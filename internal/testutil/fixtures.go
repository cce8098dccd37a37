// Package testutil holds fixtures shared by package tests: record pools,
// small timelines and instrumented record providers.
package testutil

import (
	"fmt"

	"github.com/roach88/mantra/internal/content"
	"github.com/roach88/mantra/internal/ir"
)

// Records builds one normalized record per line, all in theme.
func Records(theme string, lines ...string) []content.Record {
	out := make([]content.Record, len(lines))
	for i, line := range lines {
		out[i] = content.Record{Line: line, Theme: theme, Source: "fixture"}.Normalize()
	}
	return out
}

// Graded builds one record per level, named "<theme> <level>" so tests can
// tell from the text which level was picked.
func Graded(theme string, levels ...content.Difficulty) []content.Record {
	out := make([]content.Record, len(levels))
	for i, d := range levels {
		out[i] = content.Record{
			Line:       fmt.Sprintf("%s %s", theme, d),
			Theme:      theme,
			Difficulty: d,
			Source:     "fixture",
		}.Normalize()
	}
	return out
}

// TextTimeline lays texts end to end, one every intervalMs, as plain text
// events. Metadata is filled in so the timeline round-trips through storage.
func TextTimeline(intervalMs float64, texts ...string) ir.Timeline {
	events := make([]ir.TimelineEvent, len(texts))
	for i, text := range texts {
		events[i] = ir.TimelineEvent{
			Kind:       ir.KindText,
			Text:       text,
			StartMs:    float64(i) * intervalMs,
			DurationMs: intervalMs,
		}
	}
	return ir.Timeline{
		Events:          events,
		TotalDurationMs: float64(len(texts)) * intervalMs,
		Metadata: ir.TimelineMetadata{
			Themes:          []string{},
			Cycles:          len(texts),
			CycleDurationMs: intervalMs,
			EventDurationMs: intervalMs,
			EventCount:      len(texts),
		},
	}
}
