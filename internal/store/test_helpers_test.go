package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/mantra/internal/content"
	"github.com/roach88/mantra/internal/ir"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testRecords returns a small two-theme pool.
func testRecords() []content.Record {
	return []content.Record{
		{Line: "I am here", Theme: "Focus", Difficulty: content.Basic, Source: "focus.json"},
		{Line: "Only this task", Theme: "Focus", Difficulty: content.Light},
		{Line: "Nothing else matters", Theme: "Focus", Difficulty: content.Deep, Subject: "she"},
		{Line: "Let go", Theme: "Calm"},
	}
}

// testTimeline returns a small timeline with one record-backed event.
func testTimeline() ir.Timeline {
	return ir.Timeline{
		Events: []ir.TimelineEvent{
			{Kind: ir.KindText, Text: "intro", StartMs: 0, DurationMs: 1000},
			{Kind: ir.KindMantra, Text: "Let go", StartMs: 1000, DurationMs: 1000,
				Metadata: &ir.EventMetadata{Theme: "Calm", Difficulty: "BASIC"}},
		},
		TotalDurationMs: 2000,
		Metadata: ir.TimelineMetadata{
			Themes:          []string{"Calm"},
			Cycles:          2,
			CycleDurationMs: 1000,
			EventDurationMs: 3000,
			Seed:            4,
			EventCount:      2,
		},
	}
}
