package ir

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTimeline() Timeline {
	return Timeline{
		Events: []TimelineEvent{
			{Kind: KindText, Text: "a", StartMs: 0, DurationMs: 500},
			{Kind: KindMantra, Text: "breathe", StartMs: 500, DurationMs: 500,
				Metadata: &EventMetadata{Theme: "Focus", Difficulty: "LIGHT"}},
		},
		TotalDurationMs: 1000,
		Metadata: TimelineMetadata{
			Themes:          []string{"Focus"},
			Cycles:          1,
			CycleDurationMs: 1000,
			EventDurationMs: 3000,
			EventCount:      2,
		},
	}
}

func TestCanonicalMapEncoding(t *testing.T) {
	got, err := MarshalCanonical(sampleTimeline().CanonicalMap())
	require.NoError(t, err)

	want := `{"events":[` +
		`{"duration_ms":500,"kind":"text","start_ms":0,"text":"a"},` +
		`{"duration_ms":500,"kind":"mantra","metadata":{"difficulty":"LIGHT","theme":"Focus"},"start_ms":500,"text":"breathe"}` +
		`],"metadata":{"cycle_duration_ms":1000,"cycles":1,"event_count":2,"event_duration_ms":3000,"seed":0,"themes":["Focus"]},` +
		`"total_duration_ms":1000}`
	assert.Equal(t, want, string(got))
}

func TestCanonicalMapOmitsEmptyMetadata(t *testing.T) {
	tl := Timeline{Events: []TimelineEvent{{Kind: KindText, Text: "x", Metadata: &EventMetadata{}}}}
	m := tl.CanonicalMap()
	ev := m["events"].([]any)[0].(map[string]any)
	_, ok := ev["metadata"]
	assert.False(t, ok)
}

func TestTimelineHashStable(t *testing.T) {
	a, err := TimelineHash(sampleTimeline())
	require.NoError(t, err)
	b, err := TimelineHash(sampleTimeline())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestTimelineIDChangesWithContent(t *testing.T) {
	base := sampleTimeline()
	changed := sampleTimeline()
	changed.Events[0].Text = "b"

	id := MustTimelineID(base)
	assert.Equal(t, id, MustTimelineID(sampleTimeline()))
	assert.NotEqual(t, id, MustTimelineID(changed))

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), parsed.Version())
}

func TestTimelineIDRejectsNonFinite(t *testing.T) {
	tl := sampleTimeline()
	tl.TotalDurationMs = math.Inf(1)
	_, err := TimelineID(tl)
	assert.Error(t, err)
	assert.Panics(t, func() { MustTimelineID(tl) })
}

func TestTimelineTexts(t *testing.T) {
	assert.Equal(t, []string{"a", "breathe"}, sampleTimeline().Texts())
	assert.Equal(t, 1000.0, sampleTimeline().Events[1].EndMs())
}
