package ir

// Event kinds.
const (
	// KindText is plain text with no record behind it.
	KindText = "text"
	// KindMantra is a content record line.
	KindMantra = "mantra"
)

// Timeline is the compiled, absolute-time, start-sorted output of a pattern.
// It is created once per compile and never mutated afterwards.
type Timeline struct {
	Events          []TimelineEvent  `json:"events"`
	TotalDurationMs float64          `json:"total_duration_ms"`
	Metadata        TimelineMetadata `json:"metadata"`
}

// TimelineEvent is one scheduled item.
type TimelineEvent struct {
	Kind       string         `json:"kind"`
	Text       string         `json:"text"`
	StartMs    float64        `json:"start_ms"`
	DurationMs float64        `json:"duration_ms"`
	Metadata   *EventMetadata `json:"metadata,omitempty"`
}

// EventMetadata carries record details for events that came from content records.
type EventMetadata struct {
	Theme      string `json:"theme,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Source     string `json:"source,omitempty"`
}

// TimelineMetadata summarises how a timeline was produced.
type TimelineMetadata struct {
	Themes          []string `json:"themes"`
	Cycles          int      `json:"cycles"`
	CycleDurationMs float64  `json:"cycle_duration_ms"`
	EventDurationMs float64  `json:"event_duration_ms"`
	Seed            int64    `json:"seed"`
	EventCount      int      `json:"event_count"`
}

// EndMs returns the instant the event stops.
func (e TimelineEvent) EndMs() float64 {
	return e.StartMs + e.DurationMs
}

// Texts returns the text of every event in order.
func (t Timeline) Texts() []string {
	out := make([]string, len(t.Events))
	for i, ev := range t.Events {
		out[i] = ev.Text
	}
	return out
}

// CanonicalMap converts the timeline to plain maps and slices for MarshalCanonical.
// Empty optional fields are omitted, mirroring the JSON tags.
func (t Timeline) CanonicalMap() map[string]any {
	events := make([]any, len(t.Events))
	for i, ev := range t.Events {
		m := map[string]any{
			"kind":        ev.Kind,
			"text":        ev.Text,
			"start_ms":    ev.StartMs,
			"duration_ms": ev.DurationMs,
		}
		if md := ev.Metadata.canonicalMap(); md != nil {
			m["metadata"] = md
		}
		events[i] = m
	}

	themes := make([]any, len(t.Metadata.Themes))
	for i, th := range t.Metadata.Themes {
		themes[i] = th
	}

	return map[string]any{
		"events":            events,
		"total_duration_ms": t.TotalDurationMs,
		"metadata": map[string]any{
			"themes":            themes,
			"cycles":            t.Metadata.Cycles,
			"cycle_duration_ms": t.Metadata.CycleDurationMs,
			"event_duration_ms": t.Metadata.EventDurationMs,
			"seed":              t.Metadata.Seed,
			"event_count":       t.Metadata.EventCount,
		},
	}
}

func (m *EventMetadata) canonicalMap() map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, 3)
	if m.Theme != "" {
		out["theme"] = m.Theme
	}
	if m.Difficulty != "" {
		out["difficulty"] = m.Difficulty
	}
	if m.Source != "" {
		out["source"] = m.Source
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
