package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/mantra/internal/ir"
)

// marshalTimeline converts a timeline to canonical JSON TEXT for storage.
// Uses RFC 8785 canonical JSON so the stored body hashes to the row's ID.
func marshalTimeline(tl ir.Timeline) (string, error) {
	data, err := ir.MarshalCanonical(tl.CanonicalMap())
	if err != nil {
		return "", fmt.Errorf("marshal timeline: %w", err)
	}
	return string(data), nil
}

// unmarshalTimeline parses a stored body. Unknown fields are rejected.
func unmarshalTimeline(body string) (ir.Timeline, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.DisallowUnknownFields()

	var tl ir.Timeline
	if err := dec.Decode(&tl); err != nil {
		return ir.Timeline{}, fmt.Errorf("unmarshal timeline: %w", err)
	}
	if tl.Events == nil {
		tl.Events = []ir.TimelineEvent{}
	}
	if tl.Metadata.Themes == nil {
		tl.Metadata.Themes = []string{}
	}
	return tl, nil
}
