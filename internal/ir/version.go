package ir

// Version constants for the timeline format and the tool.
const (
	// TimelineVersion is the canonical timeline encoding version.
	TimelineVersion = "1"

	// ToolVersion is the mantra version.
	ToolVersion = "0.1.0"
)
