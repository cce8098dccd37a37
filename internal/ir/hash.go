package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainTimeline = "mantra/timeline/v1"
)

// timelineNamespace is the UUIDv5 namespace for timeline IDs.
var timelineNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/roach88/mantra/timeline"))

// domainBytes frames data as domain + 0x00 + data.
// The null byte separator prevents domain/data boundary ambiguity.
func domainBytes(domain string, data []byte) []byte {
	out := make([]byte, 0, len(domain)+1+len(data))
	out = append(out, domain...)
	out = append(out, 0x00)
	return append(out, data...)
}

// hashWithDomain computes SHA-256 over domain + 0x00 + data.
func hashWithDomain(domain string, data []byte) string {
	sum := sha256.Sum256(domainBytes(domain, data))
	return hex.EncodeToString(sum[:])
}

// TimelineHash computes the hex SHA-256 content hash of a timeline.
func TimelineHash(t Timeline) (string, error) {
	canonical, err := MarshalCanonical(t.CanonicalMap())
	if err != nil {
		return "", fmt.Errorf("TimelineHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainTimeline, canonical), nil
}

// TimelineID computes a stable UUIDv5 for a timeline.
// Equal timelines get equal IDs across runs and machines.
func TimelineID(t Timeline) (string, error) {
	canonical, err := MarshalCanonical(t.CanonicalMap())
	if err != nil {
		return "", fmt.Errorf("TimelineID: failed to marshal: %w", err)
	}
	return uuid.NewSHA1(timelineNamespace, domainBytes(DomainTimeline, canonical)).String(), nil
}

// MustTimelineID is like TimelineID but panics on error.
// Use only in tests or when the timeline is known to be finite.
func MustTimelineID(t Timeline) string {
	id, err := TimelineID(t)
	if err != nil {
		panic(err)
	}
	return id
}
