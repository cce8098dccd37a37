// Package ir defines the compiled timeline representation and its canonical
// encoding.
//
// A Timeline is the only artefact the pattern compiler hands to the outside
// world. This package holds the value types plus two pieces of machinery
// needed to treat timelines as content:
//
//   - MarshalCanonical: RFC 8785 style canonical JSON (sorted keys by UTF-16
//     code units, NFC strings, no HTML escaping, shortest float form).
//   - TimelineHash / TimelineID: content-addressed identity with domain
//     separation, so two compiles with equal inputs and seeds can be compared
//     by ID alone.
//
// ir imports nothing internal. All other packages may import ir.
//
// Conventions:
//   - All JSON tags use snake_case.
//   - Times are milliseconds relative to the start of the timeline, never
//     wall-clock timestamps.
package ir
