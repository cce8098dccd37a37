// Package compiler renders patterns into absolute-time timelines.
//
// Compile queries a pattern once over [0, cycles), converts cycle positions
// to milliseconds, extracts display text and record metadata from each value
// and returns the events sorted by start time. Compilation is pure: equal
// patterns and options always produce equal timelines, which callers check
// with ir.TimelineID.
package compiler
