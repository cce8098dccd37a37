package span

import (
	"fmt"
	"math"
)

// Epsilon is the narrowest extent, in cycles, an intersection may have.
// Narrower slivers only arise from float rounding at warped boundaries
// (a query scaled by 1/3 and back) and are treated as empty.
const Epsilon = 1e-9

// Span is a half-open interval [Start, End) in cycle coordinates.
type Span struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// New returns the span [start, end).
// A reversed pair collapses to the empty span at start so Start <= End always holds.
func New(start, end float64) Span {
	if end < start {
		end = start
	}
	return Span{Start: start, End: end}
}

// Cycle returns the span of cycle n, [n, n+1).
func Cycle(n int64) Span {
	return Span{Start: float64(n), End: float64(n + 1)}
}

// Duration returns End - Start.
func (s Span) Duration() float64 {
	return s.End - s.Start
}

// Empty reports whether the span has no extent.
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// Overlaps reports whether the two spans share any instant.
func Overlaps(a, b Span) bool {
	return a.Start < b.End && b.Start < a.End
}

// Intersect returns the common sub-span of a and b.
// ok is false when the spans do not overlap by at least Epsilon.
func Intersect(a, b Span) (Span, bool) {
	start := math.Max(a.Start, b.Start)
	end := math.Min(a.End, b.End)
	if end-start < Epsilon {
		return Span{}, false
	}
	return Span{Start: start, End: end}, true
}

// Contains reports whether inner lies entirely within s.
func (s Span) Contains(inner Span) bool {
	return s.Start <= inner.Start && inner.End <= s.End
}

// Shift moves both bounds by d.
func (s Span) Shift(d float64) Span {
	return Span{Start: s.Start + d, End: s.End + d}
}

// Scale multiplies both bounds by f. f must be positive.
func (s Span) Scale(f float64) Span {
	return Span{Start: s.Start * f, End: s.End * f}
}

// Equal compares two spans within tolerance eps.
func (s Span) Equal(o Span, eps float64) bool {
	return math.Abs(s.Start-o.Start) <= eps && math.Abs(s.End-o.End) <= eps
}

func (s Span) String() string {
	return fmt.Sprintf("[%g, %g)", s.Start, s.End)
}
