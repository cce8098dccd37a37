package span

import "math"

// CycleSpan is one fragment of a span cut at cycle boundaries.
//
// Local is the fragment expressed relative to the start of its cycle, so it
// always lies within [0, size). Offset is the global start of the cycle.
// The global fragment is Local.Shift(Offset).
type CycleSpan struct {
	Index  int64
	Offset float64
	Local  Span
}

// Global returns the fragment in global coordinates.
func (c CycleSpan) Global() Span {
	return c.Local.Shift(c.Offset)
}

// Cycles cuts s at every multiple of size and returns the non-empty fragments
// in time order. Cat, Alternate, Every and Weave all stitch their children
// through this one helper.
func (s Span) Cycles(size float64) []CycleSpan {
	if size <= 0 || s.Empty() {
		return nil
	}
	first, last, ok := IndexRange(s.Start/size, s.End/size)
	if !ok {
		return nil
	}

	var out []CycleSpan
	for c := first; c < last; c++ {
		begin := float64(c) * size
		part, ok := Intersect(s, Span{Start: begin, End: begin + size})
		if !ok {
			continue
		}
		out = append(out, CycleSpan{
			Index:  c,
			Offset: begin,
			Local:  part.Shift(-begin),
		})
	}
	return out
}

// MaxIndex bounds the integer positions a query may cover. Beyond it float64
// no longer represents every integer, so consecutive indices collide.
const MaxIndex = 1 << 53

// IndexRange returns the integers k with floor(start) <= k < ceil(end) as
// the half-open range [first, last). ok is false when either bound is not
// finite or lies beyond MaxIndex; callers treat that as an empty query.
func IndexRange(start, end float64) (first, last int64, ok bool) {
	lo, hi := math.Floor(start), math.Ceil(end)
	if math.IsNaN(lo) || math.IsNaN(hi) || math.Abs(lo) >= MaxIndex || math.Abs(hi) >= MaxIndex {
		return 0, 0, false
	}
	return int64(lo), int64(hi), true
}

// Mod returns the non-negative remainder of i / n. n must be positive.
func Mod(i, n int64) int64 {
	m := i % n
	if m < 0 {
		m += n
	}
	return m
}
