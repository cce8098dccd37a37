package pattern

import "github.com/roach88/mantra/internal/span"

// Fast speeds p up by factor: content recurs factor times per cycle.
// factor <= 0 is silence and factor == 1 returns p unchanged.
func Fast[T any](factor float64, p Pattern[T]) Pattern[T] {
	if factor <= 0 || p.IsSilence() {
		return Silence[T]()
	}
	if factor == 1 {
		return p
	}
	back := func(s span.Span) span.Span {
		return span.Span{Start: s.Start / factor, End: s.End / factor}
	}
	return New(func(q span.Span) []span.Event[T] {
		return mapSpans(p.Query(q.Scale(factor)), back)
	})
}

// Slow stretches p by factor. It is Fast(1/factor, p).
func Slow[T any](factor float64, p Pattern[T]) Pattern[T] {
	if factor <= 0 {
		return Silence[T]()
	}
	return Fast(1/factor, p)
}

// Early shifts p earlier in time by amount cycles.
func Early[T any](amount float64, p Pattern[T]) Pattern[T] {
	if amount == 0 || p.IsSilence() {
		return p
	}
	back := func(s span.Span) span.Span { return s.Shift(-amount) }
	return New(func(q span.Span) []span.Event[T] {
		return mapSpans(p.Query(q.Shift(amount)), back)
	})
}

// Late shifts p later in time by amount cycles.
func Late[T any](amount float64, p Pattern[T]) Pattern[T] {
	return Early(-amount, p)
}
