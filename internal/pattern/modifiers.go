package pattern

import "github.com/roach88/mantra/internal/span"

// Fmap transforms the value of every event.
func Fmap[T, U any](f func(T) U, p Pattern[T]) Pattern[U] {
	if p.IsSilence() || f == nil {
		return Silence[U]()
	}
	return New(func(q span.Span) []span.Event[U] {
		evs := p.Query(q)
		if len(evs) == 0 {
			return nil
		}
		out := make([]span.Event[U], len(evs))
		for i, ev := range evs {
			out[i] = span.Event[U]{Value: f(ev.Value), Whole: ev.Whole, Part: ev.Part}
		}
		return out
	})
}

// Filter keeps the events whose value satisfies pred.
func Filter[T any](pred func(T) bool, p Pattern[T]) Pattern[T] {
	if p.IsSilence() || pred == nil {
		return p
	}
	return New(func(q span.Span) []span.Event[T] {
		evs := p.Query(q)
		out := evs[:0]
		for _, ev := range evs {
			if pred(ev.Value) {
				out = append(out, ev)
			}
		}
		return out
	})
}

// DegradeBy drops each event with probability prob.
//
// The decision is keyed on the event's whole start and seed, so an event at
// a given absolute position is always kept or always dropped regardless of
// the queried span. prob <= 0 returns p and prob >= 1 is silence.
func DegradeBy[T any](prob float64, seed int64, p Pattern[T]) Pattern[T] {
	if prob <= 0 {
		return p
	}
	if prob >= 1 {
		return Silence[T]()
	}
	return New(func(q span.Span) []span.Event[T] {
		evs := p.Query(q)
		out := evs[:0]
		for _, ev := range evs {
			if span.RandAt(seed, ev.Whole.Start) >= prob {
				out = append(out, ev)
			}
		}
		return out
	})
}

// Every plays transform(p) in cycles c where c mod n == 0 and p elsewhere.
//
// Like Cat, each cycle is queried over its local span and moved back by the
// cycle offset, so the chosen pattern replays its own first cycle.
// n <= 0 returns p.
func Every[T any](n int, transform func(Pattern[T]) Pattern[T], p Pattern[T]) Pattern[T] {
	if n <= 0 || transform == nil {
		return p
	}
	transformed := transform(p)
	period := int64(n)
	return New(func(q span.Span) []span.Event[T] {
		var out []span.Event[T]
		for _, c := range q.Cycles(1) {
			src := p
			if span.Mod(c.Index, period) == 0 {
				src = transformed
			}
			offset := c.Offset
			out = append(out, mapSpans(src.Query(c.Local), func(s span.Span) span.Span {
				return s.Shift(offset)
			})...)
		}
		return out
	})
}
