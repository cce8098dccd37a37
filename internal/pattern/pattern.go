package pattern

import "github.com/roach88/mantra/internal/span"

// QueryFunc returns the events of a pattern that overlap the queried span.
// Implementations must be pure and must return a freshly allocated slice.
type QueryFunc[T any] func(span.Span) []span.Event[T]

// Pattern is a pure function from a span of cycles to events.
// The zero value is silence.
type Pattern[T any] struct {
	query QueryFunc[T]
}

// New wraps q as a pattern. A nil q yields silence.
func New[T any](q QueryFunc[T]) Pattern[T] {
	return Pattern[T]{query: q}
}

// Query returns the events overlapping s. Empty spans yield no events.
func (p Pattern[T]) Query(s span.Span) []span.Event[T] {
	if p.query == nil || s.Empty() {
		return nil
	}
	return p.query(s)
}

// QueryCycles queries [0, n).
func (p Pattern[T]) QueryCycles(n int) []span.Event[T] {
	return p.Query(span.New(0, float64(n)))
}

// IsSilence reports whether p can never produce events because it was built
// as silence. A non-silent pattern may still return no events for a span.
func (p Pattern[T]) IsSilence() bool {
	return p.query == nil
}

// mapSpans applies f to every Whole and Part of evs in place.
func mapSpans[T any](evs []span.Event[T], f func(span.Span) span.Span) []span.Event[T] {
	for i := range evs {
		evs[i] = evs[i].WithSpans(f)
	}
	return evs
}

// nonSilent drops patterns built as silence.
func nonSilent[T any](ps []Pattern[T]) []Pattern[T] {
	out := make([]Pattern[T], 0, len(ps))
	for _, p := range ps {
		if !p.IsSilence() {
			out = append(out, p)
		}
	}
	return out
}
