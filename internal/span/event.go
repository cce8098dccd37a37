package span

import "fmt"

// Event is one occurrence of a value returned by a query.
//
// Whole is the event's natural extent. Part is the piece of Whole that fell
// inside the query. Part == Whole exactly when the query covered the event.
type Event[T any] struct {
	Value T
	Whole Span
	Part  Span
}

// NewEvent clips whole against query. ok is false when they do not overlap.
func NewEvent[T any](value T, whole, query Span) (Event[T], bool) {
	part, ok := Intersect(whole, query)
	if !ok {
		return Event[T]{}, false
	}
	return Event[T]{Value: value, Whole: whole, Part: part}, true
}

// IsWhole reports whether the event was fully visible to its query.
func (e Event[T]) IsWhole() bool {
	return e.Part == e.Whole
}

// Valid reports whether Part lies within Whole.
func (e Event[T]) Valid() bool {
	return e.Whole.Contains(e.Part) && e.Part.Start <= e.Part.End
}

// WithSpans applies f to both Whole and Part.
func (e Event[T]) WithSpans(f func(Span) Span) Event[T] {
	return Event[T]{Value: e.Value, Whole: f(e.Whole), Part: f(e.Part)}
}

func (e Event[T]) String() string {
	return fmt.Sprintf("%v whole=%s part=%s", e.Value, e.Whole, e.Part)
}
