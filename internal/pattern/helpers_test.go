package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mantra/internal/span"
)

const eps = 1e-9

func values[T any](evs []span.Event[T]) []T {
	out := make([]T, len(evs))
	for i, ev := range evs {
		out[i] = ev.Value
	}
	return out
}

func starts[T any](evs []span.Event[T]) []float64 {
	out := make([]float64, len(evs))
	for i, ev := range evs {
		out[i] = ev.Whole.Start
	}
	return out
}

// assertEventsClose compares two event lists value by value with span tolerance.
func assertEventsClose[T any](t *testing.T, want, got []span.Event[T]) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Value, got[i].Value, "event %d value", i)
		assert.True(t, want[i].Whole.Equal(got[i].Whole, eps), "event %d whole: want %s got %s", i, want[i].Whole, got[i].Whole)
		assert.True(t, want[i].Part.Equal(got[i].Part, eps), "event %d part: want %s got %s", i, want[i].Part, got[i].Part)
	}
}

// assertContained checks whole.start <= part.start <= part.end <= whole.end for every event.
func assertContained[T any](t *testing.T, evs []span.Event[T]) {
	t.Helper()
	for i, ev := range evs {
		assert.True(t, ev.Valid(), "event %d: part %s not within whole %s", i, ev.Part, ev.Whole)
	}
}
