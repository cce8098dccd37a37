package pattern

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/mantra/internal/span"
)

// Silence returns a pattern with no events.
func Silence[T any]() Pattern[T] {
	return Pattern[T]{}
}

// Pure returns one event per cycle, each spanning the whole cycle.
func Pure[T any](v T) Pattern[T] {
	return New(func(q span.Span) []span.Event[T] {
		var out []span.Event[T]
		for _, c := range q.Cycles(1) {
			if ev, ok := span.NewEvent(v, span.Cycle(c.Index), q); ok {
				out = append(out, ev)
			}
		}
		return out
	})
}

// Seq divides every cycle into len(vs) equal slots, one value per slot.
func Seq[T any](vs ...T) Pattern[T] {
	switch len(vs) {
	case 0:
		return Silence[T]()
	case 1:
		return Pure(vs[0])
	}
	values := slices.Clone(vs)
	n := int64(len(values))
	return slotted(len(values), func(k int64) T {
		return values[span.Mod(k, n)]
	})
}

// slotted lays out consecutive global slots of width 1/perCycle and asks
// valueAt for the value of slot k. Slot k covers [k/perCycle, (k+1)/perCycle).
func slotted[T any](perCycle int, valueAt func(k int64) T) Pattern[T] {
	n := float64(perCycle)
	return New(func(q span.Span) []span.Event[T] {
		first, last, ok := span.IndexRange(q.Start*n, q.End*n)
		if !ok {
			return nil
		}
		var out []span.Event[T]
		for k := first; k < last; k++ {
			whole := span.New(float64(k)/n, float64(k+1)/n)
			if ev, ok := span.NewEvent(valueAt(k), whole, q); ok {
				out = append(out, ev)
			}
		}
		return out
	})
}

// Order selects how FromPool walks its pool.
type Order int

const (
	// Sequential plays pool[i mod n] in slot i.
	Sequential Order = iota
	// Shuffled applies one seed-derived permutation of the pool cyclically.
	Shuffled
	// Random picks independently per slot, with replacement.
	Random
)

func (o Order) String() string {
	switch o {
	case Sequential:
		return "sequential"
	case Shuffled:
		return "shuffle"
	case Random:
		return "random"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// ParseOrder accepts "sequential", "shuffle" and "random", case-insensitively.
// The empty string is Sequential.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sequential", "seq":
		return Sequential, nil
	case "shuffle", "shuffled":
		return Shuffled, nil
	case "random", "rand":
		return Random, nil
	default:
		return Sequential, fmt.Errorf("unknown pool order %q (want sequential, shuffle or random)", s)
	}
}

// FromPool plays one pool item per slot of width 1/len(pool) cycles.
//
// Slot indices are global: item positions run on across cycle boundaries
// instead of restarting at every cycle. An empty pool is silence.
func FromPool[T any](pool []T, order Order, seed int64) Pattern[T] {
	if len(pool) == 0 {
		return Silence[T]()
	}
	items := slices.Clone(pool)
	n := int64(len(items))

	var valueAt func(k int64) T
	switch order {
	case Shuffled:
		perm := span.Shuffle(len(items), seed)
		valueAt = func(k int64) T { return items[perm[span.Mod(k, n)]] }
	case Random:
		valueAt = func(k int64) T {
			i := int64(span.RandIndex(seed, k) * float64(n))
			if i >= n {
				i = n - 1
			}
			return items[i]
		}
	default:
		valueAt = func(k int64) T { return items[span.Mod(k, n)] }
	}
	return slotted(len(items), valueAt)
}
