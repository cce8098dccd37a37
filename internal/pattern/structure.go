package pattern

import (
	"slices"

	"github.com/roach88/mantra/internal/span"
)

// Stack plays all patterns simultaneously.
func Stack[T any](ps ...Pattern[T]) Pattern[T] {
	layers := nonSilent(ps)
	switch len(layers) {
	case 0:
		return Silence[T]()
	case 1:
		return layers[0]
	}
	return New(func(q span.Span) []span.Event[T] {
		var out []span.Event[T]
		for _, p := range layers {
			out = append(out, p.Query(q)...)
		}
		return out
	})
}

// Cat gives cycle k*n+i to pattern i. Each cycle is queried in the owning
// pattern's local [0, 1) and translated back, so every pattern replays its
// first cycle whenever it gets a turn.
func Cat[T any](ps ...Pattern[T]) Pattern[T] {
	if len(ps) == 0 {
		return Silence[T]()
	}
	return blocks(1, slices.Clone(ps))
}

// Alternate gives blocks of cyclesEach whole cycles to each pattern in turn.
// It is Cat over super-cycles of cyclesEach cycles with every pattern slowed
// by cyclesEach.
func Alternate[T any](cyclesEach int, ps ...Pattern[T]) Pattern[T] {
	if cyclesEach <= 0 || len(ps) == 0 {
		return Silence[T]()
	}
	return blocks(float64(cyclesEach), slices.Clone(ps))
}

// blocks hands consecutive blocks of size cycles to ps round-robin. Inside a
// block the owner is queried over the block scaled into [0, 1).
func blocks[T any](size float64, ps []Pattern[T]) Pattern[T] {
	n := int64(len(ps))
	return New(func(q span.Span) []span.Event[T] {
		var out []span.Event[T]
		for _, c := range q.Cycles(size) {
			p := ps[span.Mod(c.Index, n)]
			offset := c.Offset
			local := c.Local
			if size != 1 {
				local = span.Span{Start: local.Start / size, End: local.End / size}
			}
			back := func(s span.Span) span.Span {
				return s.Scale(size).Shift(offset)
			}
			out = append(out, mapSpans(p.Query(local), back)...)
		}
		return out
	})
}

// Weave interleaves patterns round-robin over periods of count cycles.
//
// For each period every pattern is queried over the whole period and its
// events with an onset inside the period are taken in time order. The
// combined events are re-laid into len(ps) × maxEventCount equal slots:
// first event of each pattern, then the second of each, and so on. Patterns
// that run out are skipped. Original timing is discarded.
func Weave[T any](count int, ps ...Pattern[T]) Pattern[T] {
	if count <= 0 || len(nonSilent(ps)) == 0 {
		return Silence[T]()
	}
	lanes := slices.Clone(ps)
	size := float64(count)
	return New(func(q span.Span) []span.Event[T] {
		var out []span.Event[T]
		for _, c := range q.Cycles(size) {
			period := span.Span{Start: c.Offset, End: c.Offset + size}
			out = append(out, weavePeriod(lanes, period, q)...)
		}
		return out
	})
}

func weavePeriod[T any](lanes []Pattern[T], period, q span.Span) []span.Event[T] {
	values := make([][]T, len(lanes))
	longest := 0
	for j, p := range lanes {
		evs := onsets(p.Query(period), period)
		slices.SortStableFunc(evs, func(a, b span.Event[T]) int {
			switch {
			case a.Whole.Start < b.Whole.Start:
				return -1
			case a.Whole.Start > b.Whole.Start:
				return 1
			}
			return 0
		})
		for _, ev := range evs {
			values[j] = append(values[j], ev.Value)
		}
		longest = max(longest, len(evs))
	}
	slots := len(lanes) * longest
	if slots == 0 {
		return nil
	}

	width := period.Duration() / float64(slots)
	var out []span.Event[T]
	slot := 0
	for round := 0; round < longest; round++ {
		for j := range lanes {
			if round >= len(values[j]) {
				continue
			}
			start := period.Start + float64(slot)*width
			whole := span.Span{Start: start, End: period.Start + float64(slot+1)*width}
			slot++
			if ev, ok := span.NewEvent(values[j][round], whole, q); ok {
				out = append(out, ev)
			}
		}
	}
	return out
}

// onsets keeps events whose whole starts inside period.
func onsets[T any](evs []span.Event[T], period span.Span) []span.Event[T] {
	out := evs[:0]
	for _, ev := range evs {
		if ev.Whole.Start >= period.Start && ev.Whole.Start < period.End {
			out = append(out, ev)
		}
	}
	return out
}
