package pattern

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mantra/internal/span"
)

func TestFmapChangesType(t *testing.T) {
	evs := Fmap(func(s string) int { return len(s) }, Seq("a", "bb", "ccc")).QueryCycles(1)
	assert.Equal(t, []int{1, 2, 3}, values(evs))
	assert.InDeltaSlice(t, []float64{0, 1.0 / 3, 2.0 / 3}, starts(evs), eps)
}

func TestFilter(t *testing.T) {
	evs := Filter(func(s string) bool { return s != "b" }, Seq("a", "b", "c")).QueryCycles(2)
	assert.Equal(t, []string{"a", "c", "a", "c"}, values(evs))
}

func TestDegradeByBounds(t *testing.T) {
	p := Seq("a", "b", "c", "d")
	assert.Equal(t, p.QueryCycles(4), DegradeBy(0, 1, p).QueryCycles(4))
	assert.Equal(t, p.QueryCycles(4), DegradeBy(-1, 1, p).QueryCycles(4))
	assert.Empty(t, DegradeBy(1, 1, p).QueryCycles(4))
	assert.True(t, DegradeBy(2, 1, p).IsSilence())
}

func TestDegradeByStableUnderRequery(t *testing.T) {
	p := DegradeBy(0.5, 23, Fast(4, Seq("a", "b")))
	all := p.QueryCycles(8)

	var pieces []span.Event[string]
	for c := int64(0); c < 8; c++ {
		pieces = append(pieces, p.Query(span.Cycle(c))...)
	}
	assertEventsClose(t, all, pieces)
	assert.Equal(t, all, p.QueryCycles(8))
}

func TestDegradeByDropsSome(t *testing.T) {
	evs := DegradeBy(0.5, 4, Fast(16, Pure("x"))).QueryCycles(16)
	total := 16 * 16
	assert.Greater(t, len(evs), total/5)
	assert.Less(t, len(evs), total*4/5)
}

func TestDegradeBySeedMatters(t *testing.T) {
	p := Fast(16, Pure("x"))
	a := starts(DegradeBy(0.5, 1, p).QueryCycles(4))
	b := starts(DegradeBy(0.5, 2, p).QueryCycles(4))
	assert.NotEqual(t, a, b)
}

func TestEveryAppliesOnMultiples(t *testing.T) {
	p := Every(3, func(p Pattern[string]) Pattern[string] { return Fast(2, p) }, Seq("a", "b"))
	evs := p.QueryCycles(6)
	// Cycles 0 and 3 play four events; the rest play two.
	assert.Len(t, evs, 4+2+2+4+2+2)
	assert.Equal(t, []string{"a", "b", "a", "b"}, values(p.Query(span.Cycle(3))))
	assert.Equal(t, []string{"a", "b"}, values(p.Query(span.Cycle(4))))
}

func TestEveryReplaysLocalCycle(t *testing.T) {
	transform := func(p Pattern[string]) Pattern[string] { return Fast(2, p) }
	child := Slow(2, Seq("a", "b"))
	every := Every(2, transform, child)

	// Off cycles play child exactly as Cat would; on cycles play the
	// transform the same way.
	for c := int64(0); c < 4; c++ {
		want := Cat(child).Query(span.Cycle(c))
		if c%2 == 0 {
			want = Cat(transform(child)).Query(span.Cycle(c))
		}
		got := every.Query(span.Cycle(c))
		assertEventsClose(t, want, got)
	}
	assert.Equal(t, []string{"a", "b"}, values(every.Query(span.Cycle(2))))
	assert.Equal(t, []string{"a"}, values(every.Query(span.Cycle(1))))
	assert.Equal(t, []string{"a"}, values(every.Query(span.Cycle(3))))
	assert.Equal(t, span.New(3, 4), every.Query(span.Cycle(3))[0].Whole)
}

func TestEveryStitchesPartialQueries(t *testing.T) {
	upper := func(p Pattern[string]) Pattern[string] { return Fmap(strings.ToUpper, p) }
	evs := Every(2, upper, Slow(2, Pure("x"))).Query(span.New(0.5, 2.5))
	require.Len(t, evs, 3)
	assert.Equal(t, []string{"X", "x", "X"}, values(evs))
	// Each cycle restarts the slowed child, so wholes begin on cycle starts.
	assert.Equal(t, span.New(0, 2), evs[0].Whole)
	assert.Equal(t, span.New(1, 3), evs[1].Whole)
	assert.Equal(t, span.New(2, 4), evs[2].Whole)
	assert.Equal(t, span.New(2, 2.5), evs[2].Part)
	assertContained(t, evs)
}

func TestEveryDegenerate(t *testing.T) {
	p := Seq("a", "b")
	assert.Equal(t, p.QueryCycles(3), Every(0, func(p Pattern[string]) Pattern[string] { return Silence[string]() }, p).QueryCycles(3))
	assert.Equal(t, p.QueryCycles(3), Every(2, nil, p).QueryCycles(3))
	assert.Empty(t, Every(1, func(p Pattern[string]) Pattern[string] { return Silence[string]() }, p).QueryCycles(3))
}

func TestDeterminismAndContainment(t *testing.T) {
	build := func() Pattern[string] {
		return Stack(
			Cat(Slow(2, Pure("intro")), Fast(2, Seq("a", "b", "c")), Pure("outro")),
			DegradeBy(0.3, 8, FromPool([]string{"p", "q", "r"}, Random, 8)),
			Weave(2, Seq("w1", "w2"), FromPool([]string{"s", "t"}, Shuffled, 2)),
			Every(2, func(p Pattern[string]) Pattern[string] { return Late(0.125, p) }, Alternate(3, Pure("alt1"), Seq("alt2", "alt3"))),
		)
	}
	q := span.New(0.37, 7.91)
	first := build().Query(q)
	second := build().Query(q)
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
	assertContained(t, first)
	for _, ev := range first {
		assert.GreaterOrEqual(t, ev.Part.Start, q.Start-eps, "part %s outside query", ev.Part)
		assert.LessOrEqual(t, ev.Part.End, q.End+eps, "part %s outside query", ev.Part)
	}
}
