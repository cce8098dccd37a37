package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mantra/internal/span"
)

func TestPureCoverage(t *testing.T) {
	for _, n := range []int{1, 3, 8} {
		evs := Pure("x").QueryCycles(n)
		require.Len(t, evs, n)
		for k, ev := range evs {
			assert.Equal(t, span.Cycle(int64(k)), ev.Whole)
			assert.True(t, ev.IsWhole())
		}
	}
}

func TestPurePartialQuery(t *testing.T) {
	evs := Pure("x").Query(span.New(0.5, 1.5))
	require.Len(t, evs, 2)
	assert.Equal(t, span.New(0, 1), evs[0].Whole)
	assert.Equal(t, span.New(0.5, 1), evs[0].Part)
	assert.Equal(t, span.New(1, 2), evs[1].Whole)
	assert.Equal(t, span.New(1, 1.5), evs[1].Part)
}

func TestSeqSubdividesCycle(t *testing.T) {
	evs := Seq("a", "b", "c").QueryCycles(2)
	require.Len(t, evs, 6)
	assert.Equal(t, []string{"a", "b", "c", "a", "b", "c"}, values(evs))
	assert.InDeltaSlice(t, []float64{0, 1.0 / 3, 2.0 / 3, 1, 4.0 / 3, 5.0 / 3}, starts(evs), eps)
	assertContained(t, evs)
}

func TestSeqDegenerateArities(t *testing.T) {
	assert.True(t, Seq[string]().IsSilence())
	assert.Empty(t, Seq[string]().QueryCycles(4))
	assert.Equal(t, []string{"solo", "solo"}, values(Seq("solo").QueryCycles(2)))
}

func TestSilence(t *testing.T) {
	assert.Empty(t, Silence[int]().QueryCycles(100))
	var zero Pattern[int]
	assert.Empty(t, zero.Query(span.New(0, 5)))
}

func TestEmptyQuerySpan(t *testing.T) {
	assert.Empty(t, Pure(1).Query(span.New(2, 2)))
}

func TestFromPoolSequential(t *testing.T) {
	evs := FromPool([]string{"a", "b", "c"}, Sequential, 0).QueryCycles(2)
	assert.Equal(t, []string{"a", "b", "c", "a", "b", "c"}, values(evs))
}

func TestFromPoolSlotsAreGlobal(t *testing.T) {
	pool := []string{"a", "b", "c", "d"}
	p := FromPool(pool, Random, 5)
	all := p.QueryCycles(6)
	require.Len(t, all, 24)

	// Querying one cycle alone must match the same slots of the long query.
	for c := int64(0); c < 6; c++ {
		one := p.Query(span.Cycle(c))
		require.Len(t, one, 4)
		assertEventsClose(t, all[c*4:c*4+4], one)
	}
}

func TestFromPoolShuffleIsFixedPermutation(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e"}
	evs := FromPool(pool, Shuffled, 17).QueryCycles(3)
	require.Len(t, evs, 15)

	first := values(evs[:5])
	assert.ElementsMatch(t, pool, first)
	assert.Equal(t, first, values(evs[5:10]))
	assert.Equal(t, first, values(evs[10:15]))

	again := FromPool(pool, Shuffled, 17).QueryCycles(1)
	assert.Equal(t, first, values(again))
}

func TestFromPoolRandomDrawsFromPool(t *testing.T) {
	pool := []string{"a", "b", "c"}
	evs := FromPool(pool, Random, 9).QueryCycles(20)
	require.Len(t, evs, 60)
	for _, v := range values(evs) {
		assert.Contains(t, pool, v)
	}
	assert.Equal(t, values(evs), values(FromPool(pool, Random, 9).QueryCycles(20)))
}

func TestFromPoolDoesNotAliasInput(t *testing.T) {
	pool := []string{"a", "b"}
	p := FromPool(pool, Sequential, 0)
	pool[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, values(p.QueryCycles(1)))
}

func TestFromPoolEmpty(t *testing.T) {
	for _, order := range []Order{Sequential, Shuffled, Random} {
		assert.Empty(t, FromPool[string](nil, order, 1).QueryCycles(3), order.String())
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in   string
		want Order
	}{
		{"", Sequential},
		{"sequential", Sequential},
		{"SHUFFLE", Shuffled},
		{"Random", Random},
	}
	for _, tt := range tests {
		got, err := ParseOrder(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseOrder("zigzag")
	assert.Error(t, err)
}
