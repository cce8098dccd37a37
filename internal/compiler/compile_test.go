package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mantra/internal/content"
	"github.com/roach88/mantra/internal/ir"
	"github.com/roach88/mantra/internal/pattern"
	"github.com/roach88/mantra/internal/span"
)

func TestCompileTiming(t *testing.T) {
	tl := Compile(pattern.Seq("a", "b"), Options{Cycles: 1, CycleDurationMs: 1000})

	require.Len(t, tl.Events, 2)
	assert.Equal(t, []string{"a", "b"}, tl.Texts())
	assert.InDelta(t, 0, tl.Events[0].StartMs, 1e-6)
	assert.InDelta(t, 500, tl.Events[1].StartMs, 1e-6)
	assert.InDelta(t, 500, tl.Events[0].DurationMs, 1e-6)
	assert.Equal(t, 1000.0, tl.TotalDurationMs)
	assert.Equal(t, 2, tl.Metadata.EventCount)
	assert.Equal(t, float64(DefaultEventDurationMs), tl.Metadata.EventDurationMs)
	assert.Equal(t, ir.KindText, tl.Events[0].Kind)
}

func TestCompileCapsDuration(t *testing.T) {
	tl := Compile(pattern.Pure("long"), Options{Cycles: 2, CycleDurationMs: 10000, EventDurationMs: 2500})
	require.Len(t, tl.Events, 2)
	for _, ev := range tl.Events {
		assert.Equal(t, 2500.0, ev.DurationMs)
	}
}

func TestCompileSortOrder(t *testing.T) {
	p := pattern.Stack(
		pattern.Seq("a", "b", "c"),
		pattern.Late(0.25, pattern.Seq("x", "y")),
		pattern.Fast(3, pattern.Pure("z")),
	)
	tl := Compile(p, Options{Cycles: 4, CycleDurationMs: 900})
	require.NotEmpty(t, tl.Events)
	for i := 1; i < len(tl.Events); i++ {
		assert.LessOrEqual(t, tl.Events[i-1].StartMs, tl.Events[i].StartMs, "event %d", i)
	}
}

func TestCompileNestedSession(t *testing.T) {
	p := pattern.Cat(
		pattern.Slow(2, pattern.Pure("intro")),
		pattern.Fast(2, pattern.Seq("a", "b", "c")),
		pattern.Pure("outro"),
	)
	tl := Compile(p, Options{Cycles: 4, CycleDurationMs: 1000})

	assert.Equal(t, []string{"intro", "a", "b", "c", "a", "b", "c", "outro", "intro"}, tl.Texts())
	assert.Equal(t, 4000.0, tl.TotalDurationMs)

	wantStarts := []float64{0, 1000, 1000 + 1000.0/6, 1000 + 2000.0/6, 1500, 1000 + 4000.0/6, 1000 + 5000.0/6, 2000, 3000}
	require.Len(t, tl.Events, len(wantStarts))
	for i, want := range wantStarts {
		assert.InDelta(t, want, tl.Events[i].StartMs, 1e-6, "event %d", i)
	}
	// intro's whole spans two cycles; only its onset is emitted.
	assert.InDelta(t, 2000, tl.Events[0].DurationMs, 1e-6)
}

func TestCompileEmitsLongEventsOnce(t *testing.T) {
	// Every restarts the shifted child in cycles 1 and 2, so the event
	// sounding at 1.5 arrives as two fragments, one per cycle.
	p := pattern.Every(3, func(p pattern.Pattern[string]) pattern.Pattern[string] {
		return pattern.Fast(2, p)
	}, pattern.Late(0.5, pattern.Pure("hold")))

	tl := Compile(p, Options{Cycles: 4, CycleDurationMs: 1000})
	for _, ev := range tl.Events {
		assert.Equal(t, "hold", ev.Text)
	}
	starts := make([]float64, len(tl.Events))
	for i, ev := range tl.Events {
		starts[i] = ev.StartMs
	}
	assert.Equal(t, len(starts), len(uniqueFloats(starts)), "duplicate onsets in %v", starts)
	assert.InDeltaSlice(t, []float64{0, 250, 750, 1500, 2500, 3250, 3750}, starts, 1e-6)
}

func TestCompileClampsPreRoll(t *testing.T) {
	tl := Compile(pattern.Late(0.5, pattern.Pure("x")), Options{Cycles: 2, CycleDurationMs: 1000})

	require.Len(t, tl.Events, 3)
	wantStarts := []float64{0, 500, 1500}
	wantDurations := []float64{500, 1000, 1000}
	for i, ev := range tl.Events {
		assert.InDelta(t, wantStarts[i], ev.StartMs, 1e-6, "event %d start", i)
		assert.InDelta(t, wantDurations[i], ev.DurationMs, 1e-6, "event %d duration", i)
	}
}

func TestCompileDropsPreRollEndingBeforeZero(t *testing.T) {
	// The first whole starts at -3500 ms; capped at 1000 ms it ends before 0.
	p := pattern.Late(0.5, pattern.Slow(4, pattern.Pure("long")))
	tl := Compile(p, Options{Cycles: 2, CycleDurationMs: 1000, EventDurationMs: 1000})

	require.Len(t, tl.Events, 1)
	assert.InDelta(t, 500, tl.Events[0].StartMs, 1e-6)
	assert.InDelta(t, 1000, tl.Events[0].DurationMs, 1e-6)
	for _, ev := range Compile(pattern.Late(0.25, pattern.Seq("x", "y")), Options{Cycles: 3, CycleDurationMs: 900}).Events {
		assert.GreaterOrEqual(t, ev.StartMs, 0.0)
	}
}

func uniqueFloats(fs []float64) map[float64]struct{} {
	m := make(map[float64]struct{}, len(fs))
	for _, f := range fs {
		m[f] = struct{}{}
	}
	return m
}

func TestCompileDeterminism(t *testing.T) {
	pool := []content.Record{
		{Line: "one", Theme: "Focus", Difficulty: content.Basic},
		{Line: "two", Theme: "Focus", Difficulty: content.Light},
		{Line: "three", Theme: "Calm", Difficulty: content.Medium},
	}
	build := func() pattern.Pattern[content.Record] {
		return pattern.Stack(
			pattern.DegradeBy(0.3, 7, pattern.FromPool(pool, pattern.Random, 99)),
			pattern.Weave(2, pattern.FromPool(pool, pattern.Shuffled, 5), pattern.Fast(2, pattern.FromPool(pool, pattern.Sequential, 0))),
		)
	}
	opts := Options{Cycles: 8, CycleDurationMs: 1200, Seed: 99}

	first := Compile(build(), opts)
	second := Compile(build(), opts)
	assert.Equal(t, first, second)
	assert.Equal(t, ir.MustTimelineID(first), ir.MustTimelineID(second))
}

func TestCompileRecordMetadata(t *testing.T) {
	pool := []content.Record{
		{Line: "stay", Theme: "Focus", Difficulty: content.Light, Source: "focus.json"},
		{Line: "rest", Theme: "Calm", Difficulty: content.Basic},
	}
	tl := Compile(pattern.Seq(pool...), Options{Cycles: 1, CycleDurationMs: 1000})

	require.Len(t, tl.Events, 2)
	assert.Equal(t, ir.KindMantra, tl.Events[0].Kind)
	require.NotNil(t, tl.Events[0].Metadata)
	assert.Equal(t, "LIGHT", tl.Events[0].Metadata.Difficulty)
	assert.Equal(t, "focus.json", tl.Events[0].Metadata.Source)
	assert.Equal(t, []string{"Calm", "Focus"}, tl.Metadata.Themes)
}

func TestCompileInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code string
	}{
		{"zero cycles", Options{Cycles: 0, CycleDurationMs: 1000}, ErrCyclesNotPositive},
		{"negative cycle duration", Options{Cycles: 1, CycleDurationMs: -5}, ErrCycleDurationNotPositive},
		{"negative event duration", Options{Cycles: 1, CycleDurationMs: 1000, EventDurationMs: -1}, ErrEventDurationNegative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := Compile(pattern.Pure("x"), tt.opts)
			assert.Empty(t, tl.Events)
			assert.Zero(t, tl.TotalDurationMs)

			errs := tt.opts.Validate()
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.code, errs[0].Code)
			assert.Error(t, tt.opts.Err())
		})
	}
	assert.NoError(t, Options{Cycles: 1, CycleDurationMs: 1}.Err())
}

type badPart struct{}

func TestCompilePanicsOnEscapedPart(t *testing.T) {
	p := pattern.New(func(q span.Span) []span.Event[badPart] {
		return []span.Event[badPart]{{
			Whole: span.Span{Start: 0, End: 0.5},
			Part:  span.Span{Start: 0, End: 1},
		}}
	})
	assert.Panics(t, func() {
		Compile(p, Options{Cycles: 1, CycleDurationMs: 1000})
	})
}

func TestCompileSilence(t *testing.T) {
	tl := Compile(pattern.Silence[string](), Options{Cycles: 3, CycleDurationMs: 1000})
	assert.Empty(t, tl.Events)
	assert.NotNil(t, tl.Events)
	assert.Equal(t, 3000.0, tl.TotalDurationMs)
}
