package score

import (
	"context"

	"github.com/roach88/mantra/internal/content"
	"github.com/roach88/mantra/internal/logging"
	"github.com/roach88/mantra/internal/pattern"
	"github.com/roach88/mantra/internal/span"
)

// Env supplies what Build needs beyond the node tree.
type Env struct {
	Provider content.Provider // resolves theme nodes; nil means every theme is empty
	Seed     int64            // root seed for nodes without their own
}

// Build turns a node tree into a pattern. Theme nodes are resolved through
// env.Provider before Build returns, so querying the result does no I/O.
//
// Nodes without an explicit seed get one derived from env.Seed and their
// position in the tree: siblings differ, and the same tree with the same
// seed always builds the same pattern.
func Build(ctx context.Context, n Node, env Env) pattern.Pattern[content.Item] {
	b := &builder{ctx: ctx, provider: env.Provider}
	return b.build(n, env.Seed)
}

type builder struct {
	ctx      context.Context
	provider content.Provider
}

func (b *builder) build(n Node, seed int64) pattern.Pattern[content.Item] {
	switch n := n.(type) {
	case nil:
		return pattern.Silence[content.Item]()
	case Pure:
		return pattern.Pure(content.TextItem(n.Value))
	case Seq:
		items := make([]content.Item, len(n.Values))
		for i, v := range n.Values {
			items[i] = content.TextItem(v)
		}
		return pattern.Seq(items...)
	case Silence:
		return pattern.Silence[content.Item]()
	case Theme:
		opts := content.ThemeOptions{
			MinDifficulty: n.MinDifficulty,
			MaxDifficulty: n.MaxDifficulty,
			Order:         n.Order,
			Tags:          n.Tags,
			Seed:          seedOr(n.Seed, seed),
		}
		return pattern.Fmap(content.RecordItem, content.FromTheme(b.ctx, b.provider, n.Name, opts))
	case Fast:
		return pattern.Fast(n.Factor, b.child(n.Of, seed))
	case Slow:
		return pattern.Slow(n.Factor, b.child(n.Of, seed))
	case Early:
		return pattern.Early(n.Amount, b.child(n.Of, seed))
	case Late:
		return pattern.Late(n.Amount, b.child(n.Of, seed))
	case Stack:
		return pattern.Stack(b.children(n.Of, seed)...)
	case Cat:
		return pattern.Cat(b.children(n.Of, seed)...)
	case Weave:
		return pattern.Weave(n.Count, b.children(n.Of, seed)...)
	case Alternate:
		return pattern.Alternate(n.Cycles, b.children(n.Of, seed)...)
	case Degrade:
		return pattern.DegradeBy(n.Prob, seedOr(n.Seed, seed), b.child(n.Of, seed))
	case Every:
		transform := transformFunc(n.Apply, span.DeriveSeed(seed, 1))
		return pattern.Every(n.N, transform, b.child(n.Of, seed))
	case Filter:
		return content.FilterItems(b.child(n.Of, seed), n.Tags)
	}

	logging.For("score").Warnf("unsupported node type %T, treating as silence", n)
	return pattern.Silence[content.Item]()
}

func (b *builder) child(n Node, seed int64) pattern.Pattern[content.Item] {
	return b.build(n, span.DeriveSeed(seed, 0))
}

func (b *builder) children(ns []Node, seed int64) []pattern.Pattern[content.Item] {
	out := make([]pattern.Pattern[content.Item], len(ns))
	for i, n := range ns {
		out[i] = b.build(n, span.DeriveSeed(seed, int64(i)))
	}
	return out
}

func transformFunc(t Transform, seed int64) func(pattern.Pattern[content.Item]) pattern.Pattern[content.Item] {
	switch t.Op {
	case OpFast:
		return func(p pattern.Pattern[content.Item]) pattern.Pattern[content.Item] { return pattern.Fast(t.Value, p) }
	case OpSlow:
		return func(p pattern.Pattern[content.Item]) pattern.Pattern[content.Item] { return pattern.Slow(t.Value, p) }
	case OpEarly:
		return func(p pattern.Pattern[content.Item]) pattern.Pattern[content.Item] { return pattern.Early(t.Value, p) }
	case OpLate:
		return func(p pattern.Pattern[content.Item]) pattern.Pattern[content.Item] { return pattern.Late(t.Value, p) }
	case OpDegrade:
		return func(p pattern.Pattern[content.Item]) pattern.Pattern[content.Item] {
			return pattern.DegradeBy(t.Value, seed, p)
		}
	}
	return nil
}

func seedOr(explicit *int64, derived int64) int64 {
	if explicit != nil {
		return *explicit
	}
	return derived
}
