package content

import (
	"context"
	"strings"

	"github.com/roach88/mantra/internal/pattern"
)

// ThemeOptions narrows and orders a theme's pool.
type ThemeOptions struct {
	MinDifficulty Difficulty    // Unset means no lower bound
	MaxDifficulty Difficulty    // Unset means no upper bound
	Order         pattern.Order // how the pool is walked
	Tags          Tags          // variant filter
	Seed          int64         // used by FromTheme for shuffle and random orders
}

// Allows reports whether r passes the difficulty bounds and tag filter.
func (o ThemeOptions) Allows(r Record) bool {
	level := r.Difficulty.Level()
	if o.MinDifficulty != Unset && level < o.MinDifficulty.Level() {
		return false
	}
	if o.MaxDifficulty != Unset && level > o.MaxDifficulty.Level() {
		return false
	}
	return o.Tags.Matches(r)
}

// Select returns the records of pool that belong to theme and pass opts,
// keeping pool order. An empty theme matches every record.
func Select(pool []Record, theme string, opts ThemeOptions) []Record {
	theme = strings.TrimSpace(theme)
	var out []Record
	for _, r := range pool {
		if theme != "" && !strings.EqualFold(strings.TrimSpace(r.Theme), theme) {
			continue
		}
		if opts.Allows(r) {
			out = append(out, r)
		}
	}
	return out
}

// FromMantras is FromPool over the records of pool that match theme and opts.
// No matching records means silence.
func FromMantras(pool []Record, theme string, opts ThemeOptions, seed int64) pattern.Pattern[Record] {
	return pattern.FromPool(Select(pool, theme, opts), opts.Order, seed)
}

// FromTheme loads theme from p and builds FromMantras with opts.Seed.
// Unknown themes and provider failures yield silence.
func FromTheme(ctx context.Context, p Provider, theme string, opts ThemeOptions) pattern.Pattern[Record] {
	return FromMantras(Lookup(ctx, p, theme), theme, opts, opts.Seed)
}

// FilterMantras drops records whose variant tags conflict with tags.
func FilterMantras(p pattern.Pattern[Record], tags Tags) pattern.Pattern[Record] {
	if tags.IsZero() {
		return p
	}
	return pattern.Filter(tags.Matches, p)
}

// FilterItems applies FilterMantras to record items. Text items are generic
// and always survive.
func FilterItems(p pattern.Pattern[Item], tags Tags) pattern.Pattern[Item] {
	if tags.IsZero() {
		return p
	}
	return pattern.Filter(func(i Item) bool {
		return i.Kind != ItemRecord || tags.Matches(i.Record)
	}, p)
}
