package content

import (
	"context"
	"slices"
	"strings"

	"github.com/roach88/mantra/internal/logging"
)

// Provider supplies the records of a theme. Implementations may perform I/O
// and may fail; an unknown theme is an empty result, not an error.
type Provider interface {
	Records(ctx context.Context, theme string) ([]Record, error)
}

// Lookup fetches a theme's records and never fails. Provider errors are
// logged and become an empty pool so they cannot reach pattern evaluation.
func Lookup(ctx context.Context, p Provider, theme string) []Record {
	if p == nil {
		return nil
	}
	records, err := p.Records(ctx, theme)
	if err != nil {
		logging.For("content").
			WithError(err).
			WithField("theme", theme).
			Warn("record provider failed, using empty pool")
		return nil
	}
	return records
}

// MemoryProvider serves records held in memory, keyed by theme
// case-insensitively.
type MemoryProvider struct {
	themes map[string][]Record
}

// NewMemoryProvider groups records by theme.
func NewMemoryProvider(records ...Record) *MemoryProvider {
	m := &MemoryProvider{themes: make(map[string][]Record)}
	for _, r := range records {
		m.Add(r)
	}
	return m
}

// Add appends a record to its theme.
func (m *MemoryProvider) Add(r Record) {
	key := themeKey(r.Theme)
	m.themes[key] = append(m.themes[key], r.Normalize())
}

// Records implements Provider.
func (m *MemoryProvider) Records(_ context.Context, theme string) ([]Record, error) {
	return slices.Clone(m.themes[themeKey(theme)]), nil
}

// Themes returns the known theme keys in sorted order.
func (m *MemoryProvider) Themes() []string {
	out := make([]string, 0, len(m.themes))
	for k := range m.themes {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func themeKey(theme string) string {
	return strings.ToLower(strings.TrimSpace(theme))
}
