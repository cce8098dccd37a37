package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/roach88/mantra/internal/content"
)

// CountingProvider wraps a content.Provider and records how often each
// theme is looked up.
//
// Unlike store.Store, CountingProvider can be reset for test reuse, so the
// same build can be checked several times with fresh counts.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type CountingProvider struct {
	inner content.Provider

	mu    sync.Mutex
	calls map[string]int
}

// NewCountingProvider wraps inner. A nil inner serves no records.
func NewCountingProvider(inner content.Provider) *CountingProvider {
	return &CountingProvider{inner: inner, calls: make(map[string]int)}
}

// Records implements content.Provider.
func (p *CountingProvider) Records(ctx context.Context, theme string) ([]content.Record, error) {
	p.mu.Lock()
	p.calls[key(theme)]++
	p.mu.Unlock()

	if p.inner == nil {
		return nil, nil
	}
	return p.inner.Records(ctx, theme)
}

// Calls returns the number of lookups for theme, matched case-insensitively.
func (p *CountingProvider) Calls(theme string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[key(theme)]
}

// Total returns the number of lookups across all themes.
func (p *CountingProvider) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.calls {
		n += c
	}
	return n
}

// Reset forgets all recorded lookups.
func (p *CountingProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.calls)
}

// FailingProvider fails every lookup with Err.
//
// Thread-safety: FailingProvider is stateless and safe for concurrent use.
type FailingProvider struct {
	Err error
}

// Records implements content.Provider.
func (p FailingProvider) Records(context.Context, string) ([]content.Record, error) {
	return nil, p.Err
}

func key(theme string) string {
	return strings.ToLower(strings.TrimSpace(theme))
}
