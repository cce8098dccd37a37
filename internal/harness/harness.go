// Package harness runs session scenarios: it compiles a session against a
// throwaway record store and checks the timeline with assertions and golden
// snapshots.
//
// Each scenario gets a fresh in-memory database, so scenarios are isolated
// from each other and from any user database. Compilation is deterministic,
// so a scenario's timeline, and its golden file, only change when the
// session, the records or the compiler change.
package harness

import (
	"context"
	"fmt"

	"github.com/roach88/mantra/internal/compiler"
	"github.com/roach88/mantra/internal/config"
	"github.com/roach88/mantra/internal/content"
	"github.com/roach88/mantra/internal/ir"
	"github.com/roach88/mantra/internal/logging"
	"github.com/roach88/mantra/internal/score"
	"github.com/roach88/mantra/internal/store"
)

// Harness compiles scenarios.
type Harness struct {
	store    *store.Store
	defaults *config.Config
}

// Run executes a scenario with built-in compile defaults.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithConfig(context.Background(), scenario, config.Default())
}

// RunWithConfig executes a scenario, filling compile options the session
// leaves unset from cfg.
//
// Execution flow:
// 1. Create fresh in-memory database
// 2. Import the scenario's records, if any
// 3. Load the session or parse the inline pattern
// 4. Compile with session options, scenario overrides and defaults
// 5. Evaluate assertions and return the result
func RunWithConfig(ctx context.Context, scenario *Scenario, cfg *config.Config) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{store: st, defaults: cfg}
	log := logging.For("harness").WithField("scenario", scenario.Name)

	if scenario.Records != "" {
		n, err := h.importRecords(ctx, scenario.Records)
		if err != nil {
			return nil, err
		}
		log.WithField("records", n).Debug("imported scenario records")
	}

	session, err := h.session(scenario)
	if err != nil {
		return nil, err
	}

	opts := h.options(session, scenario.Options)
	p := score.Build(ctx, session.Pattern, score.Env{Provider: h.store, Seed: opts.Seed})
	tl := compiler.Compile(p, opts)
	if verrs := opts.Validate(); len(verrs) > 0 {
		log.WithField("problem", verrs[0].Error()).Warn("invalid compile options, timeline is empty")
	}

	id, err := ir.TimelineID(tl)
	if err != nil {
		return nil, fmt.Errorf("timeline id: %w", err)
	}

	result := NewResult()
	result.Timeline = tl
	result.TimelineID = id
	for _, msg := range EvaluateAssertions(tl, scenario.Assertions) {
		result.AddError(msg)
	}

	log.WithField("pass", result.Pass).WithField("events", len(tl.Events)).Debug("scenario finished")
	return result, nil
}

func (h *Harness) importRecords(ctx context.Context, path string) (int, error) {
	records, err := content.LoadRecordsFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to load records: %w", err)
	}
	n, err := h.store.ImportRecords(ctx, records)
	if err != nil {
		return 0, fmt.Errorf("failed to import records: %w", err)
	}
	return n, nil
}

func (h *Harness) session(s *Scenario) (*score.Session, error) {
	if s.Session != "" {
		session, err := score.Load(s.Session)
		if err != nil {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		return session, nil
	}
	node, err := score.Parse(s.Pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pattern: %w", err)
	}
	return &score.Session{Name: s.Name, Pattern: node}, nil
}

// options layers scenario overrides over session options over defaults.
func (h *Harness) options(session *score.Session, o Overrides) compiler.Options {
	opts := session.Options()
	if o.Cycles != 0 {
		opts.Cycles = o.Cycles
	}
	if o.CycleMs != 0 {
		opts.CycleDurationMs = o.CycleMs
	}
	if o.EventMs != 0 {
		opts.EventDurationMs = o.EventMs
	}
	if o.Seed != nil {
		opts.Seed = *o.Seed
	}
	return h.defaults.Options(opts)
}
