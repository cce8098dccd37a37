package score

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/mantra/internal/compiler"
	"github.com/roach88/mantra/internal/logging"
)

// Session is a named pattern with the compile options it was written for.
// Zero options are unset and left to the caller's defaults.
type Session struct {
	Name        string
	Description string
	Cycles      int
	CycleMs     float64
	EventMs     float64
	Seed        int64
	Pattern     Node
}

// Options returns the session's compile options.
func (s *Session) Options() compiler.Options {
	return compiler.Options{
		Cycles:          s.Cycles,
		CycleDurationMs: s.CycleMs,
		EventDurationMs: s.EventMs,
		Seed:            s.Seed,
	}
}

var sessionKeys = []string{"name", "description", "cycles", "cycle_ms", "event_ms", "seed", "pattern"}

// ParseSession converts a decoded tree into a Session.
func ParseSession(tree any) (*Session, error) {
	f, err := fieldsOf(tree, "session", sessionKeys...)
	if err != nil {
		return nil, err
	}
	f.path = ""
	s := &Session{}

	if s.Name, err = f.str("name", false); err != nil {
		return nil, err
	}
	if s.Description, err = f.str("description", false); err != nil {
		return nil, err
	}
	if s.Cycles, err = f.integer("cycles", false); err != nil {
		return nil, err
	}
	if s.CycleMs, err = f.number("cycle_ms", false); err != nil {
		return nil, err
	}
	if s.EventMs, err = f.number("event_ms", false); err != nil {
		return nil, err
	}
	seed, err := f.seed("seed")
	if err != nil {
		return nil, err
	}
	if seed != nil {
		s.Seed = *seed
	}

	raw, ok := f.m["pattern"]
	if !ok {
		return nil, errorf("pattern", "is required")
	}
	if s.Pattern, err = Parse(raw); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseYAML parses a session written in YAML.
func ParseYAML(data []byte) (*Session, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{Message: "empty session description"}
	}
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parse session YAML: %w", err)
	}
	return ParseSession(tree)
}

// LoadYAML reads and parses a YAML session file.
func LoadYAML(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	s, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return named(s, path), nil
}

// Load reads a session file, choosing the format by extension.
func Load(path string) (*Session, error) {
	var (
		s   *Session
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		s, err = LoadYAML(path)
	case ".cue":
		s, err = LoadCUE(path)
	default:
		return nil, fmt.Errorf("%s: unsupported session format %q (want .yaml, .yml or .cue)", path, ext)
	}
	if err != nil {
		return nil, err
	}
	logging.For("score").WithField("path", path).WithField("session", s.Name).Debug("loaded session")
	return s, nil
}

// named defaults the session name to the file's base name.
func named(s *Session, path string) *Session {
	if s.Name == "" {
		base := filepath.Base(path)
		s.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return s
}
