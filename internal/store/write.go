package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/roach88/mantra/internal/content"
	"github.com/roach88/mantra/internal/ir"
	"github.com/roach88/mantra/internal/logging"
)

// ImportRecords inserts records in one transaction and returns how many
// were new. Records are normalized first. A record whose (theme, line)
// already exists, compared case-insensitively on theme, is silently
// skipped. Records without an ID get a fresh ULID.
func (s *Store) ImportRecords(ctx context.Context, records []content.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("import records: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records
		(id, theme, theme_key, line, difficulty, dominant, subject, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("import records: prepare: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for i, r := range records {
		r = r.Normalize()
		if r.Line == "" || r.Theme == "" {
			return 0, fmt.Errorf("import records: record %d: line and theme are required", i)
		}
		if r.ID == "" {
			r.ID = ulid.Make().String()
		}

		result, err := stmt.ExecContext(ctx,
			r.ID,
			r.Theme,
			themeKey(r.Theme),
			r.Line,
			r.Difficulty.String(),
			r.Dominant,
			r.Subject,
			r.Source,
		)
		if err != nil {
			return 0, fmt.Errorf("import records: record %d: %w", i, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("import records: rows affected: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("import records: commit: %w", err)
	}

	logging.For("store").
		WithField("offered", len(records)).
		WithField("inserted", inserted).
		Debug("imported records")
	return inserted, nil
}

// SaveTimeline stores tl under its TimelineID and returns the ID. Saving a
// timeline that is already stored keeps the first name and returns the same
// ID.
func (s *Store) SaveTimeline(ctx context.Context, name string, tl ir.Timeline) (string, error) {
	id, err := ir.TimelineID(tl)
	if err != nil {
		return "", fmt.Errorf("save timeline: %w", err)
	}
	body, err := marshalTimeline(tl)
	if err != nil {
		return "", fmt.Errorf("save timeline: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO timelines
		(id, name, event_count, total_duration_ms, body, timeline_version, tool_version)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		id,
		name,
		len(tl.Events),
		tl.TotalDurationMs,
		body,
		ir.TimelineVersion,
		ir.ToolVersion,
	)
	if err != nil {
		return "", fmt.Errorf("save timeline: %w", err)
	}

	logging.For("store").WithField("timeline_id", id).WithField("name", name).Debug("saved timeline")
	return id, nil
}

func themeKey(theme string) string {
	return strings.ToLower(strings.TrimSpace(theme))
}
