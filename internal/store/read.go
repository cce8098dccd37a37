package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/mantra/internal/content"
	"github.com/roach88/mantra/internal/ir"
)

// ThemeCount is a theme and the number of records stored for it.
type ThemeCount struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

// TimelineInfo summarises a saved timeline without its events.
type TimelineInfo struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	EventCount      int     `json:"event_count"`
	TotalDurationMs float64 `json:"total_duration_ms"`
}

// Records returns the records of theme in import order. Theme matching is
// case-insensitive. An unknown theme returns an empty slice, not an error.
func (s *Store) Records(ctx context.Context, theme string) ([]content.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, theme, line, difficulty, dominant, subject, source
		FROM records
		WHERE theme_key = ?
		ORDER BY seq ASC
	`, themeKey(theme))
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []content.Record{}
	for rows.Next() {
		var (
			r          content.Record
			difficulty string
		)
		if err := rows.Scan(&r.ID, &r.Theme, &r.Line, &difficulty, &r.Dominant, &r.Subject, &r.Source); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r.Difficulty = content.ParseDifficulty(difficulty)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// Themes lists every theme with its record count, ordered by theme name.
func (s *Store) Themes(ctx context.Context) ([]ThemeCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT MIN(theme), COUNT(*)
		FROM records
		GROUP BY theme_key
		ORDER BY theme_key COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query themes: %w", err)
	}
	defer rows.Close()

	themes := []ThemeCount{}
	for rows.Next() {
		var tc ThemeCount
		if err := rows.Scan(&tc.Theme, &tc.Count); err != nil {
			return nil, fmt.Errorf("scan theme: %w", err)
		}
		themes = append(themes, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate themes: %w", err)
	}
	return themes, nil
}

// LoadTimeline returns the saved timeline with the given ID, or an error
// wrapping ErrNotFound.
func (s *Store) LoadTimeline(ctx context.Context, id string) (ir.Timeline, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM timelines WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Timeline{}, fmt.Errorf("timeline %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return ir.Timeline{}, fmt.Errorf("load timeline %s: %w", id, err)
	}
	return unmarshalTimeline(body)
}

// ListTimelines returns every saved timeline in save order.
func (s *Store) ListTimelines(ctx context.Context) ([]TimelineInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, event_count, total_duration_ms
		FROM timelines
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query timelines: %w", err)
	}
	defer rows.Close()

	infos := []TimelineInfo{}
	for rows.Next() {
		var info TimelineInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.EventCount, &info.TotalDurationMs); err != nil {
			return nil, fmt.Errorf("scan timeline: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate timelines: %w", err)
	}
	return infos, nil
}
