package library

import (
	"context"
	"fmt"

	"kinosync/internal/activity"
)

var _ activity.Recorder = (*Store)(nil)

// Record appends an entry to the activity log.
func (s *Store) Record(ctx context.Context, summary, shortSummary string) error {
	_, err := s.execWithRetry(ensureContext(ctx),
		"INSERT INTO activity_log (summary, short_summary) VALUES (?, ?)", summary, shortSummary)
	if err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

// ActivityEntry is one recorded activity log line.
type ActivityEntry struct {
	ID           int64
	CreatedAt    string
	Summary      string
	ShortSummary string
}

// RecentActivity returns up to limit newest activity entries.
func (s *Store) RecentActivity(ctx context.Context, limit int) ([]ActivityEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, created_at, summary, short_summary FROM activity_log ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var entries []ActivityEntry
	for rows.Next() {
		var entry ActivityEntry
		if err := rows.Scan(&entry.ID, &entry.CreatedAt, &entry.Summary, &entry.ShortSummary); err != nil {
			return nil, fmt.Errorf("scan activity entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
