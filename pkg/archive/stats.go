package archive

import (
	"context"
	"database/sql"
	"fmt"
)

// Stats is a whole-archive summary used by the CLI, the HTTP API, and the
// MCP stats tool.
type Stats struct {
	TotalEntries  int            `json:"total_entries"`
	ByKind        map[string]int `json:"by_kind"`
	BySwipe       map[string]int `json:"by_swipe"`
	ByLength      map[string]int `json:"by_length"`
	Reviewed      int            `json:"reviewed"`
	Unreviewed    int            `json:"unreviewed"`
	TotalTags     int            `json:"total_tags"`
	TaggedEntries int            `json:"tagged_entries"`
	TopTags       []Tag          `json:"top_tags"`
	TotalImports  int            `json:"total_imports"`
	OldestEntry   float64        `json:"oldest_entry"`
	NewestEntry   float64        `json:"newest_entry"`
}

const topTagCount = 10

func countsBy(ctx context.Context, db *sql.DB, column string) (map[string]int, error) {
	stmt := fmt.Sprintf("SELECT %s, COUNT(*) FROM entries GROUP BY %s", column, column)

	rows, err := db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}

	return counts, rows.Err()
}

// CollectStats summarizes the archive. Totals come straight from storage;
// nothing here is cached between calls.
func CollectStats(ctx context.Context, db *sql.DB) (Stats, error) {
	var stats Stats

	err := db.QueryRowContext(
		ctx,
		"SELECT COUNT(*), COALESCE(MIN(created_at), 0), COALESCE(MAX(created_at), 0) FROM entries",
	).Scan(&stats.TotalEntries, &stats.OldestEntry, &stats.NewestEntry)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count entries: %w", err)
	}

	if stats.ByKind, err = countsBy(ctx, db, "kind"); err != nil {
		return Stats{}, fmt.Errorf("failed to count entries by kind: %w", err)
	}
	if stats.ByLength, err = countsBy(ctx, db, "length"); err != nil {
		return Stats{}, fmt.Errorf("failed to count entries by length: %w", err)
	}

	swipes, err := countsBy(ctx, db, "swipe")
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count entries by swipe: %w", err)
	}
	stats.BySwipe = map[string]int{}
	for verdict, count := range swipes {
		if verdict == SwipeNone {
			verdict = "unreviewed"
		}
		stats.BySwipe[verdict] = count
	}

	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries WHERE reviewed = TRUE").Scan(&stats.Reviewed)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count reviewed entries: %w", err)
	}
	stats.Unreviewed = stats.TotalEntries - stats.Reviewed

	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tags").Scan(&stats.TotalTags)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count tags: %w", err)
	}

	err = db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT entry_id) FROM entry_tags").Scan(&stats.TaggedEntries)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count tagged entries: %w", err)
	}

	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM imports").Scan(&stats.TotalImports)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count import runs: %w", err)
	}

	tags, err := ListTags(ctx, db)
	if err != nil {
		return Stats{}, err
	}
	if len(tags) > topTagCount {
		tags = tags[:topTagCount]
	}
	stats.TopTags = tags

	return stats, nil
}
