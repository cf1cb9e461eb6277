// ABOUTME: History source reading a Chromium-format browsing history SQLite database
// ABOUTME: Converts Chromium's 1601-epoch microsecond timestamps to time.Time

package chromium

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SadRunStuff/youtube-watcher/core/interfaces"
	_ "github.com/mattn/go-sqlite3"
)

// chromiumEpochOffset is the number of seconds between the Chromium epoch
// (1601-01-01) and the Unix epoch (1970-01-01). Chromium stores
// last_visit_time as microseconds since 1601.
const chromiumEpochOffset int64 = 11644473600

// Client implements the HistorySource interface over a Chromium History
// database file.
type Client struct {
	db *sql.DB
}

// NewClient opens the history database read-only. The browser keeps the
// file locked while running, so the caller should point this at a copy or
// open it immutable.
func NewClient(filePath string) (*Client, error) {
	if filePath == "" {
		return nil, fmt.Errorf("history database path cannot be empty")
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&immutable=1", filePath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to read history database: %w", err)
	}

	return &Client{db: db}, nil
}

// Search returns history entries containing textFilter, visited at or
// after startTime, most recent first, capped at maxResults.
func (c *Client) Search(ctx context.Context, textFilter string, startTime time.Time, maxResults int) ([]interfaces.HistoryEntry, error) {
	query := `
		SELECT url, last_visit_time
		FROM urls
		WHERE url LIKE ? AND last_visit_time >= ?
		ORDER BY last_visit_time DESC
		LIMIT ?
	`

	rows, err := c.db.QueryContext(ctx, query, "%"+textFilter+"%", ToChromiumTime(startTime), maxResults)
	if err != nil {
		return nil, fmt.Errorf("history query failed: %w", err)
	}
	defer rows.Close()

	var entries []interfaces.HistoryEntry
	for rows.Next() {
		var rawURL string
		var visitTime int64
		if err := rows.Scan(&rawURL, &visitTime); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, interfaces.HistoryEntry{
			URL:       rawURL,
			VisitedAt: FromChromiumTime(visitTime),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history iteration failed: %w", err)
	}

	return entries, nil
}

// Close closes the underlying database.
func (c *Client) Close() error {
	return c.db.Close()
}

// ToChromiumTime converts a time.Time to Chromium microseconds.
func ToChromiumTime(t time.Time) int64 {
	return (t.Unix() + chromiumEpochOffset) * 1_000_000
}

// FromChromiumTime converts Chromium microseconds to a time.Time.
func FromChromiumTime(micros int64) time.Time {
	seconds := micros/1_000_000 - chromiumEpochOffset
	nanos := (micros % 1_000_000) * 1000
	return time.Unix(seconds, nanos)
}
