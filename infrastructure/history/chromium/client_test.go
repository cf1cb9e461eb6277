package chromium

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func TestToChromiumTime(t *testing.T) {
	// Unix epoch is exactly the offset in Chromium time
	epoch := time.Unix(0, 0)
	if got := ToChromiumTime(epoch); got != 11644473600*1_000_000 {
		t.Errorf("ToChromiumTime(epoch) = %d", got)
	}
}

func TestFromChromiumTime(t *testing.T) {
	got := FromChromiumTime(11644473600 * 1_000_000)
	if !got.Equal(time.Unix(0, 0)) {
		t.Errorf("FromChromiumTime = %v, want unix epoch", got)
	}
}

func TestChromiumTime_RoundTrip(t *testing.T) {
	original := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

	got := FromChromiumTime(ToChromiumTime(original))
	if !got.Equal(original) {
		t.Errorf("round trip = %v, want %v", got, original)
	}
}

func TestFromChromiumTime_PreservesMicroseconds(t *testing.T) {
	var micros int64 = (11644473600+100)*1_000_000 + 123456

	got := FromChromiumTime(micros)
	want := time.Unix(100, 123456000)
	if !got.Equal(want) {
		t.Errorf("FromChromiumTime = %v, want %v", got, want)
	}
}

func TestNewClient_EmptyPath(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Error("NewClient should reject an empty path")
	}
}

// historyFixture creates a Chromium-shaped History database with the given
// (url, visitedAt) rows.
func historyFixture(t *testing.T, rows map[string]time.Time) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "History")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("failed to create fixture db: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE urls (
		id INTEGER PRIMARY KEY,
		url TEXT,
		title TEXT,
		visit_count INTEGER DEFAULT 0,
		last_visit_time INTEGER
	)`)
	if err != nil {
		t.Fatalf("failed to create urls table: %v", err)
	}

	for url, visitedAt := range rows {
		_, err := db.Exec(
			"INSERT INTO urls (url, last_visit_time) VALUES (?, ?)",
			url, ToChromiumTime(visitedAt),
		)
		if err != nil {
			t.Fatalf("failed to insert fixture row: %v", err)
		}
	}

	return path
}

func TestSearch_FiltersAndOrders(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	path := historyFixture(t, map[string]time.Time{
		"https://www.youtube.com/watch?v=new":  now.Add(-1 * time.Hour),
		"https://www.youtube.com/watch?v=old":  now.Add(-48 * time.Hour),
		"https://www.youtube.com/watch?v=aged": now.Add(-400 * 24 * time.Hour),
		"https://example.com/article":          now.Add(-1 * time.Hour),
	})

	client, err := NewClient(path)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	defer client.Close()

	entries, err := client.Search(context.Background(), "youtube.com/watch", now.Add(-72*time.Hour), 100)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Search = %d entries, want 2", len(entries))
	}
	// Most recent first
	if entries[0].URL != "https://www.youtube.com/watch?v=new" {
		t.Errorf("entries[0] = %s, want the newest", entries[0].URL)
	}
	if entries[1].URL != "https://www.youtube.com/watch?v=old" {
		t.Errorf("entries[1] = %s", entries[1].URL)
	}
}

func TestSearch_RespectsMaxResults(t *testing.T) {
	now := time.Now()
	path := historyFixture(t, map[string]time.Time{
		"https://www.youtube.com/watch?v=a": now.Add(-1 * time.Hour),
		"https://www.youtube.com/watch?v=b": now.Add(-2 * time.Hour),
		"https://www.youtube.com/watch?v=c": now.Add(-3 * time.Hour),
	})

	client, err := NewClient(path)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	defer client.Close()

	entries, err := client.Search(context.Background(), "youtube.com/watch", now.Add(-24*time.Hour), 2)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Search = %d entries, want 2", len(entries))
	}
}

func TestSearch_EmptyDatabase(t *testing.T) {
	path := historyFixture(t, nil)

	client, err := NewClient(path)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	defer client.Close()

	entries, err := client.Search(context.Background(), "youtube.com/watch", time.Now().Add(-time.Hour), 100)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Search = %d entries, want 0", len(entries))
	}
}
