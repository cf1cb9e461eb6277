// ABOUTME: SQLite-based store implementation for single-machine persistence
// ABOUTME: Provides a file-backed store that survives application restarts

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Client implements the Store interface using SQLite.
type Client struct {
	db       *sql.DB
	filePath string
}

// NewClient creates a SQLite store at the given path.
func NewClient(filePath string) (*Client, error) {
	if filePath == "" {
		filePath = "recommender.db"
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	client := &Client{
		db:       db,
		filePath: filePath,
	}

	if err := client.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return client, nil
}

// initSchema creates the store table if it doesn't exist. An expiry of 0
// marks a value that never expires.
func (c *Client) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS store (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			expiry INTEGER NOT NULL DEFAULT 0
		);
	`

	_, err := c.db.Exec(query)
	return err
}

// Get retrieves a value by key.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}

	var value []byte
	var expiry int64

	query := "SELECT value, expiry FROM store WHERE key = ?"
	err := c.db.QueryRowContext(ctx, query, key).Scan(&value, &expiry)

	if err == sql.ErrNoRows {
		return nil, errors.New("key not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get value: %w", err)
	}

	if expiry != 0 && expiry <= time.Now().Unix() {
		_ = c.deleteKey(ctx, key)
		return nil, errors.New("key not found")
	}

	return value, nil
}

// Set stores a value under key. A ttl of 0 stores it indefinitely.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	var expiry int64
	if ttl > 0 {
		expiry = time.Now().Add(ttl).Unix()
	}

	query := `
		INSERT INTO store (key, value, expiry) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expiry = excluded.expiry
	`
	if _, err := c.db.ExecContext(ctx, query, key, value, expiry); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}

	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	return c.deleteKey(ctx, key)
}

// deleteKey removes a row by key.
func (c *Client) deleteKey(ctx context.Context, key string) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM store WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *Client) Close() error {
	return c.db.Close()
}
