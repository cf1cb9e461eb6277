// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as persistence, HTTP communication, and logging.
//
// The infrastructure package is organized by technical concern:
//
// - store/memory: In-memory store backed by go-cache
// - store/redis: Redis-based store implementation
// - store/sqlite: SQLite-based store implementation
// - history/chromium: Read-only Chromium History database source
// - lookup/oembed: YouTube oEmbed metadata lookup
// - feed/rss: RSS feed source for candidate discovery
// - http/standard: Standard library HTTP client with retry logic
// - logger/logrus: Structured logger built on logrus
//
// # Design Philosophy
//
// Infrastructure components are designed to be:
// - Pluggable: Easy to swap implementations
// - Configurable: Accept configuration objects
// - Testable: Include both unit and integration tests
// - Production-ready: Include retries, timeouts, and error handling
//
// # Store Implementations
//
// Memory Store Example:
//
//	store := memory.NewClient()
//	err := store.Set(ctx, "key", []byte("value"), 0)
//	value, err := store.Get(ctx, "key")
//
// Redis Store Example:
//
//	cfg := config.RedisConfig{
//	    Address:  "localhost:6379",
//	    Password: "",
//	    DB:       0,
//	}
//	store, err := redis.NewClient(cfg)
//
// # HTTP Client
//
// The HTTP client includes automatic retry logic for transient failures:
//
//	client := standard.NewStandardHTTPClient(30 * time.Second)
//	resp, err := client.Get(ctx, "https://example.com")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := logrus.NewLogger("info")
//	logger.Info("Processing request", map[string]interface{}{
//	    "item_id": "abc123",
//	    "action":  "resolve_metadata",
//	})
package infrastructure
