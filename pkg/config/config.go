// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, store, training and collection settings

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Store contains persistent store configuration
	Store StoreConfig

	// History contains browsing-history source configuration
	History HistoryConfig

	// Training contains training job policy
	Training TrainingConfig

	// Scoring contains similarity scoring policy
	Scoring ScoringConfig

	// Collector contains ranked collector policy
	Collector CollectorConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// LogLevel is the minimum log level (debug/info/warn/error)
	LogLevel string

	// RateLimit is the allowed requests per client per minute; 0 disables
	RateLimit int
}

// StoreConfig holds persistent store backend configuration
type StoreConfig struct {
	// Type specifies the store backend (memory/redis/sqlite)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the store database file path
	Path string
}

// HistoryConfig holds the browsing-history source configuration
type HistoryConfig struct {
	// DBPath is the path to the Chromium-format History database
	DBPath string
}

// TrainingConfig holds training job policy
type TrainingConfig struct {
	// WindowDays is how far back the history search reaches
	WindowDays int

	// MaxResults caps the number of history entries per run
	MaxResults int

	// ThrottleEvery is the number of processed entries between pauses
	ThrottleEvery int

	// ThrottleDelayMS is the pause between lookup bursts in milliseconds
	ThrottleDelayMS int
}

// ScoringConfig holds similarity scoring policy
type ScoringConfig struct {
	// TitleWeight is the weight of the title score in the total
	TitleWeight float64

	// SourceWeight is the weight of the source score in the total
	SourceWeight float64

	// FrequencyCap bounds the influence of high-frequency words
	FrequencyCap float64

	// SourceCap normalizes source occurrence counts
	SourceCap float64
}

// CollectorConfig holds ranked collector policy
type CollectorConfig struct {
	// AcceptThreshold is the minimum score for retention
	AcceptThreshold float64

	// InteractiveLimit bounds the ranked list in interactive mode
	InteractiveLimit int

	// BackgroundLimit bounds the ranked list in background mode
	BackgroundLimit int

	// SampleIntervalSec is the background sampling interval in seconds
	SampleIntervalSec int

	// SeenResetSec is the seen-memory reset interval in seconds
	SeenResetSec int

	// PollDelayMS is the interactive wait between polls in milliseconds
	PollDelayMS int

	// MaxIdlePolls ends an interactive session after this many polls
	// without feed growth
	MaxIdlePolls int

	// FeedURLs is the list of RSS feed URLs to sample
	FeedURLs []string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnvOrDefault("PORT", "8000"),
			LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
			RateLimit: getEnvAsIntOrDefault("RATE_LIMIT", 100),
		},
		Store: StoreConfig{
			Type: getEnvOrDefault("STORE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			SQLite: SQLiteConfig{
				Path: getEnvOrDefault("SQLITE_PATH", "recommender.db"),
			},
		},
		History: HistoryConfig{
			DBPath: getEnvOrDefault("HISTORY_DB_PATH", ""),
		},
		Training: TrainingConfig{
			WindowDays:      getEnvAsIntOrDefault("TRAINING_WINDOW_DAYS", 360),
			MaxResults:      getEnvAsIntOrDefault("TRAINING_MAX_RESULTS", 5000),
			ThrottleEvery:   getEnvAsIntOrDefault("TRAINING_THROTTLE_EVERY", 5),
			ThrottleDelayMS: getEnvAsIntOrDefault("TRAINING_THROTTLE_DELAY_MS", 200),
		},
		Scoring: ScoringConfig{
			TitleWeight:  getEnvAsFloatOrDefault("SCORING_TITLE_WEIGHT", 0.7),
			SourceWeight: getEnvAsFloatOrDefault("SCORING_SOURCE_WEIGHT", 0.3),
			FrequencyCap: getEnvAsFloatOrDefault("SCORING_FREQUENCY_CAP", 5),
			SourceCap:    getEnvAsFloatOrDefault("SCORING_SOURCE_CAP", 10),
		},
		Collector: CollectorConfig{
			AcceptThreshold:   getEnvAsFloatOrDefault("COLLECTOR_ACCEPT_THRESHOLD", 0.05),
			InteractiveLimit:  getEnvAsIntOrDefault("COLLECTOR_INTERACTIVE_LIMIT", 50),
			BackgroundLimit:   getEnvAsIntOrDefault("COLLECTOR_BACKGROUND_LIMIT", 100),
			SampleIntervalSec: getEnvAsIntOrDefault("COLLECTOR_SAMPLE_INTERVAL_SEC", 3),
			SeenResetSec:      getEnvAsIntOrDefault("COLLECTOR_SEEN_RESET_SEC", 30),
			PollDelayMS:       getEnvAsIntOrDefault("COLLECTOR_POLL_DELAY_MS", 1500),
			MaxIdlePolls:      getEnvAsIntOrDefault("COLLECTOR_MAX_IDLE_POLLS", 3),
			FeedURLs:          getEnvAsListOrDefault("FEED_URLS", nil),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsListOrDefault returns the environment variable as a
// comma-separated list or a default
func getEnvAsListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	switch c.Store.Type {
	case "memory", "redis", "sqlite":
	default:
		return errors.New("store type must be 'memory', 'redis' or 'sqlite'")
	}

	if c.Store.Type == "redis" && c.Store.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis store")
	}

	if c.Store.Type == "sqlite" && c.Store.SQLite.Path == "" {
		return errors.New("sqlite path cannot be empty when using sqlite store")
	}

	if c.Training.WindowDays < 1 {
		return errors.New("training window must be at least 1 day")
	}

	if c.Training.MaxResults < 1 {
		return errors.New("training max results must be at least 1")
	}

	if c.Scoring.TitleWeight < 0 || c.Scoring.SourceWeight < 0 {
		return errors.New("scoring weights cannot be negative")
	}

	if c.Collector.InteractiveLimit < 1 || c.Collector.BackgroundLimit < 1 {
		return errors.New("collector result limits must be at least 1")
	}

	return nil
}
