// ABOUTME: Main entry point for the watch-history recommender server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SadRunStuff/youtube-watcher/api"
	"github.com/SadRunStuff/youtube-watcher/api/handlers"
	"github.com/SadRunStuff/youtube-watcher/core/collector"
	coreerrors "github.com/SadRunStuff/youtube-watcher/core/errors"
	"github.com/SadRunStuff/youtube-watcher/core/interfaces"
	"github.com/SadRunStuff/youtube-watcher/core/scheduler"
	"github.com/SadRunStuff/youtube-watcher/core/scoring"
	"github.com/SadRunStuff/youtube-watcher/core/training"
	"github.com/SadRunStuff/youtube-watcher/infrastructure/feed/rss"
	"github.com/SadRunStuff/youtube-watcher/infrastructure/history/chromium"
	stdhttp "github.com/SadRunStuff/youtube-watcher/infrastructure/http/standard"
	logruslogger "github.com/SadRunStuff/youtube-watcher/infrastructure/logger/logrus"
	"github.com/SadRunStuff/youtube-watcher/infrastructure/lookup/oembed"
	"github.com/SadRunStuff/youtube-watcher/infrastructure/store/memory"
	"github.com/SadRunStuff/youtube-watcher/infrastructure/store/redis"
	"github.com/SadRunStuff/youtube-watcher/infrastructure/store/sqlite"
	"github.com/SadRunStuff/youtube-watcher/pkg/config"
	"github.com/SadRunStuff/youtube-watcher/pkg/featureflags"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger := logruslogger.NewLogger(cfg.Server.LogLevel)
	logger.Info("Starting recommender API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"store_type": cfg.Store.Type,
	})

	// Create store
	var store interfaces.Store
	switch cfg.Store.Type {
	case "redis":
		redisStore, err := redis.NewClient(cfg.Store.Redis)
		if err != nil {
			logger.Error("Failed to create Redis store, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			store = memory.NewClient()
		} else {
			store = redisStore
			logger.Info("Using Redis store", map[string]interface{}{
				"address": cfg.Store.Redis.Address,
			})
		}
	case "sqlite":
		sqliteStore, err := sqlite.NewClient(cfg.Store.SQLite.Path)
		if err != nil {
			logger.Error("Failed to create SQLite store, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			store = memory.NewClient()
		} else {
			store = sqliteStore
			defer sqliteStore.Close()
			logger.Info("Using SQLite store", map[string]interface{}{
				"path": cfg.Store.SQLite.Path,
			})
		}
	default:
		store = memory.NewClient()
		logger.Info("Using memory store", nil)
	}

	// Create HTTP client
	httpClient := stdhttp.NewStandardHTTPClient(30 * time.Second)

	// Create dependencies container
	deps := interfaces.Dependencies{
		Store:      store,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	// Create history source
	var history interfaces.HistorySource
	if cfg.History.DBPath != "" {
		historyClient, err := chromium.NewClient(cfg.History.DBPath)
		if err != nil {
			log.Fatalf("Failed to open history database: %v", err)
		}
		defer historyClient.Close()
		history = historyClient
		logger.Info("Using Chromium history source", map[string]interface{}{
			"path": cfg.History.DBPath,
		})
	} else {
		history = unconfiguredHistory{}
		logger.Warn("HISTORY_DB_PATH not set, training runs will fail", nil)
	}

	// Create services
	scorer := scoring.NewScorer(scoring.Config{
		TitleWeight:  cfg.Scoring.TitleWeight,
		SourceWeight: cfg.Scoring.SourceWeight,
		FrequencyCap: cfg.Scoring.FrequencyCap,
		SourceCap:    cfg.Scoring.SourceCap,
	})

	lookup := oembed.NewClient(deps)

	trainingService := training.NewService(deps, history, lookup, training.Config{
		HistoryFilter: "youtube.com/watch",
		Window:        time.Duration(cfg.Training.WindowDays) * 24 * time.Hour,
		MaxResults:    cfg.Training.MaxResults,
		ThrottleEvery: cfg.Training.ThrottleEvery,
		ThrottleDelay: time.Duration(cfg.Training.ThrottleDelayMS) * time.Millisecond,
	})

	flags := featureflags.NewEnvManager("")

	feedSource := rss.NewClient(deps, cfg.Collector.FeedURLs, flags)
	sched := scheduler.New(logger)

	collectorService := collector.NewService(deps, scorer, feedSource, sched, collector.Config{
		AcceptThreshold:   cfg.Collector.AcceptThreshold,
		InteractiveLimit:  cfg.Collector.InteractiveLimit,
		BackgroundLimit:   cfg.Collector.BackgroundLimit,
		SampleInterval:    time.Duration(cfg.Collector.SampleIntervalSec) * time.Second,
		SeenResetInterval: time.Duration(cfg.Collector.SeenResetSec) * time.Second,
		PollDelay:         time.Duration(cfg.Collector.PollDelayMS) * time.Millisecond,
		MaxIdlePolls:      cfg.Collector.MaxIdlePolls,
		Flags:             flags,
	})

	// A finished training run replaces the model the collector scores with
	trainingService.SetOnComplete(func() {
		collectorService.ReloadModel(context.Background())
	})

	collectorService.Start(context.Background())

	// Create API with middleware
	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:    logger,
		RateLimit: cfg.Server.RateLimit,
	})

	// Create and register handlers
	recommenderHandler := handlers.NewRecommenderHandler(trainingService, collectorService, scorer, logger)
	recommenderHandler.RegisterRoutes(humaAPI)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	collectorService.CancelSession()
	collectorService.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}

// unconfiguredHistory stands in when no history database path is set.
type unconfiguredHistory struct{}

func (unconfiguredHistory) Search(_ context.Context, _ string, _ time.Time, _ int) ([]interfaces.HistoryEntry, error) {
	return nil, &coreerrors.SourceFailureError{
		Source: "history source",
		Err:    errors.New("no history database configured"),
	}
}
