// Package core contains the business logic for the watch-history
// recommender. It is designed to be framework-agnostic and can be used
// independently of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (FrequencyModel, CandidateItem, etc.)
// - tokenizer: Title normalization and word extraction
// - scoring: Affinity scoring of candidates against a trained model
// - training: The single-flight training job over watch history
// - collector: Bounded ranked collection of live feed candidates
// - scheduler: Interval task scheduling for background collection
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (store, HTTP, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "github.com/SadRunStuff/youtube-watcher/core/interfaces"
//	    "github.com/SadRunStuff/youtube-watcher/core/training"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    Store:      myStore,      // implements interfaces.Store
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	// Create service
//	svc := training.NewService(deps, historySource, lookup, training.DefaultConfig())
//
//	// Build the interest profile
//	err := svc.Train(ctx)
package core
