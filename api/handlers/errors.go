// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"github.com/SadRunStuff/youtube-watcher/core/errors"
	"github.com/danielgtaylor/huma/v2"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsTrainingInProgress(err) {
		return huma.Error409Conflict(err.Error())
	}

	if errors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	if errors.IsSourceFailure(err) {
		return huma.Error502BadGateway("upstream source failure", err)
	}

	if errors.IsTransientLookup(err) {
		return huma.Error503ServiceUnavailable("transient lookup failure", err)
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
