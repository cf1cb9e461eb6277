// ABOUTME: Metadata lookup against the YouTube oEmbed endpoint (no API key required)
// ABOUTME: Resolves a video id to its title and channel name

package oembed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	coreerrors "github.com/SadRunStuff/youtube-watcher/core/errors"
	"github.com/SadRunStuff/youtube-watcher/core/interfaces"
)

const endpoint = "https://www.youtube.com/oembed"

// Client implements the MetadataLookup interface using the oEmbed API.
type Client struct {
	deps interfaces.Dependencies
}

// NewClient creates an oEmbed lookup client.
func NewClient(deps interfaces.Dependencies) *Client {
	return &Client{deps: deps}
}

// Resolve fetches the oEmbed document for a video id. Every failure mode
// (transport error, non-200 status, malformed payload) is returned as a
// TransientLookupError so callers can skip and continue.
func (c *Client) Resolve(ctx context.Context, contentID string) (*interfaces.Metadata, error) {
	watchURL := "https://www.youtube.com/watch?v=" + contentID
	lookupURL := fmt.Sprintf("%s?url=%s&format=json", endpoint, url.QueryEscape(watchURL))

	resp, err := c.deps.HTTPClient.Get(ctx, lookupURL)
	if err != nil {
		return nil, &coreerrors.TransientLookupError{ContentID: contentID, Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return nil, &coreerrors.TransientLookupError{
			ContentID: contentID,
			Err:       fmt.Errorf("oembed returned status %d", resp.StatusCode()),
		}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, &coreerrors.TransientLookupError{ContentID: contentID, Err: err}
	}

	var payload struct {
		Title      string `json:"title"`
		AuthorName string `json:"author_name"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &coreerrors.TransientLookupError{ContentID: contentID, Err: err}
	}

	return &interfaces.Metadata{
		Title:  payload.Title,
		Author: payload.AuthorName,
	}, nil
}
