// ABOUTME: Feed source polling YouTube RSS feeds and yielding candidate items
// ABOUTME: Best-effort discovery; individual feed failures are logged and skipped

package rss

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"

	"github.com/SadRunStuff/youtube-watcher/core/domain"
	"github.com/SadRunStuff/youtube-watcher/core/interfaces"
	"github.com/SadRunStuff/youtube-watcher/pkg/featureflags"
	htmlutil "github.com/SadRunStuff/youtube-watcher/pkg/utils/html"
	"github.com/mmcdole/gofeed"
)

// Client implements the FeedSource interface over a set of RSS feed URLs
// (YouTube publishes one per channel at /feeds/videos.xml?channel_id=...).
type Client struct {
	deps     interfaces.Dependencies
	feedURLs []string
	parser   *gofeed.Parser
	flags    featureflags.Manager
}

// NewClient creates an RSS feed source for the given feed URLs. A nil
// flags manager leaves all toggles off.
func NewClient(deps interfaces.Dependencies, feedURLs []string, flags featureflags.Manager) *Client {
	return &Client{
		deps:     deps,
		feedURLs: feedURLs,
		parser:   gofeed.NewParser(),
		flags:    flags,
	}
}

// Discover fetches every configured feed and returns the union of their
// current entries as candidate items. A feed that fails to fetch or parse
// is skipped; an error is returned only when nothing could be discovered.
func (c *Client) Discover(ctx context.Context) ([]domain.CandidateItem, error) {
	var items []domain.CandidateItem
	var lastErr error

	for _, feedURL := range c.feedURLs {
		feed, err := c.fetchFeed(ctx, feedURL)
		if err != nil {
			lastErr = err
			c.deps.Logger.Warn("Failed to fetch feed", map[string]interface{}{
				"url":   feedURL,
				"error": err.Error(),
			})
			continue
		}

		sanitize := c.flags != nil && c.flags.IsEnabled(ctx, featureflags.FeedTitleSanitize)

		for _, entry := range feed.Items {
			item := toCandidate(entry, feed)
			if item.ID == "" && item.Title == "" {
				continue
			}
			if sanitize {
				item.Title = htmlutil.StripHTML(item.Title)
			}
			items = append(items, item)
		}
	}

	if len(items) == 0 && lastErr != nil {
		return nil, lastErr
	}

	return items, nil
}

// fetchFeed retrieves and parses a single feed.
func (c *Client) fetchFeed(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	resp, err := c.deps.HTTPClient.Get(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return nil, errors.New("feed returned non-200 status code")
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, err
	}

	return c.parser.Parse(bytes.NewReader(body))
}

// toCandidate converts a feed entry to a candidate item. The content id
// comes from the yt:videoId extension when present, otherwise from the
// link's `v` query parameter.
func toCandidate(entry *gofeed.Item, feed *gofeed.Feed) domain.CandidateItem {
	item := domain.CandidateItem{
		Title: entry.Title,
	}

	if entry.Author != nil && entry.Author.Name != "" {
		item.Source = entry.Author.Name
	} else {
		item.Source = feed.Title
	}

	if ext, ok := entry.Extensions["yt"]["videoId"]; ok && len(ext) > 0 {
		item.ID = ext[0].Value
	}
	if item.ID == "" {
		item.ID = videoIDFromLink(entry.Link)
	}

	return item
}

// videoIDFromLink extracts the `v` query parameter from a watch URL.
func videoIDFromLink(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Query().Get("v")
}
