package fetch

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/itchuru/news-service/pkg/models"
)

const googleNewsFeedURL = "https://news.google.com/rss/search?q=IT+technology&hl=en-US&gl=US&ceid=US:en"

// GoogleClient fetches global IT news from the Google News RSS feed.
// The feed is assumed to be free of duplicates, so entries are only
// truncated, never deduplicated.
type GoogleClient struct {
	// FeedURL is overridable for tests; defaults to the Google News search feed.
	FeedURL string

	maxItems int
	parser   *gofeed.Parser
}

// NewGoogleClient creates a fetcher for the Google News RSS feed.
func NewGoogleClient(maxItems int) *GoogleClient {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	return &GoogleClient{
		FeedURL:  googleNewsFeedURL,
		maxItems: maxItems,
		parser:   gofeed.NewParser(),
	}
}

// Fetch parses the feed and returns at most maxItems entries with
// sequential ids.
func (c *GoogleClient) Fetch(ctx context.Context) (models.NewsBatch, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	feed, err := c.parser.ParseURLWithContext(c.FeedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("google news feed: %w", err)
	}

	entries := feed.Items
	if len(entries) > c.maxItems {
		entries = entries[:c.maxItems]
	}

	batch := make(models.NewsBatch, 0, len(entries))
	for i, entry := range entries {
		batch = append(batch, models.NewsItem{
			ID:    i + 1,
			Title: entry.Title,
			Link:  entry.Link,
		})
	}
	return batch, nil
}
