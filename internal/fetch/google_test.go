package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rssFeed(n int) string {
	items := ""
	for i := 1; i <= n; i++ {
		items += fmt.Sprintf(`<item><title>story %d</title><link>https://news.example.com/%d</link></item>`, i, i)
	}
	return `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>IT</title>` + items + `</channel></rss>`
}

func TestGoogleFetch_TruncatesAndNumbers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssFeed(20))
	}))
	defer srv.Close()

	c := NewGoogleClient(12)
	c.FeedURL = srv.URL

	batch, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, batch, 12)

	assert.Equal(t, "story 1", batch[0].Title)
	assert.Equal(t, "https://news.example.com/1", batch[0].Link)
	for i, item := range batch {
		assert.Equal(t, i+1, item.ID)
	}
}

func TestGoogleFetch_ShortFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssFeed(3))
	}))
	defer srv.Close()

	c := NewGoogleClient(12)
	c.FeedURL = srv.URL

	batch, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, batch, 3)
}

func TestGoogleFetch_BadFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not xml at all")
	}))
	defer srv.Close()

	c := NewGoogleClient(12)
	c.FeedURL = srv.URL

	_, err := c.Fetch(context.Background())
	assert.Error(t, err)
}
