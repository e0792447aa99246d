// Package fetch implements the two provider fetchers. Each issues one
// bounded request with a fixed query, normalizes raw entries into
// models.NewsItem and truncates the result to the provider maximum.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/itchuru/news-service/pkg/models"
)

const (
	naverSearchURL = "https://openapi.naver.com/v1/search/news.json"
	naverQuery     = "IT|클라우드|AI|AWS|GPT|컴퓨팅"
	naverDisplay   = 50

	// DefaultMaxItems caps a batch when no explicit maximum is configured.
	DefaultMaxItems = 12

	fetchTimeout = 25 * time.Second
)

// ErrCredentialsMissing is returned when the Naver client id/secret pair
// is not configured.
var ErrCredentialsMissing = errors.New("naver api credentials not configured")

// naverArticleID matches the office/article id pair embedded in Naver
// news links, e.g. .../article/001/0012345678.
var naverArticleID = regexp.MustCompile(`article/(\d+)/(\d+)`)

// titleCleaner strips the markup Naver injects into search result titles.
var titleCleaner = strings.NewReplacer(`&quot;`, `"`, "<b>", "", "</b>", "")

// NaverClient fetches Korean IT news from the Naver search API.
type NaverClient struct {
	// BaseURL is overridable for tests; defaults to the Naver endpoint.
	BaseURL string

	clientID     string
	clientSecret string
	maxItems     int
	hc           *http.Client
}

// NewNaverClient creates a fetcher for the Naver news search API.
// If httpClient is nil, a default with the fetch timeout is used.
func NewNaverClient(clientID, clientSecret string, maxItems int, httpClient *http.Client) *NaverClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: fetchTimeout}
	}
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	return &NaverClient{
		BaseURL:      naverSearchURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		maxItems:     maxItems,
		hc:           httpClient,
	}
}

type naverResponse struct {
	Items []naverItem `json:"items"`
}

type naverItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Fetch issues one search request and returns the deduplicated,
// truncated batch. Entries are processed in the order received; the
// first occurrence of each dedup key wins, and accumulation stops at
// the configured maximum even if more unique entries remain.
func (c *NaverClient) Fetch(ctx context.Context) (models.NewsBatch, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return nil, ErrCredentialsMissing
	}

	q := url.Values{}
	q.Set("query", naverQuery)
	q.Set("display", fmt.Sprint(naverDisplay))
	q.Set("sort", "date")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("naver request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("naver request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("naver request failed: status=%d", resp.StatusCode)
	}

	var parsed naverResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("naver decode response: %w", err)
	}

	return dedup(parsed.Items, c.maxItems), nil
}

// dedup keeps the first occurrence of each identity key, caps the output
// and assigns sequential ids in kept order.
func dedup(items []naverItem, maxItems int) models.NewsBatch {
	seen := make(map[string]struct{}, len(items))
	batch := make(models.NewsBatch, 0, maxItems)

	for _, it := range items {
		key := dedupKey(it.Link)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		batch = append(batch, models.NewsItem{
			ID:    len(batch) + 1,
			Title: titleCleaner.Replace(it.Title),
			Link:  it.Link,
		})
		if len(batch) >= maxItems {
			break
		}
	}
	return batch
}

// dedupKey derives the identity of a story. Links carrying the Naver
// article id pair collapse on that pair; anything else collapses on the
// link with its query string and trailing slash stripped.
func dedupKey(link string) string {
	if m := naverArticleID.FindStringSubmatch(link); m != nil {
		return m[1] + "_" + m[2]
	}
	if i := strings.IndexByte(link, '?'); i >= 0 {
		link = link[:i]
	}
	return strings.TrimRight(link, "/")
}
