package models

// NewsItem is a single normalized news entry served to clients.
// ID is sequential within one batch, starting at 1. Title has HTML
// entities and bold markup already stripped by the fetcher.
type NewsItem struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Link  string `json:"link"`
}

// NewsBatch is an ordered, size-bounded list of items from one provider.
type NewsBatch []NewsItem

// CacheRecord is one cached provider batch. Data holds the JSON-encoded
// batch; ExpiresAt is an epoch-seconds timestamp. It is a plain int64 on
// both the write and read path so validity comparisons never depend on
// driver-specific numeric coercion.
type CacheRecord struct {
	Key       string `db:"id" json:"id"`
	Data      string `db:"data" json:"data"`
	ExpiresAt int64  `db:"ttl" json:"ttl"`
}
