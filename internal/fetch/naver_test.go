package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupKey(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{
			name: "article id pair",
			link: "https://n.news.naver.com/mnews/article/001/0012345678",
			want: "001_0012345678",
		},
		{
			name: "article id pair with query string",
			link: "https://n.news.naver.com/mnews/article/001/0012345678?sid=105",
			want: "001_0012345678",
		},
		{
			name: "no id, query string stripped",
			link: "https://example.com/news/story?utm=abc",
			want: "https://example.com/news/story",
		},
		{
			name: "no id, trailing slash stripped",
			link: "https://example.com/news/story/",
			want: "https://example.com/news/story",
		},
		{
			name: "no id, query and trailing slash",
			link: "https://example.com/news/story/?ref=rss",
			want: "https://example.com/news/story",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dedupKey(tt.link))
		})
	}
}

func TestNaverFetch_DedupsAndTruncates(t *testing.T) {
	// Two links sharing an article id pair, one plain duplicate link,
	// then enough unique entries to overflow the cap.
	body := `{"items":[
		{"title":"first &quot;story&quot;","link":"https://n.news.naver.com/mnews/article/001/0001?sid=105"},
		{"title":"<b>dup of first</b>","link":"https://news.naver.com/main/article/001/0001"},
		{"title":"second","link":"https://example.com/a?utm=x"},
		{"title":"second again","link":"https://example.com/a/"},
		{"title":"third","link":"https://n.news.naver.com/mnews/article/002/0002"},
		{"title":"fourth","link":"https://n.news.naver.com/mnews/article/003/0003"},
		{"title":"fifth","link":"https://n.news.naver.com/mnews/article/004/0004"}
	]}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "id", r.Header.Get("X-Naver-Client-Id"))
		assert.Equal(t, "secret", r.Header.Get("X-Naver-Client-Secret"))
		assert.Equal(t, "date", r.URL.Query().Get("sort"))
		assert.Equal(t, "50", r.URL.Query().Get("display"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewNaverClient("id", "secret", 4, nil)
	c.BaseURL = srv.URL

	batch, err := c.Fetch(context.Background())
	require.NoError(t, err)

	// 5 unique stories in the input, capped at 4.
	require.Len(t, batch, 4)

	// First occurrence survives, markup is stripped, ids are sequential.
	assert.Equal(t, `first "story"`, batch[0].Title)
	assert.Equal(t, "https://n.news.naver.com/mnews/article/001/0001?sid=105", batch[0].Link)
	assert.Equal(t, "second", batch[1].Title)
	assert.Equal(t, "third", batch[2].Title)
	assert.Equal(t, "fourth", batch[3].Title)
	for i, item := range batch {
		assert.Equal(t, i+1, item.ID)
	}
}

func TestNaverFetch_MissingCredentials(t *testing.T) {
	c := NewNaverClient("", "", 12, nil)
	_, err := c.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrCredentialsMissing)
}

func TestNaverFetch_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewNaverClient("id", "secret", 12, nil)
	c.BaseURL = srv.URL

	_, err := c.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=401")
}

func TestDedup_StopsAtCapWithUniqueRemaining(t *testing.T) {
	items := []naverItem{
		{Title: "a", Link: "https://example.com/a"},
		{Title: "b", Link: "https://example.com/b"},
		{Title: "c", Link: "https://example.com/c"},
	}
	batch := dedup(items, 2)
	require.Len(t, batch, 2)
	assert.Equal(t, "a", batch[0].Title)
	assert.Equal(t, "b", batch[1].Title)
}
