package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/ainews/pkg/config"
)

const rssContent = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>AI Feed</title>
		<link>https://example.com</link>
		<description>Test feed description</description>
		<item>
			<title>Open model breakthrough</title>
			<link>https://example.com/article1</link>
			<description>&lt;p&gt;Research paper release&lt;/p&gt;</description>
			<guid>article1</guid>
			<pubDate>Mon, 02 Jan 2006 15:04:05 +0000</pubDate>
		</item>
		<item>
			<title>Second article</title>
			<link>https://example.com/article2</link>
			<description>Article 2 description</description>
			<guid>article2</guid>
			<pubDate>Tue, 03 Jan 2006 15:04:05 +0000</pubDate>
		</item>
	</channel>
</rss>`

const atomContent = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Atom Feed</title>
	<link href="https://example.org/"/>
	<updated>2006-01-02T15:04:05Z</updated>
	<entry>
		<title>Atom Entry 1</title>
		<link href="https://example.org/entry1"/>
		<id>entry1</id>
		<updated>2006-01-04T15:04:05Z</updated>
		<summary>Entry 1 summary</summary>
	</entry>
</feed>`

func TestRSS_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rss":
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = w.Write([]byte(rssContent))
		case "/atom":
			w.Header().Set("Content-Type", "application/atom+xml")
			_, _ = w.Write([]byte(atomContent))
		case "/broken":
			_, _ = w.Write([]byte("not a feed at all"))
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
	defer server.Close()

	t.Run("multiple feeds keep order", func(t *testing.T) {
		src := NewRSS(config.SourceConfig{Feeds: []string{server.URL + "/rss", server.URL + "/atom"},
			MaxTopics: 10, APITimeout: time.Second})
		items, err := src.Fetch(context.Background())
		require.NoError(t, err)
		require.Len(t, items, 3)

		assert.Equal(t, "Open model breakthrough", items[0].Title)
		assert.Equal(t, "Research paper release", items[0].Description)
		assert.Equal(t, "AI Feed", items[0].Source)
		assert.Equal(t, "https://example.com/article1", items[0].URL)
		assert.Equal(t, "2006-01-02 15:04:05", items[0].Date)
		assert.Equal(t, "article1", items[0].ID)

		assert.Equal(t, "Second article", items[1].Title)

		assert.Equal(t, "Atom Entry 1", items[2].Title)
		assert.Equal(t, "Atom Feed", items[2].Source)
		assert.Equal(t, "2006-01-04 15:04:05", items[2].Date)
	})

	t.Run("max topics limit", func(t *testing.T) {
		src := NewRSS(config.SourceConfig{Feeds: []string{server.URL + "/rss", server.URL + "/atom"},
			MaxTopics: 2, APITimeout: time.Second})
		items, err := src.Fetch(context.Background())
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Second article", items[1].Title)
	})

	t.Run("http error", func(t *testing.T) {
		src := NewRSS(config.SourceConfig{Feeds: []string{server.URL + "/rss", server.URL + "/missing"},
			MaxTopics: 10, APITimeout: time.Second})
		_, err := src.Fetch(context.Background())
		require.Error(t, err)
		var upErr *UpstreamError
		require.True(t, errors.As(err, &upErr))
		assert.Equal(t, http.StatusNotFound, upErr.Code)
	})

	t.Run("not a feed", func(t *testing.T) {
		src := NewRSS(config.SourceConfig{Feeds: []string{server.URL + "/broken"}, MaxTopics: 10, APITimeout: time.Second})
		_, err := src.Fetch(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrParse)
	})
}
