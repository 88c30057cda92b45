package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/ainews/pkg/config"
	"github.com/umputun/ainews/pkg/domain"
)

// dateLayout matches the ctime format of the news API
const dateLayout = "2006-01-02 15:04:05"

// RSS fetches news from a list of RSS/Atom feeds
type RSS struct {
	feeds     []string
	maxTopics int
	timeout   time.Duration
}

// NewRSS creates a feed based news source
func NewRSS(cfg config.SourceConfig) *RSS {
	return &RSS{feeds: cfg.Feeds, maxTopics: cfg.MaxTopics, timeout: cfg.APITimeout}
}

// Fetch retrieves all feeds concurrently and returns their items in feed order,
// limited to maxTopics. Any feed failure fails the whole fetch.
func (r *RSS) Fetch(ctx context.Context) ([]domain.RawNewsItem, error) {
	results := make([][]domain.RawNewsItem, len(r.feeds))

	g, ctx := errgroup.WithContext(ctx)
	for i, feedURL := range r.feeds {
		g.Go(func() error {
			items, err := r.fetchFeed(ctx, feedURL)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var items []domain.RawNewsItem
	for _, res := range results {
		for _, item := range res {
			if r.maxTopics > 0 && len(items) >= r.maxTopics {
				return items, nil
			}
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *RSS) fetchFeed(ctx context.Context, feedURL string) ([]domain.RawNewsItem, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	feed, err := gofeed.NewParser().ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, feedError(feedURL, err)
	}

	items := make([]domain.RawNewsItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		raw := domain.RawNewsItem{
			ID:          item.GUID,
			Title:       item.Title,
			Description: item.Description,
			Source:      feed.Title,
			URL:         item.Link,
		}
		if raw.Source == "" {
			raw.Source = feedURL
		}
		if item.Image != nil {
			raw.ImageURL = item.Image.URL
		}

		// parse publish time
		if item.PublishedParsed != nil {
			raw.Date = item.PublishedParsed.Format(dateLayout)
		} else if item.UpdatedParsed != nil {
			raw.Date = item.UpdatedParsed.Format(dateLayout)
		}

		items = append(items, cleanItem(raw))
	}
	return items, nil
}

// feedError maps gofeed failures to source errors
func feedError(feedURL string, err error) error {
	if isTimeout(err) {
		return fmt.Errorf("%w: %s", ErrTimeout, feedURL)
	}
	var httpErr gofeed.HTTPError
	if errors.As(err, &httpErr) {
		return &UpstreamError{Code: httpErr.StatusCode, Msg: httpErr.Status}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("fetch feed %s: %w", feedURL, err)
	}
	return fmt.Errorf("%w: feed %s: %w", ErrParse, feedURL, err)
}
