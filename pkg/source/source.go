// Package source fetches raw news items from upstream providers.
package source

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/ainews/pkg/config"
	"github.com/umputun/ainews/pkg/domain"
)

// errors returned by sources
var (
	ErrTimeout = errors.New("news request timeout")
	ErrParse   = errors.New("malformed news response")
)

// UpstreamError is returned when the news provider reports a non-success status
type UpstreamError struct {
	Code int
	Msg  string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Msg)
}

// Fetcher retrieves a batch of raw news items
type Fetcher interface {
	Fetch(ctx context.Context) ([]domain.RawNewsItem, error)
}

// New makes a fetcher for the configured source type
func New(cfg config.SourceConfig) (Fetcher, error) {
	switch cfg.Type {
	case config.SourceTianAPI, "":
		return NewTianAPI(cfg), nil
	case config.SourceRSS:
		return NewRSS(cfg), nil
	default:
		return nil, fmt.Errorf("unknown source type %q", cfg.Type)
	}
}

var textPolicy = bluemonday.StrictPolicy()

// cleanText strips markup from upstream text and unescapes entities, so scoring
// and rendering work on plain text
func cleanText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

func cleanItem(item domain.RawNewsItem) domain.RawNewsItem {
	item.Title = cleanText(item.Title)
	item.Description = cleanText(item.Description)
	item.Source = cleanText(item.Source)
	item.URL = strings.TrimSpace(item.URL)
	item.ImageURL = strings.TrimSpace(item.ImageURL)
	return item
}

// isTimeout reports whether err was caused by an expired deadline
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
