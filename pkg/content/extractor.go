// Package content downloads news pages and extracts readable article text used to
// give the llm analyzer more context than a one-line description.
package content

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/ainews/pkg/config"
	"github.com/umputun/ainews/pkg/domain"
)

// ErrTooShort is returned when extracted text is shorter than the configured minimum
var ErrTooShort = errors.New("extracted text too short")

// concurrent page downloads per enrich call
const maxParallel = 4

// HTTPExtractor extracts article content from URLs using trafilatura
type HTTPExtractor struct {
	client        *http.Client
	userAgent     string
	minTextLength int
}

// NewHTTPExtractor creates a new content extractor
func NewHTTPExtractor(cfg config.ExtractionConfig) *HTTPExtractor {
	return &HTTPExtractor{
		client:        &http.Client{Timeout: cfg.Timeout},
		userAgent:     cfg.UserAgent,
		minTextLength: cfg.MinTextLength,
	}
}

// Extract retrieves and extracts text content from the given URL
func (e *HTTPExtractor) Extract(ctx context.Context, urlStr string) (string, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("invalid URL: %q", urlStr)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	setHeaders(req, e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		Deduplicate:     true,
		OriginalURL:     parsedURL,
	}
	result, err := trafilatura.Extract(resp.Body, opts)
	if err != nil {
		return "", fmt.Errorf("extract content from %s: %w", urlStr, err)
	}
	if result == nil {
		return "", fmt.Errorf("no content extracted from %s", urlStr)
	}

	text := strings.TrimSpace(result.ContentText)
	if len([]rune(text)) < e.minTextLength {
		return "", fmt.Errorf("%w: %d chars from %s", ErrTooShort, len([]rune(text)), urlStr)
	}
	return text, nil
}

// Enrich sets Content of every item whose page could be extracted. Failures are logged
// and leave the item unchanged, the returned slice is a copy in the same order.
func (e *HTTPExtractor) Enrich(ctx context.Context, items []domain.RawNewsItem) []domain.RawNewsItem {
	res := make([]domain.RawNewsItem, len(items))
	copy(res, items)

	var g errgroup.Group
	g.SetLimit(maxParallel)
	for i := range res {
		if res[i].URL == "" {
			continue
		}
		g.Go(func() error {
			st := time.Now()
			text, err := e.Extract(ctx, res[i].URL)
			if err != nil {
				log.Printf("[DEBUG] skip content of %q: %v", res[i].Title, err)
				return nil
			}
			res[i].Content = text
			log.Printf("[DEBUG] extracted %d chars for %q in %v", len([]rune(text)), res[i].Title, time.Since(st))
			return nil
		})
	}
	_ = g.Wait()
	return res
}

// setHeaders sets browser-like request headers
func setHeaders(req *http.Request, userAgent string) {
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	req.Header.Set("Cache-Control", "no-cache")
}
