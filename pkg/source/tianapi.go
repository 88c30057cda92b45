package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/umputun/ainews/pkg/config"
	"github.com/umputun/ainews/pkg/domain"
)

// success code of the TianAPI envelope
const codeOK = 200

// TianAPI fetches news from a TianAPI-style endpoint with a single GET request
type TianAPI struct {
	endpoint  string
	apiKey    string
	maxTopics int
	timeout   time.Duration
	client    *http.Client
}

// envelope is the response wrapper of the news API
type envelope struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Result struct {
		NewsList []domain.RawNewsItem `json:"newslist"`
	} `json:"result"`
}

// NewTianAPI creates a news API client
func NewTianAPI(cfg config.SourceConfig) *TianAPI {
	return &TianAPI{
		endpoint:  cfg.APIEndpoint,
		apiKey:    cfg.APIKey,
		maxTopics: cfg.MaxTopics,
		timeout:   cfg.APITimeout,
		client:    &http.Client{},
	}
}

// Fetch performs exactly one request and returns the news list. No retry is done here,
// the caller decides what to do with the error.
func (t *TianAPI) Fetch(ctx context.Context) ([]domain.RawNewsItem, error) {
	u, err := url.Parse(t.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	// the key-free form is used in errors
	endpoint := (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}).String()

	q := u.Query()
	q.Set("key", t.apiKey)
	q.Set("num", strconv.Itoa(t.maxTopics))
	u.RawQuery = q.Encode()

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w after %v", ErrTimeout, t.timeout)
		}
		return nil, fmt.Errorf("fetch news from %s: %w", endpoint, stripURL(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w after %v", ErrTimeout, t.timeout)
		}
		return nil, fmt.Errorf("read response from %s: %w", endpoint, stripURL(err))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &UpstreamError{Code: resp.StatusCode, Msg: http.StatusText(resp.StatusCode)}
		}
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if env.Code != codeOK {
		return nil, &UpstreamError{Code: env.Code, Msg: env.Msg}
	}

	items := make([]domain.RawNewsItem, 0, len(env.Result.NewsList))
	for _, item := range env.Result.NewsList {
		items = append(items, cleanItem(item))
	}
	return items, nil
}

// stripURL drops the request URL from transport errors, it carries the api key
func stripURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s: %w", ue.Op, ue.Err)
	}
	return err
}
