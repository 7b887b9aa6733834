package querycache

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
)

// HTTPFetcher loads query results from the backend with
// GET {base}/queries?key=<canonical key>. Transient failures are retried with
// exponential backoff.
type HTTPFetcher struct {
	client  *retryablehttp.Client
	baseURL string
	token   string
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher creates an HTTPFetcher from cfg.
func NewHTTPFetcher(l log.Logger, cfg HTTPConfig) (*HTTPFetcher, error) {
	if cfg.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("querycache: invalid base url: %w", err)
	}

	client := retryablehttp.NewClient()
	client.RetryMax = orDefault(cfg.RetryMax, DefaultRetryMax)
	client.RetryWaitMin = orDefault(cfg.RetryWaitMin, DefaultRetryWaitMin)
	client.RetryWaitMax = orDefault(cfg.RetryWaitMax, DefaultRetryWaitMax)
	client.HTTPClient.Timeout = orDefault(cfg.Timeout, DefaultHTTPTimeout)
	client.Logger = leveledLogger{l: l}

	return &HTTPFetcher{
		client:  client,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		token:   cfg.Token,
	}, nil
}

func (f *HTTPFetcher) Fetch(ctx context.Context, key reconcile.QueryKey) (json.RawMessage, error) {
	u := f.baseURL + queriesPath + "?" + url.Values{"key": {key.String()}}.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("querycache: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querycache: fetch %s: %w", key, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("querycache: read %s: %w", key, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", ErrUnexpectedReply, key, resp.StatusCode)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s returned invalid json", ErrUnexpectedReply, key)
	}
	return json.RawMessage(body), nil
}

type number interface {
	~int | ~int64
}

func orDefault[T number](v, def T) T {
	if v <= 0 {
		return def
	}
	return v
}

// leveledLogger routes retryablehttp logs through pkg/log.
type leveledLogger struct {
	l log.Logger
}

func (a leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	a.l.Errorf(context.Background(), "querycache.http: %s %v", msg, keysAndValues)
}

func (a leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	a.l.Debugf(context.Background(), "querycache.http: %s %v", msg, keysAndValues)
}

func (a leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	a.l.Debugf(context.Background(), "querycache.http: %s %v", msg, keysAndValues)
}

func (a leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	a.l.Warnf(context.Background(), "querycache.http: %s %v", msg, keysAndValues)
}
