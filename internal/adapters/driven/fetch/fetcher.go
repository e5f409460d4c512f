package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/presentai/presentai/internal/core/domain"
	"github.com/presentai/presentai/internal/core/ports/driven"
	"github.com/presentai/presentai/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.AssetFetcher = (*Fetcher)(nil)

// userAgent identifies the exporter to image hosts.
const userAgent = "presentai-export/1.0"

// Retry defaults for throttled responses.
const (
	DefaultMaxRetries   = 2
	DefaultMaxRetryWait = 10 * time.Second
)

// errThrottled marks a 429 or 503 response.
var errThrottled = errors.New("throttled")

// Config configures a Fetcher.
type Config struct {
	// RequestsPerSecond throttles outbound requests. Zero disables throttling.
	RequestsPerSecond float64

	// Burst is the token bucket size.
	Burst int

	// MaxBytes rejects larger bodies. Zero means unlimited.
	MaxBytes int64

	// Timeout bounds each request when the context carries no deadline.
	Timeout time.Duration

	// MaxRetries bounds retries after a 429 or 503. Zero uses
	// DefaultMaxRetries; negative disables retries.
	MaxRetries int

	// MaxRetryWait is the longest Retry-After honoured. A longer one fails
	// the fetch at once. Zero uses DefaultMaxRetryWait.
	MaxRetryWait time.Duration

	// Backoff is the wait after a throttled response without Retry-After.
	// Zero uses DefaultBackoff.
	Backoff time.Duration
}

// ConfigFromSettings derives fetcher configuration from export settings.
func ConfigFromSettings(s domain.ExportSettings) Config {
	return Config{
		RequestsPerSecond: s.FetchRatePerSecond,
		Burst:             s.FetchConcurrency,
		MaxBytes:          s.MaxImageBytes,
		Timeout:           s.FetchTimeout,
	}
}

// Fetcher downloads remote images over HTTP.
type Fetcher struct {
	client  *http.Client
	limiter *RateLimiter
	cfg     Config
}

// NewFetcher creates a fetcher. A nil client uses a client with cfg.Timeout.
func NewFetcher(client *http.Client, cfg Config) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	switch {
	case cfg.MaxRetries == 0:
		cfg.MaxRetries = DefaultMaxRetries
	case cfg.MaxRetries < 0:
		cfg.MaxRetries = 0
	}
	if cfg.MaxRetryWait <= 0 {
		cfg.MaxRetryWait = DefaultMaxRetryWait
	}
	return &Fetcher{
		client: client,
		limiter: NewRateLimiter(RateLimitConfig{
			RequestsPerSecond: cfg.RequestsPerSecond,
			BurstSize:         cfg.Burst,
			Backoff:           cfg.Backoff,
		}),
		cfg: cfg,
	}
}

// Fetch downloads rawURL. Every failure wraps domain.ErrAssetFetch.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*driven.Asset, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid url %q", domain.ErrAssetFetch, rawURL)
	}

	for attempt := 0; ; attempt++ {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrAssetFetch, rawURL, err)
		}
		asset, wait, err := f.fetchOnce(ctx, u.String())
		if err == nil {
			return asset, nil
		}
		if !errors.Is(err, errThrottled) || attempt >= f.cfg.MaxRetries || wait > f.cfg.MaxRetryWait {
			return nil, err
		}
		logger.Debug("fetch %s throttled, retry %d of %d", rawURL, attempt+1, f.cfg.MaxRetries)
	}
}

// fetchOnce performs a single request. A throttled response records a
// backoff on the limiter and returns the Retry-After it asked for.
func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (*driven.Asset, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrAssetFetch, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "image/*")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %v", domain.ErrAssetFetch, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
		wait := retryAfter(resp.Header.Get("Retry-After"))
		f.limiter.RecordRateLimitError(wait)
		return nil, wait, fmt.Errorf("%w: %s: status %d: %w", domain.ErrAssetFetch, rawURL, resp.StatusCode, errThrottled)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("%w: %s: status %d", domain.ErrAssetFetch, rawURL, resp.StatusCode)
	}
	if f.cfg.MaxBytes > 0 && resp.ContentLength > f.cfg.MaxBytes {
		return nil, 0, fmt.Errorf("%w: %s: %d bytes exceeds limit %d", domain.ErrAssetFetch, rawURL, resp.ContentLength, f.cfg.MaxBytes)
	}

	var body io.Reader = resp.Body
	if f.cfg.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, f.cfg.MaxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: read body: %v", domain.ErrAssetFetch, rawURL, err)
	}
	if f.cfg.MaxBytes > 0 && int64(len(data)) > f.cfg.MaxBytes {
		return nil, 0, fmt.Errorf("%w: %s: body exceeds limit %d", domain.ErrAssetFetch, rawURL, f.cfg.MaxBytes)
	}

	detected := mimetype.Detect(data)
	if !strings.HasPrefix(detected.String(), "image/") {
		return nil, 0, fmt.Errorf("%w: %s: not an image (%s)", domain.ErrAssetFetch, rawURL, detected.String())
	}

	logger.Debug("fetched %s (%d bytes, %s) in %s", rawURL, len(data), detected.String(), time.Since(start))
	return &driven.Asset{
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
	}, 0, nil
}

// retryAfter parses a Retry-After header given in seconds or as an HTTP date.
func retryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		return time.Until(at)
	}
	return 0
}
