package fetch

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presentai/presentai/internal/core/domain"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestFetcher_Success(t *testing.T) {
	img := pngBytes(t)
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(img)
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), Config{})
	asset, err := f.Fetch(context.Background(), srv.URL+"/a.png")

	require.NoError(t, err)
	assert.Equal(t, img, asset.Data)
	assert.Equal(t, "image/png", asset.ContentType)
	assert.Equal(t, userAgent, gotUA)
}

func TestFetcher_Failures(t *testing.T) {
	img := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/html":
			_, _ = w.Write([]byte("<html><body>nope</body></html>"))
		default:
			_, _ = w.Write(img)
		}
	}))
	defer srv.Close()

	tests := []struct {
		name string
		url  string
		cfg  Config
	}{
		{name: "not found", url: srv.URL + "/missing"},
		{name: "not an image", url: srv.URL + "/html"},
		{name: "too large", url: srv.URL + "/big.png", cfg: Config{MaxBytes: 10}},
		{name: "bad scheme", url: "ftp://example.com/a.png"},
		{name: "no host", url: "http:///a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFetcher(srv.Client(), tt.cfg)
			_, err := f.Fetch(context.Background(), tt.url)
			assert.ErrorIs(t, err, domain.ErrAssetFetch)
		})
	}
}

func TestFetcher_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewFetcher(srv.Client(), Config{}).Fetch(ctx, srv.URL)
	assert.ErrorIs(t, err, domain.ErrAssetFetch)
}

func TestFetcher_RetriesThrottledResponses(t *testing.T) {
	img := pngBytes(t)
	for _, status := range []int{http.StatusTooManyRequests, http.StatusServiceUnavailable} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if calls.Add(1) == 1 {
					w.WriteHeader(status)
					return
				}
				_, _ = w.Write(img)
			}))
			defer srv.Close()

			f := NewFetcher(srv.Client(), Config{Backoff: 10 * time.Millisecond})
			asset, err := f.Fetch(context.Background(), srv.URL+"/a.png")

			require.NoError(t, err)
			assert.Equal(t, img, asset.Data)
			assert.Equal(t, int32(2), calls.Load())
		})
	}
}

func TestFetcher_RetryAfterSeconds(t *testing.T) {
	img := pngBytes(t)
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write(img)
	}))
	defer srv.Close()

	start := time.Now()
	_, err := NewFetcher(srv.Client(), Config{}).Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 900*time.Millisecond)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetcher_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	tests := []struct {
		name      string
		retries   int
		wantCalls int32
	}{
		{name: "default", retries: 0, wantCalls: DefaultMaxRetries + 1},
		{name: "custom", retries: 4, wantCalls: 5},
		{name: "disabled", retries: -1, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls.Store(0)
			f := NewFetcher(srv.Client(), Config{MaxRetries: tt.retries, Backoff: time.Millisecond})

			_, err := f.Fetch(context.Background(), srv.URL)

			assert.ErrorIs(t, err, domain.ErrAssetFetch)
			assert.Contains(t, err.Error(), "status 503")
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}

func TestFetcher_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.Client(), Config{Backoff: time.Millisecond}).Fetch(context.Background(), srv.URL)

	assert.ErrorIs(t, err, domain.ErrAssetFetch)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetcher_LongRetryAfterFailsAndBacksOff(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), Config{})
	_, err := f.Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, domain.ErrAssetFetch)

	// The next request waits for the backoff and gives up with the context.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = f.Fetch(ctx, srv.URL)
	assert.ErrorIs(t, err, domain.ErrAssetFetch)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRateLimiter_Throttles(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1})
	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, rl.Wait(ctx))
}

func TestRateLimiter_Unlimited(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{})

	for i := 0; i < 100; i++ {
		require.NoError(t, rl.Wait(context.Background()))
	}
}

func TestRateLimiter_RecordUsesConfiguredBackoff(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Backoff: 30 * time.Millisecond})
	rl.RecordRateLimitError(0)

	start := time.Now()
	require.NoError(t, rl.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, 3*time.Second, retryAfter("3"))
	assert.Zero(t, retryAfter(""))
	assert.Zero(t, retryAfter("soon"))

	future := time.Now().Add(time.Minute).UTC().Format(http.TimeFormat)
	d := retryAfter(future)
	assert.Greater(t, d, 50*time.Second)
}

func TestConfigFromSettings(t *testing.T) {
	s := domain.DefaultAppSettings().Export

	cfg := ConfigFromSettings(s)

	assert.Equal(t, s.FetchRatePerSecond, cfg.RequestsPerSecond)
	assert.Equal(t, s.FetchConcurrency, cfg.Burst)
	assert.Equal(t, s.MaxImageBytes, cfg.MaxBytes)
	assert.Equal(t, s.FetchTimeout, cfg.Timeout)
}
