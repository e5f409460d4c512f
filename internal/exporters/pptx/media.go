package pptx

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"

	// Decoders for formats that are transcoded to PNG.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/presentai/presentai/internal/core/domain"
	"github.com/presentai/presentai/internal/core/ports/driven"
)

// Media is a normalised image ready to be stored in the package.
type Media struct {
	Data        []byte
	Ext         string
	ContentType string
	Width       int
	Height      int

	// Hash is the hex SHA-256 of Data.
	Hash string
}

// MediaLimits bound image processing.
type MediaLimits struct {
	MaxBytes     int64
	MaxDimension int
}

// NormaliseImage sniffs data, transcodes formats the package cannot carry
// to PNG and downscales images whose longest side exceeds the limit.
func NormaliseImage(data []byte, limits MediaLimits) (*Media, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrInvalidInput)
	}
	if limits.MaxBytes > 0 && int64(len(data)) > limits.MaxBytes {
		return nil, fmt.Errorf("%w: image is %d bytes, limit %d", domain.ErrInvalidInput, len(data), limits.MaxBytes)
	}

	mt := mimetype.Detect(data)
	var (
		ext, ct string
		native  bool
	)
	switch {
	case mt.Is("image/png"):
		ext, ct, native = "png", "image/png", true
	case mt.Is("image/jpeg"):
		ext, ct, native = "jpeg", "image/jpeg", true
	case mt.Is("image/gif"):
		ext, ct, native = "gif", "image/gif", true
	case mt.Is("image/webp"), mt.Is("image/bmp"), mt.Is("image/tiff"):
		ext, ct = "png", "image/png"
	default:
		return nil, fmt.Errorf("%w: image format %s", domain.ErrInvalidInput, mt.String())
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", domain.ErrInvalidInput, err)
	}

	oversized := limits.MaxDimension > 0 && (cfg.Width > limits.MaxDimension || cfg.Height > limits.MaxDimension)
	if native && !oversized {
		return newMedia(data, ext, ct, cfg.Width, cfg.Height), nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", domain.ErrInvalidInput, err)
	}
	if oversized {
		img = imaging.Fit(img, limits.MaxDimension, limits.MaxDimension, imaging.Lanczos)
	}

	format := imaging.PNG
	if ext == "jpeg" {
		format = imaging.JPEG
	} else {
		ext, ct = "png", "image/png"
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("%w: encode image: %v", domain.ErrInvalidInput, err)
	}
	b := img.Bounds()
	return newMedia(buf.Bytes(), ext, ct, b.Dx(), b.Dy()), nil
}

func newMedia(data []byte, ext, ct string, w, h int) *Media {
	sum := sha256.Sum256(data)
	return &Media{
		Data:        data,
		Ext:         ext,
		ContentType: ct,
		Width:       w,
		Height:      h,
		Hash:        hex.EncodeToString(sum[:]),
	}
}

// decodeDataURI decodes "data:[<mediatype>][;base64],<data>".
func decodeDataURI(uri string) ([]byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, fmt.Errorf("%w: not a data URI", domain.ErrInvalidInput)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("%w: data URI has no payload", domain.ErrInvalidInput)
	}
	if strings.HasSuffix(strings.ToLower(meta), ";base64") {
		payload = strings.Map(func(r rune) rune {
			if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
				return -1
			}
			return r
		}, payload)
		if data, err := base64.StdEncoding.DecodeString(payload); err == nil {
			return data, nil
		}
		data, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, fmt.Errorf("%w: data URI base64: %v", domain.ErrInvalidInput, err)
		}
		return data, nil
	}
	data, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: data URI: %v", domain.ErrInvalidInput, err)
	}
	return []byte(data), nil
}

func isRemote(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// FetchOptions configure the per-export media cache.
type FetchOptions struct {
	Concurrency int
	Timeout     time.Duration
	Limits      MediaLimits
}

// mediaCache resolves every image source once per export.
// It implements MediaResolver.
type mediaCache struct {
	fetcher driven.AssetFetcher
	opts    FetchOptions

	mu      sync.Mutex
	entries map[string]*mediaEntry
}

type mediaEntry struct {
	media *Media
	err   error
}

func newMediaCache(fetcher driven.AssetFetcher, opts FetchOptions) *mediaCache {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	return &mediaCache{
		fetcher: fetcher,
		opts:    opts,
		entries: make(map[string]*mediaEntry),
	}
}

// Media implements MediaResolver. Sources must have been prefetched.
func (c *mediaCache) Media(src string) (*Media, error) {
	c.mu.Lock()
	e, ok := c.entries[src]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s was not prefetched", domain.ErrAssetFetch, src)
	}
	return e.media, e.err
}

// prefetch loads every source not yet cached, at most Concurrency at a
// time, and returns when all of them have resolved. Failures are cached
// per source and never cancel sibling fetches.
func (c *mediaCache) prefetch(ctx context.Context, sources []string) {
	var g errgroup.Group
	g.SetLimit(c.opts.Concurrency)

	seen := make(map[string]bool)
	for _, src := range sources {
		if src == "" || seen[src] {
			continue
		}
		seen[src] = true

		c.mu.Lock()
		_, cached := c.entries[src]
		c.mu.Unlock()
		if cached {
			continue
		}

		g.Go(func() error {
			m, err := c.load(ctx, src)
			c.mu.Lock()
			c.entries[src] = &mediaEntry{media: m, err: err}
			c.mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
}

func (c *mediaCache) load(ctx context.Context, src string) (*Media, error) {
	var data []byte
	switch {
	case strings.HasPrefix(src, "data:"):
		decoded, err := decodeDataURI(src)
		if err != nil {
			return nil, err
		}
		data = decoded
	case isRemote(src):
		if c.fetcher == nil {
			return nil, fmt.Errorf("%w: no fetcher configured for %s", domain.ErrAssetFetch, src)
		}
		fctx := ctx
		if c.opts.Timeout > 0 {
			var cancel context.CancelFunc
			fctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
			defer cancel()
		}
		asset, err := c.fetcher.Fetch(fctx, src)
		if err != nil {
			if !errors.Is(err, domain.ErrAssetFetch) {
				err = fmt.Errorf("%w: %v", domain.ErrAssetFetch, err)
			}
			return nil, err
		}
		data = asset.Data
	default:
		return nil, fmt.Errorf("%w: unsupported image source", domain.ErrInvalidInput)
	}
	return NormaliseImage(data, c.opts.Limits)
}

// imageSources lists the image sources a slide needs, in paint order.
func imageSources(s *domain.Slide) []string {
	var out []string
	if s.Background != nil && s.Background.ImageSrc != "" {
		out = append(out, s.Background.ImageSrc)
	}
	domain.Walk(s.Elements, func(el domain.Element) bool {
		if img, ok := el.(*domain.Image); ok {
			out = append(out, img.Src)
		}
		return true
	})
	return out
}
