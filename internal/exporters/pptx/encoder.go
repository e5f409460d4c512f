package pptx

import (
	"context"
	"time"

	"github.com/presentai/presentai/internal/core/domain"
	"github.com/presentai/presentai/internal/core/ports/driven"
	"github.com/presentai/presentai/internal/logger"
)

// Ensure Encoder implements the interface.
var _ driven.DeckEncoder = (*Encoder)(nil)

// Config controls an Encoder.
type Config struct {
	// FetchConcurrency caps in-flight image loads per slide.
	FetchConcurrency int

	// FetchTimeout bounds a single remote fetch.
	FetchTimeout time.Duration

	// MaxImageBytes and MaxImageDimension bound image processing.
	MaxImageBytes     int64
	MaxImageDimension int

	// MaxParts bounds the package size.
	MaxParts int

	// Now stamps document properties. Defaults to time.Now.
	Now func() time.Time
}

// ConfigFromSettings maps application settings onto an encoder Config.
func ConfigFromSettings(s domain.ExportSettings) Config {
	return Config{
		FetchConcurrency:  s.FetchConcurrency,
		FetchTimeout:      s.FetchTimeout,
		MaxImageBytes:     s.MaxImageBytes,
		MaxImageDimension: s.MaxImageDimension,
		MaxParts:          s.MaxParts,
	}
}

// Encoder writes presentations as PPTX packages.
type Encoder struct {
	fetcher driven.AssetFetcher
	cfg     Config
}

// New creates an encoder. fetcher may be nil, in which case remote images
// become placeholders.
func New(fetcher driven.AssetFetcher, cfg Config) *Encoder {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Encoder{fetcher: fetcher, cfg: cfg}
}

// MediaType returns the PPTX MIME type.
func (e *Encoder) MediaType() string {
	return domain.PPTXMediaType
}

// Extension returns ".pptx".
func (e *Encoder) Extension() string {
	return ".pptx"
}

// Encode converts p into a PPTX package. Each slide's images are loaded
// concurrently before the slide is assembled; slides are assembled in
// document order.
func (e *Encoder) Encode(ctx context.Context, p *domain.Presentation, opts driven.EncodeOptions) (*driven.EncodeResult, error) {
	if p == nil {
		return nil, domain.ErrInvalidInput
	}
	if len(p.Slides) == 0 {
		return nil, domain.ErrEmptyOrOversizedDocument
	}
	defer logger.Timed("pptx encode", time.Now())

	style := NewStyle(opts.Theme, opts.Override)
	canvas := DefaultCanvas()
	builder := NewPackageBuilder(BuilderOptions{
		Title:     p.Title,
		ThemeName: opts.Theme.Name,
		Canvas:    canvas,
		Style:     style,
		MaxParts:  e.cfg.MaxParts,
		Created:   e.cfg.Now(),
	})
	cache := newMediaCache(e.fetcher, FetchOptions{
		Concurrency: e.cfg.FetchConcurrency,
		Timeout:     e.cfg.FetchTimeout,
		Limits: MediaLimits{
			MaxBytes:     e.cfg.MaxImageBytes,
			MaxDimension: e.cfg.MaxImageDimension,
		},
	})
	env := SlideEnv{
		Canvas:   canvas,
		Style:    style,
		Language: p.Language,
		Registry: builder,
		Media:    cache,
	}

	var diags []domain.Diagnostic
	for i := range p.Slides {
		slide := &p.Slides[i]
		cache.prefetch(ctx, imageSources(slide))
		part := AssembleSlide(slide, i+1, env)
		builder.AddSlide(part)
		diags = append(diags, part.Diagnostics...)
		logger.Debug("slide %d: %d elements, %d relationships, %d diagnostics",
			i+1, len(slide.Elements), part.Rels.Len(), len(part.Diagnostics))
	}

	data, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &driven.EncodeResult{
		Data:        data,
		Diagnostics: diags,
		SlideCount:  builder.SlideCount(),
		MediaCount:  builder.MediaCount(),
		ChartCount:  builder.ChartCount(),
	}, nil
}
