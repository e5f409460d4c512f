package driven

import (
	"context"

	"github.com/presentai/presentai/internal/core/domain"
)

// DeckEncoder turns a presentation snapshot into a slide-deck archive.
// The encoder never modifies the presentation.
type DeckEncoder interface {
	// Encode produces the archive. Per-element failures are recovered and
	// reported in the result; only packaging failures return an error.
	Encode(ctx context.Context, p *domain.Presentation, opts EncodeOptions) (*EncodeResult, error)

	// MediaType returns the MIME type of the produced archive.
	MediaType() string

	// Extension returns the file extension including the dot.
	Extension() string
}

// EncodeOptions carry the resolved styling for one export.
type EncodeOptions struct {
	// Theme supplies the light palette and fonts.
	Theme domain.Theme

	// Override replaces individual palette roles.
	Override domain.ColorOverride
}

// EncodeResult is the output of an encode.
type EncodeResult struct {
	Data        []byte
	Diagnostics []domain.Diagnostic
	SlideCount  int
	MediaCount  int
	ChartCount  int
}
