package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/presentai/presentai/internal/core/domain"
	"github.com/presentai/presentai/internal/core/ports/driven"
	"github.com/presentai/presentai/internal/core/ports/driving"
	"github.com/presentai/presentai/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// defaultFileStem names decks whose title and hint are both empty.
const defaultFileStem = "presentation"

// ExportService loads presentations and runs them through a deck encoder.
type ExportService struct {
	store   driven.PresentationStore
	themes  driving.ThemeService
	encoder driven.DeckEncoder
}

// NewExportService creates a new export service.
func NewExportService(
	store driven.PresentationStore,
	themes driving.ThemeService,
	encoder driven.DeckEncoder,
) *ExportService {
	return &ExportService{
		store:   store,
		themes:  themes,
		encoder: encoder,
	}
}

// Export loads a stored presentation owned by the requester and exports it.
func (s *ExportService) Export(ctx context.Context, req domain.ExportRequest) (*domain.ExportResult, error) {
	if s.store == nil {
		return nil, s.fail(req.PresentationID, domain.FailureValidation, domain.ErrNotImplemented)
	}
	if req.PresentationID == "" || req.OwnerID == "" {
		return nil, s.fail(req.PresentationID, domain.FailureValidation,
			fmt.Errorf("%w: presentation id and owner are required", domain.ErrInvalidInput))
	}

	p, err := s.store.Get(ctx, req.OwnerID, req.PresentationID)
	if err != nil {
		return nil, s.fail(req.PresentationID, domain.FailureValidation, fmt.Errorf("load presentation: %w", err))
	}

	return s.export(ctx, p, domain.ExportOptions{
		FileNameHint: req.FileNameHint,
		ThemeName:    req.ThemeName,
		Override:     req.Override,
	})
}

// ExportDocument exports an in-memory presentation snapshot.
func (s *ExportService) ExportDocument(
	ctx context.Context,
	p *domain.Presentation,
	opts domain.ExportOptions,
) (*domain.ExportResult, error) {
	if p == nil {
		return nil, s.fail("", domain.FailureValidation, fmt.Errorf("%w: no presentation", domain.ErrInvalidInput))
	}
	return s.export(ctx, p, opts)
}

func (s *ExportService) export(
	ctx context.Context,
	p *domain.Presentation,
	opts domain.ExportOptions,
) (*domain.ExportResult, error) {
	requestID := uuid.NewString()
	start := time.Now()
	logger.Debug("export %s: presentation %q (%d slides)", requestID, p.ID, p.SlideCount())

	if s.encoder == nil {
		return nil, s.fail(p.ID, domain.FailurePackaging, domain.ErrNotImplemented)
	}
	if len(p.Slides) == 0 {
		return nil, s.fail(p.ID, domain.FailurePackaging, domain.ErrEmptyOrOversizedDocument)
	}

	override, err := ValidateOverride(opts.Override)
	if err != nil {
		return nil, s.fail(p.ID, domain.FailureValidation, err)
	}

	theme, err := s.theme(ctx, p, opts.ThemeName)
	if err != nil {
		return nil, s.fail(p.ID, domain.FailureValidation, err)
	}

	encoded, err := s.encoder.Encode(ctx, p, driven.EncodeOptions{Theme: *theme, Override: override})
	if err != nil {
		kind := domain.FailurePackaging
		if errors.Is(err, domain.ErrInvalidInput) && !errors.Is(err, domain.ErrEmptyOrOversizedDocument) {
			kind = domain.FailureValidation
		}
		return nil, s.fail(p.ID, kind, err)
	}

	for _, d := range encoded.Diagnostics {
		logger.Warn("export %s: %s", requestID, d)
	}
	logger.Timed("export "+requestID, start)

	return &domain.ExportResult{
		Data:        encoded.Data,
		FileName:    SanitizeFileName(p.Title, opts.FileNameHint, s.encoder.Extension()),
		Degraded:    len(encoded.Diagnostics) > 0,
		Diagnostics: encoded.Diagnostics,
		SlideCount:  encoded.SlideCount,
		MediaCount:  encoded.MediaCount,
		ChartCount:  encoded.ChartCount,
	}, nil
}

// theme picks the requested theme, then the presentation's own theme, then
// the configured default. A requested theme must exist; a stale theme name
// stored on the presentation falls back to the default.
func (s *ExportService) theme(ctx context.Context, p *domain.Presentation, requested string) (*domain.Theme, error) {
	if requested != "" {
		return s.resolveTheme(ctx, requested)
	}
	th, err := s.resolveTheme(ctx, p.ThemeName)
	if errors.Is(err, domain.ErrNotFound) && p.ThemeName != "" {
		logger.Warn("presentation %q uses unknown theme %q, using default", p.ID, p.ThemeName)
		return s.resolveTheme(ctx, "")
	}
	return th, err
}

// resolveTheme falls back to the built-in default when no theme service
// is wired.
func (s *ExportService) resolveTheme(ctx context.Context, name string) (*domain.Theme, error) {
	if s.themes != nil {
		return s.themes.Resolve(ctx, name)
	}
	if name == "" {
		name = domain.DefaultThemeName
	}
	for _, th := range domain.BuiltInThemes() {
		if th.Name == name {
			return &th, nil
		}
	}
	return nil, fmt.Errorf("theme %q: %w", name, domain.ErrNotFound)
}

func (s *ExportService) fail(id string, kind domain.FailureKind, err error) error {
	exportErr := &domain.ExportError{Kind: kind, Err: err}
	logger.Error("export of presentation %q failed: %v", id, exportErr)
	return exportErr
}

// ValidateOverride checks that every key is a palette role and every value
// a color, and returns the override with values normalised to bare
// uppercase hex.
func ValidateOverride(override domain.ColorOverride) (domain.ColorOverride, error) {
	if len(override) == 0 {
		return nil, nil
	}
	out := make(domain.ColorOverride, len(override))
	for role, value := range override {
		if !role.IsValid() {
			return nil, fmt.Errorf("%w: unknown color role %q", domain.ErrInvalidInput, role)
		}
		hex, ok := normalizeHex(value)
		if !ok {
			return nil, fmt.Errorf("%w: invalid color %q for %s", domain.ErrInvalidInput, value, role)
		}
		out[role] = hex
	}
	return out, nil
}

// normalizeHex accepts "#rgb", "rgb", "#rrggbb" and "rrggbb".
func normalizeHex(value string) (string, bool) {
	v := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) != 6 {
		return "", false
	}
	for _, r := range v {
		if !unicode.Is(unicode.ASCII_Hex_Digit, r) {
			return "", false
		}
	}
	return strings.ToUpper(v), true
}

// SanitizeFileName builds a download file name from a title, falling back
// to hint and then to "presentation". Accents are folded, non-alphanumeric
// characters are dropped and whitespace runs become a single '_'.
// ext is appended.
func SanitizeFileName(title, hint, ext string) string {
	stem := fileStem(title)
	if stem == "" {
		stem = fileStem(strings.TrimSuffix(hint, ext))
	}
	if stem == "" {
		stem = defaultFileStem
	}
	return stem + ext
}

func fileStem(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingSpace := false
	for _, r := range folded {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSpace = false
			b.WriteRune(r)
		}
	}
	stem := b.String()
	const maxStem = 120
	if len(stem) > maxStem {
		stem = stem[:maxStem]
	}
	return stem
}
