package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presentai/presentai/internal/adapters/driven/storage/memory"
	"github.com/presentai/presentai/internal/core/domain"
	"github.com/presentai/presentai/internal/core/ports/driven"
	"github.com/presentai/presentai/internal/exporters/pptx"
)

// stubEncoder returns a fixed result or error.
type stubEncoder struct {
	result *driven.EncodeResult
	err    error
	got    driven.EncodeOptions
}

func (e *stubEncoder) Encode(_ context.Context, _ *domain.Presentation, opts driven.EncodeOptions) (*driven.EncodeResult, error) {
	e.got = opts
	return e.result, e.err
}

func (e *stubEncoder) MediaType() string { return domain.PPTXMediaType }
func (e *stubEncoder) Extension() string { return ".pptx" }

type testFetcher struct {
	data map[string][]byte
}

func (f *testFetcher) Fetch(_ context.Context, url string) (*driven.Asset, error) {
	data, ok := f.data[url]
	if !ok {
		return nil, domain.ErrAssetFetch
	}
	return &driven.Asset{Data: data}, nil
}

func exportFixture(t *testing.T, encoder driven.DeckEncoder) (*ExportService, *memory.PresentationStore) {
	t.Helper()
	store := memory.NewPresentationStore()
	themes := NewThemeService(memory.NewThemeStore(), nil)
	return NewExportService(store, themes, encoder), store
}

func savePresentation(t *testing.T, store *memory.PresentationStore, p *domain.Presentation) {
	t.Helper()
	require.NoError(t, store.Save(context.Background(), p))
}

func sampleDeck(id, owner, title string, elements ...domain.Element) *domain.Presentation {
	return &domain.Presentation{
		ID:        id,
		OwnerID:   owner,
		Title:     title,
		ThemeName: "ocean",
		Slides:    []domain.Slide{{Elements: elements}},
		UpdatedAt: time.Now(),
	}
}

func helloText() *domain.TextBlock {
	return &domain.TextBlock{
		Base: domain.Base{Frame: domain.Frame{Width: 50, Height: 20, Unit: domain.UnitPercent}},
		Paragraphs: []domain.Paragraph{{
			Level: domain.LevelTitle,
			Runs:  []domain.TextRun{{Text: "Hello"}},
		}},
	}
}

func TestExportService_Export_Success(t *testing.T) {
	svc, store := exportFixture(t, pptx.New(nil, pptx.Config{}))
	savePresentation(t, store, sampleDeck("p1", "alice", "Quarterly Review", helloText()))

	res, err := svc.Export(context.Background(), domain.ExportRequest{PresentationID: "p1", OwnerID: "alice"})

	require.NoError(t, err)
	assert.Equal(t, "Quarterly_Review.pptx", res.FileName)
	assert.False(t, res.Degraded)
	assert.Equal(t, 1, res.SlideCount)
	assert.NotEmpty(t, res.Base64())
	require.NoError(t, pptx.Verify(res.Data))

	report, err := pptx.Inspect(res.Data)
	require.NoError(t, err)
	assert.Equal(t, "Hello", report.Slides[0].Text())
}

func TestExportService_Export_ServesImagesThroughFetcher(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	fetcher := &testFetcher{data: map[string][]byte{"https://cdn.example.com/a.png": buf.Bytes()}}
	svc, store := exportFixture(t, pptx.New(fetcher, pptx.Config{}))
	savePresentation(t, store, sampleDeck("p1", "alice", "Images",
		&domain.Image{Base: domain.Base{Frame: domain.Frame{Width: 50, Height: 50, Unit: domain.UnitPercent}}, Src: "https://cdn.example.com/a.png"},
		&domain.Image{Base: domain.Base{Frame: domain.Frame{Width: 50, Height: 50, Unit: domain.UnitPercent}}, Src: "https://cdn.example.com/404.png"},
	))

	res, err := svc.Export(context.Background(), domain.ExportRequest{PresentationID: "p1", OwnerID: "alice"})

	require.NoError(t, err)
	assert.True(t, res.Degraded)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, domain.FailureAssetFetch, res.Diagnostics[0].Kind)
	assert.Equal(t, 1, res.MediaCount)
}

func TestExportService_Export_OwnershipAndMissing(t *testing.T) {
	svc, store := exportFixture(t, pptx.New(nil, pptx.Config{}))
	savePresentation(t, store, sampleDeck("p1", "alice", "Private", helloText()))
	ctx := context.Background()

	tests := []struct {
		name    string
		req     domain.ExportRequest
		wantErr error
	}{
		{"other owner", domain.ExportRequest{PresentationID: "p1", OwnerID: "bob"}, domain.ErrForbidden},
		{"missing", domain.ExportRequest{PresentationID: "nope", OwnerID: "alice"}, domain.ErrNotFound},
		{"no owner", domain.ExportRequest{PresentationID: "p1"}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Export(ctx, tt.req)

			assert.Nil(t, res)
			var exportErr *domain.ExportError
			require.ErrorAs(t, err, &exportErr)
			assert.Equal(t, domain.FailureValidation, exportErr.Kind)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExportService_Export_Override(t *testing.T) {
	encoder := &stubEncoder{result: &driven.EncodeResult{Data: []byte("zip"), SlideCount: 1}}
	svc, store := exportFixture(t, encoder)
	savePresentation(t, store, sampleDeck("p1", "alice", "Deck", helloText()))

	_, err := svc.Export(context.Background(), domain.ExportRequest{
		PresentationID: "p1",
		OwnerID:        "alice",
		Override:       domain.ColorOverride{domain.RolePrimary: "#abc", domain.RoleMuted: "112233"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ColorOverride{domain.RolePrimary: "AABBCC", domain.RoleMuted: "112233"}, encoder.got.Override)
	assert.Equal(t, "ocean", encoder.got.Theme.Name)

	for _, bad := range []domain.ColorOverride{
		{domain.ColorRole("border"): "112233"},
		{domain.RolePrimary: "blue"},
		{domain.RolePrimary: "12345"},
	} {
		_, err := svc.Export(context.Background(), domain.ExportRequest{PresentationID: "p1", OwnerID: "alice", Override: bad})
		var exportErr *domain.ExportError
		require.ErrorAs(t, err, &exportErr)
		assert.Equal(t, domain.FailureValidation, exportErr.Kind)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestExportService_Export_ThemeSelection(t *testing.T) {
	encoder := &stubEncoder{result: &driven.EncodeResult{Data: []byte("zip")}}
	svc, store := exportFixture(t, encoder)
	deck := sampleDeck("p1", "alice", "Deck", helloText())
	deck.ThemeName = "retired-theme"
	savePresentation(t, store, deck)
	ctx := context.Background()

	_, err := svc.Export(ctx, domain.ExportRequest{PresentationID: "p1", OwnerID: "alice"})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultThemeName, encoder.got.Theme.Name)

	_, err = svc.Export(ctx, domain.ExportRequest{PresentationID: "p1", OwnerID: "alice", ThemeName: "forest"})
	require.NoError(t, err)
	assert.Equal(t, "forest", encoder.got.Theme.Name)

	_, err = svc.Export(ctx, domain.ExportRequest{PresentationID: "p1", OwnerID: "alice", ThemeName: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportService_Export_EncoderFailure(t *testing.T) {
	encoder := &stubEncoder{err: errors.Join(domain.ErrPackaging, errors.New("disk full"))}
	svc, store := exportFixture(t, encoder)
	savePresentation(t, store, sampleDeck("p1", "alice", "Deck", helloText()))

	res, err := svc.Export(context.Background(), domain.ExportRequest{PresentationID: "p1", OwnerID: "alice"})

	assert.Nil(t, res)
	var exportErr *domain.ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, domain.FailurePackaging, exportErr.Kind)
	assert.ErrorIs(t, err, domain.ErrPackaging)
	assert.Contains(t, err.Error(), "export packaging error")
}

func TestExportService_ExportDocument_EmptyDeck(t *testing.T) {
	svc, _ := exportFixture(t, pptx.New(nil, pptx.Config{}))

	_, err := svc.ExportDocument(context.Background(), &domain.Presentation{Title: "Empty"}, domain.ExportOptions{})

	var exportErr *domain.ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, domain.FailurePackaging, exportErr.Kind)
	assert.ErrorIs(t, err, domain.ErrEmptyOrOversizedDocument)

	_, err = svc.ExportDocument(context.Background(), nil, domain.ExportOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportService_Export_PartLimitIsPackagingFailure(t *testing.T) {
	encoder := &stubEncoder{err: fmt.Errorf("%w: 12 parts exceeds limit 10", domain.ErrEmptyOrOversizedDocument)}
	svc, store := exportFixture(t, encoder)
	savePresentation(t, store, sampleDeck("p1", "alice", "Deck", helloText()))

	_, err := svc.Export(context.Background(), domain.ExportRequest{PresentationID: "p1", OwnerID: "alice"})

	var exportErr *domain.ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, domain.FailurePackaging, exportErr.Kind)
	assert.ErrorIs(t, err, domain.ErrEmptyOrOversizedDocument)
}

func TestExportService_ExportDocument_UsesHint(t *testing.T) {
	svc, _ := exportFixture(t, pptx.New(nil, pptx.Config{}))
	p := &domain.Presentation{Slides: []domain.Slide{{Elements: []domain.Element{helloText()}}}}

	res, err := svc.ExportDocument(context.Background(), p, domain.ExportOptions{FileNameHint: "my deck.pptx"})

	require.NoError(t, err)
	assert.Equal(t, "my_deck.pptx", res.FileName)
}

func TestExportService_NoEncoder(t *testing.T) {
	svc := NewExportService(memory.NewPresentationStore(), nil, nil)
	_, err := svc.ExportDocument(context.Background(), sampleDeck("p1", "a", "x", helloText()), domain.ExportOptions{})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		title, hint, want string
	}{
		{"Quarterly Review", "", "Quarterly_Review.pptx"},
		{"  Q3:  Results / 2026!  ", "", "Q3_Results_2026.pptx"},
		{"Café Présentation", "", "Cafe_Presentation.pptx"},
		{"日本語", "", "presentation.pptx"},
		{"", "hint name", "hint_name.pptx"},
		{"", "", "presentation.pptx"},
		{"!!!", "???", "presentation.pptx"},
		{"a\tb\nc", "", "a_b_c.pptx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFileName(tt.title, tt.hint, ".pptx"), "title %q hint %q", tt.title, tt.hint)
	}

	long := SanitizeFileName(strings.Repeat("x", 500), "", ".pptx")
	assert.True(t, strings.HasSuffix(long, ".pptx"))
	assert.LessOrEqual(t, len(long), 125)
}
