package pptx

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/presentai/presentai/internal/core/domain"
	"github.com/presentai/presentai/internal/core/ports/driven"
)

type fakeFetcher struct {
	mu    sync.Mutex
	calls map[string]int
	data  map[string][]byte
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{calls: make(map[string]int), data: make(map[string][]byte)}
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*driven.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	data, ok := f.data[url]
	if !ok {
		return nil, fmt.Errorf("%w: 404 for %s", domain.ErrAssetFetch, url)
	}
	return &driven.Asset{Data: data, ContentType: "image/png"}, nil
}

func (f *fakeFetcher) count(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

// delayedFetcher holds back selected URLs so later sources finish first.
type delayedFetcher struct {
	*fakeFetcher
	delay map[string]time.Duration
}

func (f *delayedFetcher) Fetch(ctx context.Context, url string) (*driven.Asset, error) {
	if d := f.delay[url]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.fakeFetcher.Fetch(ctx, url)
}

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func pct(x, y, w, h float64) domain.Frame {
	return domain.Frame{X: x, Y: y, Width: w, Height: h, Unit: domain.UnitPercent}
}

func textBlock(frame domain.Frame, runs ...string) *domain.TextBlock {
	p := domain.Paragraph{Align: domain.AlignLeft, Level: domain.LevelBody}
	for _, r := range runs {
		p.Runs = append(p.Runs, domain.TextRun{Text: r})
	}
	return &domain.TextBlock{Base: domain.Base{Frame: frame}, Paragraphs: []domain.Paragraph{p}}
}

func testTheme() domain.Theme {
	for _, th := range domain.BuiltInThemes() {
		if th.Name == "ocean" {
			return th
		}
	}
	panic("ocean theme missing")
}

func encode(t *testing.T, f driven.AssetFetcher, p *domain.Presentation, override domain.ColorOverride) *driven.EncodeResult {
	t.Helper()
	enc := New(f, Config{FetchConcurrency: 2})
	res, err := enc.Encode(context.Background(), p, driven.EncodeOptions{Theme: testTheme(), Override: override})
	require.NoError(t, err)
	require.NoError(t, Verify(res.Data))
	return res
}

func readPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	p, err := openPackage(data)
	require.NoError(t, err)
	b, err := p.read(name)
	require.NoError(t, err)
	return string(b)
}

// testRegistry is a Registry for assembling slides without a builder.
type testRegistry struct {
	media  map[string]string
	charts [][]byte
}

func (r *testRegistry) RegisterMedia(m *Media) string {
	if r.media == nil {
		r.media = make(map[string]string)
	}
	name := "ppt/media/" + m.Hash[:16] + "." + m.Ext
	r.media[m.Hash] = name
	return name
}

func (r *testRegistry) RegisterChart(xml []byte) string {
	r.charts = append(r.charts, xml)
	return chartPartName(len(r.charts))
}

func (r *testRegistry) ChartMark() int { return len(r.charts) }

func (r *testRegistry) RollbackCharts(mark int) { r.charts = r.charts[:mark] }

type mapResolver map[string]*Media

func (m mapResolver) Media(src string) (*Media, error) {
	if media, ok := m[src]; ok {
		return media, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrAssetFetch, src)
}

func testEnv(media mapResolver) (SlideEnv, *testRegistry) {
	reg := &testRegistry{}
	return SlideEnv{
		Canvas:   DefaultCanvas(),
		Style:    NewStyle(testTheme(), nil),
		Language: "en-US",
		Registry: reg,
		Media:    media,
	}, reg
}
