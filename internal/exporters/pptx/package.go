package pptx

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/presentai/presentai/internal/core/domain"
)

// DefaultMaxParts bounds the number of parts in one package.
const DefaultMaxParts = 4000

// fixedParts counts the parts every package carries: content types, root
// rels, core, app, presentation and its rels, presProps, viewProps,
// tableStyles, theme, master and its rels, layout and its rels.
const fixedParts = 14

// BuilderOptions configure a PackageBuilder.
type BuilderOptions struct {
	Title     string
	ThemeName string
	Canvas    Canvas
	Style     Style
	MaxParts  int

	// Created stamps the document properties and ZIP entries.
	Created time.Time
}

// PackageBuilder owns the archive-wide registries and writes the package.
// It implements Registry. It is not safe for concurrent use.
type PackageBuilder struct {
	opts   BuilderOptions
	slides []*SlidePart

	media      map[string]string // content hash -> part name
	mediaData  map[string]*Media // part name -> media
	mediaOrder []string

	charts [][]byte
}

// NewPackageBuilder returns an empty builder.
func NewPackageBuilder(opts BuilderOptions) *PackageBuilder {
	if opts.Canvas == (Canvas{}) {
		opts.Canvas = DefaultCanvas()
	}
	if opts.MaxParts <= 0 {
		opts.MaxParts = DefaultMaxParts
	}
	if opts.Created.IsZero() {
		opts.Created = time.Now()
	}
	return &PackageBuilder{
		opts:      opts,
		media:     make(map[string]string),
		mediaData: make(map[string]*Media),
	}
}

// RegisterMedia stores m once per content hash and returns its part name,
// ppt/media/<first 16 hex digits of the hash>.<ext>.
func (b *PackageBuilder) RegisterMedia(m *Media) string {
	if name, ok := b.media[m.Hash]; ok {
		return name
	}
	name := fmt.Sprintf("ppt/media/%s.%s", m.Hash[:16], m.Ext)
	b.media[m.Hash] = name
	b.mediaData[name] = m
	b.mediaOrder = append(b.mediaOrder, name)
	return name
}

// RegisterChart stores a chart part and returns its part name.
func (b *PackageBuilder) RegisterChart(xml []byte) string {
	b.charts = append(b.charts, xml)
	return chartPartName(len(b.charts))
}

// ChartMark returns the number of registered charts.
func (b *PackageBuilder) ChartMark() int {
	return len(b.charts)
}

// RollbackCharts discards charts registered after mark.
func (b *PackageBuilder) RollbackCharts(mark int) {
	if mark >= 0 && mark < len(b.charts) {
		b.charts = b.charts[:mark]
	}
}

// AddSlide appends an assembled slide. Slides must be added in order.
func (b *PackageBuilder) AddSlide(p *SlidePart) {
	b.slides = append(b.slides, p)
}

// SlideCount returns the number of slides added.
func (b *PackageBuilder) SlideCount() int {
	return len(b.slides)
}

// ChartCount returns the number of chart parts.
func (b *PackageBuilder) ChartCount() int {
	return len(b.charts)
}

// MediaCount returns the number of media parts referenced by some slide.
func (b *PackageBuilder) MediaCount() int {
	return len(b.referencedMedia())
}

// PartCount returns the number of parts Build would write.
func (b *PackageBuilder) PartCount() int {
	return fixedParts + 2*len(b.slides) + len(b.charts) + len(b.referencedMedia())
}

// referencedMedia returns media part names that some slide relates to,
// in registration order. Media left behind by a rolled back element is
// not written.
func (b *PackageBuilder) referencedMedia() []string {
	used := make(map[string]bool)
	for _, s := range b.slides {
		for _, rel := range s.Rels.All() {
			if rel.Type == relTypeImage {
				used["ppt/media/"+path.Base(rel.Target)] = true
			}
		}
	}
	out := make([]string, 0, len(used))
	for _, name := range b.mediaOrder {
		if used[name] {
			out = append(out, name)
		}
	}
	return out
}

// Build writes the package. It fails with domain.ErrEmptyOrOversizedDocument
// when there are no slides or too many parts.
func (b *PackageBuilder) Build() ([]byte, error) {
	if len(b.slides) == 0 {
		return nil, fmt.Errorf("%w: no slides", domain.ErrEmptyOrOversizedDocument)
	}
	if n := b.PartCount(); n > b.opts.MaxParts {
		return nil, fmt.Errorf("%w: %d parts exceeds limit %d", domain.ErrEmptyOrOversizedDocument, n, b.opts.MaxParts)
	}

	var buf bytes.Buffer
	w := &partWriter{zw: zip.NewWriter(&buf), modified: b.opts.Created}

	presentation, presentationRels := presentationParts(b.opts.Canvas, len(b.slides))
	master, masterRels := masterParts()
	layout, layoutRels := layoutParts()

	w.write(partContentTypes, contentTypesXML(len(b.slides), len(b.charts)))
	w.write(partRootRels, rootRels().XML())
	w.write(partCore, coreXML(b.opts.Title, b.opts.Created))
	w.write(partApp, appXML(len(b.slides)))
	w.write(partPresentation, presentation)
	w.write(relsPath(partPresentation), presentationRels.XML())
	w.write(partPresProps, presPropsXML())
	w.write(partViewProps, viewPropsXML())
	w.write(partTableStyles, tableStylesXML())
	w.write(partTheme, themeXML(b.opts.ThemeName, b.opts.Style))
	w.write(partMaster, master)
	w.write(relsPath(partMaster), masterRels.XML())
	w.write(partLayout, layout)
	w.write(relsPath(partLayout), layoutRels.XML())

	for i, s := range b.slides {
		name := slidePartName(i + 1)
		w.write(name, s.XML)
		w.write(relsPath(name), s.Rels.XML())
	}
	for i, c := range b.charts {
		w.write(chartPartName(i+1), c)
	}
	for _, name := range b.referencedMedia() {
		w.store(name, b.mediaData[name].Data)
	}

	if w.err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPackaging, w.err)
	}
	if err := w.zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPackaging, err)
	}
	return buf.Bytes(), nil
}

// partWriter writes ZIP entries and remembers the first error.
type partWriter struct {
	zw       *zip.Writer
	modified time.Time
	err      error
}

func (w *partWriter) write(name string, data []byte) {
	w.add(name, data, zip.Deflate)
}

// store writes already-compressed media without recompressing it.
func (w *partWriter) store(name string, data []byte) {
	w.add(name, data, zip.Store)
}

func (w *partWriter) add(name string, data []byte, method uint16) {
	if w.err != nil {
		return
	}
	if strings.HasPrefix(name, "/") {
		name = name[1:]
	}
	fw, err := w.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   method,
		Modified: w.modified,
	})
	if err != nil {
		w.err = err
		return
	}
	_, w.err = fw.Write(data)
}
