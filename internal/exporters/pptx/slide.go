package pptx

import (
	"errors"
	"strconv"
	"strings"

	"github.com/presentai/presentai/internal/core/domain"
)

const slideLayoutTarget = "../slideLayouts/slideLayout1.xml"

// SlidePart is one assembled slide and its relationship manifest.
type SlidePart struct {
	// Index is the 1-based slide number.
	Index int

	XML  []byte
	Rels *Relationships

	Diagnostics []domain.Diagnostic
}

// SlideEnv is what the assembler needs beyond the slide itself.
type SlideEnv struct {
	Canvas   Canvas
	Style    Style
	Language string
	Registry Registry
	Media    MediaResolver
}

// AssembleSlide serializes a slide's elements in paint order.
// rId1 is always the slide layout; later IDs follow emission order.
// Element failures never fail the slide.
func AssembleSlide(s *domain.Slide, index int, env SlideEnv) *SlidePart {
	lang := env.Language
	if lang == "" {
		lang = "en-US"
	}
	sc := &slideContext{
		index:    index,
		style:    env.Style,
		language: lang,
		rels:     &Relationships{},
		registry: env.Registry,
		media:    env.Media,
		nextID:   1,
	}
	sc.rels.Add(relTypeSlideLayout, slideLayoutTarget)
	canvas := env.Canvas.Bounds()

	var tree strings.Builder
	background := sc.background(s, canvas, &tree)
	for i, el := range s.Elements {
		tree.WriteString(sc.emit(el, canvas, strconv.Itoa(i+1)))
	}

	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:sld ` + nsA + ` ` + nsR + ` ` + nsP + `><p:cSld>`)
	b.WriteString(background)
	b.WriteString(`<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	b.WriteString(`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)
	b.WriteString(tree.String())
	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)

	return &SlidePart{
		Index:       index,
		XML:         []byte(b.String()),
		Rels:        sc.rels,
		Diagnostics: sc.diags,
	}
}

// background returns the <p:bg> override, if any. A background image on a
// split layout is painted as the bottom-most picture of tree instead.
func (sc *slideContext) background(s *domain.Slide, canvas Rect, tree *strings.Builder) string {
	bg := s.Background
	if bg.IsZero() {
		return ""
	}

	if bg.ImageSrc != "" {
		if frame, split := backgroundImageFrame(s.Layout); split {
			img := &domain.Image{Base: domain.Base{ID: "background", Frame: frame}, Src: bg.ImageSrc, Fit: domain.FitFill}
			tree.WriteString(sc.emit(img, canvas, "background"))
		} else if m, err := sc.media.Media(bg.ImageSrc); err == nil {
			rid := sc.imageRel(m)
			return `<p:bg><p:bgPr><a:blipFill dpi="0" rotWithShape="1"><a:blip r:embed="` + rid +
				`"/><a:srcRect/><a:stretch><a:fillRect/></a:stretch></a:blipFill><a:effectLst/></p:bgPr></p:bg>`
		} else {
			kind := domain.FailurePartialElement
			if errors.Is(err, domain.ErrAssetFetch) {
				kind = domain.FailureAssetFetch
			}
			sc.diags = append(sc.diags, domain.Diagnostic{
				Slide:       sc.index,
				Path:        "background",
				ElementKind: domain.KindImage,
				Kind:        kind,
				Message:     err.Error(),
			})
		}
	}

	if bg.Color == "" {
		return ""
	}
	return `<p:bg><p:bgPr>` + solidFill(sc.style.Color(bg.Color, domain.RoleBackground)) + `<a:effectLst/></p:bgPr></p:bg>`
}
