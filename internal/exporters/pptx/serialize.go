package pptx

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/presentai/presentai/internal/core/domain"
)

// Registry is the archive-wide state a slide serializer writes into.
// PackageBuilder implements it.
type Registry interface {
	// RegisterMedia stores media once per content hash and returns its part name.
	RegisterMedia(m *Media) string

	// RegisterChart stores a chart part and returns its part name.
	RegisterChart(xml []byte) string

	// ChartMark and RollbackCharts make chart registration transactional.
	ChartMark() int
	RollbackCharts(mark int)
}

// MediaResolver returns normalised media for an image source.
type MediaResolver interface {
	Media(src string) (*Media, error)
}

// slideContext is the state of one slide being serialized.
type slideContext struct {
	index    int
	style    Style
	language string
	rels     *Relationships
	registry Registry
	media    MediaResolver
	nextID   int
	diags    []domain.Diagnostic
}

type txMark struct {
	rels   int
	charts int
}

func (sc *slideContext) mark() txMark {
	return txMark{rels: sc.rels.Mark(), charts: sc.registry.ChartMark()}
}

func (sc *slideContext) rollback(m txMark) {
	sc.rels.Rollback(m.rels)
	sc.registry.RollbackCharts(m.charts)
}

// shapeID returns the next drawing object ID. ID 1 is the shape tree.
func (sc *slideContext) shapeID() int {
	sc.nextID++
	return sc.nextID
}

// emit serializes one element transactionally. On failure the element's
// relationships and charts are discarded, a diagnostic is recorded and an
// empty placeholder takes its place. Unknown kinds emit nothing.
func (sc *slideContext) emit(el domain.Element, parent Rect, path string) string {
	frame := ResolveIn(parent, el.Bounds())
	m := sc.mark()

	frag, err := sc.serialize(el, frame, path)
	if err == nil {
		return frag
	}

	sc.rollback(m)
	kind := domain.FailurePartialElement
	switch {
	case errors.Is(err, domain.ErrAssetFetch):
		kind = domain.FailureAssetFetch
	case !errors.Is(err, domain.ErrUnsupportedType):
		err = fmt.Errorf("%w: %v", domain.ErrElementSerialization, err)
	}
	sc.diags = append(sc.diags, domain.Diagnostic{
		Slide:       sc.index,
		Path:        path,
		ElementKind: el.Kind(),
		Kind:        kind,
		Message:     err.Error(),
	})
	if errors.Is(err, domain.ErrUnsupportedType) {
		return ""
	}
	return sc.placeholder(frame)
}

// serialize dispatches on the element kind.
func (sc *slideContext) serialize(el domain.Element, frame Rect, path string) (string, error) {
	switch e := el.(type) {
	case *domain.TextBlock:
		return sc.textBox(e, frame), nil
	case *domain.Image:
		return sc.picture(e, frame)
	case *domain.Table:
		return sc.table(e, frame)
	case *domain.Chart:
		return sc.chart(e, frame)
	case *domain.Shape:
		return sc.shape(e, frame), nil
	case *domain.Embed:
		return sc.embed(e, frame)
	case *domain.Divider:
		return sc.divider(e, frame), nil
	case *domain.Container:
		return sc.group(e, frame, path), nil
	case *domain.Unknown:
		return "", fmt.Errorf("%w: element kind %q", domain.ErrUnsupportedType, e.Type)
	default:
		return "", fmt.Errorf("%w: %T", domain.ErrUnsupportedType, el)
	}
}

// group writes a container as a group shape with an identity child
// transform, so children keep absolute slide coordinates.
func (sc *slideContext) group(c *domain.Container, frame Rect, path string) string {
	if len(c.Children) == 0 {
		return ""
	}
	id := sc.shapeID()
	var b []byte
	b = fmt.Appendf(b, `<p:grpSp><p:nvGrpSpPr><p:cNvPr id="%d" name="Group %d"/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`, id, id)
	b = fmt.Appendf(b, `<p:grpSpPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/><a:chOff x="%d" y="%d"/><a:chExt cx="%d" cy="%d"/></a:xfrm></p:grpSpPr>`,
		frame.X, frame.Y, frame.W, frame.H, frame.X, frame.Y, frame.W, frame.H)
	for i, child := range c.Children {
		b = append(b, sc.emit(child, frame, path+"/"+strconv.Itoa(i+1))...)
	}
	b = append(b, `</p:grpSp>`...)
	return string(b)
}

// placeholder is an empty text box standing in for a failed element.
func (sc *slideContext) placeholder(frame Rect) string {
	id := sc.shapeID()
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Placeholder %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`+
		`<p:spPr>%s<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`+
		`<p:txBody><a:bodyPr wrap="square" rtlCol="0"/><a:lstStyle/><a:p><a:endParaRPr lang="%s" dirty="0"/></a:p></p:txBody></p:sp>`,
		id, id, xfrm(frame), escape(sc.language))
}
