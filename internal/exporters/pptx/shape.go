package pptx

import (
	"fmt"
	"strings"

	"github.com/presentai/presentai/internal/core/domain"
)

// Geometry presets accepted for shapes. Anything else renders as a rectangle.
var shapeGeometries = map[string]bool{
	"rect":       true,
	"roundRect":  true,
	"ellipse":    true,
	"triangle":   true,
	"diamond":    true,
	"rightArrow": true,
	"chevron":    true,
	"hexagon":    true,
	"star5":      true,
}

// shape writes a preset geometry with optional text.
func (sc *slideContext) shape(s *domain.Shape, frame Rect) string {
	geom := s.Geometry
	if !shapeGeometries[geom] {
		geom = "rect"
	}
	fill := `<a:noFill/>`
	if !strings.EqualFold(s.Fill, "none") {
		fill = solidFill(sc.style.Color(s.Fill, domain.RolePrimary))
	}
	line := `<a:ln><a:noFill/></a:ln>`
	if s.Line != "" && !strings.EqualFold(s.Line, "none") {
		line = fmt.Sprintf(`<a:ln w="%d">%s</a:ln>`, EMUPerPoint, solidFill(sc.style.Color(s.Line, domain.RolePrimary)))
	}

	id := sc.shapeID()
	var b strings.Builder
	fmt.Fprintf(&b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Shape %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`, id, id)
	fmt.Fprintf(&b, `<p:spPr>%s<a:prstGeom prst="%s"><a:avLst/></a:prstGeom>%s%s</p:spPr>`, xfrm(frame), geom, fill, line)
	if s.Text != nil {
		b.WriteString(`<p:txBody>`)
		b.WriteString(sc.textContent(s.Text.Paragraphs, textOptions{color: domain.RoleBackground, anchor: "ctr"}))
		b.WriteString(`</p:txBody>`)
	}
	b.WriteString(`</p:sp>`)
	return b.String()
}

// embed writes a video or web embed as a labelled box linking to the URL.
func (sc *slideContext) embed(e *domain.Embed, frame Rect) (string, error) {
	link, ok := validLink(e.URL)
	if !ok {
		return "", fmt.Errorf("%w: embed url %q", domain.ErrInvalidInput, e.URL)
	}
	rid := sc.rels.AddExternal(relTypeHyperlink, link)

	label := e.Title
	if label == "" {
		label = link
	}
	id := sc.shapeID()
	var b strings.Builder
	fmt.Fprintf(&b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Embed %d" descr="%s"><a:hlinkClick r:id="%s"/></p:cNvPr><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`,
		id, id, escape(link), rid)
	fmt.Fprintf(&b, `<p:spPr>%s<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>%s<a:ln w="%d">%s</a:ln></p:spPr>`,
		xfrm(frame), solidFill(sc.style.Palette.Muted), EMUPerPoint, solidFill(sc.style.Palette.Primary))
	b.WriteString(`<p:txBody><a:bodyPr wrap="square" rtlCol="0" anchor="ctr"><a:normAutofit/></a:bodyPr><a:lstStyle/>`)
	fmt.Fprintf(&b, `<a:p><a:pPr algn="ctr"><a:buNone/></a:pPr><a:r><a:rPr lang="%s" sz="%d" dirty="0">%s<a:latin typeface="%s"/><a:hlinkClick r:id="%s"/></a:rPr><a:t>%s</a:t></a:r></a:p>`,
		escape(sc.language), fontSizeHundredths(LevelFontSize(domain.LevelBody)), solidFill(sc.style.Palette.Background),
		escape(sc.style.Fonts.Body), rid, escape("▶ "+label))
	b.WriteString(`</p:txBody></p:sp>`)
	return b.String(), nil
}

// divider writes a straight connector through the middle of its frame,
// horizontal when the frame is wider than tall.
func (sc *slideContext) divider(d *domain.Divider, frame Rect) string {
	line := frame
	if frame.W >= frame.H {
		line.Y = frame.Y + frame.H/2
		line.H = 0
	} else {
		line.X = frame.X + frame.W/2
		line.W = 0
	}
	weight := d.Weight
	if weight <= 0 {
		weight = 1
	}

	id := sc.shapeID()
	var b strings.Builder
	fmt.Fprintf(&b, `<p:cxnSp><p:nvCxnSpPr><p:cNvPr id="%d" name="Divider %d"/><p:cNvCxnSpPr/><p:nvPr/></p:nvCxnSpPr>`, id, id)
	fmt.Fprintf(&b, `<p:spPr>%s<a:prstGeom prst="line"><a:avLst/></a:prstGeom><a:ln w="%d">%s</a:ln></p:spPr></p:cxnSp>`,
		xfrm(line), clamp(Points(weight), 0, 20116800), solidFill(sc.style.Color(d.Color, domain.RoleMuted)))
	return b.String()
}
