package pptx

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/presentai/presentai/internal/core/domain"
)

// Bullet indentation in EMU.
const bulletIndent = 342900

// textOptions adjust the defaults of a text body.
type textOptions struct {
	// color overrides the level default color role for runs without a color.
	color domain.ColorRole

	// bold forces bold runs.
	bold bool

	// anchor is the vertical anchor ("t", "ctr", "b").
	anchor string
}

// textBox writes a text block as a text box shape.
func (sc *slideContext) textBox(tb *domain.TextBlock, frame Rect) string {
	id := sc.shapeID()
	fill := `<a:noFill/>`
	if tb.Fill != "" {
		fill = solidFill(sc.style.Color(tb.Fill, domain.RoleBackground))
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, id, id)
	fmt.Fprintf(&b, `<p:spPr>%s<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>%s</p:spPr>`, xfrm(frame), fill)
	b.WriteString(`<p:txBody>`)
	b.WriteString(sc.textContent(tb.Paragraphs, textOptions{anchor: "t"}))
	b.WriteString(`</p:txBody></p:sp>`)
	return b.String()
}

// textContent writes the body properties, list style and paragraphs shared
// by p:txBody and a:txBody.
func (sc *slideContext) textContent(paragraphs []domain.Paragraph, opts textOptions) string {
	var b strings.Builder
	b.WriteString(`<a:bodyPr wrap="square" rtlCol="0"`)
	if opts.anchor != "" {
		fmt.Fprintf(&b, ` anchor="%s"`, opts.anchor)
	}
	b.WriteString(`><a:normAutofit/></a:bodyPr><a:lstStyle/>`)
	if len(paragraphs) == 0 {
		fmt.Fprintf(&b, `<a:p><a:pPr algn="l"/><a:endParaRPr lang="%s" dirty="0"/></a:p>`, escape(sc.language))
		return b.String()
	}
	for _, p := range paragraphs {
		b.WriteString(sc.paragraph(p, opts))
	}
	return b.String()
}

// paragraph writes one <a:p>. Paragraph properties are always emitted;
// empty runs are dropped.
func (sc *slideContext) paragraph(p domain.Paragraph, opts textOptions) string {
	var b strings.Builder
	b.WriteString(`<a:p>`)
	b.WriteString(paragraphProperties(p))

	size := LevelFontSize(p.Level)
	for _, r := range p.Runs {
		if r.Text == "" {
			continue
		}
		lines := strings.Split(strings.ReplaceAll(r.Text, "\r\n", "\n"), "\n")
		for i, line := range lines {
			props := sc.runProperties(r, p.Level, opts)
			if i > 0 {
				fmt.Fprintf(&b, `<a:br>%s</a:br>`, props)
			}
			if line == "" {
				continue
			}
			fmt.Fprintf(&b, `<a:r>%s<a:t>%s</a:t></a:r>`, props, escape(line))
		}
	}
	fmt.Fprintf(&b, `<a:endParaRPr lang="%s" sz="%d" dirty="0"/>`, escape(sc.language), fontSizeHundredths(size))
	b.WriteString(`</a:p>`)
	return b.String()
}

func paragraphProperties(p domain.Paragraph) string {
	algn := alignment(p.Align)
	switch p.Level {
	case domain.LevelBullet:
		return fmt.Sprintf(`<a:pPr marL="%d" indent="-%d" algn="%s"><a:buFont typeface="Arial"/><a:buChar char="&#8226;"/></a:pPr>`,
			bulletIndent, bulletIndent, algn)
	case domain.LevelNumbered:
		return fmt.Sprintf(`<a:pPr marL="%d" indent="-%d" algn="%s"><a:buFont typeface="+mj-lt"/><a:buAutoNum type="arabicPeriod"/></a:pPr>`,
			bulletIndent, bulletIndent, algn)
	case domain.LevelQuote:
		return fmt.Sprintf(`<a:pPr marL="%d" algn="%s"><a:buNone/></a:pPr>`, bulletIndent, algn)
	default:
		return fmt.Sprintf(`<a:pPr algn="%s"><a:buNone/></a:pPr>`, algn)
	}
}

func alignment(a domain.TextAlign) string {
	switch a {
	case domain.AlignCenter:
		return "ctr"
	case domain.AlignRight:
		return "r"
	case domain.AlignJustify:
		return "just"
	default:
		return "l"
	}
}

// runProperties writes <a:rPr>. Child order follows the schema:
// solidFill, latin, hlinkClick.
func (sc *slideContext) runProperties(r domain.TextRun, level domain.TextLevel, opts textOptions) string {
	size := r.FontSize
	if size <= 0 {
		size = LevelFontSize(level)
	}
	role := levelColor(level)
	if opts.color != "" {
		role = opts.color
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<a:rPr lang="%s" sz="%d"`, escape(sc.language), fontSizeHundredths(size))
	if r.Bold || opts.bold || level == domain.LevelTitle {
		b.WriteString(` b="1"`)
	}
	if r.Italic || level == domain.LevelQuote {
		b.WriteString(` i="1"`)
	}
	if r.Underline {
		b.WriteString(` u="sng"`)
	}
	b.WriteString(` dirty="0">`)
	b.WriteString(solidFill(sc.style.Color(r.Color, role)))
	fmt.Fprintf(&b, `<a:latin typeface="%s"/>`, escape(sc.style.Font(level)))
	if link, ok := validLink(r.Link); ok {
		rid := sc.rels.AddExternal(relTypeHyperlink, link)
		fmt.Fprintf(&b, `<a:hlinkClick r:id="%s"/>`, rid)
	}
	b.WriteString(`</a:rPr>`)
	return b.String()
}

// validLink accepts absolute http, https and mailto URLs.
func validLink(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.String(), u.Host != ""
	case "mailto":
		return u.String(), u.Opaque != ""
	default:
		return "", false
	}
}
