package pptx

import (
	"fmt"
	"math"
	"path"
	"strconv"
	"strings"

	"github.com/presentai/presentai/internal/core/domain"
)

// Axis IDs shared by every category chart.
const (
	categoryAxisID = 500000001
	valueAxisID    = 500000002
)

// chart writes the chart part and a graphic frame referencing it.
func (sc *slideContext) chart(c *domain.Chart, frame Rect) (string, error) {
	data, err := ChartXML(c, sc.style)
	if err != nil {
		return "", err
	}
	part := sc.registry.RegisterChart(data)
	rid := sc.rels.Add(relTypeChart, "../charts/"+path.Base(part))

	id := sc.shapeID()
	var b strings.Builder
	fmt.Fprintf(&b, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="Chart %d"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>`, id, id)
	fmt.Fprintf(&b, `<p:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></p:xfrm>`, frame.X, frame.Y, frame.W, frame.H)
	b.WriteString(`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/chart">`)
	fmt.Fprintf(&b, `<c:chart %s %s r:id="%s"/>`, nsC, nsR, rid)
	b.WriteString(`</a:graphicData></a:graphic></p:graphicFrame>`)
	return b.String(), nil
}

// ChartXML renders a standalone chart part with literal data.
// Pie charts use the first series only; bar, line and area charts get a
// category and a value axis.
func ChartXML(c *domain.Chart, style Style) ([]byte, error) {
	if !c.ChartKind.IsValid() {
		return nil, fmt.Errorf("%w: chart type %q", domain.ErrInvalidInput, c.ChartKind)
	}
	series := nonEmptySeries(c.Series)
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: chart has no data", domain.ErrInvalidInput)
	}
	categories := chartCategories(c.Categories, series)

	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<c:chartSpace %s %s %s>`, nsC, nsA, nsR)
	b.WriteString(`<c:roundedCorners val="0"/><c:chart>`)
	if c.Title != "" {
		fmt.Fprintf(&b, `<c:title><c:tx><c:rich><a:bodyPr/><a:lstStyle/><a:p><a:r><a:t>%s</a:t></a:r></a:p></c:rich></c:tx><c:overlay val="0"/></c:title>`, escape(c.Title))
		b.WriteString(`<c:autoTitleDeleted val="0"/>`)
	} else {
		b.WriteString(`<c:autoTitleDeleted val="1"/>`)
	}
	b.WriteString(`<c:plotArea><c:layout/>`)

	switch c.ChartKind {
	case domain.ChartPie:
		writePie(&b, series[0], chartCategories(c.Categories, series[:1]), style)
	case domain.ChartBar:
		b.WriteString(`<c:barChart><c:barDir val="col"/><c:grouping val="clustered"/><c:varyColors val="0"/>`)
		writeCategorySeries(&b, c.ChartKind, series, categories, style)
		fmt.Fprintf(&b, `<c:gapWidth val="150"/><c:axId val="%d"/><c:axId val="%d"/></c:barChart>`, categoryAxisID, valueAxisID)
	case domain.ChartLine:
		b.WriteString(`<c:lineChart><c:grouping val="standard"/><c:varyColors val="0"/>`)
		writeCategorySeries(&b, c.ChartKind, series, categories, style)
		fmt.Fprintf(&b, `<c:marker val="1"/><c:axId val="%d"/><c:axId val="%d"/></c:lineChart>`, categoryAxisID, valueAxisID)
	case domain.ChartArea:
		b.WriteString(`<c:areaChart><c:grouping val="standard"/><c:varyColors val="0"/>`)
		writeCategorySeries(&b, c.ChartKind, series, categories, style)
		fmt.Fprintf(&b, `<c:axId val="%d"/><c:axId val="%d"/></c:areaChart>`, categoryAxisID, valueAxisID)
	}
	if c.ChartKind.IsCategory() {
		writeAxes(&b)
	}

	b.WriteString(`</c:plotArea><c:legend><c:legendPos val="r"/><c:overlay val="0"/></c:legend>`)
	b.WriteString(`<c:plotVisOnly val="1"/><c:dispBlanksAs val="gap"/></c:chart></c:chartSpace>`)
	return []byte(b.String()), nil
}

func nonEmptySeries(in []domain.ChartSeries) []domain.ChartSeries {
	var out []domain.ChartSeries
	for _, s := range in {
		if len(s.Values) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// chartCategories pads or generates category labels so every value has one.
func chartCategories(cats []string, series []domain.ChartSeries) []string {
	n := len(cats)
	for _, s := range series {
		if len(s.Values) > n {
			n = len(s.Values)
		}
	}
	out := make([]string, n)
	for i := range out {
		if i < len(cats) {
			out[i] = cats[i]
		} else {
			out[i] = strconv.Itoa(i + 1)
		}
	}
	return out
}

func writePie(b *strings.Builder, s domain.ChartSeries, categories []string, style Style) {
	b.WriteString(`<c:pieChart><c:varyColors val="1"/><c:ser><c:idx val="0"/><c:order val="0"/>`)
	writeSeriesName(b, s.Name, 0)
	for i := range s.Values {
		fmt.Fprintf(b, `<c:dPt><c:idx val="%d"/><c:bubble3D val="0"/><c:spPr>%s</c:spPr></c:dPt>`, i, solidFill(style.seriesColor(i)))
	}
	writeLiterals(b, categories, s.Values)
	b.WriteString(`</c:ser><c:firstSliceAng val="0"/></c:pieChart>`)
}

func writeCategorySeries(b *strings.Builder, kind domain.ChartKind, series []domain.ChartSeries, categories []string, style Style) {
	for i, s := range series {
		fmt.Fprintf(b, `<c:ser><c:idx val="%d"/><c:order val="%d"/>`, i, i)
		writeSeriesName(b, s.Name, i)
		color := style.seriesColor(i)
		switch kind {
		case domain.ChartLine:
			fmt.Fprintf(b, `<c:spPr><a:ln w="28575" cap="rnd">%s<a:round/></a:ln></c:spPr>`, solidFill(color))
			b.WriteString(`<c:marker><c:symbol val="circle"/><c:size val="5"/></c:marker>`)
		case domain.ChartBar:
			fmt.Fprintf(b, `<c:spPr>%s</c:spPr><c:invertIfNegative val="0"/>`, solidFill(color))
		default:
			fmt.Fprintf(b, `<c:spPr>%s</c:spPr>`, solidFill(color))
		}
		writeLiterals(b, categories, s.Values)
		if kind == domain.ChartLine {
			b.WriteString(`<c:smooth val="0"/>`)
		}
		b.WriteString(`</c:ser>`)
	}
}

func writeSeriesName(b *strings.Builder, name string, i int) {
	if name == "" {
		name = "Series " + strconv.Itoa(i+1)
	}
	fmt.Fprintf(b, `<c:tx><c:v>%s</c:v></c:tx>`, escape(name))
}

// writeLiterals writes <c:cat> and <c:val> with inline data.
// Non-finite values are left out and render as gaps.
func writeLiterals(b *strings.Builder, categories []string, values []float64) {
	fmt.Fprintf(b, `<c:cat><c:strLit><c:ptCount val="%d"/>`, len(categories))
	for i, cat := range categories {
		fmt.Fprintf(b, `<c:pt idx="%d"><c:v>%s</c:v></c:pt>`, i, escape(cat))
	}
	b.WriteString(`</c:strLit></c:cat>`)

	fmt.Fprintf(b, `<c:val><c:numLit><c:formatCode>General</c:formatCode><c:ptCount val="%d"/>`, len(categories))
	for i, v := range values {
		if i >= len(categories) || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		fmt.Fprintf(b, `<c:pt idx="%d"><c:v>%s</c:v></c:pt>`, i, strconv.FormatFloat(v, 'f', -1, 64))
	}
	b.WriteString(`</c:numLit></c:val>`)
}

func writeAxes(b *strings.Builder) {
	fmt.Fprintf(b, `<c:catAx><c:axId val="%d"/><c:scaling><c:orientation val="minMax"/></c:scaling><c:delete val="0"/><c:axPos val="b"/>`, categoryAxisID)
	b.WriteString(`<c:numFmt formatCode="General" sourceLinked="0"/><c:majorTickMark val="out"/><c:minorTickMark val="none"/><c:tickLblPos val="nextTo"/>`)
	fmt.Fprintf(b, `<c:crossAx val="%d"/><c:crosses val="autoZero"/><c:auto val="1"/><c:lblAlgn val="ctr"/><c:lblOffset val="100"/><c:noMultiLvlLbl val="0"/></c:catAx>`, valueAxisID)

	fmt.Fprintf(b, `<c:valAx><c:axId val="%d"/><c:scaling><c:orientation val="minMax"/></c:scaling><c:delete val="0"/><c:axPos val="l"/><c:majorGridlines/>`, valueAxisID)
	b.WriteString(`<c:numFmt formatCode="General" sourceLinked="0"/><c:majorTickMark val="out"/><c:minorTickMark val="none"/><c:tickLblPos val="nextTo"/>`)
	fmt.Fprintf(b, `<c:crossAx val="%d"/><c:crosses val="autoZero"/><c:crossBetween val="between"/></c:valAx>`, categoryAxisID)
}
