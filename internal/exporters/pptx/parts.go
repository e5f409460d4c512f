package pptx

import (
	"fmt"
	"strings"
	"time"

	"github.com/presentai/presentai/internal/core/domain"
)

// Fixed part names.
const (
	partContentTypes = "[Content_Types].xml"
	partRootRels     = "_rels/.rels"
	partCore         = "docProps/core.xml"
	partApp          = "docProps/app.xml"
	partPresentation = "ppt/presentation.xml"
	partPresProps    = "ppt/presProps.xml"
	partViewProps    = "ppt/viewProps.xml"
	partTableStyles  = "ppt/tableStyles.xml"
	partTheme        = "ppt/theme/theme1.xml"
	partMaster       = "ppt/slideMasters/slideMaster1.xml"
	partLayout       = "ppt/slideLayouts/slideLayout1.xml"
)

// Content types.
const (
	ctRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	ctXML           = "application/xml"
	ctPresentation  = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlide         = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctSlideMaster   = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctSlideLayout   = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctTheme         = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctPresProps     = "application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"
	ctViewProps     = "application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"
	ctTableStyles   = "application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"
	ctChart         = "application/vnd.openxmlformats-officedocument.drawingml.chart+xml"
	ctCore          = "application/vnd.openxmlformats-package.core-properties+xml"
	ctApp           = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
)

func slidePartName(n int) string { return fmt.Sprintf("ppt/slides/slide%d.xml", n) }
func chartPartName(n int) string { return fmt.Sprintf("ppt/charts/chart%d.xml", n) }

// contentTypesXML declares the image defaults and one override per part.
func contentTypesXML(slides, charts int) []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	for _, d := range [][2]string{
		{"rels", ctRelationships},
		{"xml", ctXML},
		{"png", "image/png"},
		{"jpeg", "image/jpeg"},
		{"gif", "image/gif"},
	} {
		fmt.Fprintf(&b, `<Default Extension="%s" ContentType="%s"/>`, d[0], d[1])
	}
	override := func(part, ct string) {
		fmt.Fprintf(&b, `<Override PartName="/%s" ContentType="%s"/>`, part, ct)
	}
	override(partPresentation, ctPresentation)
	override(partMaster, ctSlideMaster)
	override(partLayout, ctSlideLayout)
	override(partTheme, ctTheme)
	override(partPresProps, ctPresProps)
	override(partViewProps, ctViewProps)
	override(partTableStyles, ctTableStyles)
	override(partCore, ctCore)
	override(partApp, ctApp)
	for i := 1; i <= slides; i++ {
		override(slidePartName(i), ctSlide)
	}
	for i := 1; i <= charts; i++ {
		override(chartPartName(i), ctChart)
	}
	b.WriteString(`</Types>`)
	return []byte(b.String())
}

func rootRels() *Relationships {
	r := &Relationships{}
	r.Add(relTypeOfficeDocument, partPresentation)
	r.Add(relTypeCoreProps, partCore)
	r.Add(relTypeExtendedProps, partApp)
	return r
}

// presentationParts returns presentation.xml and its relationships.
// rId1 is the master, slides follow in order.
func presentationParts(canvas Canvas, slides int) ([]byte, *Relationships) {
	rels := &Relationships{}
	masterID := rels.Add(relTypeSlideMaster, "slideMasters/slideMaster1.xml")
	slideIDs := make([]string, slides)
	for i := range slideIDs {
		slideIDs[i] = rels.Add(relTypeSlide, fmt.Sprintf("slides/slide%d.xml", i+1))
	}
	rels.Add(relTypePresProps, "presProps.xml")
	rels.Add(relTypeViewProps, "viewProps.xml")
	rels.Add(relTypeTheme, "theme/theme1.xml")
	rels.Add(relTypeTableStyles, "tableStyles.xml")

	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:presentation ` + nsA + ` ` + nsR + ` ` + nsP + ` saveSubsetFonts="1">`)
	fmt.Fprintf(&b, `<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="%s"/></p:sldMasterIdLst>`, masterID)
	b.WriteString(`<p:sldIdLst>`)
	for i, rid := range slideIDs {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="%s"/>`, 256+i, rid)
	}
	b.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/><p:notesSz cx="6858000" cy="9144000"/>`, canvas.Width, canvas.Height)
	b.WriteString(`</p:presentation>`)
	return []byte(b.String()), rels
}

func presPropsXML() []byte {
	return []byte(xmlHeader + `<p:presentationPr ` + nsA + ` ` + nsR + ` ` + nsP + `/>`)
}

func viewPropsXML() []byte {
	return []byte(xmlHeader + `<p:viewPr ` + nsA + ` ` + nsR + ` ` + nsP + `>` +
		`<p:normalViewPr><p:restoredLeft sz="15620"/><p:restoredTop sz="94660"/></p:normalViewPr>` +
		`<p:gridSpacing cx="76200" cy="76200"/></p:viewPr>`)
}

func tableStylesXML() []byte {
	return []byte(xmlHeader + `<a:tblStyleLst ` + nsA + ` def="{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"/>`)
}

func coreXML(title string, created time.Time) []byte {
	ts := created.UTC().Format(time.RFC3339)
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
		`xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	fmt.Fprintf(&b, `<dc:title>%s</dc:title><dc:creator>presentai</dc:creator><cp:lastModifiedBy>presentai</cp:lastModifiedBy>`, escape(title))
	fmt.Fprintf(&b, `<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created><dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>`, ts, ts)
	b.WriteString(`</cp:coreProperties>`)
	return []byte(b.String())
}

func appXML(slides int) []byte {
	return []byte(fmt.Sprintf(xmlHeader+`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" `+
		`xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">`+
		`<Application>presentai</Application><PresentationFormat>Widescreen</PresentationFormat><Slides>%d</Slides></Properties>`, slides))
}

const emptyTree = `<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr></p:spTree>`

func masterParts() ([]byte, *Relationships) {
	rels := &Relationships{}
	layoutID := rels.Add(relTypeSlideLayout, "../slideLayouts/slideLayout1.xml")
	rels.Add(relTypeTheme, "../theme/theme1.xml")

	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:sldMaster ` + nsA + ` ` + nsR + ` ` + nsP + `><p:cSld>`)
	b.WriteString(`<p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg>`)
	b.WriteString(emptyTree)
	b.WriteString(`</p:cSld>`)
	b.WriteString(`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" ` +
		`accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>`)
	fmt.Fprintf(&b, `<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="%s"/></p:sldLayoutIdLst>`, layoutID)
	b.WriteString(`<p:txStyles>`)
	b.WriteString(`<p:titleStyle><a:lvl1pPr algn="l"><a:defRPr sz="4400"><a:solidFill><a:schemeClr val="tx2"/></a:solidFill><a:latin typeface="+mj-lt"/></a:defRPr></a:lvl1pPr></p:titleStyle>`)
	b.WriteString(`<p:bodyStyle><a:lvl1pPr algn="l"><a:defRPr sz="1800"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill><a:latin typeface="+mn-lt"/></a:defRPr></a:lvl1pPr></p:bodyStyle>`)
	b.WriteString(`<p:otherStyle><a:lvl1pPr><a:defRPr sz="1800"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill><a:latin typeface="+mn-lt"/></a:defRPr></a:lvl1pPr></p:otherStyle>`)
	b.WriteString(`</p:txStyles></p:sldMaster>`)
	return []byte(b.String()), rels
}

func layoutParts() ([]byte, *Relationships) {
	rels := &Relationships{}
	rels.Add(relTypeSlideMaster, "../slideMasters/slideMaster1.xml")
	xml := xmlHeader + `<p:sldLayout ` + nsA + ` ` + nsR + ` ` + nsP + ` type="blank" preserve="1">` +
		`<p:cSld name="Blank">` + emptyTree + `</p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`
	return []byte(xml), rels
}

// themeXML maps the resolved palette onto the theme color scheme so that
// scheme-colored content in viewers matches the deck.
func themeXML(name string, style Style) []byte {
	p := style.Palette
	scheme := []struct{ tag, hex string }{
		{"dk1", p.Text},
		{"lt1", p.Background},
		{"dk2", p.Heading},
		{"lt2", p.Muted},
		{"accent1", p.Primary},
		{"accent2", p.Secondary},
		{"accent3", p.Accent},
		{"accent4", p.Heading},
		{"accent5", p.Muted},
		{"accent6", p.Text},
		{"hlink", p.Primary},
		{"folHlink", p.Secondary},
	}
	if name == "" {
		name = domain.DefaultThemeName
	}

	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<a:theme %s name="%s"><a:themeElements>`, nsA, escape(name))
	fmt.Fprintf(&b, `<a:clrScheme name="%s">`, escape(name))
	for _, c := range scheme {
		fmt.Fprintf(&b, `<a:%s><a:srgbClr val="%s"/></a:%s>`, c.tag, c.hex, c.tag)
	}
	b.WriteString(`</a:clrScheme>`)
	fmt.Fprintf(&b, `<a:fontScheme name="%s"><a:majorFont><a:latin typeface="%s"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>`,
		escape(name), escape(style.Fonts.Heading))
	fmt.Fprintf(&b, `<a:minorFont><a:latin typeface="%s"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont></a:fontScheme>`,
		escape(style.Fonts.Body))
	b.WriteString(fmtScheme)
	b.WriteString(`</a:themeElements><a:objectDefaults/><a:extraClrSchemeLst/></a:theme>`)
	return []byte(b.String())
}

const fmtScheme = `<a:fmtScheme name="Office">` +
	`<a:fillStyleLst>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"><a:tint val="50000"/></a:schemeClr></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"><a:shade val="80000"/></a:schemeClr></a:solidFill>` +
	`</a:fillStyleLst>` +
	`<a:lnStyleLst>` +
	`<a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`<a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`<a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`</a:lnStyleLst>` +
	`<a:effectStyleLst>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle>` +
	`</a:effectStyleLst>` +
	`<a:bgFillStyleLst>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"><a:tint val="95000"/></a:schemeClr></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"><a:shade val="90000"/></a:schemeClr></a:solidFill>` +
	`</a:bgFillStyleLst>` +
	`</a:fmtScheme>`
