package domain

// Unit is the coordinate system of a Frame.
type Unit string

const (
	// UnitPercent expresses values as a percentage (0-100) of the parent box.
	UnitPercent Unit = "percent"

	// UnitPixel expresses values as logical pixels at 96 DPI.
	UnitPixel Unit = "px"
)

// Frame positions an element inside its parent box.
// Top-level elements are positioned on the slide canvas; children of a
// Container are positioned inside the container's frame.
type Frame struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Unit   Unit
}

// ElementKind names an element variant.
type ElementKind string

// Element kinds. These are also the JSON "type" discriminators.
const (
	KindText      ElementKind = "text"
	KindImage     ElementKind = "image"
	KindTable     ElementKind = "table"
	KindChart     ElementKind = "chart"
	KindShape     ElementKind = "shape"
	KindEmbed     ElementKind = "embed"
	KindDivider   ElementKind = "divider"
	KindContainer ElementKind = "container"
)

// Element is a closed sum over slide element kinds.
// Only types in this package implement it.
type Element interface {
	// Kind returns the variant name.
	Kind() ElementKind

	// Bounds returns the element's frame in its parent box.
	Bounds() Frame

	isElement()
}

// Base carries the attributes common to every element.
type Base struct {
	ID    string
	Frame Frame
}

// Bounds returns the element's frame.
func (b Base) Bounds() Frame { return b.Frame }

func (Base) isElement() {}

// TextAlign is paragraph alignment.
type TextAlign string

// Paragraph alignments.
const (
	AlignLeft    TextAlign = "left"
	AlignCenter  TextAlign = "center"
	AlignRight   TextAlign = "right"
	AlignJustify TextAlign = "justify"
)

// TextLevel is the semantic role of a paragraph.
type TextLevel string

// Paragraph levels.
const (
	LevelTitle      TextLevel = "title"
	LevelHeading    TextLevel = "heading"
	LevelSubheading TextLevel = "subheading"
	LevelBody       TextLevel = "body"
	LevelBullet     TextLevel = "bullet"
	LevelNumbered   TextLevel = "numbered"
	LevelQuote      TextLevel = "quote"
)

// IsHeading reports whether paragraphs of this level use the heading font.
func (l TextLevel) IsHeading() bool {
	return l == LevelTitle || l == LevelHeading || l == LevelSubheading
}

// TextRun is a span of uniformly styled text.
type TextRun struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool

	// Color is a theme role name or hex color. Empty means the level default.
	Color string

	// FontSize is in points. Zero means the level default.
	FontSize float64

	// Link is an optional hyperlink target.
	Link string
}

// Paragraph is a line-broken group of runs.
type Paragraph struct {
	Align TextAlign
	Level TextLevel
	Runs  []TextRun
}

// Text returns the concatenated text of all runs.
func (p Paragraph) Text() string {
	n := 0
	for _, r := range p.Runs {
		n += len(r.Text)
	}
	buf := make([]byte, 0, n)
	for _, r := range p.Runs {
		buf = append(buf, r.Text...)
	}
	return string(buf)
}

// TextBlock is a box of rich text.
type TextBlock struct {
	Base
	Paragraphs []Paragraph

	// Fill is an optional background color for the box.
	Fill string
}

// Kind implements Element.
func (*TextBlock) Kind() ElementKind { return KindText }

// Crop trims an image; each side is a fraction (0-1) of the source size.
type Crop struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// IsZero reports whether the crop trims nothing.
func (c *Crop) IsZero() bool {
	return c == nil || (c.Left == 0 && c.Top == 0 && c.Right == 0 && c.Bottom == 0)
}

// ImageFit controls how an image fills its frame.
type ImageFit string

// Image fit modes.
const (
	// FitFill stretches the image over the whole frame.
	FitFill ImageFit = "fill"

	// FitContain scales the image to fit inside the frame, keeping its ratio.
	FitContain ImageFit = "contain"
)

// Image is a raster picture.
type Image struct {
	Base

	// Src is an http(s) URL or a data: URI.
	Src string

	// Alt is the description written into the picture properties.
	Alt string

	Crop *Crop
	Fit  ImageFit
}

// Kind implements Element.
func (*Image) Kind() ElementKind { return KindImage }

// TableCell is one cell of a table.
type TableCell struct {
	Content TextBlock
}

// TableRow is one row of a table.
type TableRow struct {
	Cells []TableCell
}

// Table is a grid of text cells.
type Table struct {
	Base
	Rows []TableRow

	// ColumnWeights optionally sizes columns proportionally.
	// Missing or non-positive weights count as 1.
	ColumnWeights []float64

	// RowWeights optionally sizes rows proportionally.
	RowWeights []float64

	// HeaderRow styles the first row as a header.
	HeaderRow bool
}

// Kind implements Element.
func (*Table) Kind() ElementKind { return KindTable }

// ColumnCount returns the width of the widest row.
func (t *Table) ColumnCount() int {
	cols := 0
	for _, r := range t.Rows {
		if len(r.Cells) > cols {
			cols = len(r.Cells)
		}
	}
	return cols
}

// ChartKind is the chart subtype.
type ChartKind string

// Chart kinds.
const (
	ChartPie  ChartKind = "pie"
	ChartBar  ChartKind = "bar"
	ChartLine ChartKind = "line"
	ChartArea ChartKind = "area"
)

// IsValid returns true if the chart kind is recognised.
func (k ChartKind) IsValid() bool {
	switch k {
	case ChartPie, ChartBar, ChartLine, ChartArea:
		return true
	default:
		return false
	}
}

// IsCategory reports whether the chart plots series against category axes.
func (k ChartKind) IsCategory() bool {
	return k == ChartBar || k == ChartLine || k == ChartArea
}

// ChartSeries is one named value series.
type ChartSeries struct {
	Name   string
	Values []float64
}

// Chart is a data chart.
type Chart struct {
	Base
	ChartKind  ChartKind
	Title      string
	Categories []string
	Series     []ChartSeries
}

// Kind implements Element.
func (*Chart) Kind() ElementKind { return KindChart }

// Shape is a preset geometric shape with optional text.
type Shape struct {
	Base

	// Geometry is a preset name such as "rect" or "ellipse".
	Geometry string

	// Fill and Line are theme role names or hex colors.
	Fill string
	Line string

	Text *TextBlock
}

// Kind implements Element.
func (*Shape) Kind() ElementKind { return KindShape }

// Embed is an external video or web embed.
type Embed struct {
	Base
	URL   string
	Title string
}

// Kind implements Element.
func (*Embed) Kind() ElementKind { return KindEmbed }

// Divider is a straight horizontal or vertical rule.
type Divider struct {
	Base
	Color string

	// Weight is the line width in points.
	Weight float64
}

// Kind implements Element.
func (*Divider) Kind() ElementKind { return KindDivider }

// Container groups child elements. Child frames are relative to the
// container's frame.
type Container struct {
	Base
	Children []Element
}

// Kind implements Element.
func (*Container) Kind() ElementKind { return KindContainer }

// Unknown preserves an element whose kind this version cannot export.
type Unknown struct {
	Base
	Type string
}

// Kind implements Element.
func (u *Unknown) Kind() ElementKind { return ElementKind(u.Type) }

// Walk calls fn for every element in the tree rooted at elements, parents
// before children. Returning false from fn skips that element's children.
func Walk(elements []Element, fn func(Element) bool) {
	for _, el := range elements {
		if !fn(el) {
			continue
		}
		if c, ok := el.(*Container); ok {
			Walk(c.Children, fn)
		}
	}
}
