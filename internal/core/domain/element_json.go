package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// The JSON form of a presentation is the editor's storage format.
// Elements carry a "type" discriminator; unknown types decode to *Unknown
// so a newer editor cannot break older exporters.

type presentationWire struct {
	ID        string      `json:"id"`
	OwnerID   string      `json:"ownerId,omitempty"`
	Title     string      `json:"title"`
	Language  string      `json:"language,omitempty"`
	Theme     string      `json:"theme,omitempty"`
	Slides    []slideWire `json:"slides"`
	CreatedAt time.Time   `json:"createdAt,omitempty"`
	UpdatedAt time.Time   `json:"updatedAt,omitempty"`
}

type slideWire struct {
	ID         string          `json:"id,omitempty"`
	Layout     SlideLayout     `json:"layout,omitempty"`
	Background *backgroundWire `json:"background,omitempty"`
	Elements   []elementWire   `json:"elements"`
	Notes      string          `json:"notes,omitempty"`
}

type backgroundWire struct {
	Color string `json:"color,omitempty"`
	Image string `json:"image,omitempty"`
}

type runWire struct {
	Text      string  `json:"text"`
	Bold      bool    `json:"bold,omitempty"`
	Italic    bool    `json:"italic,omitempty"`
	Underline bool    `json:"underline,omitempty"`
	Color     string  `json:"color,omitempty"`
	FontSize  float64 `json:"fontSize,omitempty"`
	Link      string  `json:"link,omitempty"`
}

type paragraphWire struct {
	Align TextAlign `json:"align,omitempty"`
	Level TextLevel `json:"level,omitempty"`
	Runs  []runWire `json:"runs"`
}

type textWire struct {
	Paragraphs []paragraphWire `json:"paragraphs"`
	Fill       string          `json:"fill,omitempty"`
}

type cropWire struct {
	Left   float64 `json:"left,omitempty"`
	Top    float64 `json:"top,omitempty"`
	Right  float64 `json:"right,omitempty"`
	Bottom float64 `json:"bottom,omitempty"`
}

type seriesWire struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

type elementWire struct {
	Type   string  `json:"type"`
	ID     string  `json:"id,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   Unit    `json:"unit,omitempty"`

	// text
	Paragraphs []paragraphWire `json:"paragraphs,omitempty"`
	Fill       string          `json:"fill,omitempty"`

	// image
	Src  string    `json:"src,omitempty"`
	Alt  string    `json:"alt,omitempty"`
	Crop *cropWire `json:"crop,omitempty"`
	Fit  ImageFit  `json:"fit,omitempty"`

	// table
	Rows          [][]textWire `json:"rows,omitempty"`
	ColumnWeights []float64    `json:"columnWeights,omitempty"`
	RowWeights    []float64    `json:"rowWeights,omitempty"`
	HeaderRow     bool         `json:"headerRow,omitempty"`

	// chart
	ChartType  ChartKind    `json:"chartType,omitempty"`
	Title      string       `json:"title,omitempty"`
	Categories []string     `json:"categories,omitempty"`
	Series     []seriesWire `json:"series,omitempty"`

	// shape
	Geometry string    `json:"geometry,omitempty"`
	Line     string    `json:"line,omitempty"`
	Text     *textWire `json:"text,omitempty"`

	// embed
	URL string `json:"url,omitempty"`

	// divider
	Color  string  `json:"color,omitempty"`
	Weight float64 `json:"weight,omitempty"`

	// container
	Children []elementWire `json:"children,omitempty"`
}

// MarshalPresentation encodes a presentation in its storage JSON form.
func MarshalPresentation(p *Presentation) ([]byte, error) {
	if p == nil {
		return nil, ErrInvalidInput
	}
	w := presentationWire{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Title:     p.Title,
		Language:  p.Language,
		Theme:     p.ThemeName,
		Slides:    encodeSlides(p.Slides),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	return json.Marshal(w)
}

// UnmarshalPresentation decodes a presentation from its storage JSON form.
func UnmarshalPresentation(data []byte) (*Presentation, error) {
	var w presentationWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	slides, err := decodeSlides(w.Slides)
	if err != nil {
		return nil, err
	}
	return &Presentation{
		ID:        w.ID,
		OwnerID:   w.OwnerID,
		Title:     w.Title,
		Language:  w.Language,
		ThemeName: w.Theme,
		Slides:    slides,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}, nil
}

// MarshalSlides encodes only the slide list. Stores use it for the
// content column.
func MarshalSlides(slides []Slide) ([]byte, error) {
	return json.Marshal(encodeSlides(slides))
}

// UnmarshalSlides decodes a slide list written by MarshalSlides.
func UnmarshalSlides(data []byte) ([]Slide, error) {
	var w []slideWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return decodeSlides(w)
}

func encodeSlides(slides []Slide) []slideWire {
	out := make([]slideWire, len(slides))
	for i, s := range slides {
		sw := slideWire{
			ID:       s.ID,
			Layout:   s.Layout,
			Elements: make([]elementWire, 0, len(s.Elements)),
			Notes:    s.Notes,
		}
		if !s.Background.IsZero() {
			sw.Background = &backgroundWire{Color: s.Background.Color, Image: s.Background.ImageSrc}
		}
		for _, el := range s.Elements {
			sw.Elements = append(sw.Elements, encodeElement(el))
		}
		out[i] = sw
	}
	return out
}

func decodeSlides(in []slideWire) ([]Slide, error) {
	out := make([]Slide, len(in))
	for i, sw := range in {
		layout := sw.Layout
		if layout == "" {
			layout = SlideLayoutDefault
		}
		s := Slide{
			ID:       sw.ID,
			Layout:   layout,
			Elements: make([]Element, 0, len(sw.Elements)),
			Notes:    sw.Notes,
		}
		if sw.Background != nil {
			s.Background = &Background{Color: sw.Background.Color, ImageSrc: sw.Background.Image}
		}
		for j := range sw.Elements {
			el, err := decodeElement(&sw.Elements[j])
			if err != nil {
				return nil, fmt.Errorf("slide %d element %d: %w", i+1, j+1, err)
			}
			s.Elements = append(s.Elements, el)
		}
		out[i] = s
	}
	return out, nil
}

func encodeElement(el Element) elementWire {
	f := el.Bounds()
	w := elementWire{
		Type:   string(el.Kind()),
		X:      f.X,
		Y:      f.Y,
		Width:  f.Width,
		Height: f.Height,
		Unit:   f.Unit,
	}
	switch e := el.(type) {
	case *TextBlock:
		w.ID = e.ID
		w.Paragraphs = encodeParagraphs(e.Paragraphs)
		w.Fill = e.Fill
	case *Image:
		w.ID = e.ID
		w.Src = e.Src
		w.Alt = e.Alt
		w.Fit = e.Fit
		if !e.Crop.IsZero() {
			w.Crop = &cropWire{Left: e.Crop.Left, Top: e.Crop.Top, Right: e.Crop.Right, Bottom: e.Crop.Bottom}
		}
	case *Table:
		w.ID = e.ID
		w.ColumnWeights = e.ColumnWeights
		w.RowWeights = e.RowWeights
		w.HeaderRow = e.HeaderRow
		w.Rows = make([][]textWire, len(e.Rows))
		for i, row := range e.Rows {
			cells := make([]textWire, len(row.Cells))
			for j, c := range row.Cells {
				cells[j] = textWire{Paragraphs: encodeParagraphs(c.Content.Paragraphs), Fill: c.Content.Fill}
			}
			w.Rows[i] = cells
		}
	case *Chart:
		w.ID = e.ID
		w.ChartType = e.ChartKind
		w.Title = e.Title
		w.Categories = e.Categories
		for _, s := range e.Series {
			w.Series = append(w.Series, seriesWire{Name: s.Name, Values: s.Values})
		}
	case *Shape:
		w.ID = e.ID
		w.Geometry = e.Geometry
		w.Fill = e.Fill
		w.Line = e.Line
		if e.Text != nil {
			w.Text = &textWire{Paragraphs: encodeParagraphs(e.Text.Paragraphs)}
		}
	case *Embed:
		w.ID = e.ID
		w.URL = e.URL
		w.Title = e.Title
	case *Divider:
		w.ID = e.ID
		w.Color = e.Color
		w.Weight = e.Weight
	case *Container:
		w.ID = e.ID
		for _, child := range e.Children {
			w.Children = append(w.Children, encodeElement(child))
		}
	case *Unknown:
		w.ID = e.ID
		w.Type = e.Type
	}
	return w
}

func decodeElement(w *elementWire) (Element, error) {
	unit := w.Unit
	switch unit {
	case "":
		unit = UnitPercent
	case UnitPercent, UnitPixel:
	default:
		return nil, fmt.Errorf("%w: unit %q", ErrInvalidInput, w.Unit)
	}
	base := Base{
		ID:    w.ID,
		Frame: Frame{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height, Unit: unit},
	}

	switch ElementKind(w.Type) {
	case KindText:
		return &TextBlock{Base: base, Paragraphs: decodeParagraphs(w.Paragraphs), Fill: w.Fill}, nil
	case KindImage:
		img := &Image{Base: base, Src: w.Src, Alt: w.Alt, Fit: w.Fit}
		if img.Fit == "" {
			img.Fit = FitFill
		}
		if w.Crop != nil {
			img.Crop = &Crop{Left: w.Crop.Left, Top: w.Crop.Top, Right: w.Crop.Right, Bottom: w.Crop.Bottom}
		}
		return img, nil
	case KindTable:
		t := &Table{
			Base:          base,
			ColumnWeights: w.ColumnWeights,
			RowWeights:    w.RowWeights,
			HeaderRow:     w.HeaderRow,
			Rows:          make([]TableRow, len(w.Rows)),
		}
		for i, row := range w.Rows {
			cells := make([]TableCell, len(row))
			for j, c := range row {
				cells[j] = TableCell{Content: TextBlock{Paragraphs: decodeParagraphs(c.Paragraphs), Fill: c.Fill}}
			}
			t.Rows[i] = TableRow{Cells: cells}
		}
		return t, nil
	case KindChart:
		c := &Chart{Base: base, ChartKind: w.ChartType, Title: w.Title, Categories: w.Categories}
		for _, s := range w.Series {
			c.Series = append(c.Series, ChartSeries{Name: s.Name, Values: s.Values})
		}
		return c, nil
	case KindShape:
		s := &Shape{Base: base, Geometry: w.Geometry, Fill: w.Fill, Line: w.Line}
		if w.Text != nil {
			s.Text = &TextBlock{Paragraphs: decodeParagraphs(w.Text.Paragraphs)}
		}
		return s, nil
	case KindEmbed:
		return &Embed{Base: base, URL: w.URL, Title: w.Title}, nil
	case KindDivider:
		return &Divider{Base: base, Color: w.Color, Weight: w.Weight}, nil
	case KindContainer:
		c := &Container{Base: base}
		for i := range w.Children {
			child, err := decodeElement(&w.Children[i])
			if err != nil {
				return nil, err
			}
			c.Children = append(c.Children, child)
		}
		return c, nil
	default:
		return &Unknown{Base: base, Type: w.Type}, nil
	}
}

func encodeParagraphs(ps []Paragraph) []paragraphWire {
	out := make([]paragraphWire, len(ps))
	for i, p := range ps {
		pw := paragraphWire{Align: p.Align, Level: p.Level, Runs: make([]runWire, len(p.Runs))}
		for j, r := range p.Runs {
			pw.Runs[j] = runWire(r)
		}
		out[i] = pw
	}
	return out
}

func decodeParagraphs(ps []paragraphWire) []Paragraph {
	out := make([]Paragraph, len(ps))
	for i, pw := range ps {
		p := Paragraph{Align: pw.Align, Level: pw.Level, Runs: make([]TextRun, len(pw.Runs))}
		if p.Align == "" {
			p.Align = AlignLeft
		}
		if p.Level == "" {
			p.Level = LevelBody
		}
		for j, r := range pw.Runs {
			p.Runs[j] = TextRun(r)
		}
		out[i] = p
	}
	return out
}
