package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePresentation() *Presentation {
	return &Presentation{
		ID:        "p-1",
		OwnerID:   "alice",
		Title:     "Quarterly Review",
		Language:  "en-US",
		ThemeName: "ocean",
		Slides: []Slide{
			{
				ID:         "s-1",
				Layout:     SlideLayoutLeft,
				Background: &Background{Color: "primary"},
				Elements: []Element{
					&TextBlock{
						Base: Base{ID: "t", Frame: Frame{X: 5, Y: 5, Width: 90, Height: 20, Unit: UnitPercent}},
						Paragraphs: []Paragraph{{
							Align: AlignCenter,
							Level: LevelTitle,
							Runs:  []TextRun{{Text: "Hello", Bold: true, Color: "heading", FontSize: 40}},
						}},
					},
					&Container{
						Base: Base{ID: "c", Frame: Frame{X: 0, Y: 300, Width: 640, Height: 300, Unit: UnitPixel}},
						Children: []Element{
							&Image{Base: Base{ID: "i"}, Src: "https://example.com/a.png", Crop: &Crop{Left: 0.1}, Fit: FitContain},
							&Chart{Base: Base{ID: "ch"}, ChartKind: ChartPie, Categories: []string{"a", "b"},
								Series: []ChartSeries{{Name: "s", Values: []float64{1, 2}}}},
						},
					},
				},
			},
			{
				ID: "s-2",
				Elements: []Element{
					&Table{Base: Base{ID: "tb"}, HeaderRow: true, Rows: []TableRow{
						{Cells: []TableCell{{Content: TextBlock{Paragraphs: []Paragraph{{Runs: []TextRun{{Text: "x"}}}}}}}},
					}},
					&Shape{Base: Base{ID: "sh"}, Geometry: "ellipse", Fill: "accent", Text: &TextBlock{}},
					&Embed{Base: Base{ID: "e"}, URL: "https://video.example.com/1", Title: "Demo"},
					&Divider{Base: Base{ID: "d"}, Color: "muted", Weight: 2},
					&Unknown{Base: Base{ID: "u"}, Type: "poll"},
				},
			},
		},
	}
}

func TestPresentation_JSONRoundTrip(t *testing.T) {
	p := samplePresentation()

	data, err := MarshalPresentation(p)
	require.NoError(t, err)

	got, err := UnmarshalPresentation(data)
	require.NoError(t, err)

	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.ThemeName, got.ThemeName)
	require.Equal(t, 2, got.SlideCount())
	assert.Equal(t, SlideLayoutLeft, got.Slides[0].Layout)
	assert.Equal(t, SlideLayoutDefault, got.Slides[1].Layout)
	assert.Equal(t, "primary", got.Slides[0].Background.Color)

	text, ok := got.Slides[0].Elements[0].(*TextBlock)
	require.True(t, ok)
	assert.Equal(t, "Hello", text.Paragraphs[0].Text())
	assert.Equal(t, UnitPercent, text.Frame.Unit)

	container, ok := got.Slides[0].Elements[1].(*Container)
	require.True(t, ok)
	require.Len(t, container.Children, 2)
	img := container.Children[0].(*Image)
	assert.Equal(t, 0.1, img.Crop.Left)
	assert.Equal(t, FitContain, img.Fit)

	kinds := make([]ElementKind, 0)
	for _, el := range got.Slides[1].Elements {
		kinds = append(kinds, el.Kind())
	}
	assert.Equal(t, []ElementKind{KindTable, KindShape, KindEmbed, KindDivider, "poll"}, kinds)
}

func TestUnmarshalPresentation_Defaults(t *testing.T) {
	data := []byte(`{"id":"p","title":"t","slides":[{"elements":[
		{"type":"text","x":1,"y":2,"width":3,"height":4,"paragraphs":[{"runs":[{"text":"a"}]}]},
		{"type":"image","src":"data:image/png;base64,AAAA"}
	]}]}`)

	p, err := UnmarshalPresentation(data)
	require.NoError(t, err)

	text := p.Slides[0].Elements[0].(*TextBlock)
	assert.Equal(t, AlignLeft, text.Paragraphs[0].Align)
	assert.Equal(t, LevelBody, text.Paragraphs[0].Level)
	assert.Equal(t, Frame{X: 1, Y: 2, Width: 3, Height: 4, Unit: UnitPercent}, text.Frame)

	img := p.Slides[0].Elements[1].(*Image)
	assert.Equal(t, FitFill, img.Fit)
	assert.Nil(t, img.Crop)
}

func TestUnmarshalPresentation_Invalid(t *testing.T) {
	_, err := UnmarshalPresentation([]byte(`{`))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = UnmarshalPresentation([]byte(`{"slides":[{"elements":[{"type":"text","unit":"cm"}]}]}`))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPresentation_Clone(t *testing.T) {
	p := samplePresentation()
	c := p.Clone()

	c.Title = "Changed"
	c.Slides[0].Background.Color = "accent"
	c.Slides[1].Elements = nil

	assert.Equal(t, "Quarterly Review", p.Title)
	assert.Equal(t, "primary", p.Slides[0].Background.Color)
	assert.Len(t, p.Slides[1].Elements, 5)
	assert.Nil(t, (*Presentation)(nil).Clone())
}

func TestPresentation_Summary(t *testing.T) {
	s := samplePresentation().Summary()
	assert.Equal(t, "p-1", s.ID)
	assert.Equal(t, "alice", s.OwnerID)
	assert.Equal(t, 2, s.SlideCount)
}

func TestWalk(t *testing.T) {
	p := samplePresentation()

	var ids []string
	Walk(p.Slides[0].Elements, func(el Element) bool {
		switch e := el.(type) {
		case *TextBlock:
			ids = append(ids, e.ID)
		case *Container:
			ids = append(ids, e.ID)
		case *Image:
			ids = append(ids, e.ID)
		case *Chart:
			ids = append(ids, e.ID)
		}
		return true
	})
	assert.Equal(t, []string{"t", "c", "i", "ch"}, ids)

	count := 0
	Walk(p.Slides[0].Elements, func(Element) bool {
		count++
		return false
	})
	assert.Equal(t, 2, count)
}

func TestExportResult_Base64(t *testing.T) {
	r := &ExportResult{Data: []byte("PK")}
	assert.Equal(t, "UEs=", r.Base64())
	assert.Empty(t, (*ExportResult)(nil).Base64())
}
