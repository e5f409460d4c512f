package domain

import "time"

// Presentation is a stored slide deck.
// It is the unit of ownership, listing and export.
type Presentation struct {
	// ID is the unique identifier for the presentation.
	ID string

	// OwnerID is the identity that owns the presentation.
	// Stores only return a presentation to its owner.
	OwnerID string

	// Title is the human-readable title.
	Title string

	// Language is a BCP 47 tag (e.g. "en-US") written into the deck.
	Language string

	// ThemeName names the theme the deck was designed with.
	ThemeName string

	// Slides are the slides in presentation order.
	Slides []Slide

	// CreatedAt is when the presentation was first stored.
	CreatedAt time.Time

	// UpdatedAt is when the presentation was last modified.
	UpdatedAt time.Time
}

// SlideCount returns the number of slides.
func (p *Presentation) SlideCount() int {
	if p == nil {
		return 0
	}
	return len(p.Slides)
}

// SlideLayout records the layout the editor used for a slide.
// The exporter keeps absolute positions, so the layout only changes
// where a background image is placed.
type SlideLayout string

// Available slide layouts.
const (
	SlideLayoutDefault    SlideLayout = "default"
	SlideLayoutLeft       SlideLayout = "left"
	SlideLayoutRight      SlideLayout = "right"
	SlideLayoutVertical   SlideLayout = "vertical"
	SlideLayoutBackground SlideLayout = "background"
)

// IsValid returns true if the layout is recognised.
func (l SlideLayout) IsValid() bool {
	switch l {
	case SlideLayoutDefault, SlideLayoutLeft, SlideLayoutRight,
		SlideLayoutVertical, SlideLayoutBackground:
		return true
	default:
		return false
	}
}

// Background overrides the theme background for one slide.
type Background struct {
	// Color is a theme role name or a hex color.
	Color string

	// ImageSrc is an http(s) URL or data: URI stretched over the slide.
	ImageSrc string
}

// IsZero reports whether the background carries no override.
func (b *Background) IsZero() bool {
	return b == nil || (b.Color == "" && b.ImageSrc == "")
}

// Slide is one page of a presentation.
// Elements are painted in sequence order; later elements sit on top.
type Slide struct {
	// ID is the editor's identifier for the slide.
	ID string

	// Layout is the editor layout tag.
	Layout SlideLayout

	// Background optionally overrides the theme background.
	Background *Background

	// Elements are the slide's top-level elements in paint order.
	Elements []Element

	// Notes are speaker notes. They are stored but not exported.
	Notes string
}

// Clone returns a deep copy of the presentation.
// Element values are shared; they are treated as immutable.
func (p *Presentation) Clone() *Presentation {
	if p == nil {
		return nil
	}
	out := *p
	out.Slides = make([]Slide, len(p.Slides))
	for i, s := range p.Slides {
		cs := s
		if s.Background != nil {
			bg := *s.Background
			cs.Background = &bg
		}
		cs.Elements = append([]Element(nil), s.Elements...)
		out.Slides[i] = cs
	}
	return &out
}

// PresentationSummary is the listing view of a presentation.
type PresentationSummary struct {
	ID         string
	OwnerID    string
	Title      string
	ThemeName  string
	SlideCount int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Summary returns the listing view of the presentation.
func (p *Presentation) Summary() PresentationSummary {
	return PresentationSummary{
		ID:         p.ID,
		OwnerID:    p.OwnerID,
		Title:      p.Title,
		ThemeName:  p.ThemeName,
		SlideCount: len(p.Slides),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
