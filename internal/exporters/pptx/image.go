package pptx

import (
	"fmt"
	"math"
	"path"
	"strings"

	"github.com/presentai/presentai/internal/core/domain"
)

// picture writes an image element as <p:pic>.
func (sc *slideContext) picture(img *domain.Image, frame Rect) (string, error) {
	m, err := sc.media.Media(img.Src)
	if err != nil {
		return "", err
	}
	rid := sc.imageRel(m)

	crop := normaliseCrop(img.Crop)
	if img.Fit == domain.FitContain {
		frame = containRect(frame, m, crop)
	}

	id := sc.shapeID()
	var b strings.Builder
	fmt.Fprintf(&b, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture %d" descr="%s"/>`, id, id, escape(img.Alt))
	b.WriteString(`<p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`)
	fmt.Fprintf(&b, `<p:blipFill><a:blip r:embed="%s"/>`, rid)
	if !crop.IsZero() {
		fmt.Fprintf(&b, `<a:srcRect l="%d" t="%d" r="%d" b="%d"/>`,
			thousandths(crop.Left), thousandths(crop.Top), thousandths(crop.Right), thousandths(crop.Bottom))
	}
	b.WriteString(`<a:stretch><a:fillRect/></a:stretch></p:blipFill>`)
	fmt.Fprintf(&b, `<p:spPr>%s<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`, xfrm(frame))
	return b.String(), nil
}

// imageRel registers the media once per package and allocates a
// slide-scoped relationship to it.
func (sc *slideContext) imageRel(m *Media) string {
	part := sc.registry.RegisterMedia(m)
	return sc.rels.Add(relTypeImage, "../media/"+path.Base(part))
}

// normaliseCrop clamps each side to [0, 1) and keeps at least 1% of the
// source visible on each axis.
func normaliseCrop(c *domain.Crop) *domain.Crop {
	if c.IsZero() {
		return nil
	}
	side := func(v float64) float64 {
		if math.IsNaN(v) || v < 0 {
			return 0
		}
		return math.Min(v, 0.99)
	}
	out := &domain.Crop{Left: side(c.Left), Top: side(c.Top), Right: side(c.Right), Bottom: side(c.Bottom)}
	if out.Left+out.Right > 0.99 {
		scale := 0.99 / (out.Left + out.Right)
		out.Left *= scale
		out.Right *= scale
	}
	if out.Top+out.Bottom > 0.99 {
		scale := 0.99 / (out.Top + out.Bottom)
		out.Top *= scale
		out.Bottom *= scale
	}
	return out
}

// thousandths converts a fraction to the 1/100000 units of a:srcRect.
func thousandths(f float64) int64 {
	return round(f * 100000)
}

// containRect fits the visible part of the image inside frame, keeping its
// aspect ratio, and centres it.
func containRect(frame Rect, m *Media, crop *domain.Crop) Rect {
	w, h := float64(m.Width), float64(m.Height)
	if crop != nil {
		w *= 1 - crop.Left - crop.Right
		h *= 1 - crop.Top - crop.Bottom
	}
	if w <= 0 || h <= 0 || frame.W == 0 || frame.H == 0 {
		return frame
	}
	scale := math.Min(float64(frame.W)/w, float64(frame.H)/h)
	cw := clamp(round(w*scale), 0, frame.W)
	ch := clamp(round(h*scale), 0, frame.H)
	return Rect{
		X: frame.X + (frame.W-cw)/2,
		Y: frame.Y + (frame.H-ch)/2,
		W: cw,
		H: ch,
	}
}

// backgroundImageFrame places a slide background image according to the
// slide layout. ok is false when the image fills the whole slide.
func backgroundImageFrame(layout domain.SlideLayout) (domain.Frame, bool) {
	switch layout {
	case domain.SlideLayoutLeft:
		return domain.Frame{Width: 40, Height: 100, Unit: domain.UnitPercent}, true
	case domain.SlideLayoutRight:
		return domain.Frame{X: 60, Width: 40, Height: 100, Unit: domain.UnitPercent}, true
	case domain.SlideLayoutVertical:
		return domain.Frame{Width: 100, Height: 40, Unit: domain.UnitPercent}, true
	default:
		return domain.Frame{}, false
	}
}
