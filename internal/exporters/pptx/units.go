package pptx

import (
	"math"

	"github.com/presentai/presentai/internal/core/domain"
)

// Unit conversion constants.
const (
	EMUPerInch  = 914400
	EMUPerPixel = 9525 // 96 DPI
	EMUPerPoint = 12700

	CanvasWidthPx  = 1280
	CanvasHeightPx = 720
)

// Rect is an absolute rectangle in EMU.
type Rect struct {
	X, Y, W, H int64
}

// Canvas is the fixed slide size for one export.
type Canvas struct {
	Width  int64
	Height int64
}

// DefaultCanvas returns the 16:9 canvas (12192000 x 6858000 EMU).
func DefaultCanvas() Canvas {
	return Canvas{
		Width:  CanvasWidthPx * EMUPerPixel,
		Height: CanvasHeightPx * EMUPerPixel,
	}
}

// Bounds returns the whole canvas as a rectangle.
func (c Canvas) Bounds() Rect {
	return Rect{W: c.Width, H: c.Height}
}

// Resolve converts a top-level frame to an absolute rectangle on the canvas.
// Out-of-range values are clamped, never rejected.
func (c Canvas) Resolve(f domain.Frame) Rect {
	return ResolveIn(c.Bounds(), f)
}

// ResolveIn converts a frame relative to parent into an absolute rectangle
// clamped to parent. Percent values are fractions of the parent size;
// pixel values are offsets from the parent origin.
func ResolveIn(parent Rect, f domain.Frame) Rect {
	var x, y, w, h int64
	switch f.Unit {
	case domain.UnitPixel:
		x = pixels(f.X)
		y = pixels(f.Y)
		w = pixels(f.Width)
		h = pixels(f.Height)
	default:
		x = percentOf(f.X, parent.W)
		y = percentOf(f.Y, parent.H)
		w = percentOf(f.Width, parent.W)
		h = percentOf(f.Height, parent.H)
	}

	x = clamp(x, 0, parent.W)
	y = clamp(y, 0, parent.H)
	w = clamp(w, 0, parent.W-x)
	h = clamp(h, 0, parent.H-y)

	return Rect{X: parent.X + x, Y: parent.Y + y, W: w, H: h}
}

// Points converts a point size to EMU.
func Points(pt float64) int64 {
	return round(pt * EMUPerPoint)
}

func pixels(v float64) int64 {
	return round(v * EMUPerPixel)
}

func percentOf(v float64, total int64) int64 {
	return round(v / 100 * float64(total))
}

// round converts to int64, mapping NaN to zero and saturating infinities.
func round(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt64/2:
		return math.MaxInt64 / 2
	case v <= math.MinInt64/2:
		return math.MinInt64 / 2
	}
	return int64(math.Round(v))
}

func clamp(v, lo, hi int64) int64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
