// Package paint draws anti-aliased marks (lines, dots, rectangles) onto a
// raster.Bitmap through a blend mode, and walks the hysteresis-gated line and
// dot grids that procedural styles and brushes place their marks on.
package paint

import (
	"math"

	"github.com/sketchify/sketchify/pkg/blend"
	"github.com/sketchify/sketchify/pkg/raster"
)

// Ink is the color, opacity and blend rule of a mark.
type Ink struct {
	R, G, B uint8
	Alpha   float64
	Mode    blend.Mode
}

// Gray returns an ink of gray value v.
func Gray(v uint8, alpha float64, mode blend.Mode) Ink {
	return Ink{R: v, G: v, B: v, Alpha: alpha, Mode: mode}
}

// RGB returns a colored ink.
func RGB(r, g, b uint8, alpha float64, mode blend.Mode) Ink {
	return Ink{R: r, G: g, B: b, Alpha: alpha, Mode: mode}
}

// Point is a position in pixel space; pixel (x,y) covers [x,x+1)×[y,y+1).
type Point struct{ X, Y float64 }

// Painter draws marks onto one bitmap.
type Painter struct {
	dst *raster.Bitmap
}

// New returns a painter drawing onto dst.
func New(dst *raster.Bitmap) *Painter {
	return &Painter{dst: dst}
}

// Bitmap returns the destination bitmap.
func (p *Painter) Bitmap() *raster.Bitmap { return p.dst }

// Pixel blends ink into pixel (x,y) with the given coverage.
func (p *Painter) Pixel(x, y int, ink Ink, coverage float64) {
	if !p.dst.In(x, y) || coverage <= 0 {
		return
	}
	o := p.dst.Offset(x, y)
	ink.Mode.Pixel(p.dst.Pix[o:o+4], ink.R, ink.G, ink.B, ink.Alpha*min(coverage, 1))
}

// Line strokes a segment of the given width with round caps.
func (p *Painter) Line(x0, y0, x1, y1, width float64, ink Ink) {
	hw := max(width, 0.1) / 2
	minX := int(math.Floor(min(x0, x1) - hw - 1))
	maxX := int(math.Ceil(max(x0, x1) + hw + 1))
	minY := int(math.Floor(min(y0, y1) - hw - 1))
	maxY := int(math.Ceil(max(y0, y1) + hw + 1))
	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, p.dst.Width-1), min(maxY, p.dst.Height-1)

	dx, dy := x1-x0, y1-y0
	lenSq := dx*dx + dy*dy
	for y := minY; y <= maxY; y++ {
		cy := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			cx := float64(x) + 0.5
			t := 0.0
			if lenSq > 0 {
				t = max(0, min(1, ((cx-x0)*dx+(cy-y0)*dy)/lenSq))
			}
			d := math.Hypot(cx-(x0+t*dx), cy-(y0+t*dy))
			p.Pixel(x, y, ink, hw+0.5-d)
		}
	}
}

// Polyline strokes consecutive segments through pts.
func (p *Painter) Polyline(pts []Point, width float64, ink Ink) {
	for i := 1; i < len(pts); i++ {
		p.Line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, width, ink)
	}
}

// Dot fills a disc of radius r centered at (cx,cy).
func (p *Painter) Dot(cx, cy, r float64, ink Ink) {
	minX, maxX := max(int(math.Floor(cx-r-1)), 0), min(int(math.Ceil(cx+r+1)), p.dst.Width-1)
	minY, maxY := max(int(math.Floor(cy-r-1)), 0), min(int(math.Ceil(cy+r+1)), p.dst.Height-1)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			p.Pixel(x, y, ink, r+0.5-d)
		}
	}
}

// Ring strokes a circle outline of radius r.
func (p *Painter) Ring(cx, cy, r, width float64, ink Ink) {
	hw := max(width, 0.1) / 2
	minX, maxX := max(int(math.Floor(cx-r-hw-1)), 0), min(int(math.Ceil(cx+r+hw+1)), p.dst.Width-1)
	minY, maxY := max(int(math.Floor(cy-r-hw-1)), 0), min(int(math.Ceil(cy+r+hw+1)), p.dst.Height-1)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			d := math.Abs(math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) - r)
			p.Pixel(x, y, ink, hw+0.5-d)
		}
	}
}

// Rect fills the axis-aligned rectangle [x,x+w)×[y,y+h) with exact
// fractional coverage at its borders.
func (p *Painter) Rect(x, y, w, h float64, ink Ink) {
	if w <= 0 || h <= 0 {
		return
	}
	minX, maxX := max(int(math.Floor(x)), 0), min(int(math.Ceil(x+w))-1, p.dst.Width-1)
	minY, maxY := max(int(math.Floor(y)), 0), min(int(math.Ceil(y+h))-1, p.dst.Height-1)
	for py := minY; py <= maxY; py++ {
		oy := min(float64(py+1), y+h) - max(float64(py), y)
		for px := minX; px <= maxX; px++ {
			ox := min(float64(px+1), x+w) - max(float64(px), x)
			p.Pixel(px, py, ink, ox*oy)
		}
	}
}

// Quad approximates a quadratic Bézier curve from a through control c to b
// with n straight segments.
func Quad(a, c, b Point, n int) []Point {
	n = max(n, 1)
	pts := make([]Point, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		pts[i] = Point{
			X: u*u*a.X + 2*u*t*c.X + t*t*b.X,
			Y: u*u*a.Y + 2*u*t*c.Y + t*t*b.Y,
		}
	}
	return pts
}
