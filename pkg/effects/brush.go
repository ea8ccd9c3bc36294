package effects

import (
	"math"

	"github.com/sketchify/sketchify/pkg/blend"
	"github.com/sketchify/sketchify/pkg/paint"
	"github.com/sketchify/sketchify/pkg/params"
	"github.com/sketchify/sketchify/pkg/raster"
	"github.com/sketchify/sketchify/pkg/rng"
)

// nearWhite is the luminance above which charcoal leaves the paper alone.
const nearWhite = 235

// bloomDark is the luminance below which ink wash pigment bleeds.
const bloomDark = 96

// Brush overlays the texture of brush b onto bm. The line brush is a no-op.
func Brush(bm *raster.Bitmap, b params.Brush, stroke, intensity int, edges raster.EdgeMap, r *rng.Source) {
	if r == nil {
		r = rng.New(params.DefaultSeed)
	}
	switch b {
	case params.BrushHatch:
		brushHatch(bm, stroke, intensity, edges, r, []float64{math.Pi / 4}, max(6, 16-stroke), 0.5+float64(stroke)*0.3, 0.3)
	case params.BrushCrosshatch:
		brushHatch(bm, stroke, intensity, edges, r, []float64{math.Pi / 4, -math.Pi / 4}, max(8, 18-stroke), 0.5+float64(stroke)*0.25, 0.25)
	case params.BrushCharcoal:
		brushCharcoal(bm, stroke, r)
	case params.BrushInkWash:
		brushInkWash(bm, stroke)
	}
}

// sketchTone samples the drive of brush marks: darkness of the current
// sketch or edge strength, whichever is larger.
func sketchTone(bm *raster.Bitmap, edges raster.EdgeMap) paint.Sampler {
	return func(x, y int) float64 {
		r, g, b := bm.RGB(y*bm.Width + x)
		dark := 1 - float64(raster.Luminance(r, g, b))/255
		return max(dark, float64(edges.At(x, y, bm.Width))/255)
	}
}

func brushHatch(bm *raster.Bitmap, stroke, intensity int, edges raster.EdgeMap, r *rng.Source, angles []float64, spacing int, width, alpha float64) {
	// Sample a snapshot so earlier families do not gate later ones.
	ref := bm.Clone()
	sample := sketchTone(ref, edges)
	p := paint.New(bm)
	ink := paint.Gray(80, alpha, blend.Multiply)
	band := paint.NewBand(0.7-0.05*float64(intensity), 0.08)
	for _, a := range angles {
		h := paint.Hatch{Angle: a, Spacing: float64(spacing), Band: band, Jitter: 1, MinLen: 2}
		h.Walk(bm.Width, bm.Height, sample, r, func(s paint.Segment) {
			p.Line(s.X0, s.Y0, s.X1, s.Y1, width, ink)
		})
	}
}

// brushCharcoal drags short 15° strokes and scatters fine grain dots over
// everything but near-white paper.
func brushCharcoal(bm *raster.Bitmap, stroke int, r *rng.Source) {
	ref := bm.Clone()
	lum := func(x, y int) uint8 {
		cr, cg, cb := ref.RGB(y*ref.Width + x)
		return raster.Luminance(cr, cg, cb)
	}
	p := paint.New(bm)
	streak := paint.Gray(0, 0.1, blend.Multiply)
	grain := paint.Gray(0, 0.15, blend.Multiply)
	step := max(4, 12-stroke)
	length := 4 + float64(stroke)
	width := 1 + float64(stroke)*0.2
	dx, dy := math.Cos(math.Pi/12)*length, math.Sin(math.Pi/12)*length

	for y := 0; y < bm.Height; y += step {
		for x := 0; x < bm.Width; x += step {
			if lum(x, y) > nearWhite {
				continue
			}
			fx, fy := float64(x)+r.Jitter(2), float64(y)+r.Jitter(2)
			p.Line(fx, fy, fx+dx, fy+dy, width, streak)
		}
	}
	for y := 0; y < bm.Height; y += 2 {
		for x := 0; x < bm.Width; x += 2 {
			if lum(x, y) > nearWhite || !r.Chance(0.3) {
				continue
			}
			p.Dot(float64(x)+r.Float64()*2, float64(y)+r.Float64()*2, 0.5, grain)
		}
	}
}

// brushInkWash blends a box-blurred copy into bm at a ratio set by stroke
// weight, then blooms a pale halo around the darkest pixels.
func brushInkWash(bm *raster.Bitmap, stroke int) {
	radius := 1 + stroke/3
	blurred := boxBlur(bm, radius)
	ratio := 0.2 + 0.06*float64(stroke)
	for i := 0; i < len(bm.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			bm.Pix[i+c] = raster.Clamp(float64(bm.Pix[i+c])*(1-ratio) + float64(blurred.Pix[i+c])*ratio)
		}
	}

	// Spread a dark mask and tint the paper it reaches.
	mask := raster.New(bm.Width, bm.Height)
	for i := 0; i < bm.Len(); i++ {
		r, g, b := bm.RGB(i)
		if raster.Luminance(r, g, b) < bloomDark {
			mask.SetGray(i, 0)
		}
	}
	halo := boxBlur(mask, 2)
	for i := 0; i < bm.Len(); i++ {
		if mask.Pix[i*4] == 0 {
			continue
		}
		reach := 1 - float64(halo.Pix[i*4])/255
		if reach <= 0 {
			continue
		}
		blend.Multiply.Pixel(bm.Pix[i*4:i*4+4], 200, 200, 200, 0.4*reach)
	}
}
