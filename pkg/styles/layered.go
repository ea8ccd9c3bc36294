package styles

import (
	"github.com/sketchify/sketchify/pkg/blend"
	"github.com/sketchify/sketchify/pkg/paint"
	"github.com/sketchify/sketchify/pkg/raster"
)

// Layered styles lay a base wash first, then blend mark layers on top. Each
// layer carries its own tone predicate.

// shadowLevel is the luminance below which comic spot blacks may appear.
func shadowLevel(in Input) uint8 { return uint8(90 + 5*in.Intensity) }

func renderComic(in Input) *raster.Bitmap {
	thr := threshold(in, 5, 8)
	b := fill(in, func(i int) uint8 {
		return min(binaryCut(uint8(in.edgeAt(i)), thr), washTone(in, i, 40))
	})
	p := paint.New(b)
	ink := paint.Gray(0, 1, blend.Darken)
	step := float64(max(6, 14-in.StrokeWeight))
	shadow := shadowLevel(in)
	for y := step / 2; y < float64(in.H); y += step {
		for x := step / 2; x < float64(in.W); x += step {
			if in.gray(int(x), int(y)) < shadow && in.RNG.Float64() > 0.6 {
				p.Dot(x, y, 0.8+in.RNG.Float64()*1.2, ink)
			}
		}
	}
	return b
}

// renderMixedMedia combines a tonal wash, square blocks and thin red rings.
func renderMixedMedia(in Input) *raster.Bitmap {
	thr := threshold(in, 10, 12)
	b := fill(in, func(i int) uint8 {
		return min(softCut(in.edgeAt(i), thr), washTone(in, i, 60))
	})

	p := paint.New(b)
	block := paint.Gray(0, 0.2, blend.Multiply)
	ring := paint.RGB(100, 0, 0, 0.3, blend.Multiply)
	step := float64(max(5, 12-in.StrokeWeight))
	gate := 0.55 - 0.04*float64(in.Intensity)
	for y := 0.0; y < float64(in.H); y += step * 1.5 {
		for x := 0.0; x < float64(in.W); x += step * 1.5 {
			if in.tone(int(x), int(y)) <= gate {
				continue
			}
			if in.RNG.Float64() > 0.5 {
				p.Rect(x, y, step/2, step/2, block)
			} else {
				p.Ring(x, y, step/3, 1, ring)
			}
		}
	}
	return b
}

// renderOilPainting masses dark strokes along edges over a broad tonal wash
// and dabs paint into the deepest shadows.
func renderOilPainting(in Input) *raster.Bitmap {
	thr := threshold(in, 20, 10)
	b := fill(in, func(i int) uint8 {
		if in.edgeAt(i) > thr {
			return 40
		}
		return raster.Clamp(240 - (1-float64(in.grayAt(i))/255)*100)
	})

	p := paint.New(b)
	ink := paint.Gray(0x1a, 0.2, blend.Multiply)
	for y := 0; y < in.H; y += 3 {
		for x := 0; x < in.W; x += 3 {
			switch {
			case float64(in.edge(x, y)) > thr:
				p.Rect(float64(x), float64(y), 3, 3, ink)
			case in.darkness(x, y) > 0.6:
				p.Rect(float64(x)+in.RNG.Jitter(2), float64(y)+in.RNG.Jitter(2), 3, 3, ink)
			}
		}
	}
	return b
}

// renderWatercolor draws crisp pen lines over a tonal wash and soft
// pooled washes.
func renderWatercolor(in Input) *raster.Bitmap {
	washThr := threshold(in, 5, 5)
	lineThr := threshold(in, 25, 5)
	b := fill(in, func(i int) uint8 { return washTone(in, i, 50) })
	p := paint.New(b)
	wash := paint.Gray(0x44, 0.12, blend.Multiply)
	for y := 0; y < in.H; y += 2 {
		for x := 0; x < in.W; x += 2 {
			if float64(in.edge(x, y)) > washThr || in.darkness(x, y) > 0.5 {
				p.Rect(float64(x), float64(y), 2, 2, wash)
			}
		}
	}
	for i := 0; i < b.Len(); i++ {
		if in.edgeAt(i) > lineThr {
			b.SetGray(i, 0)
		}
	}
	return b
}

// renderEtching engraves short horizontal and vertical strokes over edges.
// Vertical strokes use a slightly lower threshold, so strong edges cross.
func renderEtching(in Input) *raster.Bitmap {
	thr := threshold(in, 5, 5)
	b := binaryBase(in, thr)
	p := paint.New(b)
	ink := paint.Gray(0x11, 1, blend.Multiply)
	step := max(3, 9-in.StrokeWeight)
	width := 0.4 + float64(in.StrokeWeight)*0.15
	s := float64(step)
	for y := 0; y < in.H; y += step {
		for x := 0; x < in.W; x += step {
			e := float64(in.edge(x, y))
			fx, fy := float64(x)+0.5, float64(y)+0.5
			if e > thr || in.darkness(x, y) > 0.8 {
				p.Line(fx-s, fy, fx+s, fy, width, ink)
			}
			if e > max(thr-5, 0) {
				p.Line(fx, fy-s, fx, fy+s, width, ink)
			}
		}
	}
	return b
}

// renderInkWash spreads diluted washes around soft lines.
func renderInkWash(in Input) *raster.Bitmap {
	b := softBase(in, threshold(in, 20, 15)/2)
	p := paint.New(b)
	ink := paint.Gray(0, 0.15, blend.Multiply)
	step := float64(max(6, 14-in.StrokeWeight))
	for y := 0.0; y < float64(in.H); y += step * 1.5 {
		for x := 0.0; x < float64(in.W); x += step * 1.5 {
			if in.edgeLevel(int(x), int(y)) > 0.2 {
				p.Rect(x-step/2, y-step/2, step*1.2, step*1.2, ink)
			}
		}
	}
	return b
}

// renderUrban tints loose lines with a block wash. Overlay keeps paper white.
func renderUrban(in Input) *raster.Bitmap {
	b := softBase(in, threshold(in, 15, 12))
	p := paint.New(b)
	ink := paint.RGB(100, 150, 200, 0.2, blend.Overlay)
	step := float64(max(10, 20-in.StrokeWeight))
	for y := 0.0; y < float64(in.H); y += step {
		for x := 0.0; x < float64(in.W); x += step {
			p.Rect(x, y, step, step, ink)
		}
	}
	return b
}

// renderGlitch randomizes a tenth of the edge responses and displaces
// tinted scanlines.
func renderGlitch(in Input) *raster.Bitmap {
	thr := threshold(in, 10, 12)
	b := fill(in, func(i int) uint8 {
		e := in.edgeAt(i)
		if in.RNG.Float64() < 0.1 {
			e = in.RNG.Float64() * 255
		}
		return softCut(e, thr)
	})

	p := paint.New(b)
	ink := paint.RGB(200, 50, 50, 0.2, blend.Overlay)
	for y := 0; y < in.H; y += 2 {
		fy := float64(y) + 0.5
		p.Line(in.RNG.Float64()*3, fy, float64(in.W)+in.RNG.Float64()*3, fy, 1, ink)
	}
	return b
}
