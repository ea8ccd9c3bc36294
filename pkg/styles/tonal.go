package styles

import (
	"github.com/sketchify/sketchify/pkg/blend"
	"github.com/sketchify/sketchify/pkg/paint"
	"github.com/sketchify/sketchify/pkg/raster"
)

// renderTonalPencil maps luminance through an S-curve and deepens the tone
// where edges exceed a threshold.
func renderTonalPencil(in Input) *raster.Bitmap {
	depth := 0.35 + 0.05*float64(in.Intensity)
	edgeThr := threshold(in, 20, 10)
	edgeGain := 0.6 + 0.04*float64(in.StrokeWeight)
	return fill(in, func(i int) uint8 {
		dark := 1 - float64(in.grayAt(i))/255
		v := raster.Paper - sCurve(dark)*raster.Paper*depth
		if e := in.edgeAt(i); e > edgeThr {
			v = min(v, raster.Paper-(e-edgeThr)*edgeGain)
		}
		return raster.Clamp(v)
	})
}

// renderCharcoal maps luminance onto a charcoal range through a gamma curve
// and smudges small dark marks over strong edges.
func renderCharcoal(in Input) *raster.Bitmap {
	const light, dark = 248, 40
	g := 1.4 - 0.06*float64(in.Intensity)
	b := fill(in, func(i int) uint8 {
		return raster.Clamp(dark + (light-dark)*gamma(float64(in.grayAt(i))/255, g))
	})

	p := paint.New(b)
	ink := paint.Gray(0x1a, 0.3, blend.Multiply)
	edgeThr := threshold(in, 15, 11)
	step := max(4, 10-0.4*float64(in.StrokeWeight))
	for y := 0.0; y < float64(in.H); y += step {
		for x := 0.0; x < float64(in.W); x += step {
			if float64(in.edge(int(x), int(y))) > edgeThr {
				p.Rect(x+in.RNG.Jitter(2), y+in.RNG.Jitter(2), 2, 2, ink)
			}
		}
	}
	return b
}

// renderGraphitePortrait lays a light graphite tone, draws edges as pencil
// lines and adds a faint wash where the surface is smooth.
func renderGraphitePortrait(in Input) *raster.Bitmap {
	const paper = 248
	depth := 60 + 8*float64(in.Intensity)
	edgeThr := threshold(in, 0, 9)
	b := fill(in, func(i int) uint8 {
		v := paper - gamma(1-float64(in.grayAt(i))/255, 1.5)*depth
		if e := in.edgeAt(i); e > edgeThr {
			v = min(v, paper-e*0.8)
		}
		return raster.Clamp(v)
	})

	p := paint.New(b)
	ink := paint.Gray(0x33, 0.08, blend.Multiply)
	for y := 0; y < in.H; y += 3 {
		for x := 0; x < in.W; x += 3 {
			if in.edge(x, y) < 40 && in.gray(x, y) < raster.Paper {
				p.Rect(float64(x), float64(y), 3, 3, ink)
			}
		}
	}
	return b
}

// renderCartoon posterizes tone into three bands under bold outlines.
func renderCartoon(in Input) *raster.Bitmap {
	thr := max(0, 25+float64(11-in.Intensity)*10-float64(in.StrokeWeight)*0.3)
	b := fill(in, func(i int) uint8 {
		switch g := in.grayAt(i); {
		case in.edgeAt(i) > thr:
			return 20
		case g < 85:
			return 50
		case g < 170:
			return 150
		default:
			return 240
		}
	})

	radius := 0.5 + float64(in.StrokeWeight)*0.1
	step := max(2, 6-in.StrokeWeight*3/10)
	p := paint.New(b)
	ink := paint.Gray(0, 1, blend.Darken)
	for y := 0; y < in.H; y += step {
		for x := 0; x < in.W; x += step {
			if float64(in.edge(x, y)) > thr {
				p.Dot(float64(x)+0.5, float64(y)+0.5, radius, ink)
			}
		}
	}
	return b
}
