package styles

import (
	"math"

	"github.com/sketchify/sketchify/pkg/blend"
	"github.com/sketchify/sketchify/pkg/paint"
	"github.com/sketchify/sketchify/pkg/raster"
)

// lineArtBand is the width of the anti-aliased cutoff used by lineart.
const lineArtBand = 12

func renderDefault(in Input) *raster.Bitmap {
	return softBase(in, threshold(in, 10, 12))
}

func renderContour(in Input) *raster.Bitmap {
	return binaryBase(in, threshold(in, 40, 18))
}

func renderLineArt(in Input) *raster.Bitmap {
	thr := threshold(in, 15, 10)
	return fill(in, func(i int) uint8 { return bandCut(uint8(in.edgeAt(i)), thr, lineArtBand) })
}

func renderMinimalist(in Input) *raster.Bitmap {
	return binaryBase(in, threshold(in, 60, 20))
}

func renderArchitectural(in Input) *raster.Bitmap {
	return binaryBase(in, threshold(in, 10, 10))
}

// renderCrossContour overlays two tinted families of contour lines on a soft
// outline. Overlay leaves paper white, so the lines only tint mid-tones.
func renderCrossContour(in Input) *raster.Bitmap {
	b := softBase(in, threshold(in, 10, 12))
	p := paint.New(b)
	ink := paint.RGB(100, 100, 200, 0.3, blend.Overlay)
	step := float64(max(8, 16-in.Intensity))
	width := 0.5 + float64(in.Intensity)/5
	w, h := float64(in.W), float64(in.H)
	for _, angle := range []float64{0, math.Pi / 6} {
		ca, sa := math.Cos(angle), math.Sin(angle)
		for t := -h; t < h; t += step {
			p.Line(t*ca, t*sa, w+t*ca, h+t*sa, width, ink)
		}
	}
	return b
}

// renderAcademic is a soft outline with a restrained block shading layer.
// Low intensities waver the edge response.
func renderAcademic(in Input) *raster.Bitmap {
	thr := threshold(in, 8, 10)
	waver := in.Intensity < 5
	b := fill(in, func(i int) uint8 {
		e := in.edgeAt(i)
		if waver {
			e *= 0.8 + in.RNG.Float64()*0.3
		}
		return softCut(e, thr)
	})

	p := paint.New(b)
	ink := paint.Gray(0, 0.1, blend.Overlay)
	step := max(6, 14-in.StrokeWeight)
	for y := 0; y < in.H; y += step * 2 {
		for x := 0; x < in.W; x += step * 2 {
			if in.edgeLevel(x, y) > 0.15 {
				p.Rect(float64(x), float64(y), float64(step), float64(step), ink)
			}
		}
	}
	return b
}

// renderPhotorealism draws edge pixels as pen lines over a faint tone laid
// under slightly weaker edges.
func renderPhotorealism(in Input) *raster.Bitmap {
	lineThr := 50 + float64(6-in.Intensity)*4
	b := raster.New(in.W, in.H)
	for i := 0; i < b.Len(); i++ {
		if in.edgeAt(i) > lineThr {
			b.SetGray(i, 0)
		}
	}

	p := paint.New(b)
	ink := paint.Gray(0x33, 0.15, blend.Multiply)
	for y := 0; y < in.H; y += 2 {
		for x := 0; x < in.W; x += 2 {
			if float64(in.edge(x, y)) > lineThr-10 {
				p.Rect(float64(x), float64(y), 2, 2, ink)
			}
		}
	}
	return b
}
