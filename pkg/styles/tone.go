package styles

import (
	"math"

	"github.com/sketchify/sketchify/pkg/params"
	"github.com/sketchify/sketchify/pkg/raster"
)

// strokeShift lowers a threshold per stroke-weight step above the default.
const strokeShift = 2

// threshold returns base + (11-intensity)*slope, shifted by stroke weight and
// floored at zero. Higher intensity or heavier strokes reveal more edges.
func threshold(in Input, base, slope float64) float64 {
	t := base + float64(11-in.Intensity)*slope
	t -= float64(in.StrokeWeight-params.DefaultStrokeWeight) * strokeShift
	return max(t, 0)
}

// binaryCut is black where e exceeds thr and paper elsewhere.
func binaryCut(e uint8, thr float64) uint8 {
	if float64(e) > thr {
		return 0
	}
	return raster.Paper
}

// softCut darkens linearly by how far e exceeds thr.
func softCut(e, thr float64) uint8 {
	return raster.Paper - raster.Clamp(e-thr)
}

// bandCut is a binary cut anti-aliased over a band of the given width
// centered on thr.
func bandCut(e uint8, thr, width float64) uint8 {
	thr = max(thr, width/2)
	t := smoothstep(thr-width/2, thr+width/2, float64(e))
	return raster.Clamp(raster.Paper * (1 - t))
}

func smoothstep(lo, hi, x float64) float64 {
	if hi <= lo {
		if x < lo {
			return 0
		}
		return 1
	}
	t := min(max((x-lo)/(hi-lo), 0), 1)
	return t * t * (3 - 2*t)
}

// sCurve is a symmetric contrast curve on [0,1].
func sCurve(x float64) float64 {
	x = min(max(x, 0), 1)
	return x * x * (3 - 2*x)
}

// gamma raises x in [0,1] to g.
func gamma(x, g float64) float64 {
	return math.Pow(min(max(x, 0), 1), g)
}

// fill builds an opaque gray canvas from a per-pixel function.
// washTone is a light paper wash darkening with the source gray of pixel i,
// at most depth levels below paper.
func washTone(in Input, i int, depth float64) uint8 {
	return raster.Clamp(raster.Paper - (1-float64(in.grayAt(i))/255)*depth)
}

func fill(in Input, fn func(i int) uint8) *raster.Bitmap {
	b := raster.New(in.W, in.H)
	for i := 0; i < b.Len(); i++ {
		b.SetGray(i, fn(i))
	}
	return b
}

// edgeAt returns the edge value of pixel index i as a float.
func (in Input) edgeAt(i int) float64 {
	if i >= len(in.Edges) {
		return 0
	}
	return float64(in.Edges[i])
}

// grayAt returns the luminance of pixel index i.
func (in Input) grayAt(i int) uint8 {
	if i >= len(in.Gray) {
		return raster.Paper
	}
	return in.Gray[i]
}

// softBase is the soft threshold outline most layered styles start from.
func softBase(in Input, thr float64) *raster.Bitmap {
	return fill(in, func(i int) uint8 { return softCut(in.edgeAt(i), thr) })
}

// binaryBase is a binary threshold outline.
func binaryBase(in Input, thr float64) *raster.Bitmap {
	return fill(in, func(i int) uint8 { return binaryCut(uint8(in.edgeAt(i)), thr) })
}
