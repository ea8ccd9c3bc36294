package styles

import (
	"math"

	"github.com/sketchify/sketchify/pkg/blend"
	"github.com/sketchify/sketchify/pkg/paint"
	"github.com/sketchify/sketchify/pkg/raster"
)

// Mark density falls as stroke weight rises: spacing, grid steps and stroke
// reach all grow with StrokeWeight. Gates use hysteresis bands so marks run
// continuously across values hovering around a threshold.

// hatchBand gates hatch lines on tone. bias raises the threshold for
// secondary families so they only appear in darker regions.
func hatchBand(in Input, bias float64) paint.Band {
	return paint.NewBand(0.85-0.07*float64(in.Intensity)+bias, 0.08)
}

func hatchSpacing(in Input) float64 { return 3 + float64(in.StrokeWeight) }

// hatch walks one family of parallel lines over b.
func hatch(in Input, b *raster.Bitmap, angle, bias float64) {
	p := paint.New(b)
	ink := paint.Gray(0x11, 0.85, blend.Multiply)
	width := 0.5 + float64(in.StrokeWeight)*0.2
	h := paint.Hatch{
		Angle:   angle,
		Spacing: hatchSpacing(in),
		Band:    hatchBand(in, bias),
		Jitter:  1,
		MinLen:  2,
	}
	h.Walk(in.W, in.H, in.tone, in.RNG, func(s paint.Segment) {
		p.Line(s.X0, s.Y0, s.X1, s.Y1, width, ink)
	})
}

func renderHatching(in Input) *raster.Bitmap {
	b := softBase(in, threshold(in, 10, 12))
	hatch(in, b, math.Pi/4, 0)
	return b
}

func renderCrossHatching(in Input) *raster.Bitmap {
	b := softBase(in, threshold(in, 10, 12))
	hatch(in, b, math.Pi/4, 0)
	hatch(in, b, -math.Pi/4, 0.15)
	return b
}

// renderStippling places dots sized by darkness and edge strength.
func renderStippling(in Input) *raster.Bitmap {
	b := raster.New(in.W, in.H)
	p := paint.New(b)
	ink := paint.Gray(0, 1, blend.Normal)
	step := 3 + float64(in.StrokeWeight)/2
	grid := paint.Grid{
		Step:   step,
		Band:   paint.NewBand(0.9-0.08*float64(in.Intensity), 0.06),
		Jitter: step / 2,
	}
	sample := func(x, y int) float64 { return max(in.edgeLevel(x, y), in.darkness(x, y)*0.8) }
	grid.Walk(in.W, in.H, sample, in.RNG, func(x, y, v float64) {
		p.Dot(x, y, max(0.5, v*(0.5+float64(in.StrokeWeight)*0.3)), ink)
	})
	return b
}

// renderScribble loops short random polylines through dark and edgy cells.
func renderScribble(in Input) *raster.Bitmap {
	b := softBase(in, threshold(in, 10, 12))
	p := paint.New(b)
	ink := paint.Gray(0, 0.4, blend.Multiply)
	step := 3 + 0.7*float64(in.StrokeWeight)
	loops := 2 + in.Intensity/3
	grid := paint.Grid{Step: step, Band: paint.NewBand(0.8-0.06*float64(in.Intensity), 0.06)}
	pts := make([]paint.Point, 4)
	grid.Walk(in.W, in.H, in.tone, in.RNG, func(x, y, _ float64) {
		for range loops {
			width := 0.5 + in.RNG.Float64()*float64(in.StrokeWeight)*0.4
			cx, cy := x+in.RNG.Jitter(step), y+in.RNG.Jitter(step)
			pts[0] = paint.Point{X: cx, Y: cy}
			for j := 1; j < len(pts); j++ {
				cx += in.RNG.Jitter(step)
				cy += in.RNG.Jitter(step)
				pts[j] = paint.Point{X: cx, Y: cy}
			}
			p.Polyline(pts, width, ink)
		}
	})
	return b
}

// renderBlindContour draws long wandering strokes that lift off the paper
// wherever the tone under them falls out of the band.
func renderBlindContour(in Input) *raster.Bitmap {
	b := raster.New(in.W, in.H)
	if in.W == 0 || in.H == 0 {
		return b
	}
	p := paint.New(b)
	ink := paint.Gray(51, 1, blend.Normal)
	band := paint.NewBand(0.6-0.04*float64(in.Intensity), 0.1)
	count := 15 + 2*in.Intensity
	reach := max(30, 80-3*float64(in.StrokeWeight)) * float64(min(in.W, in.H)) / 600
	reach = max(reach, 4)
	maxX, maxY := float64(in.W-1), float64(in.H-1)

	for range count {
		x, y := float64(in.RNG.Intn(in.W)), float64(in.RNG.Intn(in.H))
		n := in.RNG.IntRange(5, 13)
		active := false
		for range n {
			nx := min(max(x+in.RNG.Range(-reach, reach), 0), maxX)
			ny := min(max(y+in.RNG.Range(-reach, reach), 0), maxY)
			active = band.Pass(active, in.tone(int((x+nx)/2), int((y+ny)/2)))
			if active {
				p.Line(x, y, nx, ny, 1+in.RNG.Float64()*1.2, ink)
			}
			x, y = nx, ny
		}
	}
	return b
}

// renderGesture lays a light edge-weighted base and sweeps short flowing
// strokes across strong edges.
func renderGesture(in Input) *raster.Bitmap {
	edgeThr := threshold(in, 30, 6)
	b := fill(in, func(i int) uint8 {
		e, g := in.edgeAt(i), float64(in.grayAt(i))
		switch {
		case e > edgeThr:
			return raster.Clamp(230 - e/255*150)
		case g > 150:
			return 245
		default:
			return raster.Clamp(max(60, 250-g/255*120))
		}
	})

	p := paint.New(b)
	step := 6 + 0.8*float64(in.StrokeWeight)
	length := 10 + float64(in.StrokeWeight)
	grid := paint.Grid{Step: step, Band: paint.NewBand(edgeThr*0.8/255, 0.04), Jitter: 2}
	grid.Walk(in.W, in.H, in.edgeLevel, in.RNG, func(x, y, v float64) {
		ink := paint.Gray(0x1a, min(1, v*255/200), blend.Multiply)
		angle := (math.Sin(x*0.03) + math.Cos(y*0.03)) * math.Pi
		p.Line(x, y, x+math.Cos(angle)*length, y+math.Sin(angle)*length, 0.8+v*2, ink)
	})
	return b
}

// renderDryBrush breaks diagonal strokes into dashes over edges.
func renderDryBrush(in Input) *raster.Bitmap {
	b := softBase(in, threshold(in, 10, 12))
	p := paint.New(b)
	ink := paint.Gray(0, 0.5, blend.Multiply)
	step := 3 + 0.7*float64(in.StrokeWeight)
	grid := paint.Grid{Step: step, Band: paint.NewBand(0.3-0.015*float64(in.Intensity), 0.05)}
	grid.Walk(in.W, in.H, in.edgeLevel, in.RNG, func(x, y, _ float64) {
		width := 1 + float64(in.StrokeWeight)*0.25 + in.RNG.Float64()*0.5
		x0, y0 := x+in.RNG.Float64()*2, y+in.RNG.Float64()*2
		x1, y1 := x+step+in.RNG.Float64()*2, y+step+in.RNG.Float64()*2
		const pieces = 3
		for k := range pieces {
			if !in.RNG.Chance(0.7) {
				continue
			}
			t0, t1 := float64(k)/pieces, (float64(k)+0.8)/pieces
			p.Line(x0+(x1-x0)*t0, y0+(y1-y0)*t0, x0+(x1-x0)*t1, y0+(y1-y0)*t1, width, ink)
		}
	})
	return b
}

// renderFashion sweeps elongated curves through darker regions over crisp
// outlines.
func renderFashion(in Input) *raster.Bitmap {
	b := binaryBase(in, threshold(in, 20, 12))
	p := paint.New(b)
	ink := paint.Gray(0x33, 1, blend.Multiply)
	step := 4 + 0.8*float64(in.StrokeWeight)
	width := 0.5 + float64(in.StrokeWeight)*0.2
	grid := paint.Grid{
		Step:   step * 2,
		Band:   paint.NewBand(0.75-0.05*float64(in.Intensity), 0.06),
		Jitter: step / 2,
	}
	grid.Walk(in.W, in.H, in.darkness, in.RNG, func(x, y, _ float64) {
		curve := paint.Quad(
			paint.Point{X: x, Y: y},
			paint.Point{X: x + step, Y: y + step/2},
			paint.Point{X: x + step*1.5, Y: y - step},
			8,
		)
		p.Polyline(curve, width, ink)
	})
	return b
}
