package paint

import (
	"math"
	"testing"

	"github.com/sketchify/sketchify/pkg/blend"
	"github.com/sketchify/sketchify/pkg/raster"
	"github.com/sketchify/sketchify/pkg/rng"
)

func darkPixels(b *raster.Bitmap) int {
	n := 0
	for i := 0; i < b.Len(); i++ {
		if r, _, _ := b.RGB(i); r < raster.Paper {
			n++
		}
	}
	return n
}

func TestLine(t *testing.T) {
	b := raster.NewFilled(20, 20, raster.Paper)
	New(b).Line(2, 10.5, 18, 10.5, 1, Gray(0, 1, blend.Normal))

	if got := b.Color(10, 10).R; got != 0 {
		t.Errorf("center pixel = %d, want 0", got)
	}
	if got := b.Color(10, 5).R; got != raster.Paper {
		t.Errorf("far pixel = %d, want %d", got, raster.Paper)
	}
	if got := b.Color(10, 10).A; got != 255 {
		t.Errorf("alpha = %d, want 255", got)
	}
}

func TestLineClipsToBitmap(t *testing.T) {
	b := raster.NewFilled(8, 8, raster.Paper)
	New(b).Line(-50, -50, 50, 50, 3, Gray(0, 1, blend.Normal))
	if darkPixels(b) == 0 {
		t.Error("expected a clipped diagonal to mark pixels")
	}
}

func TestDot(t *testing.T) {
	b := raster.NewFilled(20, 20, raster.Paper)
	New(b).Dot(10, 10, 3, Gray(0, 1, blend.Normal))

	if got := b.Color(9, 9).R; got != 0 {
		t.Errorf("center pixel = %d, want 0", got)
	}
	if got := b.Color(0, 0).R; got != raster.Paper {
		t.Errorf("corner pixel = %d, want %d", got, raster.Paper)
	}
	n := darkPixels(b)
	area := math.Pi * 3 * 3
	if float64(n) < area*0.7 || float64(n) > area*2 {
		t.Errorf("dot covers %d pixels, want about %.0f", n, area)
	}
}

func TestRectFractionalCoverage(t *testing.T) {
	b := raster.NewFilled(4, 4, raster.Paper)
	New(b).Rect(1, 1, 1.5, 1, Gray(0, 1, blend.Normal))

	tests := []struct {
		x, y int
		want uint8
	}{
		{1, 1, 0},
		{2, 1, 128},
		{0, 1, 255},
		{1, 2, 255},
	}
	for _, tt := range tests {
		if got := b.Color(tt.x, tt.y).R; got != tt.want {
			t.Errorf("pixel (%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestMultiplyNeverBrightens(t *testing.T) {
	b := raster.NewFilled(16, 16, 100)
	before := b.Clone()
	New(b).Rect(0, 0, 16, 16, Gray(200, 0.5, blend.Multiply))
	for i := range b.Pix {
		if b.Pix[i] > before.Pix[i] {
			t.Fatalf("Pix[%d] = %d, brighter than %d", i, b.Pix[i], before.Pix[i])
		}
	}
}

func TestQuadEndpoints(t *testing.T) {
	pts := Quad(Point{0, 0}, Point{5, 10}, Point{10, 0}, 8)
	if len(pts) != 9 {
		t.Fatalf("len = %d, want 9", len(pts))
	}
	if pts[0] != (Point{0, 0}) || pts[8] != (Point{10, 0}) {
		t.Errorf("endpoints = %v, %v", pts[0], pts[8])
	}
	if pts[4].Y != 5 {
		t.Errorf("midpoint Y = %v, want 5", pts[4].Y)
	}
}

func TestHatchEmptyBelowBand(t *testing.T) {
	h := Hatch{Angle: math.Pi / 4, Spacing: 4, Band: NewBand(0.5, 0.1)}
	n := 0
	h.Walk(32, 32, func(x, y int) float64 { return 0.3 }, nil, func(Segment) { n++ })
	if n != 0 {
		t.Errorf("segments = %d, want 0", n)
	}
}

func TestHatchCoversAboveBand(t *testing.T) {
	h := Hatch{Angle: 0, Spacing: 4, Band: NewBand(0.5, 0.1)}
	var segs []Segment
	h.Walk(32, 32, func(x, y int) float64 { return 0.9 }, nil, func(s Segment) { segs = append(segs, s) })
	if len(segs) != 8 {
		t.Fatalf("segments = %d, want 8", len(segs))
	}
	for _, s := range segs {
		if s.Length() < 30 {
			t.Errorf("segment length = %v, want full width", s.Length())
		}
		if s.Peak != 0.9 {
			t.Errorf("Peak = %v, want 0.9", s.Peak)
		}
	}
}

func TestBandHysteresis(t *testing.T) {
	// Values alternate inside the dead zone after one strong start.
	vals := []float64{0.9, 0.48, 0.52, 0.47, 0.53, 0.1, 0.52, 0.1}
	h := Hatch{Angle: 0, Spacing: 100, Band: NewBand(0.5, 0.1)}
	var segs []Segment
	h.Walk(len(vals), 1, func(x, y int) float64 { return vals[x] }, nil, func(s Segment) { segs = append(segs, s) })
	if len(segs) != 1 {
		t.Fatalf("segments = %d, want 1", len(segs))
	}
}

func TestHatchDeterministic(t *testing.T) {
	h := Hatch{Angle: 0.3, Spacing: 3, Band: NewBand(0.4, 0.1), Jitter: 2}
	sample := func(x, y int) float64 { return float64(x) / 40 }
	collect := func() []Segment {
		var out []Segment
		h.Walk(40, 40, sample, rng.New(9), func(s Segment) { out = append(out, s) })
		return out
	}
	a, b := collect(), collect()
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("len = %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("segment %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestGridWalk(t *testing.T) {
	g := Grid{Step: 4, Band: NewBand(0.5, 0)}
	n := 0
	g.Walk(16, 16, func(x, y int) float64 {
		if x < 8 {
			return 1
		}
		return 0
	}, nil, func(x, y, v float64) { n++ })
	if n != 8 {
		t.Errorf("points = %d, want 8", n)
	}
}
