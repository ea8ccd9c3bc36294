package paint

import (
	"math"

	"github.com/sketchify/sketchify/pkg/rng"
)

// Sampler returns the drive value of pixel (x,y), typically a darkness or
// edge strength in [0,1].
type Sampler func(x, y int) float64

// Band is a hysteresis dead zone. A mark starts once the sampled value
// reaches On and continues until it drops below Off, so values oscillating
// inside the band do not toggle marks on and off.
type Band struct {
	On, Off float64
}

// NewBand returns a band centered on threshold with the given total width.
func NewBand(threshold, width float64) Band {
	return Band{On: threshold + width/2, Off: threshold - width/2}
}

// Pass advances the hysteresis state: it reports whether a mark is active
// after sampling v, given whether one was active before.
func (b Band) Pass(active bool, v float64) bool {
	if active {
		return v >= b.Off
	}
	return v >= b.On
}

// Segment is one emitted stroke.
type Segment struct {
	X0, Y0, X1, Y1 float64
	// Peak is the largest sampled value along the segment.
	Peak float64
}

// Length returns the segment length.
func (s Segment) Length() float64 { return math.Hypot(s.X1-s.X0, s.Y1-s.Y0) }

// Hatch walks a family of parallel lines across a w×h canvas and emits the
// runs where the sampler stays inside the band.
type Hatch struct {
	Angle   float64 // line direction in radians
	Spacing float64 // distance between adjacent lines
	Step    float64 // sampling step along a line, defaults to 1
	Band    Band
	Jitter  float64 // max perpendicular offset and end extension, in pixels
	MinLen  float64 // runs shorter than this are dropped
}

// Walk visits every line in a fixed order, so a seeded source yields the
// same segments on every call. One line always passes through the center.
func (h Hatch) Walk(w, ht int, sample Sampler, r *rng.Source, emit func(Segment)) {
	if w <= 0 || ht <= 0 || h.Spacing <= 0 {
		return
	}
	step := h.Step
	if step <= 0 {
		step = 1
	}
	dx, dy := math.Cos(h.Angle), math.Sin(h.Angle)
	nx, ny := -dy, dx
	cx, cy := float64(w)/2, float64(ht)/2
	reach := math.Hypot(float64(w), float64(ht))/2 + h.Spacing

	n := int(math.Ceil(reach / h.Spacing))
	for k := -n; k <= n; k++ {
		off := float64(k) * h.Spacing
		if r != nil && h.Jitter > 0 {
			off += r.Jitter(h.Jitter)
		}
		ox, oy := cx+nx*off, cy+ny*off

		active := false
		var start, peak float64
		closeRun := func(end float64) {
			active = false
			s0, s1 := start, end
			if r != nil && h.Jitter > 0 {
				s0 -= r.Float64() * h.Jitter / 2
				s1 += r.Float64() * h.Jitter / 2
			}
			seg := Segment{X0: ox + dx*s0, Y0: oy + dy*s0, X1: ox + dx*s1, Y1: oy + dy*s1, Peak: peak}
			if seg.Length() >= h.MinLen {
				emit(seg)
			}
		}

		for s := -reach; s <= reach; s += step {
			x, y := ox+dx*s, oy+dy*s
			v := -1.0
			if x >= 0 && y >= 0 && x < float64(w) && y < float64(ht) {
				v = sample(int(x), int(y))
			}
			next := h.Band.Pass(active, v)
			switch {
			case next && !active:
				active, start, peak = true, s, v
			case next:
				peak = max(peak, v)
			case active:
				closeRun(s - step)
			}
		}
		if active {
			closeRun(reach)
		}
	}
}

// Grid visits a regular lattice of sample points row by row, gating each
// point with the band; the hysteresis state resets at the start of each row.
type Grid struct {
	Step   float64
	Band   Band
	Jitter float64 // max position offset of an emitted point
}

// Walk calls emit for every lattice point inside the band.
func (g Grid) Walk(w, h int, sample Sampler, r *rng.Source, emit func(x, y, v float64)) {
	if g.Step <= 0 {
		return
	}
	for y := 0.0; y < float64(h); y += g.Step {
		active := false
		for x := 0.0; x < float64(w); x += g.Step {
			v := sample(int(x), int(y))
			active = g.Band.Pass(active, v)
			if !active {
				continue
			}
			px, py := x, y
			if r != nil && g.Jitter > 0 {
				px += r.Jitter(g.Jitter)
				py += r.Jitter(g.Jitter)
			}
			emit(px, py, v)
		}
	}
}
