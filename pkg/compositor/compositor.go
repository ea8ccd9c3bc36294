// Package compositor owns the working framebuffer of a sketch session.
//
// A [Compositor] runs edge detection, the style renderer and the post-effect
// chain in order, and publishes the result as the current composite. Renders
// run outside the lock; publication is atomic and gated by a generation
// token, so a render overtaken by a newer one is discarded with
// [ErrSuperseded] and a failed render never replaces the previous composite.
//
// The compositor also keeps the pre-zoom composite of the last full render,
// so [Compositor.ReapplyZoomPan] can rerun only the view stages when just the
// zoom, pan or texture changed.
package compositor

import (
	"context"
	"image"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sketchify/sketchify/pkg/edge"
	"github.com/sketchify/sketchify/pkg/effects"
	"github.com/sketchify/sketchify/pkg/errors"
	"github.com/sketchify/sketchify/pkg/observability"
	"github.com/sketchify/sketchify/pkg/params"
	"github.com/sketchify/sketchify/pkg/raster"
	"github.com/sketchify/sketchify/pkg/rng"
	"github.com/sketchify/sketchify/pkg/styles"
)

var (
	// ErrSuperseded is returned by a render whose result was overtaken by a
	// newer render before it could be published.
	ErrSuperseded = errors.New(errors.ErrCodeSuperseded, "render superseded by a newer request")

	// ErrStaleComposite is returned by ReapplyZoomPan when parameters other
	// than zoom, pan or texture changed since the last full render.
	ErrStaleComposite = errors.New(errors.ErrCodeStaleComposite, "parameters changed upstream of zoom; a full render is required")

	// ErrNoComposite is returned when nothing has been rendered yet.
	ErrNoComposite = errors.New(errors.ErrCodeNotFound, "no composite has been rendered")
)

// snapshot is one published render.
type snapshot struct {
	gen     uint64
	source  *raster.Bitmap
	params  params.Parameters
	seed    uint32
	preZoom *raster.Bitmap
	final   *raster.Bitmap
}

// Compositor renders sketches and holds the latest composite.
// It is safe for concurrent use.
type Compositor struct {
	detector *edge.Detector
	chain    *effects.Chain
	logger   *log.Logger
	now      func() time.Time

	gen atomic.Uint64

	mu      sync.Mutex
	current *snapshot
}

// New returns a compositor using detector for edge detection. A nil detector
// uses the CPU path; a nil logger discards output.
func New(detector *edge.Detector, logger *log.Logger) *Compositor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if detector == nil {
		detector = edge.NewDetector(nil, logger)
	}
	return &Compositor{
		detector: detector,
		chain:    effects.NewChain(),
		logger:   logger,
		now:      time.Now,
	}
}

// Render runs the full pipeline on src and publishes the result. src is not
// modified. The returned bitmap is a copy the caller owns.
func (c *Compositor) Render(ctx context.Context, src *raster.Bitmap, p params.Parameters) (out *raster.Bitmap, err error) {
	token := c.gen.Add(1)
	p = p.Normalize()
	seed := p.EffectiveSeed(c.now())

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, string(p.Style), src.Width, src.Height)
	defer func() { hooks.OnRenderComplete(ctx, string(p.Style), time.Since(start), err) }()

	source := src.Clone()
	original := raster.SnapshotRGB(source)

	t := time.Now()
	maps, err := c.detector.Detect(ctx, source)
	if err != nil {
		return nil, err
	}
	accel := ""
	if a := c.detector.Accelerator(); a != nil {
		accel = a.Name()
	}
	hooks.OnDetectComplete(ctx, accel, time.Since(t))
	if err := c.check(ctx, token); err != nil {
		return nil, err
	}

	t = time.Now()
	r := rng.New(seed)
	sketch := styles.Render(p.Style, styles.Input{
		Edges:        maps.Edges,
		Gray:         maps.Gray,
		W:            source.Width,
		H:            source.Height,
		Intensity:    p.Intensity,
		StrokeWeight: p.StrokeWeight,
		RNG:          r,
	})
	hooks.OnStyleComplete(ctx, string(p.Style), time.Since(t))
	if err := c.check(ctx, token); err != nil {
		return nil, err
	}

	in := effects.Inputs{Params: p, Edges: maps.Edges, Original: original, RNG: r, Seed: seed}
	if err := c.chain.PreZoom(ctx, sketch, in); err != nil {
		return nil, err
	}
	preZoom := sketch.Clone()
	if err := c.chain.PostZoom(ctx, sketch, in); err != nil {
		return nil, err
	}

	snap := &snapshot{gen: token, source: source, params: p, seed: seed, preZoom: preZoom, final: sketch}
	if err := c.publish(snap); err != nil {
		return nil, err
	}
	c.logger.Debug("render published", "style", p.Style, "generation", token, "seed", seed)
	return sketch.Clone(), nil
}

// ReapplyZoomPan reruns the zoom/pan and texture stages on the cached
// pre-zoom composite. It fails with ErrStaleComposite when any other
// parameter differs from the last full render.
func (c *Compositor) ReapplyZoomPan(ctx context.Context, p params.Parameters) (*raster.Bitmap, error) {
	prev := c.snapshot()
	if prev == nil {
		return nil, ErrNoComposite
	}
	p = p.Normalize()
	if !prev.params.SameUpstream(p) {
		return nil, ErrStaleComposite
	}
	token := c.gen.Add(1)

	work := prev.preZoom.Clone()
	in := effects.Inputs{Params: p, Seed: prev.seed}
	if err := c.chain.PostZoom(ctx, work, in); err != nil {
		return nil, err
	}
	snap := &snapshot{gen: token, source: prev.source, params: p, seed: prev.seed, preZoom: prev.preZoom, final: work}
	if err := c.publish(snap); err != nil {
		return nil, err
	}
	c.logger.Debug("view reapplied", "zoom", p.Zoom, "pan_x", p.PanX, "pan_y", p.PanY, "generation", token)
	return work.Clone(), nil
}

// Compare returns the before/after view: the source left of divider·width
// over the current composite. divider is clamped to [0,1].
func (c *Compositor) Compare(divider float64) (*raster.Bitmap, error) {
	snap := c.snapshot()
	if snap == nil {
		return nil, ErrNoComposite
	}
	return Split(snap.source, snap.final, divider), nil
}

// Split returns after with the columns left of divider·width replaced by
// before. Both bitmaps must have the same size.
func Split(before, after *raster.Bitmap, divider float64) *raster.Bitmap {
	if math.IsNaN(divider) {
		divider = 0
	}
	divider = min(max(divider, 0), 1)
	out := after.Clone()
	cut := int(math.Round(divider * float64(out.Width)))
	for y := 0; y < out.Height; y++ {
		o := out.Offset(0, y)
		copy(out.Pix[o:o+cut*4], before.Pix[o:o+cut*4])
	}
	return out
}

// Current returns a copy of the current composite, or nil before the first
// successful render.
func (c *Compositor) Current() *raster.Bitmap {
	if snap := c.snapshot(); snap != nil {
		return snap.final.Clone()
	}
	return nil
}

// Params returns the normalized parameters of the current composite.
func (c *Compositor) Params() (params.Parameters, bool) {
	if snap := c.snapshot(); snap != nil {
		return snap.params, true
	}
	return params.Parameters{}, false
}

// Generation returns the number of render tokens issued so far.
func (c *Compositor) Generation() uint64 { return c.gen.Load() }

func (c *Compositor) snapshot() *snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// check fails fast when the context is done or a newer render started.
func (c *Compositor) check(ctx context.Context, token uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.gen.Load() != token {
		return ErrSuperseded
	}
	return nil
}

// publish installs snap if its token is still the newest one issued.
func (c *Compositor) publish(snap *snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen.Load() != snap.gen {
		return ErrSuperseded
	}
	c.current = snap
	return nil
}

// Prepare converts img into the working bitmap. With resolution > 0 the
// image is cover-cropped to an aspect-shaped canvas whose long side is
// resolution; otherwise it is scaled down to fit within limit (0 keeps the
// original size).
func Prepare(img image.Image, resolution int, aspect string, limit int) (*raster.Bitmap, error) {
	if resolution > 0 {
		if aspect == "" {
			b := img.Bounds()
			w, h := raster.LimitSize(b.Dx(), b.Dy(), resolution)
			return raster.Fit(img, w, h), nil
		}
		w, h, err := raster.AspectSize(aspect, resolution)
		if err != nil {
			return nil, err
		}
		return raster.Fit(img, w, h), nil
	}
	return raster.Resize(img, limit), nil
}
