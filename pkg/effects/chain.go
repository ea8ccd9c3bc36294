package effects

import (
	"context"
	"time"

	"github.com/sketchify/sketchify/pkg/observability"
	"github.com/sketchify/sketchify/pkg/params"
	"github.com/sketchify/sketchify/pkg/raster"
	"github.com/sketchify/sketchify/pkg/rng"
)

// Inputs carries everything the chain reads besides the bitmap itself.
type Inputs struct {
	Params params.Parameters
	// Edges is the edge map of the source, shared with the style renderer.
	Edges raster.EdgeMap
	// Original is the source color snapshot used by Colorize.
	Original raster.RGBBuffer
	// RNG is the render's source, continuing after the style renderer.
	RNG *rng.Source
	// Seed seeds the texture tile independently of RNG, so the view stages
	// can be rerun on their own.
	Seed uint32
}

// Stage is one step of the chain.
type Stage struct {
	Name        string
	Description string
	// Enabled reports whether the stage does anything for p.
	Enabled func(p params.Parameters) bool
	run     func(bm *raster.Bitmap, in Inputs)
}

func always(params.Parameters) bool { return true }

var stages = []Stage{
	{
		Name:        "medium",
		Description: "dilation, tone delta, grain",
		Enabled:     always,
		run:         func(bm *raster.Bitmap, in Inputs) { Medium(bm, in.Params.Medium, in.RNG) },
	},
	{
		Name:        "brush",
		Description: "hatch, crosshatch, charcoal or ink wash overlay",
		Enabled: func(p params.Parameters) bool {
			switch p.Brush {
			case params.BrushLine:
				return false
			case params.BrushHatch, params.BrushCrosshatch:
				return !p.SkipHatching
			}
			return true
		},
		run: func(bm *raster.Bitmap, in Inputs) {
			p := in.Params
			Brush(bm, p.Brush, p.StrokeWeight, p.Intensity, in.Edges, in.RNG)
		},
	},
	{
		Name:        "colorize",
		Description: "source hue under sketch lightness",
		Enabled:     func(p params.Parameters) bool { return p.Colorize },
		run:         func(bm *raster.Bitmap, in Inputs) { Colorize(bm, in.Original) },
	},
	{
		Name:        "adjust",
		Description: "contrast, hue shift, saturation",
		Enabled:     always,
		run: func(bm *raster.Bitmap, in Inputs) {
			Adjust(bm, in.Params.Contrast, in.Params.Saturation, in.Params.HueShift)
		},
	},
	{
		Name:        "invert",
		Description: "255 - v on every channel",
		Enabled:     func(p params.Parameters) bool { return p.Invert },
		run:         func(bm *raster.Bitmap, _ Inputs) { Invert(bm) },
	},
	{
		Name:        "smooth",
		Description: "ceil(n/2) passes of a 3x3 box blur",
		Enabled:     func(p params.Parameters) bool { return p.Smoothing > 0 },
		run:         func(bm *raster.Bitmap, in Inputs) { Smooth(bm, in.Params.Smoothing) },
	},
	{
		Name:        "zoompan",
		Description: "scale about center, then translate",
		Enabled:     func(p params.Parameters) bool { return p.Zoom != 1 || p.PanX != 0 || p.PanY != 0 },
		run: func(bm *raster.Bitmap, in Inputs) {
			ZoomPan(bm, in.Params.Zoom, in.Params.PanX, in.Params.PanY)
		},
	},
	{
		Name:        "texture",
		Description: "procedural tile multiplied at opacity/10",
		Enabled: func(p params.Parameters) bool {
			return p.Texture != params.TextureNone && p.TextureOpacity > 0
		},
		run: func(bm *raster.Bitmap, in Inputs) {
			Texture(bm, in.Params.Texture, in.Params.TextureOpacity, in.Seed)
		},
	},
}

// zoomStage is the index of the first stage that depends only on the view.
const zoomStage = 6

// Stages returns the chain's stages in execution order.
func Stages() []Stage {
	return append([]Stage(nil), stages...)
}

// Chain runs the post-effect stages.
type Chain struct{}

// NewChain returns the standard chain.
func NewChain() *Chain { return &Chain{} }

// Apply runs every stage on bm in order.
func (c *Chain) Apply(ctx context.Context, bm *raster.Bitmap, in Inputs) error {
	if err := c.PreZoom(ctx, bm, in); err != nil {
		return err
	}
	return c.PostZoom(ctx, bm, in)
}

// PreZoom runs the stages up to and including smoothing. Its output is the
// composite that view changes start from.
func (c *Chain) PreZoom(ctx context.Context, bm *raster.Bitmap, in Inputs) error {
	return c.run(ctx, bm, in, stages[:zoomStage])
}

// PostZoom runs zoom/pan and texture.
func (c *Chain) PostZoom(ctx context.Context, bm *raster.Bitmap, in Inputs) error {
	return c.run(ctx, bm, in, stages[zoomStage:])
}

func (c *Chain) run(ctx context.Context, bm *raster.Bitmap, in Inputs, list []Stage) error {
	in.Params = in.Params.Normalize()
	if in.RNG == nil {
		in.RNG = rng.New(in.Params.Seed)
	}
	hooks := observability.Pipeline()
	for _, s := range list {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.Enabled(in.Params) {
			continue
		}
		start := time.Now()
		s.run(bm, in)
		hooks.OnStageComplete(ctx, s.Name, time.Since(start))
	}
	return nil
}
