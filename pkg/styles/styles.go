// Package styles turns a grayscale map and an edge map into a sketch.
//
// Every style is a [Strategy]: a pure function of an [Input] that returns a
// fresh, fully opaque bitmap. Strategies are registered in a table keyed by
// [params.Style]; [Lookup] falls back to the soft threshold style for
// unknown identifiers, so rendering never fails on a style name.
//
// Styles fall into four families:
//
//   - threshold: a binary, soft or smoothstep cut of the edge map
//   - tonal: the gray map through a monotonic tone curve, deepened at edges
//   - marks: lines and dots placed by hysteresis-gated walkers
//   - layered: a base wash with tone-gated mark layers blended on top
//
// All styles share the same Input, so the edge and gray maps are computed
// once per render by the caller.
package styles

import (
	"github.com/sketchify/sketchify/pkg/params"
	"github.com/sketchify/sketchify/pkg/raster"
	"github.com/sketchify/sketchify/pkg/rng"
)

// Input carries everything a style may read.
type Input struct {
	Edges raster.EdgeMap
	Gray  raster.GrayMap
	W, H  int

	Intensity    int
	StrokeWeight int

	// RNG is the render's seeded source. Styles consume it in a fixed
	// order, so the same seed yields the same marks.
	RNG *rng.Source
}

// Strategy renders one style.
type Strategy func(in Input) *raster.Bitmap

// =============================================================================
// Registry
// =============================================================================

var registry = map[params.Style]Strategy{
	params.StyleDefault: renderDefault,

	params.StyleContour:       renderContour,
	params.StyleLineArt:       renderLineArt,
	params.StyleMinimalist:    renderMinimalist,
	params.StyleArchitectural: renderArchitectural,
	params.StyleCrossContour:  renderCrossContour,
	params.StyleAcademic:      renderAcademic,
	params.StylePhotorealism:  renderPhotorealism,

	params.StyleTonalPencil:      renderTonalPencil,
	params.StyleCharcoal:         renderCharcoal,
	params.StyleGraphitePortrait: renderGraphitePortrait,
	params.StyleCartoon:          renderCartoon,

	params.StyleHatching:      renderHatching,
	params.StyleCrossHatching: renderCrossHatching,
	params.StyleStippling:     renderStippling,
	params.StyleScribble:      renderScribble,
	params.StyleBlindContour:  renderBlindContour,
	params.StyleGesture:       renderGesture,
	params.StyleDryBrush:      renderDryBrush,
	params.StyleFashion:       renderFashion,

	params.StyleComic:       renderComic,
	params.StyleMixedMedia:  renderMixedMedia,
	params.StyleOilPainting: renderOilPainting,
	params.StyleWatercolor:  renderWatercolor,
	params.StyleEtching:     renderEtching,
	params.StyleInkWash:     renderInkWash,
	params.StyleUrban:       renderUrban,
	params.StyleGlitch:      renderGlitch,
}

// Lookup returns the strategy for s, or the default soft threshold style
// when s is unknown.
func Lookup(s params.Style) Strategy {
	if fn, ok := registry[s]; ok {
		return fn
	}
	return renderDefault
}

// Registered reports whether s has its own strategy.
func Registered(s params.Style) bool {
	_, ok := registry[s]
	return ok
}

// Render normalizes in and runs the strategy for s.
func Render(s params.Style, in Input) *raster.Bitmap {
	return Lookup(s)(in.normalize())
}

func (in Input) normalize() Input {
	in.Intensity = min(max(in.Intensity, params.MinLevel), params.MaxLevel)
	in.StrokeWeight = min(max(in.StrokeWeight, params.MinLevel), params.MaxLevel)
	if in.RNG == nil {
		in.RNG = rng.New(params.DefaultSeed)
	}
	return in
}

// edge returns the edge value at (x,y), or 0 outside the canvas.
func (in Input) edge(x, y int) uint8 {
	if y >= in.H {
		return 0
	}
	return in.Edges.At(x, y, in.W)
}

// gray returns the luminance at (x,y), or paper outside the canvas.
func (in Input) gray(x, y int) uint8 {
	if y >= in.H {
		return raster.Paper
	}
	return in.Gray.At(x, y, in.W)
}

// edgeLevel returns the edge strength at (x,y) in [0,1].
func (in Input) edgeLevel(x, y int) float64 { return float64(in.edge(x, y)) / 255 }

// darkness returns 1 - luminance/255 at (x,y).
func (in Input) darkness(x, y int) float64 { return 1 - float64(in.gray(x, y))/255 }

// tone returns max(darkness, edge strength), the usual drive for marks.
func (in Input) tone(x, y int) float64 { return max(in.darkness(x, y), in.edgeLevel(x, y)) }
