// Package params defines the immutable parameter set of one render call.
//
// [Parameters] is passed by value into every pipeline stage; nothing reads
// ambient or global state. Out-of-range values are never rejected by the
// pixel pipeline: [Parameters.Normalize] clamps them. Validation of enum
// identifiers (styles, media, brushes, textures) happens at the edges
// (CLI flags, config files, HTTP form fields) through the Parse functions.
package params

import (
	"math"
	"time"
)

// Default values shared by the CLI, the config file and the render service.
const (
	DefaultIntensity      = 6
	DefaultStrokeWeight   = 3
	DefaultSmoothing      = 0
	DefaultSeed           = uint32(42)
	DefaultContrast       = 1.0
	DefaultSaturation     = 1.0
	DefaultTextureOpacity = 5
	DefaultZoom           = 1.0

	MinLevel = 1
	MaxLevel = 10

	MinZoom = 0.1
	MaxZoom = 10.0

	// MaxGain bounds contrast and saturation multipliers.
	MaxGain = 5.0
)

// Parameters is the complete, immutable input of a render call.
type Parameters struct {
	Style        Style  `json:"style" toml:"style"`
	Medium       Medium `json:"medium" toml:"medium"`
	Brush        Brush  `json:"brush" toml:"brush"`
	Intensity    int    `json:"intensity" toml:"intensity"`
	StrokeWeight int    `json:"stroke" toml:"stroke"`
	Smoothing    int    `json:"smoothing" toml:"smoothing"`

	// Seed drives every stochastic mark. When Deterministic is false the
	// seed is replaced by a wall-clock value at render time.
	Seed          uint32 `json:"seed" toml:"seed"`
	Deterministic bool   `json:"deterministic" toml:"deterministic"`

	// SkipHatching disables the hatch and crosshatch brush overlays.
	SkipHatching bool `json:"skip_hatching" toml:"skip_hatching"`

	Colorize   bool    `json:"colorize" toml:"colorize"`
	Invert     bool    `json:"invert" toml:"invert"`
	Contrast   float64 `json:"contrast" toml:"contrast"`
	Saturation float64 `json:"saturation" toml:"saturation"`
	HueShift   int     `json:"hue_shift" toml:"hue_shift"`

	Texture        Texture `json:"texture" toml:"texture"`
	TextureOpacity int     `json:"texture_opacity" toml:"texture_opacity"`

	Zoom float64 `json:"zoom" toml:"zoom"`
	PanX float64 `json:"pan_x" toml:"pan_x"`
	PanY float64 `json:"pan_y" toml:"pan_y"`
}

// Default returns the parameter set used when nothing is specified.
func Default() Parameters {
	return Parameters{
		Style:          StyleDefault,
		Medium:         MediumPencil,
		Brush:          BrushLine,
		Intensity:      DefaultIntensity,
		StrokeWeight:   DefaultStrokeWeight,
		Smoothing:      DefaultSmoothing,
		Seed:           DefaultSeed,
		Deterministic:  true,
		Contrast:       DefaultContrast,
		Saturation:     DefaultSaturation,
		Texture:        TextureNone,
		TextureOpacity: DefaultTextureOpacity,
		Zoom:           DefaultZoom,
	}
}

// Normalize returns a copy with every field clamped into its valid range.
// Unknown enum values fall back to their defaults.
func (p Parameters) Normalize() Parameters {
	p.Intensity = clampInt(p.Intensity, MinLevel, MaxLevel)
	p.StrokeWeight = clampInt(p.StrokeWeight, MinLevel, MaxLevel)
	p.Smoothing = clampInt(p.Smoothing, 0, MaxLevel)
	p.TextureOpacity = clampInt(p.TextureOpacity, 0, MaxLevel)
	p.Contrast = clampFloat(p.Contrast, 0, MaxGain, DefaultContrast)
	p.Saturation = clampFloat(p.Saturation, 0, MaxGain, DefaultSaturation)
	p.HueShift %= 360
	if p.Zoom <= 0 {
		p.Zoom = DefaultZoom
	}
	p.Zoom = clampFloat(p.Zoom, MinZoom, MaxZoom, DefaultZoom)
	p.PanX = finite(p.PanX)
	p.PanY = finite(p.PanY)

	if !p.Medium.Valid() {
		p.Medium = MediumPencil
	}
	if !p.Brush.Valid() {
		p.Brush = BrushLine
	}
	if !p.Texture.Valid() {
		p.Texture = TextureNone
	}
	return p
}

// EffectiveSeed returns the seed a render should use: Seed itself in
// deterministic mode, otherwise a value derived from now.
func (p Parameters) EffectiveSeed(now time.Time) uint32 {
	if p.Deterministic {
		return p.Seed
	}
	ns := uint64(now.UnixNano())
	return uint32(ns) ^ uint32(ns>>32)
}

// HasView reports whether zoom or pan differ from the identity transform.
func (p Parameters) HasView() bool {
	return p.Zoom != 1 || p.PanX != 0 || p.PanY != 0
}

// WithoutView returns p with the view-only fields (zoom, pan and the
// texture overlay that follows them) reset, so two parameter sets can be
// compared for everything upstream of the zoom stage.
func (p Parameters) WithoutView() Parameters {
	p.Zoom, p.PanX, p.PanY = DefaultZoom, 0, 0
	p.Texture, p.TextureOpacity = TextureNone, 0
	return p
}

// SameUpstream reports whether p and o differ only in view-only fields.
func (p Parameters) SameUpstream(o Parameters) bool {
	return p.Normalize().WithoutView() == o.Normalize().WithoutView()
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func clampFloat(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return max(lo, min(v, hi))
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
