package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sketchify/sketchify/pkg/params"
)

// Parameter flag names.
const (
	flagStyle          = "style"
	flagMedium         = "medium"
	flagBrush          = "brush"
	flagIntensity      = "intensity"
	flagStroke         = "stroke"
	flagSmoothing      = "smoothing"
	flagSeed           = "seed"
	flagRandom         = "random"
	flagSkipHatching   = "skip-hatching"
	flagColorize       = "colorize"
	flagInvert         = "invert"
	flagContrast       = "contrast"
	flagSaturation     = "saturation"
	flagHueShift       = "hue-shift"
	flagTexture        = "texture"
	flagTextureOpacity = "texture-opacity"
	flagZoom           = "zoom"
	flagPanX           = "pan-x"
	flagPanY           = "pan-y"
)

// paramFlags binds one flag per Parameters field. Only flags the user set
// are applied, so config defaults and profiles survive unset flags.
type paramFlags struct {
	fs *pflag.FlagSet

	style, medium, brush, texture string
	seed                          uint32
	random, skipHatching          bool
	colorize, invert              bool

	intensity, stroke, smoothing int
	hueShift, texOpacity         int

	contrast, saturation float64
	zoom, panX, panY     float64
}

// addParamFlags registers the parameter flags on fs.
func addParamFlags(fs *pflag.FlagSet) *paramFlags {
	d := params.Default()
	f := &paramFlags{fs: fs}

	fs.StringVarP(&f.style, flagStyle, "s", string(d.Style), "sketch style (see 'sketchify styles')")
	fs.StringVar(&f.medium, flagMedium, string(d.Medium), "drawing medium: pencil, ink, marker, pen, pastel")
	fs.StringVar(&f.brush, flagBrush, string(d.Brush), "brush overlay: line, hatch, crosshatch, charcoal, inkWash")
	fs.IntVarP(&f.intensity, flagIntensity, "i", d.Intensity, "mark density and darkness (1-10)")
	fs.IntVar(&f.stroke, flagStroke, d.StrokeWeight, "stroke weight (1-10)")
	fs.IntVar(&f.smoothing, flagSmoothing, d.Smoothing, "box blur passes after the style (0-10)")
	fs.Uint32Var(&f.seed, flagSeed, d.Seed, "random seed for reproducible marks")
	fs.BoolVar(&f.random, flagRandom, false, "use a fresh seed on every render (results are not cached)")
	fs.BoolVar(&f.skipHatching, flagSkipHatching, d.SkipHatching, "disable the hatch and crosshatch brush overlays")
	fs.BoolVar(&f.colorize, flagColorize, d.Colorize, "tint the sketch with the source colors")
	fs.BoolVar(&f.invert, flagInvert, d.Invert, "invert the final image")
	fs.Float64Var(&f.contrast, flagContrast, d.Contrast, "contrast multiplier (0-5)")
	fs.Float64Var(&f.saturation, flagSaturation, d.Saturation, "saturation multiplier (0-5)")
	fs.IntVar(&f.hueShift, flagHueShift, d.HueShift, "hue rotation in degrees")
	fs.StringVar(&f.texture, flagTexture, string(d.Texture), "overlay texture: none, paper, rough, film, weave")
	fs.IntVar(&f.texOpacity, flagTextureOpacity, d.TextureOpacity, "texture opacity (0-10)")
	fs.Float64Var(&f.zoom, flagZoom, d.Zoom, "view zoom factor (0.1-10)")
	fs.Float64Var(&f.panX, flagPanX, d.PanX, "horizontal pan in pixels")
	fs.Float64Var(&f.panY, flagPanY, d.PanY, "vertical pan in pixels")

	return f
}

// apply overlays the explicitly set flags onto p.
func (f *paramFlags) apply(p *params.Parameters) error {
	var err error
	if f.fs.Changed(flagStyle) {
		if p.Style, err = params.ParseStyle(f.style); err != nil {
			return err
		}
	}
	if f.fs.Changed(flagMedium) {
		if p.Medium, err = params.ParseMedium(f.medium); err != nil {
			return err
		}
	}
	if f.fs.Changed(flagBrush) {
		if p.Brush, err = params.ParseBrush(f.brush); err != nil {
			return err
		}
	}
	if f.fs.Changed(flagTexture) {
		if p.Texture, err = params.ParseTexture(f.texture); err != nil {
			return err
		}
	}

	changedInt := func(name string, dst *int, v int) {
		if f.fs.Changed(name) {
			*dst = v
		}
	}
	changedBool := func(name string, dst *bool, v bool) {
		if f.fs.Changed(name) {
			*dst = v
		}
	}
	changedFloat := func(name string, dst *float64, v float64) {
		if f.fs.Changed(name) {
			*dst = v
		}
	}

	changedInt(flagIntensity, &p.Intensity, f.intensity)
	changedInt(flagStroke, &p.StrokeWeight, f.stroke)
	changedInt(flagSmoothing, &p.Smoothing, f.smoothing)
	changedInt(flagHueShift, &p.HueShift, f.hueShift)
	changedInt(flagTextureOpacity, &p.TextureOpacity, f.texOpacity)
	changedBool(flagSkipHatching, &p.SkipHatching, f.skipHatching)
	changedBool(flagColorize, &p.Colorize, f.colorize)
	changedBool(flagInvert, &p.Invert, f.invert)
	changedFloat(flagContrast, &p.Contrast, f.contrast)
	changedFloat(flagSaturation, &p.Saturation, f.saturation)
	changedFloat(flagZoom, &p.Zoom, f.zoom)
	changedFloat(flagPanX, &p.PanX, f.panX)
	changedFloat(flagPanY, &p.PanY, f.panY)

	if f.fs.Changed(flagSeed) {
		p.Seed = f.seed
		p.Deterministic = true
	}
	if f.fs.Changed(flagRandom) {
		p.Deterministic = !f.random
	}
	return nil
}

// resolveParams layers built-in defaults, the config file, the profile and
// the explicitly set flags, in that order.
func resolveParams(cfg *Config, profile string, f *paramFlags) (params.Parameters, error) {
	p, err := cfg.Params(profile)
	if err != nil {
		return p, err
	}
	if err := f.apply(&p); err != nil {
		return p, err
	}
	return p.Normalize(), nil
}

// registerParamCompletions completes the enum-valued parameter flags.
func registerParamCompletions(cmd *cobra.Command) {
	ids := make([]string, len(params.Styles))
	for i, s := range params.Styles {
		ids[i] = string(s.ID)
	}
	enums := map[string][]string{
		flagStyle:   ids,
		flagMedium:  stringsOf(params.Media),
		flagBrush:   stringsOf(params.Brushes),
		flagTexture: stringsOf(params.Textures),
	}
	for name, values := range enums {
		_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
	}
}
