package effects

import (
	"github.com/sketchify/sketchify/pkg/params"
	"github.com/sketchify/sketchify/pkg/raster"
	"github.com/sketchify/sketchify/pkg/rng"
)

// MediumProfile describes how a drawing medium alters a sketch.
type MediumProfile struct {
	// Dilations is the number of 4-connected dark-pixel spreads.
	Dilations int
	// ToneDelta brightens (positive) or darkens (negative) every channel.
	ToneDelta int
	// Grain is the amplitude of uniform noise added to marked pixels.
	Grain int
}

var mediumProfiles = map[params.Medium]MediumProfile{
	params.MediumPencil: {Dilations: 0, ToneDelta: 15, Grain: 8},
	params.MediumInk:    {Dilations: 1, ToneDelta: -10},
	params.MediumMarker: {Dilations: 1, ToneDelta: -20},
	params.MediumPen:    {Dilations: 2, ToneDelta: -30},
	params.MediumPastel: {Dilations: 3, ToneDelta: -35, Grain: 12},
}

// Profile returns the profile for m, or the pencil profile when m is unknown.
func Profile(m params.Medium) MediumProfile {
	if p, ok := mediumProfiles[m]; ok {
		return p
	}
	return mediumProfiles[params.MediumPencil]
}

// Medium applies the profile of m: dilation first, then the tone delta,
// then grain. Grain only touches pixels darker than paper, so blank paper
// stays blank.
func Medium(bm *raster.Bitmap, m params.Medium, r *rng.Source) {
	p := Profile(m)
	for range p.Dilations {
		dilate(bm)
	}
	if p.ToneDelta != 0 {
		for i := 0; i < len(bm.Pix); i += 4 {
			bm.Pix[i] = raster.ClampInt(int(bm.Pix[i]) + p.ToneDelta)
			bm.Pix[i+1] = raster.ClampInt(int(bm.Pix[i+1]) + p.ToneDelta)
			bm.Pix[i+2] = raster.ClampInt(int(bm.Pix[i+2]) + p.ToneDelta)
		}
	}
	if p.Grain > 0 && r != nil {
		amp := float64(2 * p.Grain)
		for i := 0; i < len(bm.Pix); i += 4 {
			if bm.Pix[i] == raster.Paper && bm.Pix[i+1] == raster.Paper && bm.Pix[i+2] == raster.Paper {
				continue
			}
			n := r.Jitter(amp)
			bm.Pix[i] = raster.Clamp(float64(bm.Pix[i]) + n)
			bm.Pix[i+1] = raster.Clamp(float64(bm.Pix[i+1]) + n)
			bm.Pix[i+2] = raster.Clamp(float64(bm.Pix[i+2]) + n)
		}
	}
}

// dilate spreads dark pixels by one step: each channel becomes the minimum
// of itself and its four neighbors.
func dilate(bm *raster.Bitmap) {
	src := append([]uint8(nil), bm.Pix...)
	w, h := bm.Width, bm.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := (y*w + x) * 4
			for c := 0; c < 3; c++ {
				v := src[o+c]
				if x > 0 {
					v = min(v, src[o-4+c])
				}
				if x < w-1 {
					v = min(v, src[o+4+c])
				}
				if y > 0 {
					v = min(v, src[o-w*4+c])
				}
				if y < h-1 {
					v = min(v, src[o+w*4+c])
				}
				bm.Pix[o+c] = v
			}
		}
	}
}
