package effects

import (
	"math"

	"github.com/sketchify/sketchify/pkg/raster"
)

// rgbToHSL converts channels in [0,255] to hue, saturation and lightness in
// [0,1].
func rgbToHSL(r, g, b float64) (h, s, l float64) {
	r, g, b = r/255, g/255, b/255
	hi, lo := max(r, g, b), min(r, g, b)
	l = (hi + lo) / 2
	if hi == lo {
		return 0, 0, l
	}
	d := hi - lo
	if l > 0.5 {
		s = d / (2 - hi - lo)
	} else {
		s = d / (hi + lo)
	}
	switch hi {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h / 6, s, l
}

// hslToRGB converts hue, saturation and lightness in [0,1] to rounded
// channels.
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	if s == 0 {
		v := raster.Clamp(l * 255)
		return v, v, v
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return raster.Clamp(hueToChannel(p, q, h+1.0/3) * 255),
		raster.Clamp(hueToChannel(p, q, h) * 255),
		raster.Clamp(hueToChannel(p, q, h-1.0/3) * 255)
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

// Colorize keeps each pixel's lightness and takes hue and saturation from
// the matching pixel of original, restoring color under the sketch.
func Colorize(bm *raster.Bitmap, original raster.RGBBuffer) {
	if len(original) < bm.Len()*3 {
		return
	}
	for i := 0; i < bm.Len(); i++ {
		h, s, _ := rgbToHSL(float64(original[i*3]), float64(original[i*3+1]), float64(original[i*3+2]))
		r, g, b := bm.RGB(i)
		l := float64(raster.Luminance(r, g, b)) / 255
		r, g, b = hslToRGB(h, s, l)
		bm.SetRGB(i, r, g, b)
	}
}

// Adjust scales contrast around mid-gray, rotates hue by hueShift degrees
// and scales saturation, capped at 1. Contrast 1, saturation 1 and shift 0
// reproduce the input within rounding.
func Adjust(bm *raster.Bitmap, contrast, saturation float64, hueShift int) {
	shift := float64(hueShift)
	for i := 0; i < bm.Len(); i++ {
		o := i * 4
		r, g, b := float64(bm.Pix[o]), float64(bm.Pix[o+1]), float64(bm.Pix[o+2])
		if contrast != 1 {
			r = clamp255((r-128)*contrast + 128)
			g = clamp255((g-128)*contrast + 128)
			b = clamp255((b-128)*contrast + 128)
		}
		h, s, l := rgbToHSL(r, g, b)
		h = math.Mod(h*360+shift, 360) / 360
		if h < 0 {
			h++
		}
		s = min(1, s*saturation)
		nr, ng, nb := hslToRGB(h, s, l)
		bm.SetRGB(i, nr, ng, nb)
	}
}

func clamp255(v float64) float64 { return min(max(v, 0), 255) }

// Invert replaces every channel v with 255-v. Alpha is untouched.
func Invert(bm *raster.Bitmap) {
	for i := 0; i < len(bm.Pix); i += 4 {
		bm.Pix[i] = 255 - bm.Pix[i]
		bm.Pix[i+1] = 255 - bm.Pix[i+1]
		bm.Pix[i+2] = 255 - bm.Pix[i+2]
	}
}

// Smooth runs ceil(smoothing/2) passes of a 3×3 box blur. Zero is a no-op.
func Smooth(bm *raster.Bitmap, smoothing int) {
	for range (max(smoothing, 0) + 1) / 2 {
		bm.CopyFrom(boxBlur(bm, 1))
	}
}
