package effects

import (
	"github.com/sketchify/sketchify/pkg/raster"
)

// boxBlur returns a copy of src blurred by a (2r+1)×(2r+1) box, computed as
// a horizontal pass into a float buffer followed by a vertical pass. Samples
// outside the bitmap repeat the nearest edge pixel.
func boxBlur(src *raster.Bitmap, r int) *raster.Bitmap {
	dst := src.Clone()
	if r <= 0 || src.Len() == 0 {
		return dst
	}
	w, h := src.Width, src.Height
	temp := make([]float32, w*h*3)
	norm := float32(1) / float32(2*r+1)

	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			var sr, sg, sb float32
			for k := -r; k <= r; k++ {
				o := (row + min(max(x+k, 0), w-1)) * 4
				sr += float32(src.Pix[o])
				sg += float32(src.Pix[o+1])
				sb += float32(src.Pix[o+2])
			}
			t := (row + x) * 3
			temp[t], temp[t+1], temp[t+2] = sr*norm, sg*norm, sb*norm
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sr, sg, sb float32
			for k := -r; k <= r; k++ {
				t := (min(max(y+k, 0), h-1)*w + x) * 3
				sr += temp[t]
				sg += temp[t+1]
				sb += temp[t+2]
			}
			o := (y*w + x) * 4
			dst.Pix[o] = raster.Clamp(float64(sr * norm))
			dst.Pix[o+1] = raster.Clamp(float64(sg * norm))
			dst.Pix[o+2] = raster.Clamp(float64(sb * norm))
		}
	}
	return dst
}
