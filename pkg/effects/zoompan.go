package effects

import (
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/sketchify/sketchify/pkg/raster"
)

// ZoomPan scales bm by zoom about its center, then translates it by
// (panX, panY) pixels. Area the source no longer covers becomes paper white.
// Zoom 1 with no pan leaves bm untouched.
func ZoomPan(bm *raster.Bitmap, zoom, panX, panY float64) {
	if zoom <= 0 || (zoom == 1 && panX == 0 && panY == 0) || bm.Len() == 0 {
		return
	}
	src := bm.Clone()
	bm.Fill(raster.Paper)
	cx, cy := float64(bm.Width)/2, float64(bm.Height)/2
	s2d := f64.Aff3{
		zoom, 0, cx - zoom*cx + panX,
		0, zoom, cy - zoom*cy + panY,
	}
	dst := bm.Image()
	draw.BiLinear.Transform(dst, s2d, src.Image(), dst.Bounds(), draw.Over, nil)
	for i := 3; i < len(bm.Pix); i += 4 {
		bm.Pix[i] = 255
	}
}
