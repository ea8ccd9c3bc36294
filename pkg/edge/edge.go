// Package edge computes the grayscale and gradient-magnitude maps every style
// consumes.
//
// [Grayscale] and [Sobel] are the reference CPU implementation. A [Detector]
// runs them once per render and may delegate the Sobel pass to an optional
// [Accelerator]; any accelerator failure falls back to the CPU path with a
// warning, never aborting the render.
package edge

import (
	"math"

	"github.com/sketchify/sketchify/pkg/raster"
)

// Grayscale returns the luminance of every pixel of b.
func Grayscale(b *raster.Bitmap) raster.GrayMap {
	gray := make(raster.GrayMap, b.Len())
	for i, o := 0, 0; i < len(gray); i, o = i+1, o+4 {
		gray[i] = raster.Luminance(b.Pix[o], b.Pix[o+1], b.Pix[o+2])
	}
	return gray
}

// Sobel returns the clamped gradient magnitude of gray. Border rows and
// columns are left at zero.
func Sobel(gray raster.GrayMap, w, h int) raster.EdgeMap {
	out := make(raster.EdgeMap, w*h)
	sobelRows(gray, w, h, out, 1, h-1)
	return out
}

// sobelRows fills rows [y0,y1) of out, skipping the image border.
func sobelRows(gray raster.GrayMap, w, h int, out raster.EdgeMap, y0, y1 int) {
	y0, y1 = max(y0, 1), min(y1, h-1)
	for y := y0; y < y1; y++ {
		up, mid, down := (y-1)*w, y*w, (y+1)*w
		for x := 1; x < w-1; x++ {
			tl, tc, tr := int(gray[up+x-1]), int(gray[up+x]), int(gray[up+x+1])
			ml, mr := int(gray[mid+x-1]), int(gray[mid+x+1])
			bl, bc, br := int(gray[down+x-1]), int(gray[down+x]), int(gray[down+x+1])

			gx := (tr + 2*mr + br) - (tl + 2*ml + bl)
			gy := (bl + 2*bc + br) - (tl + 2*tc + tr)
			out[mid+x] = raster.Clamp(math.Hypot(float64(gx), float64(gy)))
		}
	}
}
