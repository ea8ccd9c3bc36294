// Package raster holds the pixel buffers shared by every pipeline stage.
//
// A [Bitmap] is a tightly packed RGBA buffer whose alpha channel is kept at
// 255. Stages receive a *Bitmap, mutate it in place and hand it on; none of
// them keeps a reference after returning, and none of them changes its size.
// Derived single-channel buffers ([GrayMap], [EdgeMap]) and the RGB snapshot
// used for recolorization ([RGBBuffer]) live here as well.
package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Paper is the blank paper tone.
const Paper = 255

// Bitmap is an opaque RGBA raster.
type Bitmap struct {
	Width  int
	Height int
	Pix    []uint8 // len = Width*Height*4
}

// New returns a white, fully opaque bitmap.
func New(width, height int) *Bitmap {
	return NewFilled(width, height, Paper)
}

// NewFilled returns an opaque bitmap with every RGB channel set to v.
func NewFilled(width, height int, v uint8) *Bitmap {
	width, height = max(width, 0), max(height, 0)
	b := &Bitmap{Width: width, Height: height, Pix: make([]uint8, width*height*4)}
	b.Fill(v)
	return b
}

// Fill sets every pixel to the gray value v with alpha 255.
func (b *Bitmap) Fill(v uint8) {
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = v, v, v, 255
	}
}

// Len returns the number of pixels.
func (b *Bitmap) Len() int { return b.Width * b.Height }

// Clone returns a deep copy.
func (b *Bitmap) Clone() *Bitmap {
	return &Bitmap{Width: b.Width, Height: b.Height, Pix: append([]uint8(nil), b.Pix...)}
}

// CopyFrom overwrites b's pixels with src's. Sizes must match.
func (b *Bitmap) CopyFrom(src *Bitmap) {
	copy(b.Pix, src.Pix)
}

// SameSize reports whether b and o have identical dimensions.
func (b *Bitmap) SameSize(o *Bitmap) bool {
	return o != nil && b.Width == o.Width && b.Height == o.Height
}

// In reports whether (x,y) lies inside the bitmap.
func (b *Bitmap) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

// Offset returns the Pix index of the pixel at (x,y).
func (b *Bitmap) Offset(x, y int) int {
	return (y*b.Width + x) * 4
}

// RGB returns the color channels of pixel index i (not byte offset).
func (b *Bitmap) RGB(i int) (r, g, bl uint8) {
	o := i * 4
	return b.Pix[o], b.Pix[o+1], b.Pix[o+2]
}

// SetRGB sets the color channels of pixel index i.
func (b *Bitmap) SetRGB(i int, r, g, bl uint8) {
	o := i * 4
	b.Pix[o], b.Pix[o+1], b.Pix[o+2] = r, g, bl
}

// SetGray sets pixel index i to the gray value v.
func (b *Bitmap) SetGray(i int, v uint8) {
	b.SetRGB(i, v, v, v)
}

// Image returns an *image.RGBA that shares b's buffer.
func (b *Bitmap) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// FromImage converts img to a Bitmap. Transparent regions are flattened onto
// white paper so the result is fully opaque.
func FromImage(img image.Image) *Bitmap {
	r := img.Bounds()
	b := New(r.Dx(), r.Dy())
	draw.Draw(b.Image(), b.Image().Bounds(), img, r.Min, draw.Over)
	for i := 3; i < len(b.Pix); i += 4 {
		b.Pix[i] = 255
	}
	return b
}

// Clamp converts v to a byte, saturating at 0 and 255 and rounding half away
// from zero.
func Clamp(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}

// ClampInt saturates v into [0,255].
func ClampInt(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

// Luminance returns round(0.299R+0.587G+0.114B).
func Luminance(r, g, b uint8) uint8 {
	return Clamp(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b))
}

// Color returns the pixel at (x,y) as a color.RGBA.
func (b *Bitmap) Color(x, y int) color.RGBA {
	o := b.Offset(x, y)
	return color.RGBA{R: b.Pix[o], G: b.Pix[o+1], B: b.Pix[o+2], A: b.Pix[o+3]}
}
