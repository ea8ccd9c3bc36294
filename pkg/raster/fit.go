package raster

import (
	"image"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/draw"

	"github.com/sketchify/sketchify/pkg/errors"
)

// MaxDimension bounds the working size when no explicit resolution is given.
const MaxDimension = 1200

// ParseAspect parses a "W:H" ratio such as "16:9".
func ParseAspect(aspect string) (w, h float64, err error) {
	parts := strings.Split(strings.TrimSpace(aspect), ":")
	if len(parts) != 2 {
		return 0, 0, errors.New(errors.ErrCodeInvalidAspect, "aspect must be W:H, got %q", aspect)
	}
	w, errW := strconv.ParseFloat(parts[0], 64)
	h, errH := strconv.ParseFloat(parts[1], 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, errors.New(errors.ErrCodeInvalidAspect, "aspect must be two positive numbers, got %q", aspect)
	}
	return w, h, nil
}

// AspectSize returns the canvas size for aspect with base pixels on the long
// side. Landscape ratios keep base as the width, portrait ratios as the height.
func AspectSize(aspect string, base int) (width, height int, err error) {
	aw, ah, err := ParseAspect(aspect)
	if err != nil {
		return 0, 0, err
	}
	ratio := aw / ah
	width, height = base, int(math.Round(float64(base)/ratio))
	if ratio < 1 {
		width, height = int(math.Round(float64(base)*ratio)), base
	}
	return max(width, 1), max(height, 1), nil
}

// CropRect returns the centered source rectangle of an iw×ih image that
// covers a cw×ch canvas without distortion.
func CropRect(iw, ih, cw, ch int) image.Rectangle {
	ir := float64(iw) / float64(ih)
	cr := float64(cw) / float64(ch)
	if ir > cr {
		sw := int(math.Round(float64(ih) * cr))
		sx := int(math.Round(float64(iw-sw) / 2))
		return image.Rect(sx, 0, sx+sw, ih)
	}
	sh := int(math.Round(float64(iw) / cr))
	sy := int(math.Round(float64(ih-sh) / 2))
	return image.Rect(0, sy, iw, sy+sh)
}

// LimitSize scales (w,h) down so neither side exceeds limit.
func LimitSize(w, h, limit int) (int, int) {
	if limit <= 0 || (w <= limit && h <= limit) {
		return w, h
	}
	scale := float64(limit) / float64(max(w, h))
	return max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale))
}

// Fit resamples img to exactly width×height, cropping the centered region
// that preserves the canvas aspect ratio.
func Fit(img image.Image, width, height int) *Bitmap {
	src := img.Bounds()
	if src.Dx() == width && src.Dy() == height {
		return FromImage(img)
	}
	crop := CropRect(src.Dx(), src.Dy(), width, height).Add(src.Min)
	dst := New(width, height)
	draw.CatmullRom.Scale(dst.Image(), dst.Image().Bounds(), img, crop, draw.Over, nil)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 255
	}
	return dst
}

// Resize returns img scaled to fit within limit on its long side, or
// converted unchanged when it already fits.
func Resize(img image.Image, limit int) *Bitmap {
	r := img.Bounds()
	w, h := LimitSize(r.Dx(), r.Dy(), limit)
	return Fit(img, w, h)
}
