package io

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"

	serrors "github.com/sketchify/sketchify/pkg/errors"
)

// Format is an output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatWebP Format = "webp"
)

// Formats lists the supported output encodings.
var Formats = []Format{FormatPNG, FormatJPEG, FormatWebP}

// DefaultJPEGQuality is used when EncodeOptions.Quality is zero.
const DefaultJPEGQuality = 92

// EncodeOptions tunes lossy encoders. PNG and WebP ignore it.
type EncodeOptions struct {
	Quality int
}

// ParseFormat maps a format name or alias ("jpg") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "webp":
		return FormatWebP, nil
	}
	return "", serrors.New(serrors.ErrCodeInvalidFormat, "unsupported output format %q", s)
}

// FormatFromPath derives the format from the file extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", serrors.New(serrors.ErrCodeInvalidFormat, "%s has no extension", path)
	}
	return ParseFormat(ext)
}

// Ext returns the canonical file extension, including the dot.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// ContentType returns the MIME type.
func (f Format) ContentType() string {
	return "image/" + string(f)
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format, opts EncodeOptions) error {
	var err error
	switch f {
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: png.BestSpeed}
		err = enc.Encode(w, img)
	case FormatJPEG:
		q := opts.Quality
		if q <= 0 || q > 100 {
			q = DefaultJPEGQuality
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	case FormatWebP:
		err = nativewebp.Encode(w, img, nil)
	default:
		return serrors.New(serrors.ErrCodeInvalidFormat, "unsupported output format %q", f)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}

// ExportImage writes img to a file at path.
func ExportImage(path string, img image.Image, f Format, opts EncodeOptions) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(out, img, f, opts); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
