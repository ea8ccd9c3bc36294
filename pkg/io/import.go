package io

import (
	"bytes"
	"errors"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	serrors "github.com/sketchify/sketchify/pkg/errors"
)

const (
	// MaxBytes bounds the encoded size accepted by [Decode].
	MaxBytes = 64 << 20

	// MaxPixels bounds decoded images. Larger inputs are rejected before
	// their pixel data is allocated.
	MaxPixels = 50_000_000
)

// codec decodes one input format. Dispatch is by magic bytes and never goes
// through image.Decode: the tga package registers itself with an empty
// magic and would shadow every format registered after it.
type codec struct {
	name   string
	match  func(head []byte) bool
	decode func(io.Reader) (image.Image, error)
	config func(io.Reader) (image.Config, error)
}

func prefix(magic ...string) func([]byte) bool {
	return func(head []byte) bool {
		for _, m := range magic {
			if bytes.HasPrefix(head, []byte(m)) {
				return true
			}
		}
		return false
	}
}

func isWebP(head []byte) bool {
	return len(head) >= 12 && string(head[:4]) == "RIFF" && string(head[8:12]) == "WEBP"
}

// codecs is tried in order. TGA has no magic number, so it comes last and
// accepts whatever the others did not claim.
var codecs = []codec{
	{"png", prefix("\x89PNG\r\n\x1a\n"), png.Decode, png.DecodeConfig},
	{"jpeg", prefix("\xff\xd8"), jpeg.Decode, jpeg.DecodeConfig},
	{"gif", prefix("GIF87a", "GIF89a"), gif.Decode, gif.DecodeConfig},
	{"webp", isWebP, webp.Decode, webp.DecodeConfig},
	{"bmp", prefix("BM"), bmp.Decode, bmp.DecodeConfig},
	{"tiff", prefix("II*\x00", "MM\x00*"), tiff.Decode, tiff.DecodeConfig},
	{"tga", func([]byte) bool { return true }, tga.Decode, tga.DecodeConfig},
}

func sniff(data []byte) codec {
	for _, c := range codecs {
		if c.match(data) {
			return c
		}
	}
	return codecs[len(codecs)-1]
}

// Decode reads an image from r and returns it with its format name.
func Decode(r io.Reader) (image.Image, string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxBytes+1))
	if err != nil {
		return nil, "", serrors.Wrap(serrors.ErrCodeInvalidImage, err, "read image")
	}
	if len(data) > MaxBytes {
		return nil, "", serrors.New(serrors.ErrCodeInvalidImage, "image exceeds %d bytes", MaxBytes)
	}
	return DecodeBytes(data)
}

// DecodeConfigBytes reads the dimensions and format of an encoded image
// without decoding its pixels.
func DecodeConfigBytes(data []byte) (image.Config, string, error) {
	c := sniff(data)
	cfg, err := c.config(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, "", serrors.Wrap(serrors.ErrCodeInvalidImage, err, "read %s header", c.name)
	}
	return cfg, c.name, nil
}

// DecodeBytes decodes an in-memory image.
func DecodeBytes(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", serrors.New(serrors.ErrCodeInvalidImage, "empty image")
	}
	c := sniff(data)
	if cfg, err := c.config(bytes.NewReader(data)); err == nil {
		if cfg.Width <= 0 || cfg.Height <= 0 {
			return nil, c.name, serrors.New(serrors.ErrCodeInvalidImage, "image has no pixels")
		}
		if cfg.Width*cfg.Height > MaxPixels {
			return nil, c.name, serrors.New(serrors.ErrCodeInvalidImage,
				"image too large: %dx%d", cfg.Width, cfg.Height)
		}
	}

	img, err := c.decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", serrors.Wrap(serrors.ErrCodeInvalidImage, err, "decode image")
	}
	if img.Bounds().Empty() {
		return nil, c.name, serrors.New(serrors.ErrCodeInvalidImage, "image has no pixels")
	}
	return img, c.name, nil
}

// ImportImage reads the file at path and decodes it with [Decode].
func ImportImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", serrors.Wrap(serrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, "", serrors.Wrap(serrors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	img, format, err := Decode(f)
	if err != nil {
		return nil, "", serrors.Wrap(serrors.ErrCodeInvalidImage, err, "%s", path)
	}
	return img, format, nil
}
