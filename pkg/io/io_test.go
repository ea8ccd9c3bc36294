package io

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	serrors "github.com/sketchify/sketchify/pkg/errors"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 30), uint8(y * 40), 100, 255})
		}
	}
	return img
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"png", FormatPNG, true},
		{".PNG", FormatPNG, true},
		{"jpg", FormatJPEG, true},
		{"jpeg", FormatJPEG, true},
		{"webp", FormatWebP, true},
		{"gif", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err == nil) != tt.ok {
				t.Fatalf("ParseFormat(%q) error = %v, want ok %v", tt.in, err, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if !tt.ok && !serrors.Is(err, serrors.ErrCodeInvalidFormat) {
				t.Errorf("error code = %s, want %s", serrors.GetCode(err), serrors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	if f, err := FormatFromPath("out/sketch.webp"); err != nil || f != FormatWebP {
		t.Errorf("FormatFromPath = (%q, %v), want webp", f, err)
	}
	if _, err := FormatFromPath("sketch"); err == nil {
		t.Error("FormatFromPath without extension should fail")
	}
}

func TestEncodeDecode(t *testing.T) {
	src := testImage()
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, src, f, EncodeOptions{}); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			img, _, err := Decode(&buf)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got := img.Bounds().Size(); got != src.Bounds().Size() {
				t.Errorf("size = %v, want %v", got, src.Bounds().Size())
			}
		})
	}
}

// TGA has no magic number; decoding must still pick the right codec for
// every other format linked into the same binary.
func TestDecodeSniffsFormat(t *testing.T) {
	src := testImage()
	tests := []struct {
		name   string
		encode func(io.Writer, image.Image) error
	}{
		{"png", png.Encode},
		{"jpeg", func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, nil) }},
		{"gif", func(w io.Writer, m image.Image) error { return gif.Encode(w, m, nil) }},
		{"bmp", bmp.Encode},
		{"tiff", func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) }},
		{"webp", func(w io.Writer, m image.Image) error { return Encode(w, m, FormatWebP, EncodeOptions{}) }},
		{"tga", tga.Encode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.encode(&buf, src); err != nil {
				t.Fatalf("encode: %v", err)
			}
			data := buf.Bytes()

			img, format, err := DecodeBytes(data)
			if err != nil {
				t.Fatalf("DecodeBytes() error = %v", err)
			}
			if format != tt.name {
				t.Errorf("format = %q, want %q", format, tt.name)
			}
			if got := img.Bounds().Size(); got != src.Bounds().Size() {
				t.Errorf("size = %v, want %v", got, src.Bounds().Size())
			}

			cfg, format, err := DecodeConfigBytes(data)
			if err != nil || format != tt.name || cfg.Width != 8 || cfg.Height != 6 {
				t.Errorf("DecodeConfigBytes() = %dx%d %q, %v; want 8x6 %q", cfg.Width, cfg.Height, format, err, tt.name)
			}
		})
	}
}

func TestPNGLossless(t *testing.T) {
	src := testImage()
	var buf bytes.Buffer
	if err := Encode(&buf, src, FormatPNG, EncodeOptions{}); err != nil {
		t.Fatal(err)
	}
	img, format, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	r, g, b, _ := img.At(3, 2).RGBA()
	if r>>8 != 90 || g>>8 != 80 || b>>8 != 100 {
		t.Errorf("pixel = (%d,%d,%d), want (90,80,100)", r>>8, g>>8, b>>8)
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, _, err := Decode(bytes.NewReader([]byte("not an image at all")))
	if !serrors.Is(err, serrors.ErrCodeInvalidImage) {
		t.Errorf("Decode(garbage) code = %s, want %s", serrors.GetCode(err), serrors.ErrCodeInvalidImage)
	}
	_, _, err = Decode(bytes.NewReader(nil))
	if !serrors.Is(err, serrors.ErrCodeInvalidImage) {
		t.Errorf("Decode(empty) code = %s, want %s", serrors.GetCode(err), serrors.ErrCodeInvalidImage)
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "a.png")
	if err := ExportImage(path, testImage(), FormatPNG, EncodeOptions{}); err != nil {
		t.Fatalf("ExportImage: %v", err)
	}
	img, format, err := ImportImage(path)
	if err != nil {
		t.Fatalf("ImportImage: %v", err)
	}
	if format != "png" || img.Bounds().Dx() != 8 {
		t.Errorf("ImportImage = (%v, %q), want 8px wide png", img.Bounds(), format)
	}

	_, _, err = ImportImage(filepath.Join(dir, "missing.png"))
	if !serrors.Is(err, serrors.ErrCodeFileNotFound) {
		t.Errorf("missing file code = %s, want %s", serrors.GetCode(err), serrors.ErrCodeFileNotFound)
	}
}

func TestImportRejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	if err := os.WriteFile(path, []byte("text"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ImportImage(path); !serrors.Is(err, serrors.ErrCodeInvalidImage) {
		t.Errorf("code = %s, want %s", serrors.GetCode(err), serrors.ErrCodeInvalidImage)
	}
}
