package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestNewIsOpaqueWhite(t *testing.T) {
	b := New(3, 2)
	if len(b.Pix) != 3*2*4 {
		t.Fatalf("len(Pix) = %d, want %d", len(b.Pix), 24)
	}
	for i, v := range b.Pix {
		if v != 255 {
			t.Fatalf("Pix[%d] = %d, want 255", i, v)
		}
	}
}

func TestFromImageFlattensAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 0})
	src.Set(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	b := FromImage(src)
	if got := b.Color(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("transparent pixel = %v, want white", got)
	}
	if got := b.Color(1, 0); got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("opaque pixel = %v, want {10 20 30 255}", got)
	}
}

func TestLuminance(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    uint8
	}{
		{0, 0, 0, 0},
		{255, 255, 255, 255},
		{255, 0, 0, 76},
		{0, 255, 0, 150},
		{0, 0, 255, 29},
		{128, 128, 128, 128},
	}
	for _, tt := range tests {
		if got := Luminance(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("Luminance(%d,%d,%d) = %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-5, 0}, {0, 0}, {0.4, 0}, {0.5, 1}, {254.6, 255}, {300, 255},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAspectSize(t *testing.T) {
	tests := []struct {
		aspect string
		base   int
		w, h   int
		err    bool
	}{
		{"1:1", 800, 800, 800, false},
		{"16:9", 1600, 1600, 900, false},
		{"9:16", 1600, 900, 1600, false},
		{"4:3", 1200, 1200, 900, false},
		{"bogus", 800, 0, 0, true},
		{"0:1", 800, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.aspect, func(t *testing.T) {
			w, h, err := AspectSize(tt.aspect, tt.base)
			if (err != nil) != tt.err {
				t.Fatalf("AspectSize(%q) error = %v, wantErr %v", tt.aspect, err, tt.err)
			}
			if w != tt.w || h != tt.h {
				t.Errorf("AspectSize(%q, %d) = %dx%d, want %dx%d", tt.aspect, tt.base, w, h, tt.w, tt.h)
			}
		})
	}
}

func TestCropRect(t *testing.T) {
	tests := []struct {
		name           string
		iw, ih, cw, ch int
		want           image.Rectangle
	}{
		{"wide source", 200, 100, 100, 100, image.Rect(50, 0, 150, 100)},
		{"tall source", 100, 200, 100, 100, image.Rect(0, 50, 100, 150)},
		{"same ratio", 100, 50, 200, 100, image.Rect(0, 0, 100, 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CropRect(tt.iw, tt.ih, tt.cw, tt.ch); got != tt.want {
				t.Errorf("CropRect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFitSize(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 120, 60))
	b := Fit(src, 30, 40)
	if b.Width != 30 || b.Height != 40 {
		t.Errorf("Fit size = %dx%d, want 30x40", b.Width, b.Height)
	}
	for i := 3; i < len(b.Pix); i += 4 {
		if b.Pix[i] != 255 {
			t.Fatalf("alpha at %d = %d, want 255", i, b.Pix[i])
		}
	}
}

func TestLimitSize(t *testing.T) {
	if w, h := LimitSize(2400, 1200, 1200); w != 1200 || h != 600 {
		t.Errorf("LimitSize = %dx%d, want 1200x600", w, h)
	}
	if w, h := LimitSize(100, 50, 1200); w != 100 || h != 50 {
		t.Errorf("LimitSize small = %dx%d, want 100x50", w, h)
	}
}

func TestSnapshotRGB(t *testing.T) {
	b := New(2, 1)
	b.SetRGB(1, 1, 2, 3)
	s := SnapshotRGB(b)
	want := []uint8{255, 255, 255, 1, 2, 3}
	for i := range want {
		if s[i] != want[i] {
			t.Fatalf("SnapshotRGB = %v, want %v", s, want)
		}
	}
}
