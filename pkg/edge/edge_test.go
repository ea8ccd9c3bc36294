package edge

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sketchify/sketchify/pkg/raster"
	"github.com/sketchify/sketchify/pkg/rng"
)

// halfImage returns a w×h bitmap whose left half is white and right half black.
func halfImage(w, h int) *raster.Bitmap {
	b := raster.New(w, h)
	for y := 0; y < h; y++ {
		for x := w / 2; x < w; x++ {
			b.SetGray(y*w+x, 0)
		}
	}
	return b
}

func noiseImage(w, h int, seed uint32) *raster.Bitmap {
	r := rng.New(seed)
	b := raster.New(w, h)
	for i := 0; i < b.Len(); i++ {
		b.SetRGB(i, uint8(r.Intn(256)), uint8(r.Intn(256)), uint8(r.Intn(256)))
	}
	return b
}

func TestGrayscaleLength(t *testing.T) {
	b := noiseImage(7, 5, 1)
	gray := Grayscale(b)
	if len(gray) != 35 {
		t.Fatalf("len(Grayscale) = %d, want 35", len(gray))
	}
	edges := Sobel(gray, 7, 5)
	if len(edges) != len(gray) {
		t.Errorf("len(Sobel) = %d, want %d", len(edges), len(gray))
	}
}

func TestSobelSeam(t *testing.T) {
	const w, h = 4, 4
	b := halfImage(w, h)
	edges := Sobel(Grayscale(b), w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := edges[y*w+x]
			border := x == 0 || y == 0 || x == w-1 || y == h-1
			switch {
			case border && v != 0:
				t.Errorf("border edge(%d,%d) = %d, want 0", x, y, v)
			case !border && v != 255:
				t.Errorf("seam edge(%d,%d) = %d, want 255", x, y, v)
			}
		}
	}
}

func TestSobelSeamWide(t *testing.T) {
	const w, h = 8, 6
	edges := Sobel(Grayscale(halfImage(w, h)), w, h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			v := edges[y*w+x]
			onSeam := x == w/2-1 || x == w/2
			if onSeam && v < 200 {
				t.Errorf("seam edge(%d,%d) = %d, want high", x, y, v)
			}
			if !onSeam && v != 0 {
				t.Errorf("flat edge(%d,%d) = %d, want 0", x, y, v)
			}
		}
	}
}

func TestSobelFlat(t *testing.T) {
	b := raster.NewFilled(16, 16, 128)
	for i, v := range Sobel(Grayscale(b), 16, 16) {
		if v != 0 {
			t.Fatalf("flat image edge[%d] = %d, want 0", i, v)
		}
	}
}

func TestSobelTinyImages(t *testing.T) {
	for _, sz := range [][2]int{{1, 1}, {2, 2}, {1, 5}, {5, 2}} {
		b := raster.New(sz[0], sz[1])
		edges := Sobel(Grayscale(b), sz[0], sz[1])
		if len(edges) != sz[0]*sz[1] {
			t.Errorf("Sobel(%dx%d) len = %d", sz[0], sz[1], len(edges))
		}
	}
}

func TestTiledMatchesCPU(t *testing.T) {
	b := noiseImage(97, 211, 5)
	gray := Grayscale(b)
	want := Sobel(gray, b.Width, b.Height)

	got, err := NewTiledAccelerator(4).Sobel(context.Background(), gray, b.Width, b.Height)
	if err != nil {
		t.Fatalf("tiled Sobel error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Error("tiled Sobel differs from CPU Sobel")
	}
}

func TestTiledDeclinesSmallImages(t *testing.T) {
	gray := Grayscale(raster.New(8, 8))
	_, err := NewTiledAccelerator(4).Sobel(context.Background(), gray, 8, 8)
	if !errors.Is(err, ErrFallbackToCPU) {
		t.Errorf("small image error = %v, want ErrFallbackToCPU", err)
	}
}

type failingAccel struct {
	err   error
	calls int
}

func (f *failingAccel) Name() string { return "failing" }

func (f *failingAccel) Sobel(context.Context, raster.GrayMap, int, int) (raster.EdgeMap, error) {
	f.calls++
	return nil, f.err
}

type shortAccel struct{}

func (shortAccel) Name() string { return "short" }

func (shortAccel) Sobel(context.Context, raster.GrayMap, int, int) (raster.EdgeMap, error) {
	return raster.EdgeMap{1, 2, 3}, nil
}

func TestDetectorFallsBack(t *testing.T) {
	b := halfImage(6, 6)
	want := Sobel(Grayscale(b), 6, 6)

	tests := []struct {
		name  string
		accel Accelerator
	}{
		{"no accelerator", nil},
		{"declined", &failingAccel{err: ErrFallbackToCPU}},
		{"failed", &failingAccel{err: errors.New("shader compile failed")}},
		{"wrong size", shortAccel{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			maps, err := NewDetector(tt.accel, nil).Detect(context.Background(), b)
			if err != nil {
				t.Fatalf("Detect error: %v", err)
			}
			if !bytes.Equal(maps.Edges, want) {
				t.Error("fallback edges differ from CPU Sobel")
			}
			if len(maps.Gray) != b.Len() {
				t.Errorf("len(Gray) = %d, want %d", len(maps.Gray), b.Len())
			}
		})
	}
}

func TestDetectorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDetector(nil, nil).Detect(ctx, raster.New(4, 4))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Detect error = %v, want context.Canceled", err)
	}
}
