package edge

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sketchify/sketchify/pkg/raster"
)

// minTileRows keeps bands large enough to amortize goroutine startup.
const minTileRows = 32

// TiledAccelerator splits the Sobel pass into horizontal bands computed on
// separate goroutines. Each band writes a disjoint row range, so the output
// is byte-identical to [Sobel].
type TiledAccelerator struct {
	workers int
}

// NewTiledAccelerator returns an accelerator using n workers, or GOMAXPROCS
// when n <= 0.
func NewTiledAccelerator(n int) *TiledAccelerator {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return &TiledAccelerator{workers: n}
}

// Name implements Accelerator.
func (a *TiledAccelerator) Name() string { return "tiled" }

// Sobel implements Accelerator.
func (a *TiledAccelerator) Sobel(ctx context.Context, gray raster.GrayMap, w, h int) (raster.EdgeMap, error) {
	if len(gray) != w*h {
		return nil, ErrFallbackToCPU
	}
	if h < 2*minTileRows || a.workers < 2 {
		return nil, ErrFallbackToCPU
	}

	out := make(raster.EdgeMap, w*h)
	bands := min(a.workers, h/minTileRows)
	rows := (h + bands - 1) / bands

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for y0 := 0; y0 < h; y0 += rows {
		y1 := min(y0+rows, h)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sobelRows(gray, w, h, out, y0, y1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ Accelerator = (*TiledAccelerator)(nil)
