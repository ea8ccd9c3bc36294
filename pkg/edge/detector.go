package edge

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/sketchify/sketchify/pkg/raster"
)

// ErrFallbackToCPU indicates an accelerator declined the work.
// The detector transparently falls back to the CPU path.
var ErrFallbackToCPU = errors.New("edge: falling back to CPU sobel")

// Accelerator is an optional alternate Sobel implementation. Its output must
// match [Sobel] for the same input.
type Accelerator interface {
	// Name identifies the accelerator in logs.
	Name() string

	// Sobel computes the gradient magnitude map. Returning any error,
	// including ErrFallbackToCPU, makes the detector use the CPU path.
	Sobel(ctx context.Context, gray raster.GrayMap, w, h int) (raster.EdgeMap, error)
}

// Maps bundles the derived maps of one render call.
type Maps struct {
	Gray  raster.GrayMap
	Edges raster.EdgeMap
}

// Detector computes the grayscale and edge maps of a bitmap.
type Detector struct {
	accel  Accelerator
	logger *log.Logger
}

// NewDetector returns a detector. accel may be nil for the CPU path only.
func NewDetector(accel Accelerator, logger *log.Logger) *Detector {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Detector{accel: accel, logger: logger}
}

// Accelerator returns the configured accelerator, or nil.
func (d *Detector) Accelerator() Accelerator { return d.accel }

// Detect computes both maps from b. The only error it returns is a context
// error; accelerator failures are absorbed.
func (d *Detector) Detect(ctx context.Context, b *raster.Bitmap) (Maps, error) {
	if err := ctx.Err(); err != nil {
		return Maps{}, err
	}
	gray := Grayscale(b)
	edges, err := d.sobel(ctx, gray, b.Width, b.Height)
	if err != nil {
		return Maps{}, err
	}
	return Maps{Gray: gray, Edges: edges}, nil
}

func (d *Detector) sobel(ctx context.Context, gray raster.GrayMap, w, h int) (raster.EdgeMap, error) {
	if d.accel != nil {
		edges, err := d.accel.Sobel(ctx, gray, w, h)
		switch {
		case err == nil && len(edges) == w*h:
			return edges, nil
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case err == nil:
			d.logger.Warn("accelerated sobel returned wrong size, using cpu", "accelerator", d.accel.Name(), "len", len(edges), "want", w*h)
		case errors.Is(err, ErrFallbackToCPU):
			d.logger.Debug("accelerator declined sobel, using cpu", "accelerator", d.accel.Name())
		default:
			d.logger.Warn("accelerated sobel failed, using cpu", "accelerator", d.accel.Name(), "err", err)
		}
	}
	return Sobel(gray, w, h), nil
}
