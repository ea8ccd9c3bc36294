package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/sketchify/sketchify/pkg/compositor"
	"github.com/sketchify/sketchify/pkg/errors"
	pkgio "github.com/sketchify/sketchify/pkg/io"
	"github.com/sketchify/sketchify/pkg/raster"
	"github.com/sketchify/sketchify/pkg/remote"
)

// renderLocal decodes, sizes and renders src in-process.
func (r *Runner) renderLocal(ctx context.Context, src []byte, opts Options, res *Result) (*raster.Bitmap, error) {
	decodeStart := time.Now()
	img, _, err := pkgio.DecodeBytes(src)
	if err != nil {
		return nil, err
	}
	bm, err := compositor.Prepare(img, opts.Resolution, opts.Aspect, opts.limit())
	if err != nil {
		return nil, err
	}
	res.Stats.DecodeTime = time.Since(decodeStart)

	renderStart := time.Now()
	c := compositor.New(r.Detector, opts.Logger)
	out, err := c.Render(ctx, bm, opts.Params)
	if err != nil {
		return nil, err
	}
	if opts.Compare > 0 {
		if out, err = c.Compare(opts.Compare); err != nil {
			return nil, err
		}
	}
	res.Stats.RenderTime = time.Since(renderStart)
	return out, nil
}

// renderRemote sends src unchanged to the render service. Sizing is done by
// the service; a compare view is built locally against the returned size.
func (r *Runner) renderRemote(ctx context.Context, src []byte, opts Options, res *Result) (*raster.Bitmap, error) {
	renderStart := time.Now()
	img, err := r.Remote.Render(ctx, remote.Request{
		Image:    src,
		Filename: opts.Filename,
		Params:   opts.Params,
		Sizing:   remote.Sizing{Resolution: opts.Resolution, Aspect: opts.Aspect},
	})
	if err != nil {
		return nil, err
	}
	out := raster.FromImage(img)
	res.Stats.RenderTime = time.Since(renderStart)

	if opts.Compare > 0 {
		orig, _, err := pkgio.DecodeBytes(src)
		if err != nil {
			return nil, err
		}
		before := raster.Fit(orig, out.Width, out.Height)
		out = compositor.Split(before, out, opts.Compare)
	}
	return out, nil
}

func encode(bm *raster.Bitmap, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := pkgio.Encode(&buf, bm.Image(), opts.Format, pkgio.EncodeOptions{Quality: opts.Quality}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode output")
	}
	return buf.Bytes(), nil
}

// encodedSize reads the dimensions of an encoded image without decoding it.
func encodedSize(data []byte) (int, int, error) {
	cfg, _, err := pkgio.DecodeConfigBytes(data)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
