package remote

import (
	"context"
	"image"
	"sync"

	"github.com/sketchify/sketchify/pkg/compositor"
)

// Renderer is the part of [Client] the dispatcher needs.
type Renderer interface {
	Render(ctx context.Context, req Request) (image.Image, error)
}

// Dispatcher serializes remote renders under a latest-wins policy. Each
// Render cancels the request still in flight, and a response that arrives
// after a newer request started is discarded with compositor.ErrSuperseded.
// The last successful result is kept as the current image.
type Dispatcher struct {
	client Renderer

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	current image.Image
}

// NewDispatcher wraps client.
func NewDispatcher(client Renderer) *Dispatcher {
	return &Dispatcher{client: client}
}

// Render issues req, superseding any earlier request.
func (d *Dispatcher) Render(ctx context.Context, req Request) (image.Image, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.gen++
	token := d.gen
	d.cancel = cancel
	d.mu.Unlock()

	img, err := d.client.Render(ctx, req)

	d.mu.Lock()
	defer d.mu.Unlock()
	if token != d.gen {
		return nil, compositor.ErrSuperseded
	}
	d.cancel = nil
	if err != nil {
		return nil, err
	}
	d.current = img
	return img, nil
}

// Current returns the last published result, or nil.
func (d *Dispatcher) Current() image.Image {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}
