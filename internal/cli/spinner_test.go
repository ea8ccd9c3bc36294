package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// lockedBuffer guards a bytes.Buffer against the spinner goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func startSpinner(ctx context.Context, msg string) (*Spinner, *lockedBuffer) {
	out := &lockedBuffer{}
	s := newSpinner(ctx, msg)
	s.w = out
	s.Start()
	return s, out
}

func TestSpinnerOutput(t *testing.T) {
	tests := []struct {
		name   string
		update string
		want   string
	}{
		{"initial message", "", "Rendering portrait.jpg"},
		{"updated message", "Rendering 2/3", "Rendering 2/3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, out := startSpinner(context.Background(), "Rendering portrait.jpg")
			if tt.update != "" {
				s.SetMessage(tt.update)
			}
			time.Sleep(3 * spinnerInterval)
			s.Stop()

			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("spinner output %q does not contain %q", out.String(), tt.want)
			}
			if !strings.HasSuffix(out.String(), "\r") {
				t.Errorf("spinner output %q should end with a cleared line", out.String())
			}
		})
	}
}

func TestSpinnerParentCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), spinnerInterval/2)
	defer cancel()

	s, _ := startSpinner(ctx, "Rendering 1/1")
	select {
	case <-s.exited:
	case <-time.After(time.Second):
		t.Fatal("spinner did not exit after its parent context ended")
	}
	if !s.Cancelled() {
		t.Error("Cancelled() = false after parent cancellation, want true")
	}
}

func TestSpinnerStopTwice(t *testing.T) {
	s, _ := startSpinner(context.Background(), "Rendering 1/2")
	s.Stop()
	s.Stop()
	if !s.Cancelled() {
		t.Error("Cancelled() = false after Stop, want true")
	}
}
