package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sketchify/sketchify/pkg/observability"
)

// newLogger writes leveled logs with "15:04:05.00" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the elapsed time of a command, e.g. "Rendered 3 of 3 files (1.234s)".
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(format string, args ...any) {
	p.logger.Infof("%s (%s)", fmt.Sprintf(format, args...), time.Since(p.start).Round(time.Millisecond))
}

type loggerKey struct{}

// withLogger attaches l so per-file render goroutines log through the CLI logger.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the attached logger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// installLogHooks routes pipeline, cache and HTTP events to debug logs.
func installLogHooks(l *log.Logger) {
	observability.Install(logHooks{logger: l.WithPrefix("trace")})
}

type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnRenderStart(_ context.Context, style string, width, height int) {
	h.logger.Debug("render start", "style", style, "width", width, "height", height)
}

func (h logHooks) OnRenderComplete(_ context.Context, style string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "style", style, "took", d, "err", err)
		return
	}
	h.logger.Debug("render done", "style", style, "took", d)
}

func (h logHooks) OnDetectComplete(_ context.Context, accelerator string, d time.Duration) {
	if accelerator == "" {
		accelerator = "cpu"
	}
	h.logger.Debug("edges", "accel", accelerator, "took", d)
}

func (h logHooks) OnStyleComplete(_ context.Context, style string, d time.Duration) {
	h.logger.Debug("style", "name", style, "took", d)
}

func (h logHooks) OnStageComplete(_ context.Context, stage string, d time.Duration) {
	h.logger.Debug("stage", "name", stage, "took", d)
}

func (h logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", shortKey(key))
}

func (h logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", shortKey(key))
}

func (h logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", shortKey(key), "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "took", d)
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

func shortKey(key string) string {
	if len(key) > 16 {
		return key[:16]
	}
	return key
}
