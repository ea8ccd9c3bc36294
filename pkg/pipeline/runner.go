package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sketchify/sketchify/pkg/cache"
	"github.com/sketchify/sketchify/pkg/edge"
	"github.com/sketchify/sketchify/pkg/errors"
	"github.com/sketchify/sketchify/pkg/observability"
	"github.com/sketchify/sketchify/pkg/raster"
	"github.com/sketchify/sketchify/pkg/remote"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching and fallback logic.
//
// The Runner is stateless except for its collaborators; every Execute gets
// its own compositor. Multiple goroutines can safely share one Runner.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	Detector *edge.Detector
	// Remote, when set, renders on a remote service instead of locally.
	Remote *remote.Client
	// TTL overrides the cache lifetime of stored artifacts when positive.
	TTL time.Duration

	now func() time.Time
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Detector: edge.NewDetector(nil, logger),
		now:      time.Now,
	}
}

// Execute runs the complete decode → render → encode pipeline with caching.
func (r *Runner) Execute(ctx context.Context, src []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	res := &Result{
		Format:     opts.Format,
		SourceHash: cache.Hash(src),
	}

	if opts.Cacheable() {
		res.CacheInfo.Key = r.cacheKey(res.SourceHash, opts)
		if !opts.Refresh {
			if data, hit := r.lookup(ctx, res.CacheInfo.Key); hit {
				res.Data = data
				res.CacheInfo.Hit = true
				res.Strategy = r.strategy()
				res.Stats.Seed = opts.Params.Seed
				r.fillSize(res)
				opts.Logger.Debug("cache hit", "key", res.CacheInfo.Key)
				return res, nil
			}
		}
	}

	// Resolve the seed once so remote, fallback and stats agree.
	opts.Params.Seed = opts.Params.EffectiveSeed(r.now())
	opts.Params.Deterministic = true
	res.Stats.Seed = opts.Params.Seed

	out, err := r.render(ctx, src, opts, res)
	if err != nil {
		return nil, err
	}
	res.Width, res.Height = out.Width, out.Height

	encodeStart := time.Now()
	data, err := encode(out, opts)
	if err != nil {
		return nil, err
	}
	res.Data = data
	res.Stats.EncodeTime = time.Since(encodeStart)

	// A fallback result is not what the remote would have produced.
	if res.CacheInfo.Key != "" && !res.CacheInfo.Fallback {
		r.store(ctx, res.CacheInfo.Key, data)
	}

	opts.Logger.Info("rendered sketch",
		"style", opts.Params.Style,
		"strategy", res.Strategy,
		"size", fmt.Sprintf("%dx%d", res.Width, res.Height),
		"duration", res.Stats.RenderTime)
	return res, nil
}

// render picks the strategy and applies the remote fallback policy.
func (r *Runner) render(ctx context.Context, src []byte, opts Options, res *Result) (*raster.Bitmap, error) {
	if r.Remote == nil {
		res.Strategy = StrategyLocal
		return r.renderLocal(ctx, src, opts, res)
	}

	res.Strategy = StrategyRemote
	out, err := r.renderRemote(ctx, src, opts, res)
	if err == nil {
		return out, nil
	}
	if !opts.FallbackLocal || !errors.Is(err, errors.ErrCodeRemoteRender) {
		return nil, err
	}
	opts.Logger.Warn("remote render failed, rendering locally", "url", r.Remote.BaseURL(), "err", err)
	res.Strategy = StrategyLocal
	res.CacheInfo.Fallback = true
	return r.renderLocal(ctx, src, opts, res)
}

func (r *Runner) strategy() Strategy {
	if r.Remote != nil {
		return StrategyRemote
	}
	return StrategyLocal
}

func (r *Runner) cacheKey(sourceHash string, opts Options) string {
	if r.Remote != nil {
		return r.Keyer.RemoteKey(r.Remote.BaseURL(), sourceHash, opts.ArtifactKeyOpts())
	}
	return r.Keyer.ArtifactKey(sourceHash, opts.ArtifactKeyOpts())
}

func (r *Runner) lookup(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, key)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, key)
	return data, true
}

func (r *Runner) store(ctx context.Context, key string, data []byte) {
	ttl := cache.TTLArtifact
	if r.Remote != nil {
		ttl = cache.TTLRemote
	}
	if r.TTL > 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
}

// fillSize reads the dimensions of a cached result.
func (r *Runner) fillSize(res *Result) {
	if w, h, err := encodedSize(res.Data); err == nil {
		res.Width, res.Height = w, h
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
