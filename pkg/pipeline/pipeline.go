// Package pipeline turns an encoded photo into an encoded sketch.
//
// This package implements the decode → render → encode pipeline shared by
// the CLI and the render service, so both entry points size images, pick a
// render strategy and cache results the same way.
//
// # Strategies
//
// A render runs either locally, through a [compositor.Compositor], or on a
// remote render service through a [remote.Client]. A remote failure is
// returned as a REMOTE_RENDER_FAILED error unless [Options.FallbackLocal] is
// set, in which case the runner logs a warning and renders locally.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, photo, pipeline.Options{
//	    Params: params.Default(),
//	    Format: io.FormatPNG,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("sketch.png", res.Data, 0o644)
//
// # Caching
//
// Deterministic renders are cached by the hash of the source bytes plus
// every output-affecting option. Non-deterministic renders are never cached.
package pipeline

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sketchify/sketchify/pkg/cache"
	"github.com/sketchify/sketchify/pkg/errors"
	pkgio "github.com/sketchify/sketchify/pkg/io"
	"github.com/sketchify/sketchify/pkg/params"
	"github.com/sketchify/sketchify/pkg/raster"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultFormat is the default output encoding.
	DefaultFormat = pkgio.FormatPNG

	// DefaultMaxDimension caps the working size when no resolution is given.
	DefaultMaxDimension = raster.MaxDimension
)

// Strategy names where a render ran.
type Strategy string

const (
	StrategyLocal  Strategy = "local"
	StrategyRemote Strategy = "remote"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	Params params.Parameters `json:"params"`

	// Sizing. With Resolution > 0 the image is cover-cropped to Aspect
	// ("W:H", empty keeps the source aspect). Otherwise it is scaled down
	// to MaxDimension; a negative MaxDimension keeps the source size.
	Resolution   int    `json:"resolution,omitempty"`
	Aspect       string `json:"aspect,omitempty"`
	MaxDimension int    `json:"max_dimension,omitempty"`

	// Output.
	Format  pkgio.Format `json:"format,omitempty"`
	Quality int          `json:"quality,omitempty"`
	// Compare, when in (0,1], exports a before/after split at that fraction
	// of the width instead of the plain sketch.
	Compare float64 `json:"compare,omitempty"`

	// Remote strategy. Only used when the runner has a remote client.
	FallbackLocal bool `json:"fallback_local,omitempty"`

	// Refresh bypasses cached results (the new result is still stored).
	Refresh bool `json:"refresh,omitempty"`

	// Filename is passed to the remote service.
	Filename string `json:"filename,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Data is the encoded output.
	Data []byte
	// Format is the encoding of Data.
	Format pkgio.Format
	// SourceHash is the SHA-256 of the input bytes.
	SourceHash string
	// Strategy is where the sketch was rendered. Cached results report the
	// strategy that produced them.
	Strategy Strategy
	// Width and Height are the output dimensions.
	Width, Height int

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	DecodeTime time.Duration
	RenderTime time.Duration
	EncodeTime time.Duration
	Seed       uint32
}

// CacheInfo reports cache usage.
type CacheInfo struct {
	Key string // Empty when the run was not cacheable
	Hit bool   // Whether Data came from the cache
	// Fallback is set when the remote strategy failed and the local one
	// produced the result.
	Fallback bool
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks options and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if _, err := pkgio.ParseFormat(string(o.Format)); err != nil {
		return err
	}
	if o.MaxDimension == 0 {
		o.MaxDimension = DefaultMaxDimension
	}
	if o.Resolution < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "resolution must not be negative")
	}
	if o.Aspect != "" {
		if _, _, err := raster.ParseAspect(o.Aspect); err != nil {
			return err
		}
	}
	if math.IsNaN(o.Compare) || o.Compare < 0 || o.Compare > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "compare must be within [0,1]")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.Params = o.Params.Normalize()
	o.validated = true
	return nil
}

// limit returns the working-size cap passed to the compositor.
func (o *Options) limit() int {
	if o.MaxDimension < 0 {
		return 0
	}
	return o.MaxDimension
}

// Cacheable reports whether the output is a pure function of the inputs.
func (o *Options) Cacheable() bool {
	return o.Params.Deterministic
}

// ArtifactKeyOpts returns cache key options for this run. Call it after
// ValidateAndSetDefaults so the default size cap is part of the key.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Params:       o.Params,
		Format:       string(o.Format),
		Quality:      o.Quality,
		Resolution:   o.Resolution,
		Aspect:       o.Aspect,
		Compare:      o.Compare,
		MaxDimension: o.limit(),
	}
}
