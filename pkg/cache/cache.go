// Package cache stores rendered artifacts between runs.
//
// The [Cache] interface is a plain byte store with per-entry TTLs. Three
// backends ship with the package:
//
//   - [FileCache]: expiry-prefixed entry files under a directory, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by the render service
//   - [NullCache]: never stores anything (--no-cache)
//
// Keys are produced by a [Keyer] so every caller derives the same key from
// the same source image and parameter set.
package cache

import (
	"context"
	"time"

	"github.com/sketchify/sketchify/pkg/params"
)

// Cache is a byte store with expiring entries.
type Cache interface {
	// Get returns the entry for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLs per entry kind.
const (
	// TTLArtifact applies to locally rendered sketches. Local output is a
	// pure function of the key, so entries live long.
	TTLArtifact = 30 * 24 * time.Hour

	// TTLRemote applies to sketches produced by a remote render service,
	// whose implementation may change underneath us.
	TTLRemote = 24 * time.Hour
)

// ArtifactKeyOpts holds everything besides the source image that changes
// the encoded output of a render.
type ArtifactKeyOpts struct {
	Params       params.Parameters `json:"params"`
	Format       string            `json:"format"`
	Quality      int               `json:"quality,omitempty"`
	Resolution   int               `json:"resolution,omitempty"`
	Aspect       string            `json:"aspect,omitempty"`
	Compare      float64           `json:"compare,omitempty"`
	MaxDimension int               `json:"max_dimension,omitempty"` // 0 for unbounded
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey keys a locally rendered artifact.
	ArtifactKey(imageHash string, opts ArtifactKeyOpts) string
	// RemoteKey keys an artifact rendered by the service at baseURL.
	RemoteKey(baseURL, imageHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes every key component with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(imageHash string, opts ArtifactKeyOpts) string {
	opts.Params = opts.Params.Normalize()
	return hashKey("artifact", imageHash, opts)
}

// RemoteKey returns "remote:<sha256>".
func (DefaultKeyer) RemoteKey(baseURL, imageHash string, opts ArtifactKeyOpts) string {
	opts.Params = opts.Params.Normalize()
	return hashKey("remote", baseURL, imageHash, opts)
}
