package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/BurntSushi/toml"

	serrors "github.com/sketchify/sketchify/pkg/errors"
	"github.com/sketchify/sketchify/pkg/params"
)

// =============================================================================
// Config File
// =============================================================================

// Cache backends selectable in the [cache] table.
const (
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendNone  = "none"
)

// Config is the optional config.toml.
//
//	[defaults]
//	style = "hatching"
//	intensity = 7
//
//	[profiles.noir]
//	style = "charcoal"
//	invert = true
//
//	[cache]
//	backend = "redis"
//	ttl = "72h"
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":5001"
//
//	[remote]
//	url = "http://localhost:5001"
//	timeout = "30s"
type Config struct {
	Defaults paramTable            `toml:"defaults"`
	Profiles map[string]paramTable `toml:"profiles"`
	Cache    cacheConfig           `toml:"cache"`
	Server   serverConfig          `toml:"server"`
	Remote   remoteConfig          `toml:"remote"`

	// path is where the config was read from, empty when none exists.
	path string
}

type cacheConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`
	TTL     string      `toml:"ttl"`
	Redis   redisConfig `toml:"redis"`
}

type redisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

type serverConfig struct {
	Addr         string `toml:"addr"`
	MaxUpload    int64  `toml:"max_upload"`
	MaxDimension int    `toml:"max_dimension"`
	AllowOrigin  string `toml:"allow_origin"`
}

type remoteConfig struct {
	URL     string `toml:"url"`
	Timeout string `toml:"timeout"`
}

// paramTable is a partial parameter set. Unset keys leave the value below
// them untouched.
type paramTable struct {
	Style          *string  `toml:"style"`
	Medium         *string  `toml:"medium"`
	Brush          *string  `toml:"brush"`
	Intensity      *int     `toml:"intensity"`
	Stroke         *int     `toml:"stroke"`
	Smoothing      *int     `toml:"smoothing"`
	Seed           *int64   `toml:"seed"`
	Deterministic  *bool    `toml:"deterministic"`
	SkipHatching   *bool    `toml:"skip_hatching"`
	Colorize       *bool    `toml:"colorize"`
	Invert         *bool    `toml:"invert"`
	Contrast       *float64 `toml:"contrast"`
	Saturation     *float64 `toml:"saturation"`
	HueShift       *int     `toml:"hue_shift"`
	Texture        *string  `toml:"texture"`
	TextureOpacity *int     `toml:"texture_opacity"`
	Zoom           *float64 `toml:"zoom"`
	PanX           *float64 `toml:"pan_x"`
	PanY           *float64 `toml:"pan_y"`
}

// apply overlays the set keys of t onto p.
func (t paramTable) apply(p *params.Parameters) error {
	var err error
	if t.Style != nil {
		if p.Style, err = params.ParseStyle(*t.Style); err != nil {
			return err
		}
	}
	if t.Medium != nil {
		if p.Medium, err = params.ParseMedium(*t.Medium); err != nil {
			return err
		}
	}
	if t.Brush != nil {
		if p.Brush, err = params.ParseBrush(*t.Brush); err != nil {
			return err
		}
	}
	if t.Texture != nil {
		if p.Texture, err = params.ParseTexture(*t.Texture); err != nil {
			return err
		}
	}
	if t.Seed != nil {
		if *t.Seed < 0 || *t.Seed > int64(^uint32(0)) {
			return serrors.New(serrors.ErrCodeInvalidInput, "seed %d out of range", *t.Seed)
		}
		p.Seed = uint32(*t.Seed)
	}
	setInt(&p.Intensity, t.Intensity)
	setInt(&p.StrokeWeight, t.Stroke)
	setInt(&p.Smoothing, t.Smoothing)
	setInt(&p.HueShift, t.HueShift)
	setInt(&p.TextureOpacity, t.TextureOpacity)
	setBool(&p.Deterministic, t.Deterministic)
	setBool(&p.SkipHatching, t.SkipHatching)
	setBool(&p.Colorize, t.Colorize)
	setBool(&p.Invert, t.Invert)
	setFloat(&p.Contrast, t.Contrast)
	setFloat(&p.Saturation, t.Saturation)
	setFloat(&p.Zoom, t.Zoom)
	setFloat(&p.PanX, t.PanX)
	setFloat(&p.PanY, t.PanY)
	return nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// loadConfig reads the config at path. An empty path reads the default
// location, where a missing file is not an error.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return &Config{}, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return &Config{}, nil
	}
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeFileNotFound, err, "read config")
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	cfg.path = path
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case "", cacheBackendFile, cacheBackendRedis, cacheBackendNone:
	default:
		return serrors.New(serrors.ErrCodeInvalidInput,
			"cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.Backend == cacheBackendRedis && c.Cache.Redis.Addr == "" {
		return serrors.New(serrors.ErrCodeInvalidInput, "cache.redis.addr is required for the redis backend")
	}
	if _, err := c.cacheTTL(); err != nil {
		return err
	}
	if _, err := c.remoteTimeout(); err != nil {
		return err
	}
	return nil
}

// Params resolves the parameter set for profile: built-in defaults, then
// [defaults], then [profiles.<profile>].
func (c *Config) Params(profile string) (params.Parameters, error) {
	p := params.Default()
	if err := c.Defaults.apply(&p); err != nil {
		return p, fmt.Errorf("[defaults]: %w", err)
	}
	if profile == "" {
		return p, nil
	}
	t, ok := c.Profiles[profile]
	if !ok {
		return p, serrors.New(serrors.ErrCodeInvalidInput,
			"unknown profile %q (available: %v)", profile, c.ProfileNames())
	}
	if err := t.apply(&p); err != nil {
		return p, fmt.Errorf("[profiles.%s]: %w", profile, err)
	}
	return p, nil
}

// ProfileNames lists the configured profiles alphabetically.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Config) cacheTTL() (time.Duration, error) {
	return parseDuration("cache.ttl", c.Cache.TTL)
}

func (c *Config) remoteTimeout() (time.Duration, error) {
	return parseDuration("remote.timeout", c.Remote.Timeout)
}

func parseDuration(key, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, serrors.New(serrors.ErrCodeInvalidInput, "%s: invalid duration %q", key, s)
	}
	return d, nil
}
