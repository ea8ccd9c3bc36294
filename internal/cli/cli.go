// Package cli implements the sketchify command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sketchify/sketchify/pkg/buildinfo"
	"github.com/sketchify/sketchify/pkg/cache"
	"github.com/sketchify/sketchify/pkg/edge"
	"github.com/sketchify/sketchify/pkg/pipeline"
	"github.com/sketchify/sketchify/pkg/remote"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "sketchify"

	// defaultJobs bounds concurrent renders in a batch.
	defaultJobs = 4
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag; empty means the XDG default.
	configPath string
	config     *Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. Debug level also installs the
// logging observability hooks.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		installLogHooks(c.Logger)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Sketchify turns photographs into hand-drawn sketches",
		Long:         `Sketchify renders photographs as pencil, charcoal, ink and painterly sketches using edge detection, procedural marks and a configurable post-effect chain.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/sketchify/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.stylesCommand())
	root.AddCommand(c.chainCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file once per process.
func (c *CLI) loadConfig() (*Config, error) {
	if c.config != nil {
		return c.config, nil
	}
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return nil, err
	}
	if cfg.path != "" {
		c.Logger.Debug("loaded config", "path", cfg.path)
	}
	c.config = cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// runnerOpts selects how newRunner builds the pipeline runner.
type runnerOpts struct {
	noCache   bool
	remoteURL string
	accel     bool
	keyPrefix string // scopes cache keys, e.g. "api:" for the render service
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, ro runnerOpts) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := newCache(ctx, cfg, ro.noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if ro.keyPrefix != "" {
		keyer = cache.NewScopedKeyer(nil, ro.keyPrefix)
	}
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	if ttl, _ := cfg.cacheTTL(); ttl > 0 {
		runner.TTL = ttl
	}
	if ro.accel {
		runner.Detector = edge.NewDetector(edge.NewTiledAccelerator(0), c.Logger)
	}

	url := ro.remoteURL
	if url == "" {
		return runner, nil
	}
	timeout, _ := cfg.remoteTimeout()
	client, err := remote.NewClient(url, timeout, c.Logger)
	if err != nil {
		runner.Close()
		return nil, err
	}
	runner.Remote = client
	return runner, nil
}

// newCache builds the artifact cache for the configured backend.
func newCache(ctx context.Context, cfg *Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case cacheBackendNone:
		return cache.NewNullCache(), nil
	case cacheBackendRedis:
		r := cfg.Cache.Redis
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     r.Addr,
			Password: r.Password,
			DB:       r.DB,
			Prefix:   r.Prefix,
		})
	}
	dir, err := cfg.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory or the XDG default.
func (c *Config) cacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/sketchify/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/sketchify/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
