package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sketchify/sketchify/pkg/api"
)

// serveCommand runs the HTTP render service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		accel   bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Long: `Serve the render API over HTTP.

The service accepts the same multipart form the --remote strategy sends, so
one sketchify instance can render for others. Settings not given as flags
come from the [server] table of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), cmd.Flags().Changed("addr"), addr, noCache, accel, timeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", api.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&accel, "accel", false, "compute edges in parallel bands")
	cmd.Flags().DurationVar(&timeout, "render-timeout", api.DefaultRenderTimeout, "per-request render timeout")

	return cmd
}

// serviceKeyPrefix keeps service artifacts apart from CLI renders when both
// share a cache backend.
const serviceKeyPrefix = "api:"

func (c *CLI) runServe(ctx context.Context, addrSet bool, addr string, noCache, accel bool, timeout time.Duration) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, runnerOpts{noCache: noCache, accel: accel, keyPrefix: serviceKeyPrefix})
	if err != nil {
		return err
	}
	defer runner.Close()

	sc := api.Config{
		Addr:          cfg.Server.Addr,
		MaxUpload:     cfg.Server.MaxUpload,
		MaxDimension:  cfg.Server.MaxDimension,
		RenderTimeout: timeout,
		AllowOrigin:   cfg.Server.AllowOrigin,
	}
	if addrSet || sc.Addr == "" {
		sc.Addr = addr
	}
	srv := api.New(runner, sc, c.Logger)

	printSuccess("Serving on %s", StyleLink.Render(displayURL(srv.Addr())))
	printDetail("POST /api/style-transfer-advanced")
	printNewline()
	printNextStep("Render through it", "sketchify render photo.jpg --remote "+displayURL(srv.Addr()))

	err = srv.ListenAndServe(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// displayURL turns a listen address into a clickable URL.
func displayURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
