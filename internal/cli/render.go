package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	serrors "github.com/sketchify/sketchify/pkg/errors"
	pkgio "github.com/sketchify/sketchify/pkg/io"
	"github.com/sketchify/sketchify/pkg/params"
	"github.com/sketchify/sketchify/pkg/pipeline"
)

// remoteFromConfig is the --remote value used when the flag has no argument.
const remoteFromConfig = "config"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file (single input only)
	outDir  string // output directory (default: next to each input)
	profile string // config profile name

	format     string
	quality    int
	resolution int
	aspect     string
	maxDim     int
	compare    float64

	remote        string
	fallbackLocal bool
	noCache       bool
	refresh       bool
	accel         bool
	pick          bool
	jobs          int
}

// renderJob is one input file and where its sketch goes.
type renderJob struct {
	input  string
	output string
}

// renderOutcome is the result of one job, in input order.
type renderOutcome struct {
	job    renderJob
	result *pipeline.Result
	err    error
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var ro renderOpts
	var pf *paramFlags

	cmd := &cobra.Command{
		Use:   "render [image...]",
		Short: "Render photographs as sketches",
		Long: `Render one or more images as sketches.

Every parameter can also be set in the [defaults] table or a named profile
of the config file; flags given on the command line win. Results are cached
by image content and parameters, so re-rendering the same image with the
same settings is instant.

Output files are written next to each input as <name>.sketch.<ext> unless
--output (single input) or --out-dir is given.`,
		Example: `  sketchify render portrait.jpg --style charcoal
  sketchify render *.jpg --profile noir --out-dir sketches/
  sketchify render photo.png --compare 0.5 -o before-after.png
  sketchify render photo.png --remote http://localhost:5001 --fallback-local`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args, ro, pf)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single input only)")
	cmd.Flags().StringVar(&ro.outDir, "out-dir", "", "output directory (default: next to each input)")
	cmd.Flags().StringVarP(&ro.profile, "profile", "p", "", "config profile to start from")
	cmd.Flags().StringVarP(&ro.format, "format", "f", "", "output format: png (default), jpeg, webp")
	cmd.Flags().IntVar(&ro.quality, "quality", pkgio.DefaultJPEGQuality, "JPEG quality (1-100)")
	cmd.Flags().IntVar(&ro.resolution, "resolution", 0, "output long edge in pixels (0: keep source size)")
	cmd.Flags().StringVar(&ro.aspect, "aspect", "", `crop to aspect ratio "W:H" (requires --resolution)`)
	cmd.Flags().IntVar(&ro.maxDim, "max-dimension", 0, "downscale larger inputs to this long edge (-1: no limit)")
	cmd.Flags().Float64Var(&ro.compare, "compare", 0, "export a before/after split at this fraction of the width (0-1)")
	cmd.Flags().StringVar(&ro.remote, "remote", "", "render on a remote service (no value: [remote].url from config)")
	cmd.Flags().Lookup("remote").NoOptDefVal = remoteFromConfig
	cmd.Flags().BoolVar(&ro.fallbackLocal, "fallback-local", false, "render locally when the remote service fails")
	cmd.Flags().BoolVar(&ro.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&ro.refresh, "refresh", false, "ignore cached results and re-render")
	cmd.Flags().BoolVar(&ro.accel, "accel", false, "compute edges in parallel bands")
	cmd.Flags().BoolVar(&ro.pick, "pick", false, "choose the style interactively")
	cmd.Flags().IntVarP(&ro.jobs, "jobs", "j", defaultJobs, "concurrent renders for multiple inputs")

	pf = addParamFlags(cmd.Flags())
	registerParamCompletions(cmd)

	return cmd
}

// runRender resolves parameters, renders every input and reports the results.
func (c *CLI) runRender(ctx context.Context, inputs []string, ro renderOpts, pf *paramFlags) error {
	if ro.output != "" && len(inputs) > 1 {
		return serrors.New(serrors.ErrCodeInvalidInput, "--output requires a single input (use --out-dir)")
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	p, err := resolveParams(cfg, ro.profile, pf)
	if err != nil {
		return err
	}
	if ro.pick {
		style, ok, err := pickStyle(p.Style)
		if err != nil {
			return fmt.Errorf("style picker: %w", err)
		}
		if !ok {
			printInfo("No style selected")
			return nil
		}
		p.Style = style
	}

	format, err := outputFormat(ro.format, ro.output)
	if err != nil {
		return err
	}
	remoteURL, err := resolveRemote(cfg, ro.remote)
	if err != nil {
		return err
	}

	jobs, err := planJobs(inputs, ro.output, ro.outDir, format)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, runnerOpts{noCache: ro.noCache, remoteURL: remoteURL, accel: ro.accel})
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		Params:        p,
		Resolution:    ro.resolution,
		Aspect:        ro.aspect,
		MaxDimension:  ro.maxDim,
		Format:        format,
		Quality:       ro.quality,
		Compare:       ro.compare,
		FallbackLocal: ro.fallbackLocal,
		Refresh:       ro.refresh,
		Logger:        c.Logger,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	ctx = withLogger(ctx, c.Logger)
	c.Logger.Debug("render", "style", p.Style, "medium", p.Medium, "brush", p.Brush, "inputs", len(jobs))

	prog := newProgress(c.Logger)
	outcomes := renderAll(ctx, runner, jobs, opts, ro.jobs)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return reportOutcomes(outcomes, prog)
}

// renderAll renders jobs with at most limit concurrent renders. One failing
// input does not stop the others.
func renderAll(ctx context.Context, runner *pipeline.Runner, jobs []renderJob, opts pipeline.Options, limit int) []renderOutcome {
	outcomes := make([]renderOutcome, len(jobs))
	var finished atomic.Int32

	spinner := newSpinner(ctx, spinnerMessage(jobs, 0))
	spinner.Start()
	defer spinner.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))
	var mu sync.Mutex
	for i, job := range jobs {
		g.Go(func() error {
			res, err := renderFile(gctx, runner, job, opts)
			mu.Lock()
			outcomes[i] = renderOutcome{job: job, result: res, err: err}
			mu.Unlock()
			spinner.SetMessage(spinnerMessage(jobs, int(finished.Add(1))))
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func spinnerMessage(jobs []renderJob, done int) string {
	if len(jobs) == 1 {
		return fmt.Sprintf("Rendering %s...", filepath.Base(jobs[0].input))
	}
	return fmt.Sprintf("Rendering %d/%d...", done, len(jobs))
}

// renderFile renders one input and writes its output file.
func renderFile(ctx context.Context, runner *pipeline.Runner, job renderJob, opts pipeline.Options) (*pipeline.Result, error) {
	logger := loggerFromContext(ctx)

	src, err := readInput(job.input)
	if err != nil {
		return nil, err
	}
	opts.Filename = filepath.Base(job.input)

	res, err := runner.Execute(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	if res.CacheInfo.Fallback {
		logger.Warn("remote render failed, rendered locally", "input", job.input)
	}

	if dir := filepath.Dir(job.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, serrors.Wrap(serrors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(job.output, res.Data, 0o644); err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeInvalidPath, err, "write %s", job.output)
	}
	logger.Debug("wrote sketch", "path", job.output, "bytes", len(res.Data), "seed", res.Stats.Seed)
	return res, nil
}

func readInput(path string) ([]byte, error) {
	if err := serrors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, serrors.Wrap(serrors.ErrCodeFileNotFound, err, "input %s", path)
	}
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return data, nil
}

// reportOutcomes prints one block per input and returns an error when any
// input failed.
func reportOutcomes(outcomes []renderOutcome, prog *progress) error {
	failed := 0
	for _, o := range outcomes {
		if o.err != nil {
			failed++
			printError("%s: %s", o.job.input, serrors.UserMessage(o.err))
			continue
		}
		res := o.result
		label := "Rendered " + filepath.Base(o.job.input)
		if res.CacheInfo.Fallback {
			printWarning("%s (remote failed, rendered locally)", label)
		} else {
			printSuccess("%s", label)
		}
		printFile(o.job.output)
		elapsed := res.Stats.DecodeTime + res.Stats.RenderTime + res.Stats.EncodeTime
		printStats(res.Width, res.Height, string(res.Strategy), elapsed, res.CacheInfo.Hit)
	}

	if len(outcomes) > 1 {
		prog.done("Rendered %d of %d files", len(outcomes)-failed, len(outcomes))
	}
	if failed > 0 {
		if len(outcomes) == 1 {
			return outcomes[0].err
		}
		return fmt.Errorf("%d of %d renders failed", failed, len(outcomes))
	}
	printNewline()
	printNextStep("Inspect the effect chain", "sketchify chain")
	return nil
}

// =============================================================================
// Output Planning
// =============================================================================

// outputFormat picks the format from --format, else from the --output
// extension, else PNG.
func outputFormat(flag, output string) (pkgio.Format, error) {
	if flag != "" {
		return pkgio.ParseFormat(flag)
	}
	if output != "" && filepath.Ext(output) != "" {
		return pkgio.FormatFromPath(output)
	}
	return pipeline.DefaultFormat, nil
}

// resolveRemote returns the remote service URL to use, or "" for local.
func resolveRemote(cfg *Config, flag string) (string, error) {
	if flag != remoteFromConfig {
		return flag, nil
	}
	if cfg.Remote.URL == "" {
		return "", serrors.New(serrors.ErrCodeInvalidInput, "--remote without a URL needs [remote].url in the config file")
	}
	return cfg.Remote.URL, nil
}

// planJobs maps every input to its output path and rejects duplicates.
func planJobs(inputs []string, output, outDir string, f pkgio.Format) ([]renderJob, error) {
	jobs := make([]renderJob, 0, len(inputs))
	seen := make(map[string]string, len(inputs))
	for _, in := range inputs {
		out := output
		if out == "" {
			var err error
			if out, err = sketchPath(in, outDir, f); err != nil {
				return nil, err
			}
		}
		if prev, ok := seen[out]; ok {
			return nil, serrors.New(serrors.ErrCodeInvalidInput, "%s and %s would both write %s", prev, in, out)
		}
		seen[out] = in
		jobs = append(jobs, renderJob{input: in, output: out})
	}
	return jobs, nil
}

// sketchPath derives "<dir>/<name>.sketch.<ext>" for input.
func sketchPath(input, outDir string, f pkgio.Format) (string, error) {
	base := filepath.Base(input)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".sketch" + f.Ext()
	if err := serrors.ValidateOutputName(name); err != nil {
		return "", err
	}
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, name), nil
}

// styleLabel is the display name of a style.
func styleLabel(s params.Style) string {
	if s == params.StyleDefault {
		return "default (line)"
	}
	return string(s)
}
