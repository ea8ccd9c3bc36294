package cli

import (
	"context"
	"os"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/sketchify/sketchify/pkg/effects"
	serrors "github.com/sketchify/sketchify/pkg/errors"
)

// Chain diagram output formats.
const (
	chainFormatSVG = "svg"
	chainFormatPNG = "png"
	chainFormatDOT = "dot"
)

// chainCommand draws the render path for a parameter set.
func (c *CLI) chainCommand() *cobra.Command {
	var (
		output  string
		format  string
		profile string
	)
	var pf *paramFlags

	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Draw the effect chain for a set of parameters",
		Long: `Draw the render path (edge detection, style, post-effect stages) for the
given parameters as a Graphviz diagram. Stages that have no effect with these
parameters are drawn dashed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			p, err := resolveParams(cfg, profile, pf)
			if err != nil {
				return err
			}
			data, err := renderChain(cmd.Context(), effects.ToDOT(p), format)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return serrors.Wrap(serrors.ErrCodeInvalidPath, err, "write %s", output)
			}
			printSuccess("Effect chain for %s", StyleHighlight.Render(styleLabel(p.Style)))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", chainFormatSVG, "diagram format: svg, png, dot")
	cmd.Flags().StringVarP(&profile, "profile", "p", "", "config profile to start from")
	pf = addParamFlags(cmd.Flags())
	registerParamCompletions(cmd)
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{chainFormatSVG, chainFormatPNG, chainFormatDOT}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// renderChain converts the DOT source to the requested format.
func renderChain(ctx context.Context, dot, format string) ([]byte, error) {
	switch format {
	case chainFormatDOT:
		return []byte(dot), nil
	case chainFormatSVG:
		return effects.RenderDOT(ctx, dot, graphviz.SVG)
	case chainFormatPNG:
		return effects.RenderDOT(ctx, dot, graphviz.PNG)
	}
	return nil, serrors.New(serrors.ErrCodeInvalidFormat, "invalid format: %s (must be 'svg', 'png', or 'dot')", format)
}
