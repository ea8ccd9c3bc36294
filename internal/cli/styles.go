package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	serrors "github.com/sketchify/sketchify/pkg/errors"
	"github.com/sketchify/sketchify/pkg/params"
)

// stylesCommand lists the available styles, media, brushes and textures.
func (c *CLI) stylesCommand() *cobra.Command {
	var family string

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List sketch styles and the other enumerated parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			styles, err := filterStyles(family)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, stylesTable(styles))
			printNewline()
			printKeyValue("Default", styleLabel(params.StyleDefault))
			printKeyValue("Media", joinValues(params.Media))
			printKeyValue("Brushes", joinValues(params.Brushes))
			printKeyValue("Textures", joinValues(params.Textures))
			printNewline()
			printNextStep("Try one", "sketchify render photo.jpg --style "+string(styles[0].ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&family, "family", "", "only list one family: threshold, tonal, marks, layered")
	_ = cmd.RegisterFlagCompletionFunc("family", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return stringsOf(params.Families), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// filterStyles returns the styles of family, or all of them for "".
func filterStyles(family string) ([]params.StyleInfo, error) {
	if family == "" {
		return params.Styles, nil
	}
	f := params.Family(strings.ToLower(family))
	styles := params.StylesIn(f)
	if len(styles) == 0 {
		return nil, serrors.New(serrors.ErrCodeInvalidInput,
			"unknown family %q (must be one of: %s)", family, joinValues(params.Families))
	}
	return styles, nil
}

func stylesTable(styles []params.StyleInfo) string {
	return catalogTable(styles, nil, -1)
}

func stringsOf[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

func joinValues[T ~string](vs []T) string {
	return strings.Join(stringsOf(vs), ", ")
}
