package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxgrid/pkg/errors"
	pkgio "github.com/matzehuels/boxgrid/pkg/io"
	"github.com/matzehuels/boxgrid/pkg/rect"
)

// discretizeCommand creates the discretize command.
func (c *CLI) discretizeCommand() *cobra.Command {
	var (
		output string
		format string
		units  int
	)

	cmd := &cobra.Command{
		Use:   "discretize [rects file]",
		Short: "Map real-valued rectangles onto an integer grid",
		Long: `Map real-valued rectangles onto an integer grid.

The global minimum and maximum coordinate map to 1 and --units. Start
coordinates round down and end coordinates round up.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: fileArgs(rectExts...),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, false, units)
			if opts.Units == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--units is required (or set units in the config file)")
			}
			f, err := pkgio.ParseFormat(format)
			if err != nil {
				return err
			}
			return c.runDiscretize(args[0], output, f, opts.Units)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output rectangle file; format from extension (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "stdout format: json, toml, yaml")
	cmd.Flags().IntVar(&units, "units", 0, "grid resolution (at least 2)")

	return cmd
}

func (c *CLI) runDiscretize(input, output string, format pkgio.Format, units int) error {
	coords, err := pkgio.ImportCoords(input)
	if err != nil {
		return err
	}
	set, err := rect.Discretize(coords, units)
	if err != nil {
		return fmt.Errorf("discretize %s: %w", input, err)
	}

	if output == "" {
		return pkgio.WriteRects(c.out, set, format)
	}
	if err := pkgio.ExportRects(set, output); err != nil {
		return err
	}
	h, w := set.Bounds()
	printSuccess(c.out, "Discretized %d rectangles onto %d units", len(set), units)
	printDetail(c.out, "Grid: %dx%d", h, w)
	printFile(c.out, output)
	return nil
}
