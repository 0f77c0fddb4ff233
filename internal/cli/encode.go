package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxgrid/pkg/grid"
	pkgio "github.com/matzehuels/boxgrid/pkg/io"
	"github.com/matzehuels/boxgrid/pkg/pipeline"
)

// encodeCommand creates the encode command.
func (c *CLI) encodeCommand() *cobra.Command {
	var (
		output string
		labels bool
		units  int
	)

	cmd := &cobra.Command{
		Use:   "encode [rects.json|rects.toml|rects.yaml]",
		Short: "Draw a rectangle set as a character grid",
		Long: `Draw a rectangle set as a character grid.

The input file holds a single "rects" array of [x1, y1, x2, y2] tuples with
1-based inclusive coordinates (x is the row, y the column). Rectangle i is
labeled i+1 at its top-left corner unless --labels=false.

With --units N, real-valued coordinates are first discretized onto [1, N].`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: fileArgs(rectExts...),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, labels, units)
			return c.runEncode(cmd.Context(), args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output grid file (default stdout)")
	cmd.Flags().BoolVar(&labels, "labels", true, "draw rectangle labels")
	cmd.Flags().IntVar(&units, "units", 0, "discretize real-valued input onto [1, units]")

	return cmd
}

func (c *CLI) runEncode(ctx context.Context, input, output string, opts pipeline.Options) error {
	set, err := pipeline.LoadRects(input, opts.Units)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Encode(ctx, set, opts)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if output == "" {
		return grid.Write(c.out, res.Grid)
	}
	if err := pkgio.ExportGrid(res.Grid, output); err != nil {
		return err
	}
	printSuccess(c.out, "Encoded %d rectangles", res.Stats.Rects)
	printStats(c.out, res.Stats.Rects, res.Stats.Height, res.Stats.Width, res.CacheInfo.EncodeHit)
	printFile(c.out, output)
	if opts.Labels {
		printNextStep(c.out, "Decode it", appName+" decode "+output)
	}
	return nil
}
