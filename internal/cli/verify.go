package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxgrid/pkg/pipeline"
)

// verifyCommand creates the verify command.
func (c *CLI) verifyCommand() *cobra.Command {
	var units int

	cmd := &cobra.Command{
		Use:   "verify [rects file]",
		Short: "Check that a rectangle set survives an encode/decode round trip",
		Long: `Check that a rectangle set survives an encode/decode round trip.

The set is encoded with labels, the grid is decoded, and the decoded set is
compared with the input. Overlapping or touching frames usually fail here.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: fileArgs(rectExts...),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, true, units)
			return c.runVerify(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().IntVar(&units, "units", 0, "discretize real-valued input onto [1, units]")

	return cmd
}

func (c *CLI) runVerify(ctx context.Context, input string, opts pipeline.Options) error {
	set, err := pipeline.LoadRects(input, opts.Units)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Verify(ctx, set, opts)
	if err != nil {
		printError(c.errOut, "Round trip failed for %s", input)
		return err
	}
	prog.done("Verified round trip")

	printSuccess(c.out, "Round trip verified")
	printKeyValue(c.out, "rectangles", fmt.Sprint(res.Stats.Rects))
	printKeyValue(c.out, "grid", fmt.Sprintf("%dx%d", res.Stats.Height, res.Stats.Width))
	printKeyValue(c.out, "encode", cacheOrDuration(res.CacheInfo.EncodeHit, res.Stats.EncodeTime.String()))
	printKeyValue(c.out, "decode", cacheOrDuration(res.CacheInfo.DecodeHit, res.Stats.DecodeTime.String()))
	return nil
}

func cacheOrDuration(hit bool, d string) string {
	if hit {
		return iconCached
	}
	return d
}
