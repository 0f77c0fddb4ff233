package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxgrid/pkg/codec"
	pkgio "github.com/matzehuels/boxgrid/pkg/io"
	"github.com/matzehuels/boxgrid/pkg/pipeline"
)

// spinnerCells is the grid size from which decode shows a spinner.
const spinnerCells = 1 << 20

// decodeCommand creates the decode command.
func (c *CLI) decodeCommand() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "decode [grid.txt]",
		Short: "Recover the ordered rectangle set from a labeled grid",
		Long: `Recover the ordered rectangle set from a labeled grid.

The decoded set is re-encoded and compared with the input before it is
returned. If they differ, the mismatching cells are shown highlighted.

Rectangles are written to stdout as JSON unless --format or -o says otherwise.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: fileArgs(gridExts...),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := pkgio.ParseFormat(format)
			if err != nil {
				return err
			}
			opts := c.options(cmd, false, 0)
			return c.runDecode(cmd.Context(), args[0], output, f, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output rectangle file; format from extension (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "stdout format: json, toml, yaml")

	return cmd
}

func (c *CLI) runDecode(ctx context.Context, input, output string, format pkgio.Format, opts pipeline.Options) error {
	g, err := pkgio.ImportGrid(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var spinner *Spinner
	if g.Height()*g.Width() >= spinnerCells {
		spinner = newSpinner(ctx, c.errOut, "Decoding grid...")
		spinner.Start()
	}
	res, err := runner.Decode(ctx, g, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		var mm *codec.MismatchError
		if stderrors.As(err, &mm) {
			printError(c.errOut, "Reconstruction does not match the input (%d cells)", mm.Cells)
			fmt.Fprintln(c.errOut, renderMismatch(g, mm))
		}
		return fmt.Errorf("decode %s: %w", input, err)
	}

	if output == "" {
		return pkgio.WriteRects(c.out, res.Set, format)
	}
	if err := pkgio.ExportRects(res.Set, output); err != nil {
		return err
	}
	printSuccess(c.out, "Decoded %d rectangles", res.Stats.Rects)
	printStats(c.out, res.Stats.Rects, res.Stats.Height, res.Stats.Width, res.CacheInfo.DecodeHit)
	printFile(c.out, output)
	return nil
}
