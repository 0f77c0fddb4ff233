package cli

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxgrid/pkg/grid"
	pkgio "github.com/matzehuels/boxgrid/pkg/io"
	"github.com/matzehuels/boxgrid/pkg/pipeline"
	"github.com/matzehuels/boxgrid/pkg/rect"
)

// viewCommand creates the interactive view command.
func (c *CLI) viewCommand() *cobra.Command {
	var units int

	cmd := &cobra.Command{
		Use:   "view [rects file|grid.txt]",
		Short: "Browse the rectangles of a set or grid interactively",
		Long: `Browse the rectangles of a set or grid interactively.

A rectangle file (.json, .toml, .yaml) is encoded with labels first; any
other file is read as a grid and decoded. The selected rectangle's frame is
highlighted.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: fileArgs(append(rectExts, gridExts...)...),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, true, units)
			opts.Labels = true
			m, err := c.loadView(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().IntVar(&units, "units", 0, "discretize real-valued input onto [1, units]")

	return cmd
}

// loadView builds the view model for path, encoding or decoding as needed.
func (c *CLI) loadView(ctx context.Context, path string, opts pipeline.Options) (GridViewModel, error) {
	runner, err := c.newRunner()
	if err != nil {
		return GridViewModel{}, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var (
		g   *grid.Grid
		set rect.Set
	)
	if pkgio.IsRectFile(path) {
		set, err = pipeline.LoadRects(path, opts.Units)
		if err != nil {
			return GridViewModel{}, fmt.Errorf("load %s: %w", path, err)
		}
		res, err := runner.Encode(ctx, set, opts)
		if err != nil {
			return GridViewModel{}, fmt.Errorf("encode: %w", err)
		}
		g = res.Grid
	} else {
		g, err = pkgio.ImportGrid(path)
		if err != nil {
			return GridViewModel{}, err
		}
		res, err := runner.Decode(ctx, g, opts)
		if err != nil {
			return GridViewModel{}, fmt.Errorf("decode %s: %w", path, err)
		}
		set = res.Set
	}

	title := fmt.Sprintf("%s · %d rects · %dx%d", filepath.Base(path), len(set), g.Height(), g.Width())
	return NewGridViewModel(title, g, set), nil
}
