package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxgrid/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the encode/decode HTTP API",
		Long: `Serve the encode/decode HTTP API.

Endpoints:
  POST /v1/encode   {"rects": [[x1,y1,x2,y2], ...], "labels": true, "units": 0}
  POST /v1/decode   {"grid": ["1##", "# #", "###"]}
  POST /v1/verify   {"rects": [[x1,y1,x2,y2], ...]}
  GET  /healthz
  GET  /version

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := server.New(runner, server.Options{Labels: c.Config.Labels, Logger: c.Logger})
	return srv.ListenAndServe(ctx, addr)
}
