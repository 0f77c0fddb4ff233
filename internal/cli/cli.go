// Package cli implements the boxgrid command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxgrid/pkg/buildinfo"
	"github.com/matzehuels/boxgrid/pkg/cache"
	"github.com/matzehuels/boxgrid/pkg/config"
	"github.com/matzehuels/boxgrid/pkg/errors"
	"github.com/matzehuels/boxgrid/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	// out receives command results (grids, rectangle lists, status lines);
	// errOut receives diagnostics and the spinner.
	out    io.Writer
	errOut io.Writer

	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger writing to w.
// Command output goes to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

// SetOutput redirects command output and diagnostics.
func (c *CLI) SetOutput(out, errOut io.Writer) {
	c.out = out
	c.errOut = errOut
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "boxgrid converts rectangle sets to character grids and back",
		Long: `boxgrid draws ordered sets of axis-aligned rectangles as character grids
and recovers the rectangles, in order, from a labeled grid.

A grid uses '#' for rectangle frames, ' ' for empty cells and digits for the
1-based label written at each rectangle's top-left corner.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/boxgrid/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable result caching")

	// Register all subcommands
	root.AddCommand(c.encodeCommand())
	root.AddCommand(c.decodeCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.discretizeCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", c.configPath, "backend", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	cc, err := c.newCache()
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.Config.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Config.Cache.Prefix)
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

func (c *CLI) newCache() (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(cache.RedisOptions{
			Addr: c.Config.Cache.RedisAddr,
			DB:   c.Config.Cache.RedisDB,
		}), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCache, err, "open cache %s", dir)
	}
	return fc, nil
}

// cacheDir returns the configured cache directory or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return config.CacheDir()
}

// options builds pipeline options from config, overridden by explicitly set flags.
func (c *CLI) options(cmd *cobra.Command, labels bool, units int) pipeline.Options {
	opts := pipeline.Options{
		Labels: c.Config.Labels,
		Units:  c.Config.Units,
		TTL:    c.Config.Cache.TTL.Duration,
		Logger: c.Logger,
	}
	if f := cmd.Flags().Lookup("labels"); f != nil && f.Changed {
		opts.Labels = labels
	}
	if f := cmd.Flags().Lookup("units"); f != nil && f.Changed {
		opts.Units = units
	}
	return opts
}
