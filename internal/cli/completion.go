package cli

import (
	"github.com/spf13/cobra"
)

// Extensions offered when completing file arguments.
var (
	rectExts = []string{"json", "toml", "yaml", "yml"}
	gridExts = []string{"txt"}
)

// fileArgs completes the single positional argument with files carrying one
// of exts, falling back to directories.
func fileArgs(exts ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return exts, cobra.ShellCompDirectiveFilterFileExt
	}
}

// completionCommand prints shell completion scripts. Rectangle and grid file
// arguments complete by extension.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for boxgrid.

File arguments complete to rectangle files (.json, .toml, .yaml, .yml) for
encode, verify and discretize, to grid files (.txt) for decode, and to both
for view.

To load completions:

Bash:
  $ source <(boxgrid completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ boxgrid completion bash > /etc/bash_completion.d/boxgrid
  # macOS:
  $ boxgrid completion bash > $(brew --prefix)/etc/bash_completion.d/boxgrid

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ boxgrid completion zsh > "${fpath[1]}/_boxgrid"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ boxgrid completion fish | source

  # To load completions for each session, execute once:
  $ boxgrid completion fish > ~/.config/fish/completions/boxgrid.fish

PowerShell:
  PS> boxgrid completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> boxgrid completion powershell > boxgrid.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(c.out)
			case "zsh":
				return cmd.Root().GenZshCompletion(c.out)
			case "fish":
				return cmd.Root().GenFishCompletion(c.out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(c.out)
			}
			return nil
		},
	}

	return cmd
}
