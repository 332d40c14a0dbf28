package cli

import (
	"github.com/spf13/cobra"
)

// completionShells are the shells rubiplot documents completions for.
var completionShells = []string{"bash", "zsh", "fish"}

// completionCommand writes a completion script for one of completionShells.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for rubiplot.

  $ source <(rubiplot completion bash)
  $ rubiplot completion zsh > "${fpath[1]}/_rubiplot"
  $ rubiplot completion fish > ~/.config/fish/completions/rubiplot.fish

Completions cover subcommands, flags and the values of --format, --type,
--source and --releases-from.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenBashCompletionV2(out, true)
			}
		},
	}
}
