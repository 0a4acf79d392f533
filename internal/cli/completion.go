package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command. Besides commands and
// flags, the scripts complete theme names and output formats.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: fmt.Sprintf(`Generate a shell completion script for %[1]s.

Bash:        source <(%[1]s completion bash)
Zsh:         %[1]s completion zsh > "${fpath[1]}/_%[1]s"
Fish:        %[1]s completion fish > ~/.config/fish/completions/%[1]s.fish
PowerShell:  %[1]s completion powershell | Out-String | Invoke-Expression

Theme names are completed from the built-in themes and the config file.`, appName),
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
