package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// completionWriters maps each supported shell to its cobra generator.
var completionWriters = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash": func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":  func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish": func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
}

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion bash|zsh|fish",
		Short: "Print a shell completion script",
		Long: `Print a completion script for the given shell to stdout.

On FreeBSD with the shells from ports:
  pyport completion bash > /usr/local/share/bash-completion/completions/pyport
  pyport completion zsh  > /usr/local/share/zsh/site-functions/_pyport
  pyport completion fish > /usr/local/share/fish/vendor_completions.d/pyport.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionWriters[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}
