package main

import (
	"io"
	"maps"
	"slices"
	"strings"

	"mercator-hq/modellint/pkg/cli"

	"github.com/spf13/cobra"
)

// completionWriters generates the completion script of root per shell.
func completionWriters(root *cobra.Command) map[string]func(io.Writer) error {
	return map[string]func(io.Writer) error{
		"bash":       func(w io.Writer) error { return root.GenBashCompletionV2(w, true) },
		"zsh":        root.GenZshCompletion,
		"fish":       func(w io.Writer) error { return root.GenFishCompletion(w, true) },
		"powershell": root.GenPowerShellCompletionWithDesc,
	}
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	writers := completionWriters(root)
	shells := slices.Sorted(maps.Keys(writers))

	return &cobra.Command{
		Use:   "completion <" + strings.Join(shells, "|") + ">",
		Short: "Generate shell completion script",
		Long: `Print a completion script for the given shell to stdout.

  bash:        source <(modellint completion bash)
  zsh:         modellint completion zsh > "${fpath[1]}/_modellint"
  fish:        modellint completion fish > ~/.config/fish/completions/modellint.fish
  powershell:  modellint completion powershell | Out-String | Invoke-Expression`,
		ValidArgs:             shells,
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			write, ok := writers[args[0]]
			if !ok {
				return cli.NewConfigError("shell", "unsupported shell "+args[0]+", want one of "+strings.Join(shells, ", "))
			}
			return write(cmd.OutOrStdout())
		},
	}
}
