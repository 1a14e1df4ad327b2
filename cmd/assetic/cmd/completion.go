// Copyright © 2018 One Concern

package cmd

import (
	"github.com/spf13/cobra"
)

const (
	bash = "bash"
	zsh  = "zsh"
	fish = "fish"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion SHELL",
	Short: "generate completions for the assetic command",
	Long: `Generate completions for your shell

	For bash add the following line to your ~/.bashrc

		eval "$(assetic completion bash)"

	For zsh add generate a file:

		assetic completion zsh > /usr/local/share/zsh/site-functions/_assetic

	For fish:

		assetic completion fish > ~/.config/fish/completions/assetic.fish
	`,
	ValidArgs: []string{bash, zsh, fish},
	Args:      cobra.OnlyValidArgs,

	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			wrapFatalln("specify a shell to generate completions for bash, zsh or fish", nil)
			return
		}
		out := cmd.OutOrStdout()
		switch args[0] {
		case bash:
			if err := rootCmd.GenBashCompletionV2(out, true); err != nil {
				wrapFatalln("failed to generate bash completion", err)
			}
		case zsh:
			if err := rootCmd.GenZshCompletion(out); err != nil {
				wrapFatalln("failed to generate zsh completion", err)
			}
		case fish:
			if err := rootCmd.GenFishCompletion(out, true); err != nil {
				wrapFatalln("failed to generate fish completion", err)
			}
		}
	},
}

func init() {
	completionCmd.Hidden = true
	rootCmd.AddCommand(completionCmd)
}
